package http

import (
	"encoding/json"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/km-arc/passgate/framework/http/validation"
)

// ── Response ─────────────────────────────────────────────────────────────────

// Response wraps http.ResponseWriter with JSON, redirect and SSE helpers.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Raw returns the underlying ResponseWriter.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// NoContent sends 204 with no body.
func (res *Response) NoContent() {
	res.w.WriteHeader(http.StatusNoContent)
}

// Error sends a JSON error response.
//
//	res.Error(http.StatusBadRequest, "no files uploaded")
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	res.Error(http.StatusNotFound, first(message, "Not found."))
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) {
	res.Error(http.StatusInternalServerError, first(message, "Server Error."))
}

// ValidationError sends 422 with the error bag: {"errors": {"field": ["msg"]}}
func (res *Response) ValidationError(errors *validation.Errors) {
	res.JSON(http.StatusUnprocessableEntity, errors)
}

// ── Redirects ────────────────────────────────────────────────────────────────

// SeeOther sends a 303 redirect, the answer to a plain form POST.
func (res *Response) SeeOther(url string) {
	res.w.Header().Set("Location", url)
	res.w.WriteHeader(http.StatusSeeOther)
}

// ── Cookies ──────────────────────────────────────────────────────────────────

// SetCookie adds a Set-Cookie header.
func (res *Response) SetCookie(c *http.Cookie) {
	http.SetCookie(res.w, c)
}

// ── Server-sent events ───────────────────────────────────────────────────────

// SSE opens a datastar event stream on the response.
func (res *Response) SSE(r *http.Request) *datastar.ServerSentEventGenerator {
	return datastar.NewSSE(res.w, r)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
