package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const maxMemory = 32 << 20 // 32 MB

// ErrNoMultipartForm is returned by Files when the body is not multipart.
var ErrNoMultipartForm = errors.New("no multipart form")

// Request wraps *http.Request with input helpers.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the request input into v.
// Datastar requests carry their signals as JSON (body, or the "datastar"
// query parameter on GET); JSON bodies decode directly; forms map onto v's
// json tags.
func (req *Request) Bind(v any) error {
	ct := req.ContentType()

	switch {
	case req.IsDataStar() && !strings.Contains(ct, "multipart/form-data"):
		return datastar.ReadSignals(req.raw, v)
	case strings.Contains(ct, "application/json"):
		return req.bindJSON(v)
	case strings.Contains(ct, "multipart/form-data"):
		if err := req.raw.ParseMultipartForm(maxMemory); err != nil {
			return err
		}
		return bindForm(req.raw.MultipartForm.Value, v)
	default:
		if err := req.raw.ParseForm(); err != nil {
			return err
		}
		return bindForm(req.raw.PostForm, v)
	}
}

func (req *Request) bindJSON(v any) error {
	defer req.raw.Body.Close()
	body, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	return json.Unmarshal(body, v)
}

// bindForm maps single-valued form fields onto v through its json tags.
func bindForm(values map[string][]string, v any) error {
	m := make(map[string]any, len(values))
	for k, vals := range values {
		if len(vals) == 1 {
			m[k] = vals[0]
		} else {
			m[k] = vals
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Input returns a single input value (query string OR post body).
func (req *Request) Input(key string, fallback ...string) string {
	v := req.raw.FormValue(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// Cookie returns the value of the named cookie, or "".
func (req *Request) Cookie(name string) string {
	c, err := req.raw.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.Header("Content-Type")
}

// IsJSON returns true when the request expects a JSON response.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.Header("Accept"), "application/json") ||
		strings.Contains(req.ContentType(), "application/json")
}

// IsDataStar reports whether the request came from a datastar action and
// expects an SSE response.
func (req *Request) IsDataStar() bool {
	if req.Header("Datastar-Request") == "true" {
		return true
	}
	if strings.Contains(req.Header("Accept"), "text/event-stream") {
		return true
	}
	return req.raw.URL.Query().Has("datastar")
}

// ── File uploads ─────────────────────────────────────────────────────────────

// Files returns all uploaded files for a field, in submission order.
func (req *Request) Files(key string) ([]*multipart.FileHeader, error) {
	if err := req.raw.ParseMultipartForm(maxMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, ErrNoMultipartForm
		}
		return nil, err
	}
	if req.raw.MultipartForm == nil {
		return nil, ErrNoMultipartForm
	}
	return req.raw.MultipartForm.File[key], nil
}
