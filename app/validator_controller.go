package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
	"go.uber.org/zap"

	"github.com/km-arc/passgate/framework/config"
	gohttp "github.com/km-arc/passgate/framework/http"
	"github.com/km-arc/passgate/framework/http/validation"
	"github.com/km-arc/passgate/framework/logging"
	"github.com/km-arc/passgate/framework/routing"
	"github.com/km-arc/passgate/ingest"
)

// ValidatorController serves the validator page and its three input
// surfaces: pasted text, dropped files and picked files.
type ValidatorController struct {
	cfg      *config.Config
	ingest   *ingest.Controller
	sessions *ingest.Store
	views    *gohttp.ViewEngine
	log      *zap.Logger
}

func NewValidatorController(cfg *config.Config, ic *ingest.Controller, sessions *ingest.Store, views *gohttp.ViewEngine, log *zap.Logger) *ValidatorController {
	return &ValidatorController{cfg: cfg, ingest: ic, sessions: sessions, views: views, log: log}
}

// Routes mounts the controller.
//
//	GET  /healthz   liveness
//	GET  /          page
//	GET  /results   current result set as JSON
//	POST /validate  manual text
//	POST /upload    dropped or picked files
//	POST /drag      drop-zone highlight
func (c *ValidatorController) Routes(r *routing.Router) {
	r.NotFound(c.NotFound)
	r.Get("/healthz", c.Health)
	r.Group(func(g *routing.Router) {
		g.Middleware(c.withSession)
		g.Get("/", c.Index)
		g.Get("/results", c.Results)
		g.Post("/validate", c.Validate)
		g.Post("/upload", c.Upload)
		g.Post("/drag", c.Drag)
	})
}

// page is the data behind the index and results templates.
type page struct {
	ingest.Snapshot
	Title         string
	AcceptType    string
	MaxInputChars int
	Error         string
}

func (c *ValidatorController) page(s *ingest.Session) page {
	return page{
		Snapshot:      s.Snapshot(),
		Title:         c.cfg.App.Name,
		AcceptType:    c.cfg.Ingest.AcceptType,
		MaxInputChars: c.cfg.Ingest.MaxInputChars,
	}
}

func (c *ValidatorController) NotFound(w http.ResponseWriter, r *http.Request) {
	gohttp.NewResponse(w).NotFound()
}

func (c *ValidatorController) Health(w http.ResponseWriter, r *http.Request) {
	gohttp.NewResponse(w).Success(map[string]string{"status": "ok"})
}

func (c *ValidatorController) Index(w http.ResponseWriter, r *http.Request) {
	c.views.View(w, "index", c.page(sessionFrom(r.Context())))
}

func (c *ValidatorController) Results(w http.ResponseWriter, r *http.Request) {
	gohttp.NewResponse(w).Success(sessionFrom(r.Context()).Snapshot())
}

// Validate runs the manual path on the submitted text.
func (c *ValidatorController) Validate(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	res := gohttp.NewResponse(w)
	sess := sessionFrom(r.Context())

	var in struct {
		Input string `json:"input"`
	}
	if err := req.Bind(&in); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	v := validation.Make(map[string]string{"input": in.Input}, validation.Rules{
		"input": fmt.Sprintf("max:%d", c.cfg.Ingest.MaxInputChars),
	})
	if v.Fails() {
		c.invalid(w, r, sess, "input", v.Errors())
		return
	}

	report := c.ingest.ValidateText(r.Context(), sess, in.Input)
	c.respond(w, r, sess, report)
}

// Upload runs the file path. Loading is entered before any file is read and
// announced to datastar clients straight away.
func (c *ValidatorController) Upload(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	res := gohttp.NewResponse(w)
	sess := sessionFrom(r.Context())

	files, err := req.Files("files")
	if err != nil {
		if errors.Is(err, gohttp.ErrNoMultipartForm) {
			res.Error(http.StatusBadRequest, "expected multipart/form-data with a files field")
			return
		}
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	v := validation.Make(map[string]string{"channel": req.Input("channel")}, validation.Rules{
		"channel": "required|in:drop,picker",
	})
	if v.Fails() {
		c.invalid(w, r, sess, "channel", v.Errors())
		return
	}
	ch, err := ingest.ParseChannel(req.Input("channel"))
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	ticket := c.ingest.Begin(sess, ch)

	if !req.IsDataStar() {
		report := c.ingest.Complete(r.Context(), ticket, ingest.FromFileHeaders(files))
		c.respond(w, r, sess, report)
		return
	}

	sse := res.SSE(r)
	if err := sse.MarshalAndPatchSignals(sess.State()); err != nil {
		c.logFrom(r).Warn("patch signals", zap.Error(err))
	}
	c.ingest.Complete(r.Context(), ticket, ingest.FromFileHeaders(files))

	p := c.page(sess)
	html, err := c.views.Fragment("results", p)
	if err != nil {
		c.logFrom(r).Error("render results", zap.Error(err))
		return
	}
	c.send(r, sse, html, p.State)
}

// Drag records drop-zone enter/over/leave.
func (c *ValidatorController) Drag(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	res := gohttp.NewResponse(w)
	sess := sessionFrom(r.Context())

	state := req.Query("state", req.Input("state"))
	v := validation.Make(map[string]string{"state": state}, validation.Rules{
		"state": "required|in:enter,over,leave",
	})
	if v.Fails() {
		res.ValidationError(v.Errors())
		return
	}
	ev, err := ingest.ParseDragEvent(state)
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	st := c.ingest.Drag(sess, ev)
	switch {
	case req.IsDataStar():
		if err := res.SSE(r).MarshalAndPatchSignals(st); err != nil {
			c.logFrom(r).Warn("patch signals", zap.Error(err))
		}
	case req.IsJSON():
		res.Success(st)
	default:
		res.NoContent()
	}
}

// respond answers a finished flow: SSE for datastar, JSON for API clients,
// and a redirect back to the page for plain form posts.
func (c *ValidatorController) respond(w http.ResponseWriter, r *http.Request, sess *ingest.Session, report ingest.Report) {
	req := gohttp.NewRequest(r)
	switch {
	case req.IsDataStar():
		c.stream(w, r, c.page(sess))
	case req.IsJSON():
		gohttp.NewResponse(w).Success(report)
	default:
		gohttp.NewResponse(w).SeeOther("/")
	}
}

// invalid answers a failed validation. Datastar clients get the field's first
// message patched into the results section; everyone else gets the 422 bag.
func (c *ValidatorController) invalid(w http.ResponseWriter, r *http.Request, sess *ingest.Session, field string, errs *validation.Errors) {
	if !gohttp.NewRequest(r).IsDataStar() {
		gohttp.NewResponse(w).ValidationError(errs)
		return
	}
	p := c.page(sess)
	p.Error = errs.First(field)
	c.stream(w, r, p)
}

// stream renders the results section for p and sends it, followed by the UI
// signals. Rendering happens before the event stream opens so a template
// failure can still be answered with a 500.
func (c *ValidatorController) stream(w http.ResponseWriter, r *http.Request, p page) {
	res := gohttp.NewResponse(w)
	html, err := c.views.Fragment("results", p)
	if err != nil {
		c.logFrom(r).Error("render results", zap.Error(err))
		res.ServerError()
		return
	}
	c.send(r, res.SSE(r), html, p.State)
}

func (c *ValidatorController) send(r *http.Request, sse *datastar.ServerSentEventGenerator, html string, st ingest.State) {
	log := c.logFrom(r)
	if err := sse.PatchElements(html); err != nil {
		log.Warn("patch results", zap.Error(err))
		return
	}
	if err := sse.MarshalAndPatchSignals(st); err != nil {
		log.Warn("patch signals", zap.Error(err))
	}
}

func (c *ValidatorController) logFrom(r *http.Request) *zap.Logger {
	return logging.FromContext(r.Context(), c.log)
}
