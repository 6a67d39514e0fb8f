package ingest

import (
	"context"
	"fmt"
	"io"
	"mime"
	"strings"

	"go.uber.org/zap"

	"github.com/km-arc/passgate/framework/logging"
	"github.com/km-arc/passgate/policy"
)

// Channel names the input surface a flow came from.
type Channel string

const (
	Manual Channel = "manual"
	Drop   Channel = "drop"
	Picker Channel = "picker"
)

// ParseChannel accepts the two file channels.
func ParseChannel(s string) (Channel, error) {
	switch c := Channel(s); c {
	case Drop, Picker:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChannel, s)
}

// DragEvent is a drop-zone pointer event.
type DragEvent string

const (
	DragEnter DragEvent = "enter"
	DragOver  DragEvent = "over"
	DragLeave DragEvent = "leave"
)

// ParseDragEvent validates a drag event name.
func ParseDragEvent(s string) (DragEvent, error) {
	switch e := DragEvent(s); e {
	case DragEnter, DragOver, DragLeave:
		return e, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDrag, s)
}

// Options configures a Controller. Zero values fall back to defaults.
type Options struct {
	AcceptType   string // declared content type of processable files
	MaxFileBytes int64
	MaxFiles     int
	Logger       *zap.Logger
}

const (
	DefaultAcceptType   = "text/plain"
	DefaultMaxFileBytes = 1 << 20
	DefaultMaxFiles     = 32
)

// Controller feeds manual text and uploaded files through the batch
// validator and keeps a session's result set and loading flag in step.
type Controller struct {
	accept       string
	maxFileBytes int64
	maxFiles     int
	log          *zap.Logger
}

// NewController creates a Controller.
func NewController(opts Options) *Controller {
	c := &Controller{
		accept:       strings.ToLower(strings.TrimSpace(opts.AcceptType)),
		maxFileBytes: opts.MaxFileBytes,
		maxFiles:     opts.MaxFiles,
		log:          opts.Logger,
	}
	if c.accept == "" {
		c.accept = DefaultAcceptType
	}
	if c.maxFileBytes <= 0 {
		c.maxFileBytes = DefaultMaxFileBytes
	}
	if c.maxFiles <= 0 {
		c.maxFiles = DefaultMaxFiles
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// Report describes one finished flow.
type Report struct {
	Channel    Channel         `json:"channel"`
	Generation uint64          `json:"generation"`
	Applied    bool            `json:"applied"`
	Accepted   []string        `json:"accepted,omitempty"`
	Results    []policy.Result `json:"results"`
	Summary    policy.Summary  `json:"summary"`
	Failures   []Failure       `json:"failures,omitempty"`
}

// Ticket is an in-flight file flow started by Begin.
type Ticket struct {
	session    *Session
	channel    Channel
	generation uint64
}

// Generation returns the flow's generation number.
func (t Ticket) Generation() uint64 { return t.generation }

// ValidateText runs the manual path: the whole text is validated and
// replaces the result set. Any file flow still in flight is superseded.
func (c *Controller) ValidateText(ctx context.Context, s *Session, text string) Report {
	s.mu.Lock()
	s.input = text
	gen := s.begin(false)
	s.mu.Unlock()

	results := c.process(ctx, Manual, "", text)
	applied := s.commit(gen, results, nil, true)

	return Report{
		Channel:    Manual,
		Generation: gen,
		Applied:    applied,
		Results:    results,
		Summary:    policy.Summarize(results),
	}
}

// Begin moves the session to Loading before any file is read. A drop also
// ends the drag.
func (c *Controller) Begin(s *Session, ch Channel) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch == Drop {
		s.state.DragActive = false
	}
	return Ticket{session: s, channel: ch, generation: s.begin(true)}
}

// Complete reads the accepted files one after another, in order, and commits
// the concatenated results if the ticket is still the session's latest flow.
// Files with another declared type are dropped silently. A file that cannot
// be read is skipped and reported in Failures.
func (c *Controller) Complete(ctx context.Context, t Ticket, files []Source) Report {
	log := logging.FromContext(ctx, c.log).With(
		zap.String("session", t.session.ID()),
		zap.String("channel", string(t.channel)),
		zap.Uint64("generation", t.generation),
	)

	accepted := c.Accept(ctx, files)
	report := Report{Channel: t.channel, Generation: t.generation}

	if len(accepted) == 0 {
		report.Applied = t.session.commit(t.generation, nil, nil, false)
		report.Results = []policy.Result{}
		log.Debug("no processable files")
		return report
	}

	var (
		results  = make([]policy.Result, 0)
		failures []Failure
	)
	for i, src := range accepted {
		if i >= c.maxFiles {
			failures = append(failures, Failure{File: src.Name(), Error: ErrTooManyFiles.Error()})
			continue
		}
		text, err := c.read(src)
		if err != nil {
			log.Warn("file read failed", zap.String("file", src.Name()), zap.Error(err))
			failures = append(failures, Failure{File: src.Name(), Error: err.Error()})
			continue
		}
		report.Accepted = append(report.Accepted, src.Name())
		results = append(results, c.process(ctx, t.channel, src.Name(), text)...)
	}

	report.Results = results
	report.Summary = policy.Summarize(results)
	report.Failures = failures
	report.Applied = t.session.commit(t.generation, results, failures, true)
	if !report.Applied {
		log.Debug("stale batch discarded", zap.Int("results", len(results)))
	}
	return report
}

// Ingest is Begin followed by Complete.
func (c *Controller) Ingest(ctx context.Context, s *Session, ch Channel, files []Source) Report {
	return c.Complete(ctx, c.Begin(s, ch), files)
}

// Drag toggles the drop-zone highlight.
func (c *Controller) Drag(s *Session, ev DragEvent) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DragActive = ev != DragLeave
	return s.state
}

// Accept keeps the files whose declared media type matches, in order.
func (c *Controller) Accept(ctx context.Context, files []Source) []Source {
	out := make([]Source, 0, len(files))
	for _, f := range files {
		if c.accepts(f.ContentType()) {
			out = append(out, f)
			continue
		}
		logging.FromContext(ctx, c.log).Debug("file skipped",
			zap.String("file", f.Name()),
			zap.String("content_type", f.ContentType()))
	}
	return out
}

func (c *Controller) accepts(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == c.accept
}

func (c *Controller) read(src Source) (string, error) {
	rc, err := src.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", src.Name(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, c.maxFileBytes+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", src.Name(), err)
	}
	if int64(len(data)) > c.maxFileBytes {
		return "", fmt.Errorf("%s: %w (%d bytes)", src.Name(), ErrFileTooLarge, c.maxFileBytes)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

// process validates text and reports malformed lines on the debug log.
func (c *Controller) process(ctx context.Context, ch Channel, file, text string) []policy.Result {
	results := policy.ProcessText(text)
	log := logging.FromContext(ctx, c.log)
	for i, r := range results {
		if r.Reason == "" {
			continue
		}
		log.Debug("malformed line",
			zap.String("channel", string(ch)),
			zap.String("file", file),
			zap.Int("index", i),
			zap.String("reason", r.Reason))
	}
	return results
}
