package ingest

import (
	"slices"
	"sync"
	"time"

	"github.com/km-arc/passgate/policy"
)

// State is the transient UI state of a session.
type State struct {
	DragActive bool `json:"dragActive"`
	Loading    bool `json:"loading"`
}

// Failure records a file that was accepted but could not be read.
type Failure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// Snapshot is a copy of a session taken under its lock.
type Snapshot struct {
	ID         string          `json:"id"`
	Input      string          `json:"input"`
	Results    []policy.Result `json:"results"`
	Summary    policy.Summary  `json:"summary"`
	Failures   []Failure       `json:"failures,omitempty"`
	State      State           `json:"state"`
	Generation uint64          `json:"generation"`
}

// Session holds the state of one browser: the last manual input, the current
// result set and the loading/drag flags. Results are only ever replaced
// wholesale.
type Session struct {
	id string

	mu         sync.Mutex
	input      string
	results    []policy.Result
	failures   []Failure
	state      State
	generation uint64
	lastSeen   time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{id: id, lastSeen: now}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Snapshot returns a consistent copy of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:         s.id,
		Input:      s.input,
		Results:    slices.Clone(s.results),
		Summary:    policy.Summarize(s.results),
		Failures:   slices.Clone(s.failures),
		State:      s.state,
		Generation: s.generation,
	}
}

// State returns the current UI flags.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Results returns a copy of the current result set.
func (s *Session) Results() []policy.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.results)
}

// begin starts a new flow and returns its generation.
func (s *Session) begin(loading bool) uint64 {
	s.generation++
	s.state.Loading = loading
	return s.generation
}

// commit installs results if gen is still the current generation. Only the
// current flow may clear Loading.
func (s *Session) commit(gen uint64, results []policy.Result, failures []Failure, replace bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	if replace {
		s.results = results
		s.failures = failures
	}
	s.state.Loading = false
	return true
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
