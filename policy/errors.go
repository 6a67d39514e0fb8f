package policy

import "errors"

// Malformed-line reasons. Check reports them through Outcome.Reason so the
// caller can tell a broken line apart from a well-formed line that fails.
var (
	ErrMissingSeparator = errors.New("missing \": \" separator")
	ErrEmptyRule        = errors.New("empty rule")
	ErrEmptyCandidate   = errors.New("empty candidate text")
	ErrMalformedRule    = errors.New("malformed rule")
)
