package policy

import "strings"

// Separator divides the rule token from the candidate text.
const Separator = ": "

// Verdict is the three-way result of checking a line.
type Verdict int

const (
	Invalid Verdict = iota
	Valid
	Malformed
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case Malformed:
		return "malformed"
	default:
		return "invalid"
	}
}

// Outcome is what Check found for one line. Reason is set only for Malformed.
type Outcome struct {
	Verdict Verdict
	Rule    Rule
	Count   int
	Reason  error
}

// OK reports whether the line passed its rule.
func (o Outcome) OK() bool { return o.Verdict == Valid }

// Check splits line on the first Separator, parses the rule and counts the
// rule character in the candidate text.
func Check(line string) Outcome {
	token, candidate, found := strings.Cut(line, Separator)
	switch {
	case !found:
		return Outcome{Verdict: Malformed, Reason: ErrMissingSeparator}
	case token == "":
		return Outcome{Verdict: Malformed, Reason: ErrEmptyRule}
	case candidate == "":
		return Outcome{Verdict: Malformed, Reason: ErrEmptyCandidate}
	}

	rule, err := ParseRule(token)
	if err != nil {
		return Outcome{Verdict: Malformed, Reason: err}
	}

	count := Count(candidate, rule.Char)
	out := Outcome{Verdict: Invalid, Rule: rule, Count: count}
	if rule.Allows(count) {
		out.Verdict = Valid
	}
	return out
}

// ValidateLine is Check reduced to a boolean; malformed lines are false.
func ValidateLine(line string) bool {
	return Check(line).OK()
}

// Count returns the number of non-overlapping literal occurrences of char in
// text. Bytes are compared as they are; no Unicode normalisation is applied.
func Count(text, char string) int {
	if char == "" {
		return 0
	}
	return strings.Count(text, char)
}
