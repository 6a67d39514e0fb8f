package policy

import "strings"

// Result is the validation result of one input line. Line is kept verbatim,
// rule prefix included.
type Result struct {
	Line   string `json:"line"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Summary is the trailing "valid / total" count.
type Summary struct {
	Valid int `json:"valid"`
	Total int `json:"total"`
}

// Lines trims text, splits it on '\n' and drops blank segments. A trailing
// '\r' is stripped from every segment so CRLF input yields the same lines.
func Lines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	segments := strings.Split(text, "\n")
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSuffix(seg, "\r")
		if strings.TrimSpace(seg) == "" {
			continue
		}
		lines = append(lines, seg)
	}
	return lines
}

// ProcessText validates every non-blank line of text, in order.
func ProcessText(text string) []Result {
	lines := Lines(text)
	results := make([]Result, 0, len(lines))
	for _, line := range lines {
		results = append(results, NewResult(line, Check(line)))
	}
	return results
}

// NewResult builds the Result for line from its Outcome.
func NewResult(line string, out Outcome) Result {
	r := Result{Line: line, Valid: out.OK()}
	if out.Reason != nil {
		r.Reason = out.Reason.Error()
	}
	return r
}

// Summarize counts passing results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Valid {
			s.Valid++
		}
	}
	return s
}
