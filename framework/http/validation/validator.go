package validation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ── Types ────────────────────────────────────────────────────────────────────

// Errors is the error bag. JSON output: {"errors": {"field": ["msg1"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs := e.Bag[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Error joins every message, fields sorted, so the bag can travel as an error.
func (e *Errors) Error() string {
	fields := make([]string, 0, len(e.Bag))
	for f := range e.Bag {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	var parts []string
	for _, f := range fields {
		parts = append(parts, e.Bag[f]...)
	}
	return strings.Join(parts, " ")
}

// ── Validator ────────────────────────────────────────────────────────────────

// Rules maps a field to its pipe-separated rule string.
type Rules map[string]string

// Validator validates a flat map of input values.
type Validator struct {
	data   map[string]string
	rules  Rules
	errors *Errors
	ran    bool
}

// Make creates a new Validator.
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{data: data, rules: rules, errors: &Errors{}}
}

// Fails runs validation (once) and reports whether any rule failed.
func (v *Validator) Fails() bool {
	if !v.ran {
		v.ran = true
		v.validate()
	}
	return v.errors.Has()
}

// Errors returns the error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// ── Core validation loop ─────────────────────────────────────────────────────

func (v *Validator) validate() {
	for field, ruleStr := range v.rules {
		value := v.data[field]
		for _, rule := range strings.Split(ruleStr, "|") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}
			name, param, _ := strings.Cut(rule, ":")
			if !v.apply(field, value, name, param) {
				break
			}
		}
	}
}

// apply returns true if the rule passes.
func (v *Validator) apply(field, value, rule, param string) bool {
	switch rule {
	case "required":
		if strings.TrimSpace(value) == "" {
			v.errors.add(field, fmt.Sprintf("The %s field is required.", field))
			return false
		}

	case "max":
		n, _ := strconv.Atoi(param)
		if Length(value) > n {
			v.errors.add(field, fmt.Sprintf("The %s may not be greater than %d characters.", field, n))
			return false
		}

	case "in":
		for _, allowed := range strings.Split(param, ",") {
			if strings.TrimSpace(allowed) == value {
				return true
			}
		}
		v.errors.add(field, fmt.Sprintf("The selected %s is invalid.", field))
		return false

	default:
		v.errors.add(field, fmt.Sprintf("Unknown rule %q on %s.", rule, field))
		return false
	}

	return true
}

// Length counts characters the way a browser's maxlength does for submitted
// text: one per rune, with a CRLF pair counted once.
func Length(s string) int {
	return utf8.RuneCountInString(s) - strings.Count(s, "\r\n")
}
