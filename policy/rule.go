package policy

import (
	"fmt"
	"strconv"
	"strings"
)

// Rule is an inclusive occurrence range for a single character.
// Max < Min is allowed and simply never matches.
type Rule struct {
	Char string
	Min  int
	Max  int
}

// ParseRule parses a rule token. The token holds two fields separated by the
// first space: a character and a "<min>-<max>" range, in either order.
func ParseRule(token string) (Rule, error) {
	left, right, ok := strings.Cut(token, " ")
	if !ok {
		return Rule{}, fmt.Errorf("%w %q: expected \"<char> <min>-<max>\"", ErrMalformedRule, token)
	}

	if lo, hi, err := parseRange(right); err == nil {
		return newRule(token, left, lo, hi)
	}
	if lo, hi, err := parseRange(left); err == nil {
		return newRule(token, right, lo, hi)
	}
	return Rule{}, fmt.Errorf("%w %q: no numeric <min>-<max> range", ErrMalformedRule, token)
}

func newRule(token, char string, lo, hi int) (Rule, error) {
	if char == "" {
		return Rule{}, fmt.Errorf("%w %q: empty character", ErrMalformedRule, token)
	}
	return Rule{Char: char, Min: lo, Max: hi}, nil
}

// parseRange splits on the first '-' and parses both bounds as base-10 ints.
func parseRange(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, strconv.ErrSyntax
	}
	lo, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, err
	}
	hi, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// Allows reports whether count lies in [Min, Max].
func (r Rule) Allows(count int) bool {
	return r.Min <= count && count <= r.Max
}

func (r Rule) String() string {
	return fmt.Sprintf("%s %d-%d", r.Char, r.Min, r.Max)
}
