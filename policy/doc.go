// Package policy validates lines of the form
//
//	<char> <min>-<max>: <candidate>
//
// where the candidate must contain <char> between <min> and <max> times,
// inclusive. The rule token also accepts the range first ("1-3 a: abc").
//
// Everything here is pure: no I/O, no logging, no shared state.
//
//	out := policy.Check("1-3 a: abbcde")
//	out.Verdict // policy.Valid
//	out.Count   // 1
//
//	results := policy.ProcessText(pasted)
//	sum := policy.Summarize(results) // sum.Valid, sum.Total
package policy
