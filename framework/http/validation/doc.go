// Package validation checks flat string input against pipe-separated rules.
//
//	v := validation.Make(map[string]string{
//	    "channel": channel,
//	    "input":   text,
//	}, validation.Rules{
//	    "channel": "required|in:drop,picker",
//	    "input":   "max:1048576",
//	})
//
//	if v.Fails() {
//	    res.ValidationError(v.Errors()) // 422 {"errors": {"channel": ["..."]}}
//	}
//
// Supported rules: required, max:<n> (characters, CRLF counted once),
// in:<a,b,...>. Validation stops at the first failing rule of a field.
package validation
