// Package http provides request, response and view helpers on top of
// net/http and datastar.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	// Bind datastar signals, JSON or form fields into a struct
//	var in struct {
//	    Input string `json:"input"`
//	}
//	if err := req.Bind(&in); err != nil { ... }
//
//	text := req.Input("input")
//	files, err := req.Files("files")
//	req.IsDataStar() // datastar action, answer with SSE
//	req.IsJSON()     // API client, answer with JSON
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.Success(data)             // 200 {"data": ...}
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.ValidationError(errs)     // 422 {"errors": {"field": ["msg"]}}
//	res.SeeOther("/")             // 303 after a form POST
//
//	sse := res.SSE(r)
//	sse.PatchElements(html)
//	sse.MarshalAndPatchSignals(map[string]any{"loading": false})
//
// # ViewEngine
//
//	engine, err := gohttp.NewViewEngine(views.FS, funcs, "*.html")
//	engine.View(w, "index", data)
//	html, err := engine.Fragment("results", data)
package http
