// Package http provides request and response helpers for the layer
// inspection endpoints.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	key := req.RouteParam("key")               // chi route params
//	mode, err := req.Mode(layers.Same)         // ?mode=children
//	stack, ok := req.Layers()                  // request-scoped stack
//
// # Response
//
//	res := gohttp.NewResponse(w)
//	res.Success(v)                      // 200 {"data": v}
//	res.NotFound("no such service")     // 404 {"message": "..."}
//	res.BadRequest()                    // 400 {"message": "Bad Request."}
package http
