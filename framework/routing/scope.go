package routing

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/km-arc/go-layers/framework/layers"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-Id"

// Keys of the request layer pushed by ScopeMiddleware.
const (
	KeyRequestID     = "request.id"
	KeyRequestMethod = "request.method"
	KeyRequestPath   = "request.path"
)

// ScopeMiddleware gives every request its own stack: a Fork of root with one
// extra layer describing the request. Handlers reach it through
// layers.FromContext.
//
// root is only read here. Finish registering into it before serving.
func ScopeMiddleware(root *layers.Stack) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			stack := root.Fork()
			stack.Create(
				layers.Named(KeyRequestID, id),
				layers.Named(KeyRequestMethod, r.Method),
				layers.Named(KeyRequestPath, r.URL.Path),
				layers.Value(r),
			)

			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(layers.NewContext(r.Context(), stack)))
		})
	}
}
