package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-layers/framework/layers"
)

// Request wraps *http.Request with lookup helpers.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Input helpers ────────────────────────────────────────────────────────────

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// Method returns the HTTP method.
func (req *Request) Method() string { return req.raw.Method }

// Path returns the URL path.
func (req *Request) Path() string { return req.raw.URL.Path }

// ── Layers ───────────────────────────────────────────────────────────────────

// Layers returns the request-scoped stack installed by routing.ScopeMiddleware.
func (req *Request) Layers() (*layers.Stack, bool) {
	return layers.FromContext(req.raw.Context())
}

// Mode reads the "mode" query parameter, falling back to fallback when it is
// absent.
func (req *Request) Mode(fallback layers.Mode) (layers.Mode, error) {
	raw := req.Query("mode")
	if raw == "" {
		return fallback, nil
	}
	return layers.ParseMode(raw)
}
