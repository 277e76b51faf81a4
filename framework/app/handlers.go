package app

import (
	"errors"
	"net/http"

	gohttp "github.com/km-arc/go-layers/framework/http"
	"github.com/km-arc/go-layers/framework/layers"
	"github.com/km-arc/go-layers/framework/routing"
)

func (a *Application) routes(r *routing.Router) {
	r.Middleware(routing.ScopeMiddleware(a.Stack))
	// type keys contain slashes, so the key is the rest of the path
	r.Get("/resolve/*", a.resolve)
	r.Get("/layers", a.listLayers)
}

// resolve handles GET /resolve/{key}?mode=.
func (a *Application) resolve(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	stack, ok := req.Layers()
	if !ok {
		res.ServerError("no layer stack on request")
		return
	}
	mode, err := req.Mode(a.mode)
	if err != nil {
		res.BadRequest(err.Error())
		return
	}

	key := req.RouteParam("*")
	if key == "" {
		res.BadRequest("missing key")
		return
	}
	v, err := stack.Resolve(key, mode)
	switch {
	case errors.Is(err, layers.ErrNotResolved):
		res.NotFound(err.Error())
		return
	case err != nil:
		res.ServerError(err.Error())
		return
	}

	res.Success(map[string]any{
		"key":   key,
		"type":  layers.TypeKey(v),
		"value": gohttp.Encodable(v),
	})
}

// listLayers handles GET /layers, newest layer first.
func (a *Application) listLayers(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	stack, ok := req.Layers()
	if !ok {
		res.ServerError("no layer stack on request")
		return
	}

	all := stack.Layers()
	out := make([]map[string]any, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		l := all[i]
		deferred := []string{}
		for _, key := range l.Keys() {
			if slot, _ := l.Get(key); slot.IsDeferred() {
				deferred = append(deferred, key)
			}
		}
		out = append(out, map[string]any{
			"index":    i,
			"isolated": l.Isolated(),
			"keys":     l.Keys(),
			"deferred": deferred,
		})
	}
	res.SuccessWithMeta(out, map[string]any{
		"app":     a.cfg.App.Name,
		"env":     a.Environment(),
		"version": a.Version(),
		"debug":   a.IsDebug(),
		"depth":   len(all),
	})
}
