package layers

import (
	"log/slog"
	"reflect"
	"slices"
)

// Option configures a Stack.
type Option func(*Stack)

// WithLogger sets the logger used for debug records. Stacks are silent by
// default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Stack) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTypes makes the stack use an existing type registry, e.g. one that
// already carries Declare edges.
func WithTypes(types *Types) Option {
	return func(s *Stack) {
		if types != nil {
			s.types = types
		}
	}
}

// Stack is an ordered sequence of layers searched newest first.
//
// A Stack does no locking. Keep each instance on one goroutine, or hand each
// concurrent context its own instance via Fork.
type Stack struct {
	layers []*Layer
	types  *Types
	logger *slog.Logger
}

// New creates an empty stack.
func New(opts ...Option) *Stack {
	s := &Stack{
		types:  NewTypes(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ── Layer lifecycle ──────────────────────────────────────────────────────────

// Create pushes a layer that starts as a copy of the current layer with deps
// overlaid on top.
//
//	s.Create(layers.Value(&Clock{}), layers.Named("tenant", "acme"))
func (s *Stack) Create(deps ...Dependency) {
	s.create(deps, false)
}

// CreateIsolated pushes a layer holding only deps.
func (s *Stack) CreateIsolated(deps ...Dependency) {
	s.create(deps, true)
}

func (s *Stack) create(deps []Dependency, isolated bool) {
	layer := newLayer(isolated)
	if cur := s.Current(); cur != nil && !isolated {
		layer.add(cur.snapshot())
	}
	layer.add(normalize(s.types, deps))
	s.layers = append(s.layers, layer)
	s.logger.Debug("layer created",
		"depth", len(s.layers),
		"isolated", isolated,
		"entries", layer.Len(),
	)
}

// Destroy pops the current layer. On an empty stack it does nothing.
func (s *Stack) Destroy() {
	if len(s.layers) == 0 {
		return
	}
	s.layers[len(s.layers)-1] = nil
	s.layers = s.layers[:len(s.layers)-1]
	s.logger.Debug("layer destroyed", "depth", len(s.layers))
}

// Scope runs fn inside a new inheriting layer and destroys that layer
// afterwards, also when fn panics.
func (s *Stack) Scope(fn func() error, deps ...Dependency) error {
	s.Create(deps...)
	defer s.Destroy()
	return fn()
}

// Actual returns the current layer, creating an empty one first when the
// stack is empty.
func (s *Stack) Actual() *Layer {
	if len(s.layers) == 0 {
		s.Create()
	}
	return s.layers[len(s.layers)-1]
}

// Current returns the current layer, or nil when the stack is empty.
func (s *Stack) Current() *Layer {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[len(s.layers)-1]
}

// Base returns the first-created layer, or nil when the stack is empty.
func (s *Stack) Base() *Layer {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[0]
}

// Depth returns the number of layers.
func (s *Stack) Depth() int { return len(s.layers) }

// Layers returns the layers oldest first. The slice is a copy; the layers
// are not.
func (s *Stack) Layers() []*Layer { return slices.Clone(s.layers) }

// Types returns the registry used to recognise type keys.
func (s *Stack) Types() *Types { return s.types }

// MergeWith overlays deps onto the current layer.
//
// Values added positionally replace existing entries of the same type; use
// Named for anything else that must replace a previous value.
func (s *Stack) MergeWith(deps ...Dependency) {
	s.Actual().add(normalize(s.types, deps))
}

// Fork returns an independent stack holding a copy of every layer, isolation
// flags included. The registry is copied too, so the fork can be used from
// another goroutine while the receiver stays untouched.
func (s *Stack) Fork() *Stack {
	fork := &Stack{types: s.types.fork(), logger: s.logger}
	fork.layers = make([]*Layer, 0, len(s.layers))
	for _, l := range s.layers {
		copied := newLayer(l.isolated)
		copied.add(l.snapshot())
		fork.layers = append(fork.layers, copied)
	}
	return fork
}

// Mask stores nil under each key in every layer that holds it, deferred
// slots included. Resolution skips nil, so masked keys stop resolving until
// a newer value is added.
func (s *Stack) Mask(keys ...string) {
	for _, l := range s.layers {
		for _, key := range keys {
			if l.Has(key) {
				l.entries.Set(key, Realized(nil))
			}
		}
	}
}

// ── Resolution ───────────────────────────────────────────────────────────────

// Resolve finds a value for key.
//
// When key is a registered type identifier the search is by type under mode;
// any other key is looked up by exact name and mode is ignored. Layers are
// searched newest first and the first non-nil match wins.
func (s *Stack) Resolve(key string, mode Mode) (any, error) {
	if t, ok := s.types.Lookup(key); ok {
		return s.ResolveByType(t, mode)
	}
	return s.resolveName(key, mode)
}

// ResolveOrNil is Resolve returning nil instead of an error.
func (s *Stack) ResolveOrNil(key string, mode Mode) any {
	v, err := s.Resolve(key, mode)
	if err != nil {
		return nil
	}
	return v
}

// ResolveByName looks key up by exact name only.
func (s *Stack) ResolveByName(name string) (any, error) {
	return s.resolveName(name, Same)
}

// ResolveByType searches every layer for a value whose type satisfies mode
// relative to t. Deferred entries met during the scan are materialized and
// cached in place.
func (s *Stack) ResolveByType(t reflect.Type, mode Mode) (any, error) {
	s.ensureLayer()
	id := s.types.Register(t)
	var cause error
	for i := len(s.layers) - 1; i >= 0; i-- {
		layer := s.layers[i]
		for _, key := range layer.Keys() {
			v, err := s.realize(layer, key)
			if err != nil {
				cause = err
			}
			if isNil(v) {
				continue
			}
			if s.accepts(mode, t, reflect.TypeOf(v)) {
				return v, nil
			}
		}
	}
	s.logger.Debug("type not resolved", "type", id, "mode", mode, "depth", len(s.layers))
	return nil, &NotResolvedError{Key: id, Mode: mode, Cause: cause}
}

func (s *Stack) resolveName(name string, mode Mode) (any, error) {
	s.ensureLayer()
	var cause error
	for i := len(s.layers) - 1; i >= 0; i-- {
		layer := s.layers[i]
		if !layer.Has(name) {
			continue
		}
		v, err := s.realize(layer, name)
		if err != nil {
			cause = err
		}
		if !isNil(v) {
			return v, nil
		}
	}
	s.logger.Debug("name not resolved", "key", name, "depth", len(s.layers))
	return nil, &NotResolvedError{Key: name, Mode: mode, Cause: cause}
}

func (s *Stack) accepts(mode Mode, searched, candidate reflect.Type) bool {
	switch mode {
	case Same:
		return TypeID(candidate) == TypeID(searched)
	case Parents:
		return s.types.IsSameOrExtends(searched, candidate)
	case Children:
		return s.types.IsSameOrExtends(candidate, searched)
	case Both:
		return s.types.IsSameOrExtends(candidate, searched) ||
			s.types.IsSameOrExtends(searched, candidate)
	}
	return false
}

func (s *Stack) realize(layer *Layer, key string) (any, error) {
	v, produced, err := layer.materialize(key)
	switch {
	case err != nil:
		s.logger.Warn("deferred value failed", "key", key, "error", err)
	case produced:
		s.logger.Debug("deferred value materialized", "key", key)
	}
	return v, err
}

// ensureLayer gives a never-used stack its default layer.
func (s *Stack) ensureLayer() {
	if len(s.layers) == 0 {
		s.Actual()
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
