package layers

import "github.com/km-arc/go-layers/framework/params"

// ── Slot ─────────────────────────────────────────────────────────────────────

// Producer builds a deferred value. It runs at most once per layer entry.
type Producer func() any

// FallibleProducer builds a deferred value or reports why it could not. A
// failed run leaves the slot deferred, so the next resolution tries again.
type FallibleProducer func() (any, error)

// Slot is the value held by a layer entry: either a realized value or a
// deferred producer that has not run yet.
type Slot struct {
	value    any
	producer FallibleProducer
}

// Realized wraps an already-built value.
func Realized(v any) Slot { return Slot{value: v} }

// Deferred wraps a producer that is invoked on first resolution.
func Deferred(fn Producer) Slot {
	return Slot{producer: func() (any, error) { return fn(), nil }}
}

// DeferredErr is Deferred for a producer that can fail.
func DeferredErr(fn FallibleProducer) Slot { return Slot{producer: fn} }

// IsDeferred reports whether the slot still holds an unevaluated producer.
func (s Slot) IsDeferred() bool { return s.producer != nil }

// Value returns the realized value, or nil for a deferred slot.
func (s Slot) Value() any {
	if s.producer != nil {
		return nil
	}
	return s.value
}

// ── Layer ────────────────────────────────────────────────────────────────────

// Layer is one level of a Stack: an ordered set of slots plus the isolation
// flag it was created with.
type Layer struct {
	entries  *params.Bag
	isolated bool
}

func newLayer(isolated bool) *Layer {
	return &Layer{entries: params.New(), isolated: isolated}
}

// add overlays slots on top of the layer, overwriting by key.
func (l *Layer) add(slots *params.Bag) {
	l.entries.Add(slots)
}

// Isolated reports whether the layer was created without inheriting the
// entries of the layer below it.
func (l *Layer) Isolated() bool { return l.isolated }

// Has reports whether key is present.
func (l *Layer) Has(key string) bool { return l.entries.Has(key) }

// Get returns the slot stored under key without materializing it.
func (l *Layer) Get(key string) (Slot, bool) {
	v, ok := l.entries.Lookup(key)
	if !ok {
		return Slot{}, false
	}
	return v.(Slot), true
}

// All returns a snapshot of every entry. Changing the map does not affect
// the layer.
func (l *Layer) All() map[string]Slot {
	out := make(map[string]Slot, l.entries.Len())
	l.entries.Each(func(k string, v any) bool {
		out[k] = v.(Slot)
		return true
	})
	return out
}

// Values is All with deferred slots reported as nil.
func (l *Layer) Values() map[string]any {
	out := make(map[string]any, l.entries.Len())
	l.entries.Each(func(k string, v any) bool {
		out[k] = v.(Slot).Value()
		return true
	})
	return out
}

// Keys returns the entry keys in insertion order.
func (l *Layer) Keys() []string { return l.entries.Keys() }

// Len returns the number of entries.
func (l *Layer) Len() int { return l.entries.Len() }

// materialize returns the realized value for key, running and caching the
// producer if the slot is still deferred. The second result reports whether
// the producer ran during this call. A producer error is returned as is and
// nothing is cached.
func (l *Layer) materialize(key string) (any, bool, error) {
	slot, ok := l.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !slot.IsDeferred() {
		return slot.value, false, nil
	}
	v, err := slot.producer()
	if err != nil {
		return nil, true, err
	}
	l.entries.Set(key, Realized(v))
	return v, true, nil
}

// snapshot copies the entries for inheritance and forking. Slots are values,
// so a deferred slot copied here is materialized independently of the source.
func (l *Layer) snapshot() *params.Bag {
	return l.entries.Clone()
}
