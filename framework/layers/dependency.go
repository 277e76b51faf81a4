package layers

import (
	"reflect"
	"strconv"

	"github.com/km-arc/go-layers/framework/params"
)

// Dependency is one input entry for Create, CreateIsolated and MergeWith.
type Dependency struct {
	key        string
	positional bool
	slot       Slot
	typ        reflect.Type
}

// Value adds v without an explicit key. Structs and pointers to structs are
// keyed by their type identifier; any other value is keyed by its index
// among the positional values of the call ("0", "1", ...).
//
//	s.Create(layers.Value(&Mailer{}), layers.Value(&Clock{}))
func Value(v any) Dependency {
	d := Dependency{positional: true, slot: Realized(v)}
	if isObject(v) {
		d.typ = reflect.TypeOf(v)
	}
	return d
}

// Named adds v under an explicit key, which is kept verbatim.
func Named(key string, v any) Dependency {
	d := Dependency{key: key, slot: Realized(v)}
	if isObject(v) {
		d.typ = reflect.TypeOf(v)
	}
	return d
}

// Lazy adds a producer under key. The producer runs on first resolution and
// its result replaces the slot.
func Lazy(key string, fn Producer) Dependency {
	return Dependency{key: key, slot: Deferred(fn)}
}

// LazyErr is Lazy for a producer that can fail. Until it succeeds the key
// does not resolve in that layer, and each resolution runs it again.
func LazyErr(key string, fn FallibleProducer) Dependency {
	return Dependency{key: key, slot: DeferredErr(fn)}
}

// LazyOf adds a producer keyed by T's type identifier.
//
//	s.Create(layers.LazyOf(func() *sql.DB { return mustOpen(dsn) }))
func LazyOf[T any](fn func() T) Dependency {
	t := reflect.TypeFor[T]()
	return Dependency{
		key:  TypeID(t),
		slot: Deferred(func() any { return fn() }),
		typ:  t,
	}
}

// Key returns the key the dependency will be stored under, given its
// position among the positional dependencies of the same call. Named and
// lazy dependencies do not count.
func (d Dependency) Key(position int) string {
	if !d.positional {
		return d.key
	}
	if d.typ != nil {
		return TypeID(d.typ)
	}
	return strconv.Itoa(position)
}

// normalize resolves every dependency to its effective key, preserving
// argument order, and registers the types it sees.
func normalize(types *Types, deps []Dependency) *params.Bag {
	out := params.New()
	position := 0
	for _, d := range deps {
		if d.typ != nil {
			types.Register(d.typ)
		}
		out.Set(d.Key(position), d.slot)
		if d.positional {
			position++
		}
	}
	return out
}
