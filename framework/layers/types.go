package layers

import (
	"reflect"
	"slices"
)

// TypeKey returns the package-qualified type name of v, pointers stripped.
//
//	layers.TypeKey(&billing.Gateway{})      // "example.com/billing.Gateway"
//	layers.TypeKey((*billing.Client)(nil))  // "example.com/billing.Client"
func TypeKey(v any) string {
	if t, ok := v.(reflect.Type); ok {
		return TypeID(t)
	}
	return TypeID(reflect.TypeOf(v))
}

// TypeID is TypeKey for a reflect.Type. Unnamed types fall back to their
// string form ("[]string", "map[string]int").
func TypeID(t reflect.Type) string {
	if t == nil {
		return ""
	}
	t = deref(t)
	if t.Name() == "" {
		return t.String()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// isObject reports whether v is a struct or a pointer to one; only such
// values get a type-derived key when added positionally.
func isObject(v any) bool {
	if v == nil {
		return false
	}
	return deref(reflect.TypeOf(v)).Kind() == reflect.Struct
}

// ── Types ────────────────────────────────────────────────────────────────────

// Types is the registry that makes a string key recognisable as a type and
// answers ancestor questions about it.
//
// Go has no class inheritance, so ancestry is derived from two sources:
// struct embedding (a Child that embeds Parent extends Parent) and explicit
// Declare calls. Interfaces are ancestors of every type that implements them.
type Types struct {
	byID    map[string]reflect.Type
	parents map[string][]string
}

// NewTypes creates an empty registry.
func NewTypes() *Types {
	return &Types{
		byID:    make(map[string]reflect.Type),
		parents: make(map[string][]string),
	}
}

// Register records t and every struct it embeds, transitively. Registering
// the same type twice is a no-op. It returns t's identifier.
func (r *Types) Register(t reflect.Type) string {
	t = deref(t)
	id := TypeID(t)
	if _, seen := r.byID[id]; seen {
		return id
	}
	r.byID[id] = t
	if t.Kind() != reflect.Struct {
		return id
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := deref(f.Type)
		if ft.Kind() != reflect.Struct && ft.Kind() != reflect.Interface {
			continue
		}
		r.addParent(id, r.Register(ft))
	}
	return id
}

// Declare records that child extends parent even when no embedding relates
// them. Both types are registered.
func (r *Types) Declare(child, parent reflect.Type) {
	r.addParent(r.Register(child), r.Register(parent))
}

func (r *Types) addParent(child, parent string) {
	if child == parent || slices.Contains(r.parents[child], parent) {
		return
	}
	r.parents[child] = append(r.parents[child], parent)
}

// Known reports whether id names a registered type.
func (r *Types) Known(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Lookup returns the registered type for id.
func (r *Types) Lookup(id string) (reflect.Type, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// IDs returns every registered identifier, sorted.
func (r *Types) IDs() []string {
	out := make([]string, 0, len(r.byID))
	for id := range r.byID {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// IsSameOrExtends reports whether a is the same type as b or a transitive
// subtype of it. A struct a is registered as a side effect so its embedded
// ancestors are known.
func (r *Types) IsSameOrExtends(a, b reflect.Type) bool {
	a, b = deref(a), deref(b)
	idA, idB := TypeID(a), TypeID(b)
	if idA == idB {
		return true
	}
	if b.Kind() == reflect.Interface && a.Kind() != reflect.Interface {
		if a.Implements(b) || reflect.PointerTo(a).Implements(b) {
			return true
		}
	}
	if a.Kind() == reflect.Struct {
		r.Register(a)
	}
	return r.extends(idA, idB, map[string]bool{})
}

func (r *Types) extends(child, ancestor string, visited map[string]bool) bool {
	if visited[child] {
		return false
	}
	visited[child] = true
	for _, p := range r.parents[child] {
		if p == ancestor || r.extends(p, ancestor, visited) {
			return true
		}
	}
	return false
}

// fork returns a copy that can be extended without touching r.
func (r *Types) fork() *Types {
	out := NewTypes()
	for id, t := range r.byID {
		out.byID[id] = t
	}
	for id, ps := range r.parents {
		out.parents[id] = slices.Clone(ps)
	}
	return out
}
