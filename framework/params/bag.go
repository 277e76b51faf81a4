package params

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Bag is an insertion-ordered key/value container.
//
// Overwriting an existing key keeps its original position, so iteration order
// reflects when a key was first seen. The zero value is ready to use.
type Bag struct {
	keys   []string
	values map[string]any
}

// New creates a Bag from alternating key/value pairs. A trailing key without
// a value is ignored.
//
//	b := params.New("name", "alice", "age", 30)
func New(pairs ...any) *Bag {
	b := &Bag{}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			key = strconv.Itoa(i / 2)
		}
		b.Set(key, pairs[i+1])
	}
	return b
}

// From creates a Bag from a map. Go maps are unordered, so keys are inserted
// in sorted order to keep iteration deterministic.
func From(m map[string]any) *Bag {
	b := &Bag{}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		b.Set(k, m[k])
	}
	return b
}

// ── Core operations ──────────────────────────────────────────────────────────

// Get returns the value stored under key, or defaultVal when absent.
func (b *Bag) Get(key string, defaultVal any) any {
	if v, ok := b.values[key]; ok {
		return v
	}
	return defaultVal
}

// Lookup is the two-value form of Get.
func (b *Bag) Lookup(key string) (any, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Set stores value under key.
func (b *Bag) Set(key string, value any) *Bag {
	if b.values == nil {
		b.values = make(map[string]any)
	}
	if _, exists := b.values[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
	return b
}

// Has reports whether key is present, even if its value is nil.
func (b *Bag) Has(key string) bool {
	_, ok := b.values[key]
	return ok
}

// Remove deletes key. Removing an absent key is a no-op.
func (b *Bag) Remove(key string) *Bag {
	if _, ok := b.values[key]; !ok {
		return b
	}
	delete(b.values, key)
	if i := slices.Index(b.keys, key); i >= 0 {
		b.keys = slices.Delete(b.keys, i, i+1)
	}
	return b
}

// All returns a copy of every pair. Mutating the result does not affect b.
func (b *Bag) All() map[string]any {
	out := make(map[string]any, len(b.keys))
	for _, k := range b.keys {
		out[k] = b.values[k]
	}
	return out
}

// Keys returns the keys in insertion order.
func (b *Bag) Keys() []string {
	return slices.Clone(b.keys)
}

// Len returns the number of pairs.
func (b *Bag) Len() int { return len(b.keys) }

// Add overlays other on top of b: existing keys are overwritten in place and
// new keys are appended in other's order.
func (b *Bag) Add(other *Bag) *Bag {
	if other == nil {
		return b
	}
	for _, k := range other.keys {
		b.Set(k, other.values[k])
	}
	return b
}

// Replace discards the current content and copies other in.
func (b *Bag) Replace(other *Bag) *Bag {
	b.keys = nil
	b.values = nil
	return b.Add(other)
}

// Clone returns a new Bag with the same pairs in the same order.
func (b *Bag) Clone() *Bag {
	return (&Bag{}).Add(b)
}

// Filter keeps only the pairs for which keep returns true.
func (b *Bag) Filter(keep func(key string, value any) bool) *Bag {
	kept := &Bag{}
	for _, k := range b.keys {
		if keep(k, b.values[k]) {
			kept.Set(k, b.values[k])
		}
	}
	return b.Replace(kept)
}

// Each calls fn for every pair in insertion order until fn returns false.
func (b *Bag) Each(fn func(key string, value any) bool) {
	for _, k := range b.keys {
		if !fn(k, b.values[k]) {
			return
		}
	}
}

// HasNotEmpty reports whether every key is present and holds a non-zero value.
func (b *Bag) HasNotEmpty(keys ...string) bool {
	for _, k := range keys {
		v, ok := b.values[k]
		if !ok || v == nil || reflect.ValueOf(v).IsZero() {
			return false
		}
	}
	return true
}

// ── Typed accessors ──────────────────────────────────────────────────────────

// Text returns the value formatted as a string, or defaultVal when absent.
func (b *Bag) Text(key, defaultVal string) string {
	v, ok := b.values[key]
	if !ok || v == nil {
		return defaultVal
	}
	return toString(v)
}

// Int returns the value converted to int. Unparseable values yield defaultVal.
func (b *Bag) Int(key string, defaultVal int) int {
	v, ok := b.values[key]
	if !ok || v == nil {
		return defaultVal
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case int32:
		return int(n)
	case float64:
		return int(n)
	case bool:
		if n {
			return 1
		}
		return 0
	}
	i, err := strconv.Atoi(strings.TrimSpace(toString(v)))
	if err != nil {
		return defaultVal
	}
	return i
}

// Bool returns the value converted to bool. "1", "true", "on" and "yes" are
// true; "0", "false", "off", "no" and "" are false. Anything else yields
// defaultVal.
func (b *Bag) Bool(key string, defaultVal bool) bool {
	v, ok := b.values[key]
	if !ok || v == nil {
		return defaultVal
	}
	if bv, isBool := v.(bool); isBool {
		return bv
	}
	switch strings.ToLower(strings.TrimSpace(toString(v))) {
	case "1", "true", "on", "yes":
		return true
	case "0", "false", "off", "no", "":
		return false
	}
	return defaultVal
}

// Alpha returns only the letters of the value.
func (b *Bag) Alpha(key, defaultVal string) string {
	return keepRunes(b.Text(key, defaultVal), unicode.IsLetter)
}

// Alnum returns only the letters and digits of the value.
func (b *Bag) Alnum(key, defaultVal string) string {
	return keepRunes(b.Text(key, defaultVal), func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})
}

// Digits returns only the digits of the value.
func (b *Bag) Digits(key, defaultVal string) string {
	return keepRunes(b.Text(key, defaultVal), unicode.IsDigit)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case interface{ String() string }:
		return s.String()
	}
	return ""
}

func keepRunes(s string, keep func(rune) bool) string {
	var sb strings.Builder
	for _, r := range s {
		if keep(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
