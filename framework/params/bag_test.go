package params_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-layers/framework/params"
)

// ── Core operations ──────────────────────────────────────────────────────────

func TestBag_SetGetHas(t *testing.T) {
	b := params.New()
	b.Set("a", 1).Set("nil", nil)

	assert.Equal(t, 1, b.Get("a", 0))
	assert.Equal(t, "fallback", b.Get("missing", "fallback"))
	assert.True(t, b.Has("a"))
	assert.True(t, b.Has("nil"), "a nil value is still present")
	assert.False(t, b.Has("missing"))
}

func TestBag_ZeroValueIsUsable(t *testing.T) {
	var b params.Bag
	assert.False(t, b.Has("x"))
	assert.Equal(t, 0, b.Len())

	b.Set("x", "y")
	assert.Equal(t, "y", b.Get("x", nil))
}

func TestBag_OverwriteKeepsPosition(t *testing.T) {
	b := params.New("a", 1, "b", 2, "c", 3)
	b.Set("a", 10)

	assert.Equal(t, []string{"a", "b", "c"}, b.Keys())
	assert.Equal(t, 10, b.Get("a", nil))
}

func TestBag_Remove(t *testing.T) {
	b := params.New("a", 1, "b", 2, "c", 3)
	b.Remove("b").Remove("missing")

	assert.Equal(t, []string{"a", "c"}, b.Keys())
	assert.Equal(t, 2, b.Len())
}

func TestBag_AllIsDetached(t *testing.T) {
	b := params.New("a", 1)
	all := b.All()
	all["a"] = 99
	all["b"] = 2

	assert.Equal(t, 1, b.Get("a", nil))
	assert.False(t, b.Has("b"))
}

func TestBag_KeysIsDetached(t *testing.T) {
	b := params.New("a", 1, "b", 2)
	keys := b.Keys()
	keys[0] = "zzz"

	assert.Equal(t, []string{"a", "b"}, b.Keys())
}

func TestBag_AddOverlays(t *testing.T) {
	base := params.New("a", 1, "b", 2)
	base.Add(params.New("b", 20, "c", 30))

	assert.Equal(t, []string{"a", "b", "c"}, base.Keys())
	assert.Equal(t, map[string]any{"a": 1, "b": 20, "c": 30}, base.All())
}

func TestBag_Replace(t *testing.T) {
	b := params.New("a", 1)
	b.Replace(params.New("z", 26))

	assert.Equal(t, []string{"z"}, b.Keys())
}

func TestBag_CloneIsIndependent(t *testing.T) {
	b := params.New("a", 1)
	c := b.Clone()
	c.Set("a", 2).Set("b", 3)

	assert.Equal(t, 1, b.Get("a", nil))
	assert.False(t, b.Has("b"))
}

func TestBag_Filter(t *testing.T) {
	b := params.New("a", 1, "b", 2, "c", 3)
	b.Filter(func(_ string, v any) bool { return v.(int)%2 == 1 })

	assert.Equal(t, []string{"a", "c"}, b.Keys())
}

func TestBag_EachStopsEarly(t *testing.T) {
	b := params.New("a", 1, "b", 2, "c", 3)
	var seen []string
	b.Each(func(k string, _ any) bool {
		seen = append(seen, k)
		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestFrom_SortsKeys(t *testing.T) {
	b := params.From(map[string]any{"c": 3, "a": 1, "b": 2})
	assert.Equal(t, []string{"a", "b", "c"}, b.Keys())
}

func TestNew_NonStringKeyUsesPosition(t *testing.T) {
	b := params.New(7, "seven", "x", "y", "dangling")
	assert.Equal(t, []string{"0", "x"}, b.Keys())
}

func TestBag_HasNotEmpty(t *testing.T) {
	b := params.New("name", "alice", "empty", "", "zero", 0, "nil", nil)

	assert.True(t, b.HasNotEmpty("name"))
	assert.False(t, b.HasNotEmpty("name", "empty"))
	assert.False(t, b.HasNotEmpty("zero"))
	assert.False(t, b.HasNotEmpty("nil"))
	assert.False(t, b.HasNotEmpty("missing"))
}

// ── Typed accessors ──────────────────────────────────────────────────────────

func TestBag_Int(t *testing.T) {
	b := params.New("int", 5, "str", " 42 ", "bad", "x1", "float", 3.9, "yes", true)

	tests := []struct {
		key  string
		want int
	}{
		{"int", 5},
		{"str", 42},
		{"bad", -1},
		{"float", 3},
		{"yes", 1},
		{"missing", -1},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Int(tt.key, -1))
		})
	}
}

func TestBag_Bool(t *testing.T) {
	tests := []struct {
		in   any
		def  bool
		want bool
	}{
		{"1", false, true},
		{"on", false, true},
		{"YES", false, true},
		{"true", false, true},
		{"0", true, false},
		{"off", true, false},
		{"", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
		{false, true, false},
		{1, false, true},
	}
	for _, tt := range tests {
		b := params.New("k", tt.in)
		assert.Equal(t, tt.want, b.Bool("k", tt.def), "Bool(%v, default %v)", tt.in, tt.def)
	}
}

func TestBag_FilteredStrings(t *testing.T) {
	b := params.New("v", "ab-12_Cd 3!")

	assert.Equal(t, "abCd", b.Alpha("v", ""))
	assert.Equal(t, "ab12Cd3", b.Alnum("v", ""))
	assert.Equal(t, "123", b.Digits("v", ""))
	assert.Equal(t, "def", b.Alpha("missing", "def"))
}

func TestBag_Text(t *testing.T) {
	b := params.New("n", 12, "s", "x", "b", []byte("raw"))

	require.Equal(t, "12", b.Text("n", ""))
	require.Equal(t, "x", b.Text("s", ""))
	require.Equal(t, "raw", b.Text("b", ""))
	require.Equal(t, "d", b.Text("missing", "d"))
}
