package definitions_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-layers/framework/definitions"
	"github.com/km-arc/go-layers/framework/layers"
)

func TestLoad_File(t *testing.T) {
	f, err := definitions.Load(filepath.Join("testdata", "layers.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"defaults", "staging", "tenant"}, f.Names())
	require.Len(t, f.Layers[0].Values, 3)
	assert.Equal(t, "greeting", f.Layers[0].Values[0].Key)
	assert.Equal(t, "retries", f.Layers[0].Values[1].Key)
	assert.Equal(t, 3, f.Layers[0].Values[1].Value)
	assert.Equal(t, []any{"a", "b"}, f.Layers[0].Values[2].Value)
	assert.True(t, f.Layers[2].Isolated)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := definitions.Load(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestApply_BuildsStack(t *testing.T) {
	f, err := definitions.Load(filepath.Join("testdata", "layers.yaml"))
	require.NoError(t, err)

	s := layers.New()
	f.Apply(s)

	require.Equal(t, 3, s.Depth())
	assert.Equal(t, []string{"greeting", "retries", "tags", "debug"}, s.Layers()[1].Keys())
	assert.Equal(t, map[string]any{"greeting": "hola"}, s.Actual().Values())

	// the isolated top layer shadows only what it defines
	assert.Equal(t, "hola", s.ResolveOrNil("greeting", layers.Same))
	assert.Equal(t, true, s.ResolveOrNil("debug", layers.Same))
	assert.Equal(t, 3, s.ResolveOrNil("retries", layers.Same))

	s.Destroy()
	assert.Equal(t, "hi", s.ResolveOrNil("greeting", layers.Same))
}

func TestParse_KeepsDocumentOrder(t *testing.T) {
	f, err := definitions.Parse([]byte(`
layers:
  - values:
      zeta: 1
      alpha: 2
      mu: 3
`))
	require.NoError(t, err)

	keys := make([]string, 0, 3)
	for _, v := range f.Layers[0].Values {
		keys = append(keys, v.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mu"}, keys)
	assert.Equal(t, "layer-0", f.Layers[0].Name)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"values not a mapping", "layers:\n  - values: [1, 2]\n"},
		{"duplicate key", "layers:\n  - values:\n      a: 1\n      a: 2\n"},
		{"malformed yaml", "layers: [\n"},
		{"layers not a list", "layers: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := definitions.Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, definitions.ErrInvalid)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	f, err := definitions.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, f.Layers)

	s := layers.New()
	f.Apply(s)
	assert.Equal(t, 0, s.Depth())
}
