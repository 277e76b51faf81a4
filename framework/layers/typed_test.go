package layers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-layers/framework/layers"
)

func TestGet_ExactType(t *testing.T) {
	s := layers.New()
	child := newChild("c")
	s.Create(layers.Value(child))

	got, err := layers.Get[*Child](s, layers.Same)
	require.NoError(t, err)
	assert.Same(t, child, got)
}

func TestGet_UpcastsThroughEmbedding(t *testing.T) {
	s := layers.New()
	child := newChild("c")
	s.Create(layers.Value(child))

	parent, err := layers.Get[*Parent](s, layers.Children)
	require.NoError(t, err)
	assert.Same(t, &child.Parent, parent)

	grandparent, err := layers.Get[*Grandparent](s, layers.Both)
	require.NoError(t, err)
	assert.Same(t, &child.Parent.Grandparent, grandparent)

	byValue, err := layers.Get[Grandparent](s, layers.Children)
	require.NoError(t, err)
	assert.Equal(t, "c", byValue.Label)
}

func TestGet_Interface(t *testing.T) {
	s := layers.New()
	s.Create(layers.Value(newChild("c")))

	sp, err := layers.Get[Speaker](s, layers.Children)
	require.NoError(t, err)
	assert.Equal(t, "child:c", sp.Speak())
}

func TestGet_DowncastIsMismatch(t *testing.T) {
	s := layers.New()
	s.Create(layers.Value(newParent("p")))

	_, err := layers.Get[*Child](s, layers.Parents)
	assert.ErrorIs(t, err, layers.ErrTypeMismatch)
	assert.NotErrorIs(t, err, layers.ErrNotResolved)
}

func TestGet_NotResolved(t *testing.T) {
	s := layers.New()

	_, err := layers.Get[*Child](s, layers.Same)
	assert.ErrorIs(t, err, layers.ErrNotResolved)
}

func TestFind(t *testing.T) {
	s := layers.New()

	_, ok := layers.Find[*Child](s, layers.Same)
	assert.False(t, ok)

	s.Create(layers.Value(newChild("c")))
	got, ok := layers.Find[*Child](s, layers.Same)
	assert.True(t, ok)
	assert.Equal(t, "c", got.Label)
}

func TestMustGet_Panics(t *testing.T) {
	s := layers.New()
	assert.Panics(t, func() { layers.MustGet[*Child](s, layers.Same) })

	s.Create(layers.Value(newChild("c")))
	assert.NotPanics(t, func() { layers.MustGet[*Child](s, layers.Same) })
}

func TestGetNamed(t *testing.T) {
	s := layers.New()
	s.Create(layers.Named("port", 8080))

	port, err := layers.GetNamed[int](s, "port")
	require.NoError(t, err)
	assert.Equal(t, 8080, port)

	_, err = layers.GetNamed[string](s, "port")
	assert.ErrorIs(t, err, layers.ErrTypeMismatch)

	_, err = layers.GetNamed[int](s, "missing")
	assert.ErrorIs(t, err, layers.ErrNotResolved)
}
