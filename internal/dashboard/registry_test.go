package dashboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWidget struct{ name string }

func TestRegistry_LookupKnown(t *testing.T) {
	r := NewRegistry[*fakeWidget]()
	r.Register("Portfolio", func() *fakeWidget { return &fakeWidget{name: "portfolio"} })

	w, err := r.New("Portfolio")
	require.NoError(t, err)
	assert.Equal(t, "portfolio", w.name)
	assert.True(t, r.Has("Portfolio"))
}

func TestRegistry_UnknownIsExplicit(t *testing.T) {
	r := NewRegistry[*fakeWidget]()
	w, err := r.New("Nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownWidget))
	assert.Contains(t, err.Error(), "Nope")
	assert.Nil(t, w)
	assert.False(t, r.Has("Nope"))
}

func TestRegistry_NilFactoryIsUnknown(t *testing.T) {
	r := NewRegistry[int]()
	r.Register("broken", nil)
	_, err := r.Lookup("broken")
	assert.ErrorIs(t, err, ErrUnknownWidget)
}

func TestRegistry_IDsInRegistrationOrder(t *testing.T) {
	r := NewRegistry[int]()
	r.Register("b", func() int { return 1 })
	r.Register("a", func() int { return 2 })
	r.Register("b", func() int { return 3 })

	assert.Equal(t, []string{"b", "a"}, r.IDs())
	v, err := r.New("b")
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}
