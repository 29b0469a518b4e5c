package layoutstore

import (
	"errors"
	"testing"

	"cryptodash/internal/layout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadEmptyReturnsDefaults(t *testing.T) {
	s := New(NewMemoryKV())
	order, sizes := s.Load()
	assert.Equal(t, layout.DefaultOrder, order)
	assert.Equal(t, layout.DefaultSizes, sizes)
}

func TestStore_LoadMalformedReturnsDefaults(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(OrderKey, `["ChartWidget",`))
	require.NoError(t, kv.Set(SizesKey, `{"ChartWidget": "big"}`))

	order, sizes := New(kv).Load()
	assert.Equal(t, layout.DefaultOrder, order)
	assert.Equal(t, layout.DefaultSizes, sizes)
}

func TestStore_LoadWrongShapeReturnsDefaults(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(OrderKey, `{"not":"a list"}`))
	require.NoError(t, kv.Set(SizesKey, `["not","a","map"]`))

	order, sizes := New(kv).Load()
	assert.Equal(t, layout.DefaultOrder, order)
	assert.Equal(t, layout.DefaultSizes, sizes)
}

func TestStore_LoadNullReturnsDefaults(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(OrderKey, `null`))
	require.NoError(t, kv.Set(SizesKey, `null`))

	order, sizes := New(kv).Load()
	assert.Equal(t, layout.DefaultOrder, order)
	assert.Equal(t, layout.DefaultSizes, sizes)
}

func TestStore_BlobsFailSoftIndependently(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(OrderKey, `["Portfolio"]`))
	require.NoError(t, kv.Set(SizesKey, `garbage`))

	order, sizes := New(kv).Load()
	assert.Equal(t, []string{"Portfolio"}, order)
	assert.Equal(t, layout.DefaultSizes, sizes)
}

func TestStore_LoadDefaultsAreCopies(t *testing.T) {
	s := New(NewMemoryKV())
	order, sizes := s.Load()
	order[0] = "mutated"
	sizes[layout.ChartWidget] = layout.Size{Width: 1, Height: 1}
	assert.Equal(t, layout.ChartWidget, layout.DefaultOrder[0])
	assert.Equal(t, layout.Size{Width: 8, Height: 6}, layout.DefaultSizes[layout.ChartWidget])
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := New(NewMemoryKV())
	order := []string{"Portfolio", "ChartWidget"}
	sizes := layout.Sizes{"Portfolio": {Width: 6, Height: 4}}
	require.NoError(t, s.Save(order, sizes))

	gotOrder, gotSizes := s.Load()
	assert.Equal(t, order, gotOrder)
	assert.Equal(t, sizes, gotSizes)
}

func TestStore_SaveWritesJSONUnderBothKeys(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, New(kv).Save([]string{"A"}, layout.Sizes{"A": {Width: 2, Height: 1}}))

	raw, ok, err := kv.Get(OrderKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["A"]`, raw)

	raw, ok, err = kv.Get(SizesKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"A":{"width":2,"height":1}}`, raw)
}

func TestStore_SaveEmptyOrderPersistsEmpty(t *testing.T) {
	s := New(NewMemoryKV())
	require.NoError(t, s.Save(nil, nil))
	order, sizes := s.Load()
	assert.Empty(t, order)
	assert.NotNil(t, order)
	assert.Empty(t, sizes)
}

func TestStore_LoadDropsDuplicatesAndInvalidSizes(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(OrderKey, `["A","B","A","","C","B"]`))
	require.NoError(t, kv.Set(SizesKey, `{"A":{"width":2,"height":2},"B":{"width":0,"height":3},"C":{"width":1,"height":-1}}`))

	order, sizes := New(kv).Load()
	assert.Equal(t, []string{"A", "B", "C"}, order)
	assert.Equal(t, layout.Sizes{"A": {Width: 2, Height: 2}}, sizes)
}

func TestStore_Clear(t *testing.T) {
	s := New(NewMemoryKV())
	require.NoError(t, s.Save([]string{"Portfolio"}, layout.Sizes{}))
	require.NoError(t, s.Clear())

	order, sizes := s.Load()
	assert.Equal(t, layout.DefaultOrder, order)
	assert.Equal(t, layout.DefaultSizes, sizes)
}

type failingKV struct {
	getErr error
	setErr error
	sets   []string
}

func (f *failingKV) Get(string) (string, bool, error) { return "", false, f.getErr }
func (f *failingKV) Set(key, _ string) error {
	f.sets = append(f.sets, key)
	return f.setErr
}
func (f *failingKV) Delete(string) error { return nil }

func TestStore_LoadBackendErrorReturnsDefaults(t *testing.T) {
	s := New(&failingKV{getErr: errors.New("disk on fire")})
	order, sizes := s.Load()
	assert.Equal(t, layout.DefaultOrder, order)
	assert.Equal(t, layout.DefaultSizes, sizes)
}

func TestStore_SaveAttemptsBothWrites(t *testing.T) {
	kv := &failingKV{setErr: errors.New("read-only")}
	err := New(kv).Save([]string{"A"}, layout.Sizes{})
	require.Error(t, err)
	assert.Equal(t, []string{OrderKey, SizesKey}, kv.sets)
}

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{"", BackendFile, BackendSQLite, BackendMemory} {
		t.Run("backend="+backend, func(t *testing.T) {
			s, err := Open(backend, dir)
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })

			require.NoError(t, s.Save([]string{"Portfolio"}, layout.Sizes{"Portfolio": {Width: 3, Height: 2}}))
			order, sizes := s.Load()
			assert.Equal(t, []string{"Portfolio"}, order)
			assert.Equal(t, layout.Size{Width: 3, Height: 2}, sizes["Portfolio"])
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("redis", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}
