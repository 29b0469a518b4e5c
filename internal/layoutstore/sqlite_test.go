package layoutstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := OpenSQLiteKV(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := kv.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	return kv
}

func TestSQLiteKV_GetMissing(t *testing.T) {
	kv := openTestSQLite(t)
	_, ok, err := kv.Get(OrderKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteKV_Upsert(t *testing.T) {
	kv := openTestSQLite(t)
	require.NoError(t, kv.Set(OrderKey, `["A"]`))
	require.NoError(t, kv.Set(OrderKey, `["B"]`))

	v, ok, err := kv.Get(OrderKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["B"]`, v)
}

func TestSQLiteKV_Delete(t *testing.T) {
	kv := openTestSQLite(t)
	require.NoError(t, kv.Set(SizesKey, `{}`))
	require.NoError(t, kv.Delete(SizesKey))
	_, ok, err := kv.Get(SizesKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteKV_NullValueIsMissing(t *testing.T) {
	kv := openTestSQLite(t)
	_, err := kv.db.Exec("INSERT INTO settings (key, value) VALUES (?, NULL)", OrderKey)
	require.NoError(t, err)
	_, ok, err := kv.Get(OrderKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteKV_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	kv, err := OpenSQLiteKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(OrderKey, `["Portfolio"]`))
	require.NoError(t, kv.Close())

	kv, err = OpenSQLiteKV(path)
	require.NoError(t, err)
	defer kv.Close()
	v, ok, err := kv.Get(OrderKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["Portfolio"]`, v)
}
