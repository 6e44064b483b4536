package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLite(t *testing.T) *SQLiteRepository {
	t.Helper()
	r, err := InitSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSQLite_SetAndGet(t *testing.T) {
	r := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k1", []byte{0x01, 0x02}))

	v, err := r.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, v)
}

func TestSQLite_Get_MissingReturnsNilNil(t *testing.T) {
	r := setupSQLite(t)

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLite_Set_Upserts(t *testing.T) {
	r := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestSQLite_SetMany_WritesAllKeys(t *testing.T) {
	r := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte("stale")))
	require.NoError(t, r.SetMany(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}))

	a, err := r.Get(ctx, "a")
	require.NoError(t, err)
	b, err := r.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), a)
	assert.Equal(t, []byte("2"), b)
}

func TestSQLite_Delete_IsIdempotent(t *testing.T) {
	r := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{1}))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestSQLite_ErrorsAreWrapped(t *testing.T) {
	r := setupSQLite(t)
	ctx := context.Background()
	require.NoError(t, r.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get cache[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set cache[k]")

	err = r.SetMany(ctx, map[string][]byte{"k": []byte("v")})
	require.ErrorContains(t, err, "failed to set cache entries")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete cache[k]")
}
