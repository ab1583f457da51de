package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "fuelbook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "veiculos_salvos")
	require.NoError(t, err)
	assert.False(t, ok, "fresh store has no blobs")

	require.NoError(t, s.Set(ctx, "veiculos_salvos", []byte(`[{"nome":"Gol"}]`)))
	got, ok, err := s.Get(ctx, "veiculos_salvos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"nome":"Gol"}]`, string(got))

	require.NoError(t, s.Set(ctx, "veiculos_salvos", []byte(`[]`)))
	got, _, err = s.Get(ctx, "veiculos_salvos")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got), "set replaces the whole blob")

	require.NoError(t, s.Set(ctx, "empty", nil))
	got, ok, err = s.Get(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestSQLiteStore(t *testing.T) {
	exerciseStore(t, openTemp(t))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fuelbook.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "abastecimentos_salvos", []byte(`[1]`)))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err, "migrations are idempotent")
	defer func() { _ = s.Close() }()

	got, ok, err := s.Get(ctx, "abastecimentos_salvos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[1]", string(got))

	_, ok, err = s.UpdatedAt(ctx, "abastecimentos_salvos")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	buf := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", buf))
	buf[0] = 'x'

	got, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(got))
	got[0] = 'y'

	again, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
	assert.ElementsMatch(t, []string{"k"}, m.Keys())
}
