package filekv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "token", "T"))
	require.NoError(t, s.Set(ctx, "user", `{"id":1,"name":"A: colon"}`))

	other, err := New(path)
	require.NoError(t, err)
	v, ok, err := other.Get(ctx, "user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":1,"name":"A: colon"}`, v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, other.Delete(ctx, "token", "user", "missing"))
	_, ok, err = s.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_MissingFileIsEmpty(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	_, ok, err := s.Get(context.Background(), "token")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, s.Delete(context.Background(), "token"))
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- just\n- a list\n"), 0o600))

	s, err := New(path)
	require.NoError(t, err)
	_, _, err = s.Get(context.Background(), "token")
	require.Error(t, err)

	_, err = New("")
	require.Error(t, err)
}
