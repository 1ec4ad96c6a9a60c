package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	p := Profile{
		DateFrom:      "2026-01-01",
		Type:          "INCOME",
		PaymentMethod: "3",
		Search:        "rent",
		ShowDeleted:   true,
	}
	require.NoError(t, s.Save(p))

	got := s.Load()
	require.Equal(t, p, got)
}

func TestStoreLoadMissingYieldsDefaults(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "never-created"))
	require.Equal(t, Default(), s.Load())
}

func TestStoreLoadCorruptYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "filters.toml"), []byte("not = [valid toml"), 0o644))

	s := NewStore(dir)
	require.Equal(t, Default(), s.Load())
}

func TestStoreClear(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Save(Profile{Search: "x"}))
	require.NoError(t, s.Clear())
	require.Equal(t, Default(), s.Load())

	// clearing twice is fine
	require.NoError(t, s.Clear())
}
