package filter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const profileFile = "filters.toml"

// Store persists the filter profile across sessions. Loading is fail-soft: a
// missing or corrupt file yields the default profile, never an error the
// caller has to handle.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir (created on first Save).
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir is the per-user profile location.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "ledgerdesk"), nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, profileFile)
}

// Load returns the persisted profile, or the defaults when nothing usable is
// on disk.
func (s *Store) Load() Profile {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(s.path())
	if err := v.ReadInConfig(); err != nil {
		return Default()
	}
	var p Profile
	if err := v.Unmarshal(&p); err != nil {
		return Default()
	}
	return p
}

// Save overwrites the whole persisted profile. Idempotent.
func (s *Store) Save(p Profile) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir profile dir: %w", err)
	}
	v := viper.New()
	v.SetConfigType("toml")
	for _, field := range Fields {
		v.Set(field, p.Get(field))
	}
	v.Set("show_deleted", p.ShowDeleted)
	if err := v.WriteConfigAs(s.path()); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// Clear removes the persisted profile; the next Load yields defaults.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove profile: %w", err)
	}
	return nil
}
