package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store keeps results on disk as <key>.json files. It backs the simplifier
// and translator so that repeated requests for the same text are answered
// locally.
type Store struct {
	Dir string
	// StrictPerms, when true, enforces 0700 on the cache directory and 0600
	// on entry files.
	StrictPerms bool
}

// Entry is the on-disk envelope around a cached value.
type Entry struct {
	SavedAt time.Time       `json:"saved_at"`
	Value   json.RawMessage `json:"value"`
}

// ErrNotConfigured is returned when the store has no directory.
var ErrNotConfigured = errors.New("cache dir not configured")

func (c *Store) ensureDir() error {
	if c == nil || c.Dir == "" {
		return ErrNotConfigured
	}
	perm := os.FileMode(0o755)
	if c.StrictPerms {
		perm = 0o700
	}
	if err := os.MkdirAll(c.Dir, perm); err != nil {
		return err
	}
	if c.StrictPerms {
		if info, err := os.Stat(c.Dir); err == nil && info.Mode()&0o777 != 0o700 {
			_ = os.Chmod(c.Dir, 0o700)
		}
	}
	return nil
}

// KeyFrom digests the parts into a stable key. Parts are separated so that
// ("ab", "c") and ("a", "bc") differ.
func KeyFrom(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\n\n")))
	return hex.EncodeToString(h[:])
}

func (c *Store) pathFor(key string) string {
	return filepath.Join(c.Dir, key+".json")
}

// Get returns the raw cached bytes for key. A missing entry is not an error.
func (c *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	if err := c.ensureDir(); err != nil {
		return nil, false, err
	}
	p := c.pathFor(key)
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false, nil
	}
	// Touch mtime so EnforceMaxEntries evicts least recently used first.
	now := time.Now()
	_ = os.Chtimes(p, now, now)
	return b, true, nil
}

// Save writes raw bytes for key.
func (c *Store) Save(_ context.Context, key string, data []byte) error {
	if err := c.ensureDir(); err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if c.StrictPerms {
		mode = 0o600
	}
	return os.WriteFile(c.pathFor(key), data, mode)
}

// GetJSON decodes a value stored with SaveJSON into v.
func (c *Store) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return false, nil
	}
	if err := json.Unmarshal(e.Value, v); err != nil {
		return false, nil
	}
	return true, nil
}

// SaveJSON stores v wrapped in an Entry stamped with the current time.
func (c *Store) SaveJSON(ctx context.Context, key string, v any) error {
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data, err := json.Marshal(Entry{SavedAt: time.Now().UTC(), Value: val})
	if err != nil {
		return err
	}
	return c.Save(ctx, key, data)
}
