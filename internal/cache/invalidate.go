package cache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ClearDir removes the directory and all contents, then recreates it empty.
func ClearDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New("empty dir")
	}
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// PurgeByAge removes entries whose modification time is older than maxAge.
// A non-positive maxAge disables purging.
func PurgeByAge(dir string, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	removed := 0
	err := walkEntries(dir, func(path string, info fs.FileInfo) {
		if now.Sub(info.ModTime().UTC()) <= maxAge {
			return
		}
		if os.Remove(path) == nil {
			removed++
		}
	})
	return removed, err
}

// EnforceMaxEntries keeps at most maxEntries files, evicting the least
// recently used (oldest mtime) first. Zero disables the limit.
func EnforceMaxEntries(dir string, maxEntries int) (int, error) {
	if maxEntries <= 0 {
		return 0, nil
	}
	type item struct {
		path string
		mod  time.Time
	}
	var items []item
	err := walkEntries(dir, func(path string, info fs.FileInfo) {
		items = append(items, item{path: path, mod: info.ModTime()})
	})
	if err != nil {
		return 0, err
	}
	if len(items) <= maxEntries {
		return 0, nil
	}
	sort.Slice(items, func(i, j int) bool { return items[i].mod.Before(items[j].mod) })
	removed := 0
	for _, it := range items[:len(items)-maxEntries] {
		if os.Remove(it.path) == nil {
			removed++
		}
	}
	return removed, nil
}

func walkEntries(dir string, fn func(path string, info fs.FileInfo)) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		fn(path, info)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
