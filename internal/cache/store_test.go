package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStore_SaveGet(t *testing.T) {
	tmp := t.TempDir()
	c := &Store{Dir: tmp}
	key := KeyFrom("rules", "heavy", "some text")
	data := []byte(`{"value":"x"}`)
	if err := c.Save(context.Background(), key, data); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := c.Get(context.Background(), key)
	if err != nil || !ok {
		t.Fatalf("get: %v ok=%v", err, ok)
	}
	if string(got) != string(data) {
		t.Fatalf("mismatch: %s", got)
	}
}

func TestStore_Miss(t *testing.T) {
	c := &Store{Dir: t.TempDir()}
	if _, ok, err := c.Get(context.Background(), KeyFrom("absent")); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
}

func TestStore_NotConfigured(t *testing.T) {
	var c *Store
	if _, _, err := c.Get(context.Background(), "k"); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestStore_JSONRoundTrip(t *testing.T) {
	c := &Store{Dir: t.TempDir()}
	type payload struct {
		Text string `json:"text"`
	}
	key := KeyFrom("translate", "es", "hello")
	if err := c.SaveJSON(context.Background(), key, payload{Text: "hola"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	var got payload
	ok, err := c.GetJSON(context.Background(), key, &got)
	if err != nil || !ok || got.Text != "hola" {
		t.Fatalf("GetJSON = %+v ok=%v err=%v", got, ok, err)
	}
}

func TestKeyFrom_SeparatesParts(t *testing.T) {
	if KeyFrom("ab", "c") == KeyFrom("a", "bc") {
		t.Fatal("expected different keys for different part boundaries")
	}
	if KeyFrom("a", "b") != KeyFrom("a", "b") {
		t.Fatal("expected stable keys")
	}
}

func TestStore_StrictPerms(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "results")
	c := &Store{Dir: dir, StrictPerms: true}
	key := KeyFrom("k")
	if err := c.Save(context.Background(), key, []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat dir: %v", err)
	}
	if got := info.Mode() & 0o777; got != 0o700 {
		t.Fatalf("dir mode = %o, want 0700", got)
	}
	finfo, err := os.Stat(filepath.Join(dir, key+".json"))
	if err != nil {
		t.Fatalf("stat file: %v", err)
	}
	if got := finfo.Mode() & 0o777; got != 0o600 {
		t.Fatalf("file mode = %o, want 0600", got)
	}
}

func TestPurgeByAge(t *testing.T) {
	tmp := t.TempDir()
	c := &Store{Dir: tmp}
	oldKey, newKey := KeyFrom("old"), KeyFrom("new")
	for _, k := range []string{oldKey, newKey} {
		if err := c.Save(context.Background(), k, []byte(`{}`)); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(filepath.Join(tmp, oldKey+".json"), past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	removed, err := PurgeByAge(tmp, 24*time.Hour)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(filepath.Join(tmp, newKey+".json")); err != nil {
		t.Fatalf("expected fresh entry to survive: %v", err)
	}
}

func TestEnforceMaxEntries_EvictsLeastRecentlyUsed(t *testing.T) {
	tmp := t.TempDir()
	c := &Store{Dir: tmp}
	keys := []string{KeyFrom("p1"), KeyFrom("p2"), KeyFrom("p3")}
	base := time.Now().Add(-time.Hour)
	for i, k := range keys {
		if err := c.Save(context.Background(), k, []byte(`{}`)); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		ts := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(filepath.Join(tmp, k+".json"), ts, ts); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}
	// Touch p1 so p2 becomes the oldest.
	if _, ok, _ := c.Get(context.Background(), keys[0]); !ok {
		t.Fatal("expected hit")
	}
	removed, err := EnforceMaxEntries(tmp, 2)
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(filepath.Join(tmp, keys[1]+".json")); !os.IsNotExist(err) {
		t.Fatalf("expected p2 evicted, stat err = %v", err)
	}
}

func TestClearDir(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, "x.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ClearDir(tmp); err != nil {
		t.Fatalf("clear: %v", err)
	}
	entries, err := os.ReadDir(tmp)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty dir, got %v (%v)", entries, err)
	}
	if err := ClearDir("  "); err == nil {
		t.Fatal("expected error for blank dir")
	}
}

func TestPurgeByAge_MissingDir(t *testing.T) {
	if n, err := PurgeByAge(filepath.Join(t.TempDir(), "nope"), time.Hour); n != 0 || err != nil {
		t.Fatalf("expected no-op on missing dir, got %d %v", n, err)
	}
}
