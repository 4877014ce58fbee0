package fscache

import (
	"os"
	"path/filepath"
	"testing"
)

func newCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestPutGet(t *testing.T) {
	c := newCache(t)

	if _, ok := c.Get("prompt"); ok {
		t.Fatal("expected miss on empty cache")
	}
	if err := c.Put("prompt", "generated text"); err != nil {
		t.Fatal(err)
	}
	got, ok := c.Get("prompt")
	if !ok {
		t.Fatal("expected hit after put")
	}
	if got != "generated text" {
		t.Errorf("got %q, want %q", got, "generated text")
	}
}

func TestKeyWhitespaceSensitive(t *testing.T) {
	if Key("prompt") == Key("prompt ") {
		t.Error("prompts differing in trailing whitespace must produce different keys")
	}
	if Key("prompt") != Key("prompt") {
		t.Error("byte-identical prompts must produce the same key")
	}
}

func TestWhitespaceVariantsAreSeparateEntries(t *testing.T) {
	c := newCache(t)
	if err := c.Put("prompt", "a"); err != nil {
		t.Fatal(err)
	}
	if err := c.Put("prompt ", "b"); err != nil {
		t.Fatal(err)
	}
	got, _ := c.Get("prompt")
	if got != "a" {
		t.Errorf("got %q, want %q", got, "a")
	}
	got, _ = c.Get("prompt ")
	if got != "b" {
		t.Errorf("got %q, want %q", got, "b")
	}
}

func TestPutOverwrite(t *testing.T) {
	c := newCache(t)
	if err := c.Put("prompt", "first"); err != nil {
		t.Fatal(err)
	}
	if err := c.Put("prompt", "second"); err != nil {
		t.Fatal(err)
	}
	got, _ := c.Get("prompt")
	if got != "second" {
		t.Errorf("got %q, want %q", got, "second")
	}
}

func TestEntryLayout(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Put("prompt", "text"); err != nil {
		t.Fatal(err)
	}

	// One file per entry: hex digest name, .txt extension, raw text body.
	path := filepath.Join(dir, Key("prompt")+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected entry file at %s: %v", path, err)
	}
	if string(data) != "text" {
		t.Errorf("entry body = %q, want %q", data, "text")
	}
	if len(Key("prompt")) != 32 {
		t.Errorf("expected 128-bit hex digest, got %q", Key("prompt"))
	}
}

func TestStatsAndClear(t *testing.T) {
	c := newCache(t)
	_ = c.Put("a", "1")
	_ = c.Put("b", "2")
	c.Get("a")
	c.Get("missing")

	stats, err := c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 2 {
		t.Errorf("expected 2 entries, got %d", stats.Entries)
	}
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d/%d", stats.Hits, stats.Misses)
	}

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	stats, err = c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 0 {
		t.Errorf("expected 0 entries after clear, got %d", stats.Entries)
	}
}

func TestGetUnreadableEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	// A directory where the entry file should be forces a read error.
	if err := os.Mkdir(filepath.Join(dir, Key("prompt")+".txt"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("prompt"); ok {
		t.Error("expected read failure to be treated as a miss")
	}
}
