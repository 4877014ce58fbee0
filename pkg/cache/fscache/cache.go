// Package fscache is a content-addressed response cache on the local
// filesystem: one file per entry, named by the hex digest of the exact
// prompt bytes, containing the cleaned generated text with no envelope.
// Entries never expire and are never evicted; staleness only means
// re-prompting, and overwrites for the same digest are idempotent.
package fscache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/autodoc-ai/autodoc/pkg/models"
)

const entryExt = ".txt"

// Cache stores generated text keyed by a digest of the prompt that produced
// it. Single-writer-at-a-time assumed; no locking.
type Cache struct {
	dir    string
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a Cache rooted at dir, creating the directory if needed.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Key computes the cache digest for a prompt. The key is determined by the
// exact prompt bytes, whitespace included.
func Key(prompt string) string {
	sum := md5.Sum([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) pathFor(prompt string) string {
	return filepath.Join(c.dir, Key(prompt)+entryExt)
}

// Get returns the cached text for a prompt. Read failures are logged and
// reported as a miss; a cache problem never aborts generation.
func (c *Cache) Get(prompt string) (string, bool) {
	data, err := os.ReadFile(c.pathFor(prompt))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("cache read: %v", err)
		}
		c.misses.Add(1)
		return "", false
	}
	c.hits.Add(1)
	return string(data), true
}

// Put stores text under the prompt's digest, overwriting any existing entry.
func (c *Cache) Put(prompt, text string) error {
	if err := os.WriteFile(c.pathFor(prompt), []byte(text), 0o644); err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	return nil
}

// Stats returns cache performance metrics. Entries counts files on disk, so
// it survives across runs; hits and misses are per-process.
func (c *Cache) Stats() (models.CacheStats, error) {
	entries, err := c.list()
	if err != nil {
		return models.CacheStats{}, fmt.Errorf("cache stats: %w", err)
	}
	return models.CacheStats{
		Entries: int64(len(entries)),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}, nil
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	entries, err := c.list()
	if err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	for _, name := range entries {
		if err := os.Remove(filepath.Join(c.dir, name)); err != nil {
			return fmt.Errorf("cache clear: %w", err)
		}
	}
	return nil
}

func (c *Cache) list() ([]string, error) {
	dirents, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, d := range dirents {
		if !d.IsDir() && strings.HasSuffix(d.Name(), entryExt) {
			names = append(names, d.Name())
		}
	}
	return names, nil
}
