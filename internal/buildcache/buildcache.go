// Package buildcache tracks which source files compiled cleanly the
// last time this assembly was built, keyed by a content hash rather
// than a modification time.
//
// Grounded on _examples/sentra-language-sentra/internal/buildutil's
// build.go: that package frames a Chunk/BytecodeFile pair around a
// magic-numbered binary header and polls file mtimes in its Watch loop
// to decide what changed. Netuno has no bytecode or IR serialization
// format to cache the actual compiled output in (an LLVM-style backend
// is an explicit non-goal), so this package narrows buildutil's idea
// down to what it can honestly do without one: remember, across runs,
// whether a given file's bytes have been seen compiling clean before,
// and let a driver skip re-announcing diagnostics for a file nothing
// touched since its last clean build.
package buildcache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const indexFile = "netuno-buildcache.json"

// Entry records the last known outcome of compiling one source file.
type Entry struct {
	Hash   string `json:"hash"`
	Module string `json:"module"`
	Clean  bool   `json:"clean"`
	Size   int64  `json:"size"`
}

// Cache is a JSON-persisted index of Entry, one per source file, keyed
// by its content hash. Safe for concurrent use; internal/driver itself
// looks files up and records them from its serial resolve/lower phase.
type Cache struct {
	dir     string
	mu      sync.Mutex
	entries map[string]Entry
	dirty   bool
}

// Hash returns the hex-encoded BLAKE2b-256 digest of src, the key
// every Cache method takes.
func Hash(src []byte) string {
	sum := blake2b.Sum256(src)
	return hex.EncodeToString(sum[:])
}

// Open loads dir's persisted index, creating dir and starting with an
// empty index if neither exists yet. dir is typically a project-local
// ".netuno-cache" directory.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "buildcache: creating cache directory %s", dir)
	}

	c := &Cache{dir: dir, entries: map[string]Entry{}}
	raw, err := os.ReadFile(filepath.Join(dir, indexFile))
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "buildcache: reading index at %s", dir)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrapf(err, "buildcache: parsing index at %s", dir)
	}
	for _, e := range entries {
		c.entries[e.Hash] = e
	}
	return c, nil
}

// Lookup reports whether hash has a recorded entry.
func (c *Cache) Lookup(hash string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[hash]
	return e, ok
}

// Record stores or updates hash's entry. clean is whatever the caller's
// compile of that content just observed (true iff it produced no
// diagnostics).
func (c *Cache) Record(hash, module string, clean bool, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	existing, ok := c.entries[hash]
	if ok && existing.Clean == clean && existing.Module == module && existing.Size == size {
		return
	}
	c.entries[hash] = Entry{Hash: hash, Module: module, Clean: clean, Size: size}
	c.dirty = true
}

// Save persists the index if Record changed anything since the last
// Save (or since Open). Safe to call even when nothing changed.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}

	entries := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "buildcache: encoding index")
	}

	tmp := filepath.Join(c.dir, indexFile+".tmp")
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return errors.Wrapf(err, "buildcache: writing %s", tmp)
	}
	if err := os.Rename(tmp, filepath.Join(c.dir, indexFile)); err != nil {
		return errors.Wrapf(err, "buildcache: replacing index at %s", c.dir)
	}
	c.dirty = false
	return nil
}

// Summary renders a human-readable line reporting the cache's size on
// disk, the way a build tool tells a user how much work it saved.
func (c *Cache) Summary() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int64
	clean := 0
	for _, e := range c.entries {
		total += e.Size
		if e.Clean {
			clean++
		}
	}
	return fmt.Sprintf("%d cached file(s), %d clean, %s tracked", len(c.entries), clean, humanize.Bytes(uint64(total)))
}
