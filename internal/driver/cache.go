package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"moonlint/internal/diag"
	"moonlint/internal/source"
)

// увеличивать при любом изменении формата cachePayload или Diagnostic
const diskCacheSchemaVersion uint16 = 1

// Digest keys a cache entry.
type Digest [sha256.Size]byte

// CacheKey combines the file content hash with the configuration
// fingerprint and the tool version, so any of them invalidates the entry.
func CacheKey(content [sha256.Size]byte, fingerprint, version string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(fingerprint))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(version))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// DiskCache stores the diagnostics of unchanged files as msgpack. Safe for
// concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema      uint16
	Diagnostics []diag.Diagnostic
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put writes diagnostics atomically. File ids are not stable across runs;
// Get rebinds them.
func (c *DiskCache) Put(key Digest, diags []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // already renamed on success

	if err := msgpack.NewEncoder(f).Encode(&cachePayload{Schema: diskCacheSchemaVersion, Diagnostics: diags}); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Get loads diagnostics for key and binds their spans to file. A payload
// from another schema is a miss.
func (c *DiskCache) Get(key Digest, file source.FileID) ([]diag.Diagnostic, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	for i := range payload.Diagnostics {
		rebind(&payload.Diagnostics[i], file)
	}
	return payload.Diagnostics, true, nil
}

func rebind(d *diag.Diagnostic, file source.FileID) {
	d.Primary.Span.File = file
	for i := range d.Secondary {
		d.Secondary[i].Span.File = file
	}
	for i := range d.Fixes {
		for j := range d.Fixes[i].Edits {
			d.Fixes[i].Edits[j].Span.File = file
		}
	}
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
