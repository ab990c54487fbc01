package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"
)

// Cache stores HTTP responses on disk for a limited time.
type Cache struct {
	Dir string
	TTL time.Duration
}

// NewCache returns a cache rooted at dir. The directory is created on the first
// Set. A zero TTL disables caching.
func NewCache(dir string, ttl time.Duration) *Cache {
	return &Cache{Dir: dir, TTL: ttl}
}

func (c *Cache) keyToFilename(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:16]) + ".json"
}

// Path returns the full path to the cache file for a key
func (c *Cache) Path(key string) string {
	return filepath.Join(c.Dir, c.keyToFilename(key))
}

// Get retrieves data from cache if it exists and is not expired
func (c *Cache) Get(key string) ([]byte, bool) {
	if c == nil || c.TTL <= 0 {
		return nil, false
	}

	path := c.Path(key)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.TTL {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores data in the cache
func (c *Cache) Set(key string, data []byte) error {
	if c == nil || c.TTL <= 0 {
		return nil
	}
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(c.Path(key), data, 0644)
}

// Clear removes all cached files
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.Dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
