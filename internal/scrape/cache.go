package scrape

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// fileCache stores extracted pages as JSON files keyed by URL hash. Entries
// older than the TTL are treated as absent and overwritten on next fetch.
type fileCache struct {
	dir string
	ttl time.Duration

	mu sync.Mutex
}

func newFileCache(dir string, ttl time.Duration) (*fileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &fileCache{dir: dir, ttl: ttl}, nil
}

func (c *fileCache) path(pageURL string) string {
	sum := md5.Sum([]byte(pageURL))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}

func (c *fileCache) get(pageURL string) (*Page, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path(pageURL))
	if err != nil {
		return nil, false
	}

	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, false
	}
	if time.Since(page.FetchedAt) > c.ttl {
		return nil, false
	}
	return &page, true
}

func (c *fileCache) put(pageURL string, page *Page) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("marshal cached page: %w", err)
	}
	if err := os.WriteFile(c.path(pageURL), data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}
