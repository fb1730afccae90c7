package adocbib

import (
	"os"
	"sync"
	"time"

	"github.com/alnah/go-adocbib/internal/bib"
)

// bibCache holds parsed bibliography files. An entry is reused while the
// file's size and modification time are unchanged.
type bibCache struct {
	mu      sync.Mutex
	entries map[string]cachedBib
}

type cachedBib struct {
	modTime time.Time
	size    int64
	store   *bib.Store
}

func newBibCache() *bibCache {
	return &bibCache{entries: make(map[string]cachedBib)}
}

// load returns the store for path, parsing the file when it changed.
func (c *bibCache) load(path string) (*bib.Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return bib.Load(path) // reports ErrNotFound
	}

	c.mu.Lock()
	cached, ok := c.entries[path]
	c.mu.Unlock()
	if ok && cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		return cached.store, nil
	}

	store, err := bib.Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[path] = cachedBib{modTime: info.ModTime(), size: info.Size(), store: store}
	c.mu.Unlock()
	return store, nil
}

// len returns the number of cached files.
func (c *bibCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
