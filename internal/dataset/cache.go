package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/Veraticus/superstore-dash/internal/common"
	"golang.org/x/sync/singleflight"
)

// sourceKey identifies one version of a source file.
type sourceKey struct {
	path    string
	modTime int64
	size    int64
}

func (k sourceKey) String() string {
	return fmt.Sprintf("%s@%d:%d", k.path, k.modTime, k.size)
}

// Cache memoizes record sets per source identity for the life of the process.
// Each identity is loaded at most once, even under concurrent first access.
// Entries are never refreshed; a modified file is a different identity.
type Cache struct {
	loader  *Loader
	entries map[sourceKey]*RecordSet
	group   singleflight.Group
	mu      sync.RWMutex
}

// NewCache creates a cache backed by loader.
func NewCache(loader *Loader) *Cache {
	return &Cache{
		loader:  loader,
		entries: make(map[sourceKey]*RecordSet),
	}
}

// Load returns the record set for path, parsing it on first access.
func (c *Cache) Load(ctx context.Context, path string) (*RecordSet, error) {
	key, err := identify(path)
	if err != nil {
		return nil, err
	}

	if rs, ok := c.get(key); ok {
		slog.Debug("Record set cache hit", "source", key.path)
		return rs, nil
	}

	v, err, shared := c.group.Do(key.String(), func() (any, error) {
		if rs, ok := c.get(key); ok {
			return rs, nil
		}
		rs, loadErr := c.loader.Load(ctx, key.path)
		if loadErr != nil {
			return nil, loadErr
		}
		c.mu.Lock()
		c.entries[key] = rs
		c.mu.Unlock()
		return rs, nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Record set cache miss", "source", key.path, "shared", shared)
	return v.(*RecordSet), nil
}

func (c *Cache) get(key sourceKey) (*RecordSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rs, ok := c.entries[key]
	return rs, ok
}

// Len returns the number of cached record sets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every cached record set.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[sourceKey]*RecordSet)
}

func identify(path string) (sourceKey, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return sourceKey{}, fmt.Errorf("%w: %s: %w", common.ErrSourceUnreadable, path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return sourceKey{}, fmt.Errorf("%w: %s: %w", common.ErrSourceUnreadable, path, err)
	}
	if info.IsDir() {
		return sourceKey{}, fmt.Errorf("%w: %s: is a directory", common.ErrSourceUnreadable, path)
	}
	return sourceKey{
		path:    abs,
		modTime: info.ModTime().UnixNano(),
		size:    info.Size(),
	}, nil
}
