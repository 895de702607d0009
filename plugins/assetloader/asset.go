package assetloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Asset names a resource and how to load it.
type Asset struct {
	Name string
	Load func(ctx context.Context) ([]byte, error)
}

// FileAsset returns an Asset that reads path from disk. The asset is named
// after the file's base name.
func FileAsset(path string) Asset {
	return NamedFileAsset(filepath.Base(path), path)
}

// NamedFileAsset returns an Asset that reads path from disk under name.
func NamedFileAsset(name, path string) Asset {
	return Asset{
		Name: name,
		Load: func(ctx context.Context) ([]byte, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			return data, nil
		},
	}
}

// StaticAsset returns an Asset that yields data as is.
func StaticAsset(name string, data []byte) Asset {
	return Asset{
		Name: name,
		Load: func(context.Context) ([]byte, error) {
			return data, nil
		},
	}
}

// Bundle holds the loaded assets of the current run. It is safe for
// concurrent use.
type Bundle struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func newBundle() *Bundle {
	return &Bundle{data: make(map[string][]byte)}
}

// Get returns the content of the named asset.
func (b *Bundle) Get(name string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.data[name]
	return data, ok
}

// Names returns the loaded asset names, sorted.
func (b *Bundle) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.data))
	for name := range b.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of loaded assets.
func (b *Bundle) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

func (b *Bundle) put(name string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[name] = data
}

func (b *Bundle) clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.data)
}
