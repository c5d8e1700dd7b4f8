package index

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/git-pkgs/aptcache/internal/core"
)

// Format is the interface implemented by all index file formats.
type Format interface {
	// IndexType returns the index type this format reads (e.g.
	// core.IndexTypePackages).
	IndexType() string

	// Parse adds every stanza of data to b as coming from file. Stanzas that
	// cannot be used are reported in the result and do not stop parsing.
	Parse(ctx context.Context, b *core.Builder, file core.FileID, data []byte) (Result, error)
}

// Result summarises one Parse call.
type Result struct {
	Versions int // version-files added
	Skipped  []*ParseError
}

// Factory creates a format instance.
type Factory func() Format

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a format factory to the global registry.
// indexType is the index type string (e.g. "Debian Package Index").
func Register(indexType string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[indexType] = factory
}

// New creates a format for the given index type.
func New(indexType string) (Format, error) {
	mu.RLock()
	factory, ok := factories[indexType]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIndexType, indexType)
	}
	return factory(), nil
}

// SupportedIndexTypes returns all registered index types, sorted.
func SupportedIndexTypes() []string {
	mu.RLock()
	defer mu.RUnlock()

	types := make([]string, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}
