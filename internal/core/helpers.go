package core

import (
	"context"
	"sync"
)

const defaultConcurrency = 15

// BulkPackages applies fn to every package of u in parallel and collects the
// results fn reports as present. Packages whose fn returns false are omitted.
// Cancelling ctx stops scheduling further packages; results gathered so far
// are returned.
func BulkPackages[R any](ctx context.Context, u *Universe, fn func(Package) (R, bool)) map[PackageID]R {
	return BulkPackagesWithConcurrency(ctx, u, defaultConcurrency, fn)
}

// BulkPackagesWithConcurrency is BulkPackages with a custom concurrency limit.
func BulkPackagesWithConcurrency[R any](ctx context.Context, u *Universe, concurrency int, fn func(Package) (R, bool)) map[PackageID]R {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make(map[PackageID]R)
	var mu sync.Mutex
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, id := range u.order {
		if ctx.Err() != nil {
			break
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return results
		}
		wg.Add(1)
		go func(p Package) {
			defer wg.Done()
			defer func() { <-sem }()

			if r, ok := fn(p); ok {
				mu.Lock()
				results[p.ID()] = r
				mu.Unlock()
			}
		}(Package{u: u, id: id})
	}

	wg.Wait()
	return results
}

// FindAll resolves several names at once with FindByName. Names that are not
// known are omitted.
func (u *Universe) FindAll(names ...string) map[string]Package {
	found := make(map[string]Package, len(names))
	for _, name := range names {
		if p, ok := u.FindByName(name); ok {
			found[name] = p
		}
	}
	return found
}
