package core

import "iter"

// Cursor is a single-direction position over one relation of the universe
// graph: all packages, a package's versions, a version's dependencies, a
// version's files, or package files.
//
// A cursor starts on the first element, or exhausted when the relation is
// empty. Advance moves forward; once exhausted it stays exhausted, and
// further calls to Advance do nothing. There is no way back: ask the owner
// for a fresh cursor to start again.
//
// A cursor is not safe for concurrent use. Independent cursors over the same
// universe are.
type Cursor[T any] struct {
	u    *Universe
	kind string
	ids  []int32
	pos  int
	view func(*Universe, int32) T
}

// Kind-specific cursors.
type (
	PackageCursor     = Cursor[Package]
	VersionCursor     = Cursor[Version]
	DependencyCursor  = Cursor[Dependency]
	VersionFileCursor = Cursor[VersionFile]
	PackageFileCursor = Cursor[PackageFile]
)

func newCursor[T any](u *Universe, kind string, ids []int32, view func(*Universe, int32) T) *Cursor[T] {
	return &Cursor[T]{u: u, kind: kind, ids: ids, view: view}
}

// AtEnd reports whether the cursor is exhausted.
func (c *Cursor[T]) AtEnd() bool {
	return c == nil || c.pos >= len(c.ids)
}

// Advance moves to the next element. It is a no-op on an exhausted cursor.
func (c *Cursor[T]) Advance() {
	if c.AtEnd() {
		return
	}
	c.pos++
}

// Current returns the element under the cursor, or an *OutOfRangeError when
// the cursor is exhausted.
func (c *Cursor[T]) Current() (T, error) {
	if c.AtEnd() {
		var zero T
		kind := "nil"
		if c != nil {
			kind = c.kind
		}
		return zero, &OutOfRangeError{Kind: kind}
	}
	return c.view(c.u, c.ids[c.pos]), nil
}

// Next returns the current element and advances past it. It reports false
// once the cursor is exhausted:
//
//	for v, ok := c.Next(); ok; v, ok = c.Next() {
//		...
//	}
func (c *Cursor[T]) Next() (T, bool) {
	v, err := c.Current()
	if err != nil {
		return v, false
	}
	c.pos++
	return v, true
}

// Seq yields the remaining elements, consuming the cursor.
func (c *Cursor[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v, ok := c.Next(); ok; v, ok = c.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Collect returns the remaining elements, consuming the cursor.
func (c *Cursor[T]) Collect() []T {
	if c.AtEnd() {
		return nil
	}
	out := make([]T, 0, len(c.ids)-c.pos)
	for v := range c.Seq() {
		out = append(out, v)
	}
	return out
}

// Len returns the total number of elements in the relation, independent of
// the cursor's position.
func (c *Cursor[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ids)
}
