package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_VersionsVisitedOnce(t *testing.T) {
	b := NewBuilder()
	pkg := b.Package("foo", "")
	for _, v := range []string{"1.0", "2.0", "1.5"} {
		b.AddVersion(pkg, VersionSpec{Version: v})
	}
	u := b.Build()

	p, ok := u.FindByName("foo")
	require.True(t, ok)

	c := p.Versions()
	var got []string
	for !c.AtEnd() {
		v, err := c.Current()
		require.NoError(t, err)
		got = append(got, v.VerStr())
		c.Advance()
	}
	assert.Equal(t, []string{"1.0", "2.0", "1.5"}, got, "stored order")

	// Exhausted cursors stay exhausted.
	for range 3 {
		c.Advance()
		assert.True(t, c.AtEnd())
	}

	_, err := c.Current()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	var oor *OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, "version", oor.Kind)
}

func TestCursor_Empty(t *testing.T) {
	u := newTestUniverse(t)

	bar, ok := u.FindByName("bar")
	require.True(t, ok)
	assert.True(t, bar.IsVirtual())

	c := bar.Versions()
	assert.True(t, c.AtEnd(), "cursor over zero versions starts exhausted")
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Collect())

	_, err := c.Current()
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, ok = c.Next()
	assert.False(t, ok)
}

func TestCursor_Nil(t *testing.T) {
	var c *VersionCursor
	assert.True(t, c.AtEnd())
	c.Advance()
	assert.Equal(t, 0, c.Len())

	_, err := c.Current()
	var oor *OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, "nil", oor.Kind)
}

func TestCursor_ZeroViews(t *testing.T) {
	// Views obtained from exhausted cursors are zero values; their
	// relations are empty rather than panicking.
	var p Package
	assert.False(t, p.Valid())
	assert.True(t, p.Versions().AtEnd())
	assert.Equal(t, "", p.FullName())
	_, ok := p.CurrentVersion()
	assert.False(t, ok)
	assert.Nil(t, p.ReverseDependencies())

	var v Version
	assert.True(t, v.Dependencies().AtEnd())
	assert.True(t, v.Files().AtEnd())
	assert.False(t, v.Package().Valid())
	assert.False(t, v.IsInstalled())

	var d Dependency
	assert.False(t, d.TargetPackage().Valid())
	assert.False(t, d.ParentVersion().Valid())

	var vf VersionFile
	assert.True(t, vf.PackageFile().AtEnd())
	assert.Equal(t, "", vf.Parser().ShortDescription())

	var f PackageFile
	assert.Equal(t, "", f.Archive())
	assert.False(t, f.IsStatus())
}

func TestCursor_CollectAfterAdvance(t *testing.T) {
	u := newTestUniverse(t)

	curl, ok := u.FindByName("curl")
	require.True(t, ok)
	ver, ok := curl.CurrentVersion()
	require.True(t, ok)

	c := ver.Dependencies()
	c.Advance()
	rest := c.Collect()
	require.Len(t, rest, 2)
	assert.Equal(t, "libcurl4", rest[0].TargetPackage().Name())
	assert.Equal(t, 3, c.Len(), "Len ignores position")
}

func TestCursor_SeqStopsEarly(t *testing.T) {
	u := newTestUniverse(t)

	c := u.AllPackages()
	for range c.Seq() {
		break
	}
	assert.False(t, c.AtEnd())
	// The element handed to the loop body was consumed.
	p, err := c.Current()
	require.NoError(t, err)
	assert.Equal(t, "libc6", p.Name())
}

func TestCursor_IndependentCursors(t *testing.T) {
	u := newTestUniverse(t)

	a := u.AllPackages()
	b := u.AllPackages()
	a.Advance()
	a.Advance()

	pa, err := a.Current()
	require.NoError(t, err)
	pb, err := b.Current()
	require.NoError(t, err)
	assert.NotEqual(t, pa.ID(), pb.ID())
}
