package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependency_ThreeEdges(t *testing.T) {
	u := newTestUniverse(t)

	curl, ok := u.FindByName("curl")
	require.True(t, ok)
	ver, ok := curl.FindVersion("7.88.1-10")
	require.True(t, ok)

	c := ver.Dependencies()
	type edge struct {
		target, comp, version, kind string
		virtual                     bool
	}
	want := []edge{
		{"libc6", ">=", "2.34", Depends, false},
		{"libcurl4", "=", "7.88.1-10", Depends, false},
		{"awk", "", "", Recommends, true},
	}

	for i, w := range want {
		require.False(t, c.AtEnd(), "edge %d", i)
		d, err := c.Current()
		require.NoError(t, err)

		target := d.TargetPackage()
		assert.Equal(t, w.target, target.Name())
		assert.Equal(t, w.comp, d.CompType())
		assert.Equal(t, w.version, d.TargetVersion())
		assert.Equal(t, w.kind, d.DepType())
		assert.Equal(t, w.virtual, target.IsVirtual())
		assert.Equal(t, ver.ID(), d.ParentVersion().ID())
		c.Advance()
	}
	assert.True(t, c.AtEnd())
	_, err := c.Current()
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDependency_TargetArchDefaultsToParent(t *testing.T) {
	b := NewBuilder(WithNativeArch("amd64"), WithForeignArchs("i386"))
	pkg := b.Package("wine32", "i386")
	ver, _ := b.AddVersion(pkg, VersionSpec{Version: "8.0~repack-4", Arch: "i386"})
	b.AddDependency(ver, DependencySpec{TargetName: "libc6", DepType: Depends})
	b.AddDependency(ver, DependencySpec{TargetName: "wine", TargetArch: "amd64", DepType: Depends})
	u := b.Build()

	v, _ := u.Version(ver)
	deps := v.Dependencies().Collect()
	require.Len(t, deps, 2)
	assert.Equal(t, "libc6:i386", deps[0].TargetPackage().FullName())
	assert.Equal(t, "wine:amd64", deps[1].TargetPackage().FullName())
}

func TestDependency_SatisfiedBy(t *testing.T) {
	b := NewBuilder()
	pkg := b.Package("a", "")
	ver, _ := b.AddVersion(pkg, VersionSpec{Version: "1.0"})
	for _, op := range []string{"", "<<", "<=", "=", ">=", ">>"} {
		b.AddDependency(ver, DependencySpec{TargetName: "b", TargetVersion: "2.0", CompType: op, DepType: Depends})
	}
	u := b.Build()
	v, _ := u.Version(ver)
	deps := v.Dependencies().Collect()

	tests := []struct {
		op   string
		ver  string
		want bool
	}{
		{"", "0.1", true},
		{"<<", "1.9", true},
		{"<<", "2.0", false},
		{"<=", "2.0", true},
		{"<=", "2.0-1", false},
		{"=", "2.0", true},
		{"=", "2.0.1", false},
		{">=", "2.0", true},
		{">=", "2.0~rc1", false},
		{">>", "1:0.1", true},
		{">>", "2.0", false},
	}

	byOp := map[string]Dependency{}
	for _, d := range deps {
		byOp[d.CompType()] = d
	}

	for _, tt := range tests {
		t.Run(tt.op+tt.ver, func(t *testing.T) {
			d, ok := byOp[tt.op]
			require.True(t, ok)
			assert.Equal(t, tt.want, d.SatisfiedBy(tt.ver))
		})
	}
}

func TestDependency_OrGroups(t *testing.T) {
	b := NewBuilder()
	pkg := b.Package("mutt", "")
	ver, _ := b.AddVersion(pkg, VersionSpec{Version: "2.2.12-0.1"})
	b.AddDependency(ver, DependencySpec{TargetName: "default-mta", DepType: Recommends, Or: true})
	b.AddDependency(ver, DependencySpec{TargetName: "mail-transport-agent", DepType: Recommends})
	b.AddDependency(ver, DependencySpec{TargetName: "mutt-doc", TargetVersion: "2.0", CompType: ">=", DepType: Conflicts})
	u := b.Build()

	v, _ := u.Version(ver)
	deps := v.Dependencies().Collect()
	require.Len(t, deps, 3)

	assert.True(t, deps[0].IsOr())
	assert.False(t, deps[1].IsOr())
	assert.Equal(t, "default-mta |", deps[0].String())
	assert.Equal(t, "mail-transport-agent", deps[1].String())
	assert.Equal(t, "mutt-doc (>= 2.0)", deps[2].String())

	assert.False(t, deps[0].IsNegative())
	assert.True(t, deps[2].IsNegative())
}

func TestPackage_ReverseDependencies(t *testing.T) {
	u := newTestUniverse(t)

	libc, ok := u.FindByNameAndArch("libc6", "amd64")
	require.True(t, ok)

	rdeps := libc.ReverseDependencies()
	require.Len(t, rdeps, 1)
	assert.Equal(t, "curl:amd64=7.88.1-10", rdeps[0].ParentVersion().String())

	libc386, ok := u.FindByNameAndArch("libc6", "i386")
	require.True(t, ok)
	assert.Empty(t, libc386.ReverseDependencies())
}
