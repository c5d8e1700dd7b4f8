package packages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/git-pkgs/aptcache/internal/core"
	"github.com/git-pkgs/aptcache/internal/index"
)

const data = `Package: hello
Version: 2.10-3
Architecture: amd64
Maintainer: Santiago Vila <sanvila@debian.org>
Depends: libc6 (>= 2.34)
Filename: pool/main/h/hello/hello_2.10-3_amd64.deb
Description: example package based on GNU hello

Package: hello
Version: 2.10-2
Architecture: amd64
Description: example package based on GNU hello

Package: nameless
`

func TestParse(t *testing.T) {
	f, err := index.New(core.IndexTypePackages)
	require.NoError(t, err)
	assert.Equal(t, core.IndexTypePackages, f.IndexType())

	b := core.NewBuilder()
	file := b.AddPackageFile(core.PackageFileInfo{FileName: "Packages", IndexType: f.IndexType()}, []byte(data))
	res, err := f.Parse(context.Background(), b, file, []byte(data))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Versions)
	require.Len(t, res.Skipped, 1)
	assert.ErrorIs(t, res.Skipped[0], index.ErrMissingField)

	u := b.Build()
	hello, ok := u.FindByName("hello")
	require.True(t, ok)
	assert.Equal(t, 2, hello.VersionCount())
	_, installed := hello.CurrentVersion()
	assert.False(t, installed)

	v, ok := hello.FindVersion("2.10-3")
	require.True(t, ok)
	vf, err := v.Files().Current()
	require.NoError(t, err)
	assert.Equal(t, "Santiago Vila <sanvila@debian.org>", vf.Parser().Maintainer())
	assert.Equal(t, "pool/main/h/hello/hello_2.10-3_amd64.deb", vf.Parser().Filename())
}
