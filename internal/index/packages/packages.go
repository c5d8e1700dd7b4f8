// Package packages reads Debian Packages indexes, as found under
// /var/lib/apt/lists.
package packages

import (
	"context"

	"github.com/git-pkgs/aptcache/internal/core"
	"github.com/git-pkgs/aptcache/internal/index"
)

const indexType = core.IndexTypePackages

func init() {
	index.Register(indexType, func() index.Format {
		return New()
	})
}

type Format struct{}

func New() *Format {
	return &Format{}
}

func (f *Format) IndexType() string {
	return indexType
}

// Parse adds one version-file per stanza. Every stanza is an available
// version; nothing in a Packages index is installed.
func (f *Format) Parse(ctx context.Context, b *core.Builder, file core.FileID, data []byte) (index.Result, error) {
	var res index.Result
	skipped, err := index.EachStanza(ctx, data, func(s index.Stanza) error {
		if _, err := index.AddBinary(b, file, s); err != nil {
			return err
		}
		res.Versions++
		return nil
	})
	res.Skipped = skipped
	return res, err
}
