// Package index builds a core.Universe from Debian index files already on
// disk: Packages indexes, the dpkg status file and the Release or InRelease
// files describing them.
//
// Index formats register themselves by index type, the way the packages
// and status subpackages do:
//
//	import (
//		"github.com/git-pkgs/aptcache/internal/index"
//		_ "github.com/git-pkgs/aptcache/all"
//	)
//
//	u, err := index.Load(ctx, []index.Source{
//		{Path: "/var/lib/dpkg/status"},
//		{Path: "/var/lib/apt/lists/deb.debian.org_debian_dists_bookworm_main_binary-amd64_Packages"},
//	})
package index

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/git-pkgs/aptcache/internal/core"
)

var (
	// ErrNoIndexData is returned by Load when no source contributed a
	// single version.
	ErrNoIndexData = errors.New("no index data")

	// ErrUnknownIndexType is returned for sources whose type has no
	// registered format.
	ErrUnknownIndexType = errors.New("unknown index type")

	// ErrMissingField is wrapped by ParseError for stanzas lacking a
	// required field.
	ErrMissingField = errors.New("missing required field")
)

// ParseError describes a stanza that was skipped.
type ParseError struct {
	File   string
	Offset int // byte offset of the stanza in the decompressed file
	Err    error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("stanza at byte %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: stanza at byte %d: %v", e.File, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Source names one index file and the provenance to record for it. Fields
// left empty are taken from the Release file, when one is given.
type Source struct {
	Path string
	Type string // core.IndexType*; "" guesses from the file name

	// Release is the path of the Release or InRelease file for Path.
	Release string

	BaseURI      string
	Site         string
	Origin       string
	Label        string
	Archive      string
	Codename     string
	Component    string
	Architecture string
}

// IndexType returns s.Type, or the type implied by the file name: "status"
// is the dpkg status file, anything else a Packages index.
func (s Source) IndexType() string {
	if s.Type != "" {
		return s.Type
	}
	if filepath.Base(s.Path) == "status" {
		return core.IndexTypeStatus
	}
	return core.IndexTypePackages
}
