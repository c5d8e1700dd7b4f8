package index

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/git-pkgs/aptcache/internal/core"
)

// DefaultListsDir is where apt keeps downloaded index files.
const DefaultListsDir = "/var/lib/apt/lists"

// DefaultStatusFile is the dpkg database of installed packages.
const DefaultStatusFile = "/var/lib/dpkg/status"

// ListName is an apt lists file name taken apart, e.g.
// "deb.debian.org_debian_dists_bookworm_main_binary-amd64_Packages".
type ListName struct {
	Site         string // "deb.debian.org"
	BaseURI      string // "http://deb.debian.org/debian"
	Dist         string // "bookworm"; "" for flat repositories
	Component    string // "main"
	Architecture string // "amd64"
}

// ParseListName splits an apt lists file name. Compression extensions are
// ignored. It reports false for names that are not Packages indexes.
func ParseListName(name string) (ListName, bool) {
	name = filepath.Base(name)
	if ext := filepath.Ext(name); ParseCompression(ext) != CompressionNone {
		name = strings.TrimSuffix(name, ext)
	}
	if !strings.HasSuffix(name, "_Packages") {
		return ListName{}, false
	}
	name = strings.TrimSuffix(name, "_Packages")

	prefix, dist, ok := strings.Cut(name, "_dists_")
	if !ok {
		// Flat repository: everything is the archive path.
		return ListName{
			Site:    siteOf(name),
			BaseURI: "http://" + strings.ReplaceAll(name, "_", "/"),
		}, true
	}

	ln := ListName{
		Site:    siteOf(prefix),
		BaseURI: "http://" + strings.ReplaceAll(prefix, "_", "/"),
	}
	parts := strings.Split(dist, "_")
	if n := len(parts); n >= 3 && strings.HasPrefix(parts[n-1], "binary-") {
		ln.Architecture = strings.TrimPrefix(parts[n-1], "binary-")
		ln.Component = parts[n-2]
		ln.Dist = strings.Join(parts[:n-2], "/")
	} else {
		ln.Dist = strings.Join(parts, "/")
	}
	return ln, true
}

func siteOf(prefix string) string {
	site, _, _ := strings.Cut(prefix, "_")
	return site
}

// releasePrefix is the lists file name prefix shared by the list's InRelease
// and Release files. Flat repositories have none.
func (ln ListName) releasePrefix() string {
	if ln.Dist == "" {
		return ""
	}
	base := strings.TrimPrefix(ln.BaseURI, "http://")
	return strings.ReplaceAll(base, "/", "_") + "_dists_" + strings.ReplaceAll(ln.Dist, "/", "_")
}

// Discover returns a Source for every Packages index in dir, in file name
// order, each paired with its InRelease or Release file when present. When
// a list exists in several compressions only the first name is used.
func Discover(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading lists directory: %w", err)
	}

	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.Name()] = true
	}

	var sources []Source
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ln, ok := ParseListName(e.Name())
		if !ok {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if ParseCompression(filepath.Ext(e.Name())) == CompressionNone {
			stem = e.Name()
		}
		if seen[stem] {
			continue
		}
		seen[stem] = true
		src := Source{
			Path:         filepath.Join(dir, e.Name()),
			Type:         core.IndexTypePackages,
			BaseURI:      ln.BaseURI,
			Site:         ln.Site,
			Component:    ln.Component,
			Architecture: ln.Architecture,
		}
		if prefix := ln.releasePrefix(); prefix != "" {
			for _, candidate := range []string{prefix + "_InRelease", prefix + "_Release"} {
				if present[candidate] {
					src.Release = filepath.Join(dir, candidate)
					break
				}
			}
		}
		sources = append(sources, src)
	}
	slices.SortFunc(sources, func(a, b Source) int { return strings.Compare(a.Path, b.Path) })
	return sources, nil
}
