package core

import "slices"

// Universe owns every package, version, dependency edge, version-file and
// package-file known to a cache. All cross references are indices into its
// arena slices, so views and cursors stay valid for as long as they hold the
// universe, and a built universe is never modified. Any number of goroutines
// may query it concurrently.
type Universe struct {
	packages []packageRecord
	versions []versionRecord
	deps     []dependencyRecord
	verFiles []versionFileRecord
	files    []packageFileRecord

	byKey  map[packageKey]int32
	byName map[string][]int32
	order  []int32

	native string
	archs  []string // native first, then foreign architectures
	cmp    func(a, b string) int
}

// FindByName returns the package called name. When the name exists for
// several architectures, the native architecture wins, then the foreign
// architectures in configuration order, then whichever was built first.
// Unknown names report false; nothing is created.
func (u *Universe) FindByName(name string) (Package, bool) {
	group := u.byName[name]
	if len(group) == 0 {
		return Package{}, false
	}
	for _, arch := range u.archs {
		if id, ok := u.byKey[packageKey{name, arch}]; ok {
			return Package{u: u, id: id}, true
		}
	}
	return Package{u: u, id: group[0]}, true
}

// FindByNameAndArch returns the package with exactly this name and
// architecture. An empty arch or "native" means the native architecture.
func (u *Universe) FindByNameAndArch(name, arch string) (Package, bool) {
	if arch == "" || arch == "native" {
		arch = u.native
	}
	id, ok := u.byKey[packageKey{name, arch}]
	if !ok {
		return Package{}, false
	}
	return Package{u: u, id: id}, true
}

// FindAllArchs returns every architecture variant of name in build order.
func (u *Universe) FindAllArchs(name string) []Package {
	group := u.byName[name]
	pkgs := make([]Package, len(group))
	for i, id := range group {
		pkgs[i] = Package{u: u, id: id}
	}
	return pkgs
}

// AllPackages returns a cursor over every package, virtual ones included.
// The order is the universe's internal order; callers must not assume it is
// sorted.
func (u *Universe) AllPackages() *PackageCursor {
	return newCursor(u, "package", u.order, packageView)
}

// PackageFiles returns a cursor over every index file the universe was built
// from.
func (u *Universe) PackageFiles() *PackageFileCursor {
	ids := make([]int32, len(u.files))
	for i := range ids {
		ids[i] = int32(i)
	}
	return newCursor(u, "package file", ids, packageFileView)
}

// Compare orders two version strings with the universe's comparator.
func (u *Universe) Compare(a, b string) int {
	return u.cmp(a, b)
}

// NativeArch returns the native architecture.
func (u *Universe) NativeArch() string {
	return u.native
}

// Architectures returns the native architecture followed by the configured
// foreign architectures.
func (u *Universe) Architectures() []string {
	return slices.Clone(u.archs)
}

// Stats returns entity counts.
func (u *Universe) Stats() Stats {
	return Stats{
		Packages:     len(u.packages),
		Versions:     len(u.versions),
		Dependencies: len(u.deps),
		VersionFiles: len(u.verFiles),
		PackageFiles: len(u.files),
	}
}

// Package returns the view for id.
func (u *Universe) Package(id PackageID) (Package, bool) {
	if id < 0 || int(id) >= len(u.packages) {
		return Package{}, false
	}
	return Package{u: u, id: int32(id)}, true
}

// Version returns the view for id.
func (u *Universe) Version(id VersionID) (Version, bool) {
	if id < 0 || int(id) >= len(u.versions) {
		return Version{}, false
	}
	return Version{u: u, id: int32(id)}, true
}
