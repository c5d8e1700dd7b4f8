package core

// Package is a view of one (name, architecture) package. It is a small value
// that borrows from its universe; copy it freely.
type Package struct {
	u  *Universe
	id int32
}

var emptyPackage = packageRecord{current: none}

func packageView(u *Universe, id int32) Package {
	return Package{u: u, id: id}
}

func (p Package) rec() *packageRecord {
	if p.u == nil {
		return &emptyPackage
	}
	return &p.u.packages[p.id]
}

// Valid reports whether p refers to a package. The zero Package does not.
func (p Package) Valid() bool {
	return p.u != nil
}

// ID returns the arena index of p.
func (p Package) ID() PackageID {
	return PackageID(p.id)
}

// Universe returns the universe p belongs to.
func (p Package) Universe() *Universe {
	return p.u
}

func (p Package) Name() string {
	return p.rec().name
}

func (p Package) Arch() string {
	return p.rec().arch
}

// FullName returns "name:arch".
func (p Package) FullName() string {
	if !p.Valid() {
		return ""
	}
	return p.Name() + ":" + p.Arch()
}

// CurrentVersion returns the installed version, if any.
func (p Package) CurrentVersion() (Version, bool) {
	r := p.rec()
	if r.current == none {
		return Version{}, false
	}
	return Version{u: p.u, id: r.current}, true
}

// Versions returns a cursor over the package's versions in stored order. The
// cursor is already exhausted when the package has none.
func (p Package) Versions() *VersionCursor {
	return newCursor(p.u, "version", p.rec().versions, versionView)
}

// VersionCount returns the number of versions of p.
func (p Package) VersionCount() int {
	return len(p.rec().versions)
}

// FindVersion returns the version of p whose version string is exactly ver.
func (p Package) FindVersion(ver string) (Version, bool) {
	for _, id := range p.rec().versions {
		if p.u.versions[id].Version == ver {
			return Version{u: p.u, id: id}, true
		}
	}
	return Version{}, false
}

// IsVirtual reports whether p has no versions at all, as is the case for
// dependency targets that only exist through Provides or not at all.
func (p Package) IsVirtual() bool {
	return len(p.rec().versions) == 0
}

// ReverseDependencies returns every dependency edge in the universe whose
// target is p. It walks the whole dependency arena.
func (p Package) ReverseDependencies() []Dependency {
	if !p.Valid() {
		return nil
	}
	var out []Dependency
	for i := range p.u.deps {
		if p.u.deps[i].target == p.id {
			out = append(out, Dependency{u: p.u, id: int32(i)})
		}
	}
	return out
}

func (p Package) String() string {
	return p.FullName()
}
