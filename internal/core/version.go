package core

// Version is a view of one version of a package.
type Version struct {
	u  *Universe
	id int32
}

var emptyVersion = versionRecord{pkg: none}

func versionView(u *Universe, id int32) Version {
	return Version{u: u, id: id}
}

func (v Version) rec() *versionRecord {
	if v.u == nil {
		return &emptyVersion
	}
	return &v.u.versions[v.id]
}

// Valid reports whether v refers to a version. The zero Version does not.
func (v Version) Valid() bool {
	return v.u != nil
}

// ID returns the arena index of v.
func (v Version) ID() VersionID {
	return VersionID(v.id)
}

// VerStr returns the version string, e.g. "1:2.30-1".
func (v Version) VerStr() string {
	return v.rec().Version
}

// Arch returns the version's own architecture, which is "all" for
// architecture-independent versions.
func (v Version) Arch() string {
	return v.rec().Arch
}

func (v Version) Section() string {
	return v.rec().Section
}

// SourcePackage returns the name of the source package v was built from.
func (v Version) SourcePackage() string {
	return v.rec().SourcePackage
}

// SourceVersion returns the version of the source package v was built from.
func (v Version) SourceVersion() string {
	return v.rec().SourceVersion
}

// PriorityType returns the archive's Priority field ("required",
// "optional", ...). It is unrelated to policy priorities.
func (v Version) PriorityType() string {
	return v.rec().PriorityType
}

func (v Version) MultiArch() string {
	return v.rec().MultiArch
}

// Package returns the package owning v.
func (v Version) Package() Package {
	r := v.rec()
	if r.pkg == none {
		return Package{}
	}
	return Package{u: v.u, id: r.pkg}
}

// Dependencies returns a cursor over v's dependency edges in stored order.
func (v Version) Dependencies() *DependencyCursor {
	return newCursor(v.u, "dependency", v.rec().deps, dependencyView)
}

// Files returns a cursor over the index files that advertise v.
func (v Version) Files() *VersionFileCursor {
	return newCursor(v.u, "version file", v.rec().files, versionFileView)
}

// IsInstalled reports whether v is its package's current version.
func (v Version) IsInstalled() bool {
	if !v.Valid() {
		return false
	}
	return v.u.packages[v.rec().pkg].current == v.id
}

// Compare orders v against other by version string.
func (v Version) Compare(other Version) int {
	if v.u == nil {
		if other.u == nil {
			return 0
		}
		return other.u.cmp(v.VerStr(), other.VerStr())
	}
	return v.u.cmp(v.VerStr(), other.VerStr())
}

// String returns "name:arch=version".
func (v Version) String() string {
	if !v.Valid() {
		return ""
	}
	return v.Package().FullName() + "=" + v.VerStr()
}
