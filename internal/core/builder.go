package core

import (
	"slices"

	"github.com/git-pkgs/aptcache/vercmp"
)

// Builder assembles a Universe. It is the only way to create one: once
// Build returns, the universe is frozen and the builder must not be used
// again. A Builder is not safe for concurrent use.
type Builder struct {
	u     *Universe
	built bool
}

// BuildOption configures a Builder.
type BuildOption func(*Builder)

// WithNativeArch sets the native architecture. Packages built for "all" are
// registered under it. Defaults to "amd64".
func WithNativeArch(arch string) BuildOption {
	return func(b *Builder) {
		if arch != "" {
			b.u.native = arch
		}
	}
}

// WithForeignArchs adds architectures, in preference order, that FindByName
// considers after the native one.
func WithForeignArchs(archs ...string) BuildOption {
	return func(b *Builder) {
		for _, a := range archs {
			if a != "" && !slices.Contains(b.u.archs, a) {
				b.u.archs = append(b.u.archs, a)
			}
		}
	}
}

// WithCompare replaces the Debian version comparator.
func WithCompare(cmp func(a, b string) int) BuildOption {
	return func(b *Builder) {
		if cmp != nil {
			b.u.cmp = cmp
		}
	}
}

// NewBuilder returns an empty builder.
func NewBuilder(opts ...BuildOption) *Builder {
	b := &Builder{
		u: &Universe{
			byKey:  make(map[packageKey]int32),
			byName: make(map[string][]int32),
			native: "amd64",
			cmp:    vercmp.Compare,
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	// The native architecture always leads the preference list, whatever
	// order the options came in.
	b.u.archs = slices.DeleteFunc(b.u.archs, func(a string) bool { return a == b.u.native })
	b.u.archs = slices.Insert(b.u.archs, 0, b.u.native)
	return b
}

// NativeArch returns the native architecture the universe is built for.
func (b *Builder) NativeArch() string {
	return b.u.native
}

// AddPackageFile registers an index file. data is the file's complete
// content; version-file locators index into it, and the universe keeps it
// resident for RecordParser.
func (b *Builder) AddPackageFile(info PackageFileInfo, data []byte) FileID {
	b.mustBeOpen()
	b.u.files = append(b.u.files, packageFileRecord{PackageFileInfo: info, data: data})
	return FileID(len(b.u.files) - 1)
}

// Package returns the package (name, arch), creating it if needed. An empty
// arch or "all" means the native architecture.
func (b *Builder) Package(name, arch string) PackageID {
	b.mustBeOpen()
	arch = b.resolveArch(arch)
	key := packageKey{name, arch}
	if id, ok := b.u.byKey[key]; ok {
		return PackageID(id)
	}
	id := int32(len(b.u.packages))
	b.u.packages = append(b.u.packages, packageRecord{name: name, arch: arch, current: none})
	b.u.byKey[key] = id
	b.u.byName[name] = append(b.u.byName[name], id)
	b.u.order = append(b.u.order, id)
	return PackageID(id)
}

// LookupPackage returns an existing package without creating one.
func (b *Builder) LookupPackage(name, arch string) (PackageID, bool) {
	id, ok := b.u.byKey[packageKey{name, b.resolveArch(arch)}]
	return PackageID(id), ok
}

// AddVersion attaches a version to pkg. A version string already present on
// pkg is not duplicated: its existing ID is returned with created false, so
// that further index files can add version-files to it.
func (b *Builder) AddVersion(pkg PackageID, spec VersionSpec) (id VersionID, created bool) {
	b.mustBeOpen()
	p := &b.u.packages[pkg]
	for _, vid := range p.versions {
		if b.u.versions[vid].Version == spec.Version {
			return VersionID(vid), false
		}
	}
	if spec.SourcePackage == "" {
		spec.SourcePackage = p.name
	}
	if spec.SourceVersion == "" {
		spec.SourceVersion = spec.Version
	}
	vid := int32(len(b.u.versions))
	b.u.versions = append(b.u.versions, versionRecord{pkg: int32(pkg), VersionSpec: spec})
	p.versions = append(p.versions, vid)
	return VersionID(vid), true
}

// AddDependency appends an edge to ver. The target package is created as a
// virtual package when nothing else has mentioned it yet.
func (b *Builder) AddDependency(ver VersionID, spec DependencySpec) {
	b.mustBeOpen()
	v := &b.u.versions[ver]
	arch := spec.TargetArch
	if arch == "" {
		arch = b.u.packages[v.pkg].arch
	}
	target := b.Package(spec.TargetName, arch)
	// b.Package only appends to the package arena, so v is still valid.
	id := int32(len(b.u.deps))
	b.u.deps = append(b.u.deps, dependencyRecord{
		parent:        int32(ver),
		target:        int32(target),
		targetVersion: spec.TargetVersion,
		compType:      spec.CompType,
		depType:       spec.DepType,
		or:            spec.Or,
	})
	v.deps = append(v.deps, id)
}

// AddVersionFile records that ver was read from file, with its stanza at
// data[offset:offset+size].
func (b *Builder) AddVersionFile(ver VersionID, file FileID, offset, size int) {
	b.mustBeOpen()
	id := int32(len(b.u.verFiles))
	b.u.verFiles = append(b.u.verFiles, versionFileRecord{
		version: int32(ver),
		file:    int32(file),
		offset:  offset,
		size:    size,
	})
	v := &b.u.versions[ver]
	v.files = append(v.files, id)
}

// SetCurrent marks ver as the installed version of its package.
func (b *Builder) SetCurrent(ver VersionID) {
	b.mustBeOpen()
	v := b.u.versions[ver]
	b.u.packages[v.pkg].current = int32(ver)
}

// Build freezes and returns the universe. Calling Build twice returns the
// same universe. Any method that adds to the universe panics afterwards.
func (b *Builder) Build() *Universe {
	b.built = true
	return b.u
}

// Built reports whether Build has been called.
func (b *Builder) Built() bool {
	return b.built
}

func (b *Builder) mustBeOpen() {
	if b.built {
		panic("core: Builder used after Build")
	}
}

func (b *Builder) resolveArch(arch string) string {
	if arch == "" || arch == "all" || arch == "native" {
		return b.u.native
	}
	return arch
}
