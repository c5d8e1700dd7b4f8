// Package core provides the package universe, its cursors and record access.
package core

import "math"

// Priority ranks versions of the same package; higher wins. It is a 16-bit
// signed quantity: apt stores pin priorities as a C short, and every value
// in the range -32768..32767 is meaningful.
type Priority int16

const (
	// MinPriority is the priority of versions nothing vouches for.
	MinPriority Priority = math.MinInt16
	// MaxPriority is the highest expressible priority.
	MaxPriority Priority = math.MaxInt16
)

// Index types understood by the index loaders. The strings match the ones apt
// reports for its package files.
const (
	IndexTypePackages = "Debian Package Index"
	IndexTypeStatus   = "Debian dpkg status file"
)

// Dependency kinds as they appear as control-file field names.
const (
	Depends    = "Depends"
	PreDepends = "Pre-Depends"
	Recommends = "Recommends"
	Suggests   = "Suggests"
	Conflicts  = "Conflicts"
	Breaks     = "Breaks"
	Replaces   = "Replaces"
	Enhances   = "Enhances"
	Provides   = "Provides"
)

// DependencyKinds lists the relationship fields in the order apt stores them.
var DependencyKinds = []string{Depends, PreDepends, Suggests, Recommends, Conflicts, Replaces, Breaks, Enhances, Provides}

// PackageFileInfo is the provenance metadata of one index file.
type PackageFileInfo struct {
	FileName     string
	Archive      string // suite, e.g. "stable"
	Version      string // release version, e.g. "12.5"
	Origin       string
	Codename     string
	Label        string
	Site         string
	Component    string
	Architecture string
	IndexType    string
	BaseURI      string // archive root, e.g. "http://deb.debian.org/debian"

	NotAutomatic         bool
	ButAutomaticUpgrades bool
}

// VersionSpec describes a version handed to Builder.AddVersion.
type VersionSpec struct {
	Version       string
	Arch          string
	Section       string
	SourcePackage string
	SourceVersion string
	PriorityType  string // "required", "optional", ...
	MultiArch     string
}

// DependencySpec describes an edge handed to Builder.AddDependency.
type DependencySpec struct {
	TargetName    string
	TargetArch    string // "" resolves to the depending package's architecture
	TargetVersion string
	CompType      string // "", "<<", "<=", "=", ">=", ">>"
	DepType       string
	Or            bool // another alternative follows in the same or-group
}

// Stats counts the entities in a universe.
type Stats struct {
	Packages     int
	Versions     int
	Dependencies int
	VersionFiles int
	PackageFiles int
}

// IDs of arena entries. They are only meaningful for the universe that
// issued them.
type (
	PackageID int32
	VersionID int32
	FileID    int32
)

const none = -1

type packageRecord struct {
	name     string
	arch     string
	current  int32
	versions []int32
}

type versionRecord struct {
	pkg int32
	VersionSpec
	deps  []int32
	files []int32
}

type dependencyRecord struct {
	parent        int32
	target        int32
	targetVersion string
	compType      string
	depType       string
	or            bool
}

type versionFileRecord struct {
	version int32
	file    int32
	offset  int
	size    int
}

type packageFileRecord struct {
	PackageFileInfo
	data []byte
}

type packageKey struct {
	name string
	arch string
}
