// Package aptcache provides an in-memory, read-only view of the Debian
// package metadata apt keeps on disk: the Packages indexes under
// /var/lib/apt/lists and the dpkg status file.
//
// The universe is built once from index files and then queried through
// cursors; a Policy ranks versions and picks install candidates.
//
// Basic usage:
//
//	import (
//		"context"
//		"github.com/git-pkgs/aptcache"
//		_ "github.com/git-pkgs/aptcache/all"
//	)
//
//	cache, err := aptcache.Open(context.Background(), []aptcache.Source{
//		{Path: "/var/lib/dpkg/status"},
//		{Path: "/var/lib/apt/lists/deb.debian.org_debian_dists_bookworm_main_binary-amd64_Packages"},
//	}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for pkgs := cache.AllPackages(); !pkgs.AtEnd(); pkgs.Advance() {
//		p, _ := pkgs.Current()
//		if cand, ok := cache.Policy.CandidateVersion(p); ok {
//			fmt.Println(p.FullName(), cand.VerStr())
//		}
//	}
//
// The all subpackage registers both index formats; import it for its side
// effects, or import the format packages under internal/index individually.
package aptcache

import (
	"context"

	"github.com/git-pkgs/aptcache/internal/core"
	"github.com/git-pkgs/aptcache/internal/index"
	"github.com/git-pkgs/aptcache/internal/policy"
	"github.com/git-pkgs/aptcache/vercmp"
)

// Re-export types from internal/core
type (
	// Universe is the frozen set of packages, versions, dependencies and
	// index files.
	Universe = core.Universe

	// Package is one (name, architecture) pair.
	Package = core.Package

	// Version is one version of a package.
	Version = core.Version

	// Dependency is one dependency edge from a version to a package.
	Dependency = core.Dependency

	// VersionFile links a version to the index stanza it came from.
	VersionFile = core.VersionFile

	// PackageFile is one loaded index file.
	PackageFile = core.PackageFile

	// PackageFileInfo is the provenance recorded for an index file.
	PackageFileInfo = core.PackageFileInfo

	// RecordParser reads fields from a version's control stanza.
	RecordParser = core.RecordParser

	// Priority ranks versions of one package.
	Priority = core.Priority

	// Stats counts the records of a universe.
	Stats = core.Stats

	PackageCursor     = core.PackageCursor
	VersionCursor     = core.VersionCursor
	DependencyCursor  = core.DependencyCursor
	VersionFileCursor = core.VersionFileCursor
	PackageFileCursor = core.PackageFileCursor

	// Snapshots for display.
	BinaryPackage         = core.BinaryPackage
	BinaryPackageVersions = core.BinaryPackageVersions
	VersionInfo           = core.VersionInfo
	VersionOrigins        = core.VersionOrigins
	Origin                = core.Origin

	// URLBuilder constructs URLs for a version.
	URLBuilder = core.URLBuilder

	// PURL represents a parsed deb Package URL.
	PURL = core.PURL
)

// Re-export types from internal/index and internal/policy
type (
	// Source names an index file to load.
	Source = index.Source

	// LoadOption configures Load and Open.
	LoadOption = index.Option

	// Policy picks candidate versions.
	Policy = policy.Policy

	// PolicyOption configures NewPolicy.
	PolicyOption = policy.Option

	// PinStore supplies pin and trust priorities.
	PinStore = policy.PinStore

	// Preferences is a parsed apt preferences file.
	Preferences = policy.Preferences

	// StaticPins is a PinStore built in code.
	StaticPins = policy.StaticPins

	// PinKey selects the versions a static pin applies to.
	PinKey = policy.PinKey
)

// Re-export constants
const (
	MinPriority = core.MinPriority
	MaxPriority = core.MaxPriority

	IndexTypePackages = core.IndexTypePackages
	IndexTypeStatus   = core.IndexTypeStatus

	Depends    = core.Depends
	PreDepends = core.PreDepends
	Recommends = core.Recommends
	Suggests   = core.Suggests
	Conflicts  = core.Conflicts
	Breaks     = core.Breaks
	Replaces   = core.Replaces
	Enhances   = core.Enhances
	Provides   = core.Provides
)

// Re-export errors
var (
	ErrNotFound          = core.ErrNotFound
	ErrOutOfRange        = core.ErrOutOfRange
	ErrNoIndexData       = index.ErrNoIndexData
	ErrUnknownIndexType  = index.ErrUnknownIndexType
	ErrBadSignature      = index.ErrBadSignature
	ErrInvalidPreference = policy.ErrInvalidPreference
)

// Error types
type (
	NotFoundError   = core.NotFoundError
	OutOfRangeError = core.OutOfRangeError
	ParseError      = index.ParseError
	PreferenceError = policy.PreferenceError
)

// Load and policy options.
var (
	WithLogger         = index.WithLogger
	WithNativeArch     = index.WithNativeArch
	WithForeignArchs   = index.WithForeignArchs
	WithKeyring        = index.WithKeyring
	WithConcurrency    = index.WithConcurrency
	WithPolicyLogger   = policy.WithLogger
	WithDefaultRelease = policy.WithDefaultRelease
)

// Load reads the given index files into a new universe.
func Load(ctx context.Context, sources []Source, opts ...LoadOption) (*Universe, error) {
	return index.Load(ctx, sources, opts...)
}

// SupportedIndexTypes returns all registered index types.
// Note: formats must be imported to be registered.
func SupportedIndexTypes() []string {
	return index.SupportedIndexTypes()
}

// NewPolicy creates a policy over pins. A nil pins has no pins.
func NewPolicy(pins PinStore, opts ...PolicyOption) *Policy {
	return policy.New(pins, opts...)
}

// LoadPreferences reads apt preferences files or preferences.d directories.
func LoadPreferences(paths ...string) (*Preferences, error) {
	return policy.LoadPreferences(paths...)
}

// CompareVersions compares two Debian version strings.
func CompareVersions(a, b string) int {
	return vercmp.Compare(a, b)
}

// ParsePURL parses a deb Package URL.
func ParsePURL(purl string) (*PURL, error) {
	return core.ParsePURL(purl)
}

// DebianURLs returns the URL builder for Debian archives.
func DebianURLs() URLBuilder {
	return core.DebianURLs()
}

// BuildURLs returns a map of all non-empty URLs for a version.
// Keys are "registry", "download", "docs", and "purl".
func BuildURLs(urls URLBuilder, v Version) map[string]string {
	return core.BuildURLs(urls, v)
}

// Cache is a universe paired with the policy that ranks it.
type Cache struct {
	*Universe
	Policy *Policy
}

// Open loads sources and pairs the result with a policy over pins.
func Open(ctx context.Context, sources []Source, pins PinStore, opts ...LoadOption) (*Cache, error) {
	u, err := Load(ctx, sources, opts...)
	if err != nil {
		return nil, err
	}
	return &Cache{Universe: u, Policy: NewPolicy(pins)}, nil
}

// Find is FindByName with a *NotFoundError for unknown names.
func (c *Cache) Find(name string) (Package, error) {
	p, ok := c.FindByName(name)
	if !ok {
		return Package{}, &NotFoundError{Name: name}
	}
	return p, nil
}

// FindArch is FindByNameAndArch with a *NotFoundError for unknown pairs.
func (c *Cache) FindArch(name, arch string) (Package, error) {
	p, ok := c.FindByNameAndArch(name, arch)
	if !ok {
		return Package{}, &NotFoundError{Name: name, Arch: arch}
	}
	return p, nil
}

// Candidate returns the candidate version of the named package.
func (c *Cache) Candidate(name string) (Version, error) {
	p, err := c.Find(name)
	if err != nil {
		return Version{}, err
	}
	v, ok := c.Policy.CandidateVersion(p)
	if !ok {
		return Version{}, &NotFoundError{Name: name, Arch: p.Arch()}
	}
	return v, nil
}

// Describe returns the package with its candidate and every version's
// priority, for display.
func (c *Cache) Describe(p Package) BinaryPackageVersions {
	cand, _ := c.Policy.CandidateVersion(p)
	return core.NewBinaryPackageVersions(p, cand, c.Policy.Priority)
}

// Upgradable lists installed packages whose candidate differs from the
// installed version.
func (c *Cache) Upgradable(ctx context.Context) []BinaryPackage {
	return c.Policy.Upgradable(ctx, c.Universe)
}
