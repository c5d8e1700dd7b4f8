// Package policy decides which version of a package is the install
// candidate, the way apt's pin priorities do.
package policy

import (
	"cmp"
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/git-pkgs/aptcache/internal/core"
)

// Intrinsic file priorities, used when no pin or trust setting applies.
const (
	DefaultReleasePriority      core.Priority = 990
	StatusPriority              core.Priority = 100
	NotAutomaticPriority        core.Priority = 1
	ButAutomaticUpgradePriority core.Priority = 100
	DefaultPriority             core.Priority = 500

	// DowngradePriority is the lowest priority at which a candidate may
	// replace a newer installed version.
	DowngradePriority core.Priority = 1000
)

// PinStore supplies user-configured priorities.
type PinStore interface {
	// TrustFor returns the priority of every version in file, if the user
	// configured one.
	TrustFor(file core.PackageFile) (core.Priority, bool)

	// PinFor returns the priority of version of package name as found in
	// file, if a pin matches.
	PinFor(name, version string, file core.PackageFile) (core.Priority, bool)
}

// Option configures a Policy.
type Option func(*Policy)

// WithDefaultRelease sets the release (archive or codename) whose files get
// DefaultReleasePriority, like apt's APT::Default-Release.
func WithDefaultRelease(release string) Option {
	return func(p *Policy) {
		p.defaultRelease = release
	}
}

// WithLogger sets the logger for candidate decisions.
func WithLogger(l *slog.Logger) Option {
	return func(p *Policy) {
		if l != nil {
			p.logger = l
		}
	}
}

// Policy computes priorities and candidate versions. It holds no per-universe
// state and is safe for concurrent use.
type Policy struct {
	pins           PinStore
	defaultRelease string
	logger         *slog.Logger
}

// New returns a policy backed by pins. A nil store means no pins.
func New(pins PinStore, opts ...Option) *Policy {
	if pins == nil {
		pins = NoPins{}
	}
	p := &Policy{
		pins:   pins,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultRelease returns the configured default release.
func (p *Policy) DefaultRelease() string {
	return p.defaultRelease
}

// FilePriority returns the priority vf's version gets from vf's file.
func (p *Policy) FilePriority(vf core.VersionFile) core.Priority {
	file := vf.File()
	if !file.Valid() {
		return core.MinPriority
	}
	v := vf.Version()
	if prio, ok := p.pins.PinFor(v.Package().Name(), v.VerStr(), file); ok {
		return prio
	}
	if prio, ok := p.pins.TrustFor(file); ok {
		return prio
	}
	return p.intrinsic(file)
}

// FileTrust returns the priority of file itself, ignoring per-package pins.
func (p *Policy) FileTrust(file core.PackageFile) core.Priority {
	if prio, ok := p.pins.TrustFor(file); ok {
		return prio
	}
	return p.intrinsic(file)
}

func (p *Policy) intrinsic(file core.PackageFile) core.Priority {
	switch {
	case file.IsStatus():
		return StatusPriority
	case p.defaultRelease != "" && (file.Archive() == p.defaultRelease || file.Codename() == p.defaultRelease):
		return DefaultReleasePriority
	case file.NotAutomatic() && file.ButAutomaticUpgrades():
		return ButAutomaticUpgradePriority
	case file.NotAutomatic():
		return NotAutomaticPriority
	}
	return DefaultPriority
}

// Priority returns the highest priority any of v's files gives it. Versions
// without files, and the zero Version, get core.MinPriority.
func (p *Policy) Priority(v core.Version) core.Priority {
	prio, _ := p.priority(v)
	return prio
}

// priority also returns the file that produced the result. Among files
// reaching the maximum, the lexically earliest origin and site wins.
func (p *Policy) priority(v core.Version) (core.Priority, core.PackageFile) {
	best := core.MinPriority
	var from core.PackageFile
	for vf := range v.Files().Seq() {
		prio := p.FilePriority(vf)
		file := vf.File()
		if !from.Valid() || prio > best || (prio == best && compareSite(file, from) < 0) {
			best = prio
			from = file
		}
	}
	return best, from
}

func compareSite(a, b core.PackageFile) int {
	if c := cmp.Compare(a.Origin(), b.Origin()); c != 0 {
		return c
	}
	return cmp.Compare(a.Site(), b.Site())
}

// fromArchive reports whether v is known from an index other than the
// status file.
func fromArchive(v core.Version) bool {
	for vf := range v.Files().Seq() {
		if !vf.File().IsStatus() {
			return true
		}
	}
	return false
}

type ranked struct {
	v     core.Version
	prio  core.Priority
	from  core.PackageFile
	order int
}

// compareRanked orders versions best first: higher priority, then higher
// version, then the lexically earliest origin and site, then build order.
func compareRanked(a, b ranked) int {
	if c := cmp.Compare(b.prio, a.prio); c != 0 {
		return c
	}
	if c := b.v.Compare(a.v); c != 0 {
		return c
	}
	if c := compareSite(a.from, b.from); c != 0 {
		return c
	}
	return cmp.Compare(a.order, b.order)
}

// CandidateVersion returns the version apt would install for pkg. Versions
// with a negative priority are never chosen unless installed. Versions known
// only from the status file are chosen only when installed, and an
// installed version is only replaced by an older one whose priority is at
// least DowngradePriority. It reports false when pkg has no eligible
// version.
func (p *Policy) CandidateVersion(pkg core.Package) (core.Version, bool) {
	if pkg.VersionCount() == 0 {
		return core.Version{}, false
	}

	var versions []ranked
	i := 0
	for v := range pkg.Versions().Seq() {
		installed := v.IsInstalled()
		if !installed && !fromArchive(v) {
			i++
			continue
		}
		prio, from := p.priority(v)
		if prio >= 0 || installed {
			versions = append(versions, ranked{v: v, prio: prio, from: from, order: i})
		}
		i++
	}
	if len(versions) == 0 {
		return core.Version{}, false
	}

	best := slices.MinFunc(versions, compareRanked)

	cur, installed := pkg.CurrentVersion()
	if installed && best.v.ID() != cur.ID() && best.v.Compare(cur) < 0 && best.prio < DowngradePriority {
		p.logger.Debug("keeping installed version",
			"package", pkg.FullName(),
			"installed", cur.VerStr(),
			"downgrade", best.v.VerStr(),
			"priority", best.prio)
		return cur, true
	}
	return best.v, true
}

// Candidates computes the candidate of every package of u in parallel.
// Packages without a candidate are omitted.
func (p *Policy) Candidates(ctx context.Context, u *core.Universe) map[core.PackageID]core.Version {
	return core.BulkPackages(ctx, u, p.CandidateVersion)
}

// Upgradable returns the installed packages whose candidate is newer than
// the installed version, sorted by name and architecture.
func (p *Policy) Upgradable(ctx context.Context, u *core.Universe) []core.BinaryPackage {
	upgrades := core.BulkPackages(ctx, u, func(pkg core.Package) (core.BinaryPackage, bool) {
		cur, ok := pkg.CurrentVersion()
		if !ok {
			return core.BinaryPackage{}, false
		}
		cand, ok := p.CandidateVersion(pkg)
		if !ok || cand.Compare(cur) <= 0 {
			return core.BinaryPackage{}, false
		}
		return core.NewBinaryPackage(pkg, cand), true
	})

	out := make([]core.BinaryPackage, 0, len(upgrades))
	for _, bp := range upgrades {
		out = append(out, bp)
	}
	slices.SortFunc(out, func(a, b core.BinaryPackage) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Arch, b.Arch)
	})
	p.logger.Debug("computed upgradable packages", "count", len(out))
	return out
}
