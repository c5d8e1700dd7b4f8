package core

import (
	"fmt"
	"strings"
)

// BinaryPackage is a copied-out summary of a package.
type BinaryPackage struct {
	Name             string
	Arch             string
	CurrentVersion   string // "" when not installed
	CandidateVersion string // "" when there is no candidate
}

// NewBinaryPackage summarises p. candidate is the version policy selected,
// or the zero Version.
func NewBinaryPackage(p Package, candidate Version) BinaryPackage {
	bp := BinaryPackage{
		Name:             p.Name(),
		Arch:             p.Arch(),
		CandidateVersion: candidate.VerStr(),
	}
	if cur, ok := p.CurrentVersion(); ok {
		bp.CurrentVersion = cur.VerStr()
	}
	return bp
}

// String renders "name:arch @ current -> candidate", omitting absent parts.
func (bp BinaryPackage) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%s", bp.Name, bp.Arch)
	if bp.CurrentVersion != "" {
		fmt.Fprintf(&b, " @ %s", bp.CurrentVersion)
	}
	if bp.CandidateVersion != "" {
		fmt.Fprintf(&b, " -> %s", bp.CandidateVersion)
	}
	return b.String()
}

// VersionDetails holds the descriptive fields of a version's first record.
type VersionDetails struct {
	ShortDescription string
	LongDescription  string
	Maintainer       string
	Homepage         string
}

// VersionInfo is a copied-out summary of a version.
type VersionInfo struct {
	Version       string
	Arch          string
	Section       string
	SourcePackage string
	SourceVersion string
	Priority      Priority
	Details       VersionDetails
}

// NewVersionInfo summarises v. Details come from v's first version-file; a
// version is assumed to carry the same descriptive text in every index.
func NewVersionInfo(v Version, priority Priority) VersionInfo {
	info := VersionInfo{
		Version:       v.VerStr(),
		Arch:          v.Arch(),
		Section:       v.Section(),
		SourcePackage: v.SourcePackage(),
		SourceVersion: v.SourceVersion(),
		Priority:      priority,
	}
	if vf, err := v.Files().Current(); err == nil {
		rp := vf.Parser()
		info.Details = VersionDetails{
			ShortDescription: rp.ShortDescription(),
			LongDescription:  rp.LongDescription(),
			Maintainer:       rp.Maintainer(),
			Homepage:         rp.Homepage(),
		}
	}
	return info
}

// String renders "version:arch in section from source:sourceversion at priority".
func (vi VersionInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%s", vi.Version, vi.Arch)
	if vi.Section != "" {
		fmt.Fprintf(&b, " in %s", vi.Section)
	}
	fmt.Fprintf(&b, " from %s:%s at %d", vi.SourcePackage, vi.SourceVersion, vi.Priority)
	return b.String()
}

// Origin is a copied-out PackageFile.
type Origin struct {
	PackageFileInfo
	Display string
}

// NewOrigin copies f.
func NewOrigin(f PackageFile) Origin {
	return Origin{PackageFileInfo: f.Info(), Display: f.String()}
}

func (o Origin) String() string {
	return o.Display
}

// VersionOrigins pairs a version summary with every file that carries it.
type VersionOrigins struct {
	Version VersionInfo
	Origins []Origin
}

// NewVersionOrigins summarises v and all of its files.
func NewVersionOrigins(v Version, priority Priority) VersionOrigins {
	vo := VersionOrigins{Version: NewVersionInfo(v, priority)}
	for vf := range v.Files().Seq() {
		if f := vf.File(); f.Valid() {
			vo.Origins = append(vo.Origins, NewOrigin(f))
		}
	}
	return vo
}

// BinaryPackageVersions is a package summary together with all its versions.
type BinaryPackageVersions struct {
	Package  BinaryPackage
	Versions []VersionInfo
}

// NewBinaryPackageVersions summarises p and every version of it. priority is
// consulted once per version.
func NewBinaryPackageVersions(p Package, candidate Version, priority func(Version) Priority) BinaryPackageVersions {
	bpv := BinaryPackageVersions{Package: NewBinaryPackage(p, candidate)}
	for v := range p.Versions().Seq() {
		var prio Priority
		if priority != nil {
			prio = priority(v)
		}
		bpv.Versions = append(bpv.Versions, NewVersionInfo(v, prio))
	}
	return bpv
}

// String renders "name:arch ... + N versions".
func (bpv BinaryPackageVersions) String() string {
	return fmt.Sprintf("%s + %d versions", bpv.Package, len(bpv.Versions))
}
