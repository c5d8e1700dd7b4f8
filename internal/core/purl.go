package core

import (
	"fmt"
	"strings"

	packageurl "github.com/package-url/packageurl-go"
)

// DefaultVendor is the PURL namespace used when no index file names an
// origin for a package.
const DefaultVendor = "debian"

// PURL wraps packageurl.PackageURL with Debian-specific helpers.
type PURL struct {
	packageurl.PackageURL
}

// Arch returns the arch qualifier, or "" when absent.
func (p PURL) Arch() string {
	return p.Qualifiers.Map()["arch"]
}

// Distro returns the distro qualifier, or "" when absent.
func (p PURL) Distro() string {
	return p.Qualifiers.Map()["distro"]
}

// ParsePURL parses a Package URL string. Only "deb" PURLs are accepted.
// Supports both package PURLs (pkg:deb/debian/curl?arch=amd64) and version
// PURLs (pkg:deb/debian/curl@7.88.1-10?arch=amd64).
func ParsePURL(purl string) (*PURL, error) {
	p, err := packageurl.FromString(purl)
	if err != nil {
		return nil, err
	}
	if p.Type != packageurl.TypeDebian {
		return nil, fmt.Errorf("unsupported PURL type %q: want %q", p.Type, packageurl.TypeDebian)
	}
	return &PURL{p}, nil
}

// PURL returns the package URL of p, without a version.
func (p Package) PURL() string {
	if !p.Valid() {
		return ""
	}
	return buildPURL(p.vendor(), p.Name(), "", p.Arch(), "")
}

// PURL returns the package URL of v. The distro qualifier is the codename of
// the first index file carrying v, when known.
func (v Version) PURL() string {
	if !v.Valid() {
		return ""
	}
	pkg := v.Package()
	var distro string
	for vf := range v.Files().Seq() {
		if f := vf.File(); !f.IsStatus() && f.Codename() != "" {
			distro = f.Codename()
			break
		}
	}
	arch := v.Arch()
	if arch == "" {
		arch = pkg.Arch()
	}
	return buildPURL(pkg.vendor(), pkg.Name(), v.VerStr(), arch, distro)
}

// FindByPURL resolves a deb PURL to a package and, when the PURL names a
// version, to that version. A PURL without an arch qualifier resolves like
// FindByName.
func (u *Universe) FindByPURL(purl string) (Package, Version, error) {
	p, err := ParsePURL(purl)
	if err != nil {
		return Package{}, Version{}, err
	}

	var pkg Package
	var ok bool
	if arch := p.Arch(); arch != "" {
		pkg, ok = u.FindByNameAndArch(p.Name, arch)
	} else {
		pkg, ok = u.FindByName(p.Name)
	}
	if !ok {
		return Package{}, Version{}, &NotFoundError{Name: p.Name, Arch: p.Arch()}
	}
	if p.Version == "" {
		return pkg, Version{}, nil
	}

	ver, ok := pkg.FindVersion(p.Version)
	if !ok {
		return pkg, Version{}, &NotFoundError{Name: p.Name, Arch: pkg.Arch(), Version: p.Version}
	}
	return pkg, ver, nil
}

// vendor derives the PURL namespace from the origin of the first non-status
// index file that carries any version of p.
func (p Package) vendor() string {
	for v := range p.Versions().Seq() {
		for vf := range v.Files().Seq() {
			if f := vf.File(); !f.IsStatus() && f.Origin() != "" {
				return strings.ToLower(f.Origin())
			}
		}
	}
	return DefaultVendor
}

func buildPURL(vendor, name, version, arch, distro string) string {
	var qualifiers packageurl.Qualifiers
	if arch != "" {
		qualifiers = append(qualifiers, packageurl.Qualifier{Key: "arch", Value: arch})
	}
	if distro != "" {
		qualifiers = append(qualifiers, packageurl.Qualifier{Key: "distro", Value: distro})
	}
	return packageurl.NewPackageURL(packageurl.TypeDebian, vendor, name, version, qualifiers, "").ToString()
}
