package core

import (
	"fmt"
	"net/url"
	"strings"
)

// URLBuilder constructs URLs for a version. None of them are fetched.
type URLBuilder interface {
	Registry(v Version) string
	Download(v Version) string
	Documentation(v Version) string
	PURL(v Version) string
}

// BaseURLs provides a default URLBuilder implementation.
type BaseURLs struct {
	RegistryFn      func(v Version) string
	DownloadFn      func(v Version) string
	DocumentationFn func(v Version) string
	PURLFn          func(v Version) string
}

func (b *BaseURLs) Registry(v Version) string {
	if b.RegistryFn != nil {
		return b.RegistryFn(v)
	}
	return ""
}

func (b *BaseURLs) Download(v Version) string {
	if b.DownloadFn != nil {
		return b.DownloadFn(v)
	}
	return ""
}

func (b *BaseURLs) Documentation(v Version) string {
	if b.DocumentationFn != nil {
		return b.DocumentationFn(v)
	}
	return ""
}

func (b *BaseURLs) PURL(v Version) string {
	if b.PURLFn != nil {
		return b.PURLFn(v)
	}
	return v.PURL()
}

// DebianURLs returns the URL builder for the Debian archive and its web
// services.
func DebianURLs() URLBuilder {
	return &BaseURLs{
		RegistryFn: func(v Version) string {
			if !v.Valid() {
				return ""
			}
			suite := "sid"
			if f := firstRemoteFile(v); f.Valid() && f.Codename() != "" {
				suite = f.Codename()
			}
			return fmt.Sprintf("https://packages.debian.org/%s/%s", suite, url.PathEscape(v.Package().Name()))
		},
		DownloadFn: downloadURL,
		DocumentationFn: func(v Version) string {
			if !v.Valid() {
				return ""
			}
			return fmt.Sprintf("https://sources.debian.org/src/%s/%s/",
				url.PathEscape(v.SourcePackage()), url.PathEscape(v.SourceVersion()))
		},
	}
}

// downloadURL joins the archive root of the first file that carries v with
// the pool path from v's stanza.
func downloadURL(v Version) string {
	for vf := range v.Files().Seq() {
		f := vf.File()
		if f.IsStatus() || f.BaseURI() == "" {
			continue
		}
		name := vf.Parser().Filename()
		if name == "" {
			continue
		}
		return strings.TrimSuffix(f.BaseURI(), "/") + "/" + strings.TrimPrefix(name, "/")
	}
	return ""
}

func firstRemoteFile(v Version) PackageFile {
	for vf := range v.Files().Seq() {
		if f := vf.File(); !f.IsStatus() {
			return f
		}
	}
	return PackageFile{}
}

// BuildURLs returns a map of all non-empty URLs for a version.
// Keys are "registry", "download", "docs", and "purl".
func BuildURLs(urls URLBuilder, v Version) map[string]string {
	result := make(map[string]string)
	if s := urls.Registry(v); s != "" {
		result["registry"] = s
	}
	if s := urls.Download(v); s != "" {
		result["download"] = s
	}
	if s := urls.Documentation(v); s != "" {
		result["docs"] = s
	}
	if s := urls.PURL(v); s != "" {
		result["purl"] = s
	}
	return result
}
