package core

import (
	"fmt"
	"strings"
)

// VersionFile ties a version to the index file that advertised it.
type VersionFile struct {
	u  *Universe
	id int32
}

var emptyVersionFile = versionFileRecord{version: none, file: none}

func versionFileView(u *Universe, id int32) VersionFile {
	return VersionFile{u: u, id: id}
}

func (vf VersionFile) rec() *versionFileRecord {
	if vf.u == nil {
		return &emptyVersionFile
	}
	return &vf.u.verFiles[vf.id]
}

// Valid reports whether vf refers to a version-file.
func (vf VersionFile) Valid() bool {
	return vf.u != nil
}

// Version returns the version vf belongs to.
func (vf VersionFile) Version() Version {
	r := vf.rec()
	if r.version == none {
		return Version{}
	}
	return Version{u: vf.u, id: r.version}
}

// PackageFile returns a cursor positioned on the index file behind vf.
func (vf VersionFile) PackageFile() *PackageFileCursor {
	r := vf.rec()
	if r.file == none {
		return newCursor[PackageFile](vf.u, "package file", nil, packageFileView)
	}
	return newCursor(vf.u, "package file", []int32{r.file}, packageFileView)
}

// File returns the index file behind vf directly.
func (vf VersionFile) File() PackageFile {
	r := vf.rec()
	if r.file == none {
		return PackageFile{}
	}
	return PackageFile{u: vf.u, id: r.file}
}

// Locator returns the byte offset and length of vf's stanza inside its
// index file.
func (vf VersionFile) Locator() (offset, size int) {
	r := vf.rec()
	return r.offset, r.size
}

// Parser returns a RecordParser for vf's stanza.
func (vf VersionFile) Parser() RecordParser {
	r := vf.rec()
	if r.file == none {
		return RecordParser{}
	}
	data := vf.u.files[r.file].data
	end := r.offset + r.size
	if r.offset < 0 || end > len(data) || r.offset > end {
		return RecordParser{}
	}
	return RecordParser{stanza: data[r.offset:end]}
}

// PackageFile is a view of one index file's provenance metadata.
type PackageFile struct {
	u  *Universe
	id int32
}

var emptyPackageFile packageFileRecord

func packageFileView(u *Universe, id int32) PackageFile {
	return PackageFile{u: u, id: id}
}

func (f PackageFile) rec() *packageFileRecord {
	if f.u == nil {
		return &emptyPackageFile
	}
	return &f.u.files[f.id]
}

// Valid reports whether f refers to a package file.
func (f PackageFile) Valid() bool {
	return f.u != nil
}

// ID returns the arena index of f.
func (f PackageFile) ID() FileID {
	return FileID(f.id)
}

// Info returns a copy of all provenance fields.
func (f PackageFile) Info() PackageFileInfo {
	return f.rec().PackageFileInfo
}

func (f PackageFile) FileName() string     { return f.rec().FileName }
func (f PackageFile) Archive() string      { return f.rec().Archive }
func (f PackageFile) Version() string      { return f.rec().Version }
func (f PackageFile) Origin() string       { return f.rec().Origin }
func (f PackageFile) Codename() string     { return f.rec().Codename }
func (f PackageFile) Label() string        { return f.rec().Label }
func (f PackageFile) Site() string         { return f.rec().Site }
func (f PackageFile) Component() string    { return f.rec().Component }
func (f PackageFile) Architecture() string { return f.rec().Architecture }
func (f PackageFile) IndexType() string    { return f.rec().IndexType }
func (f PackageFile) BaseURI() string      { return f.rec().BaseURI }

func (f PackageFile) NotAutomatic() bool {
	return f.rec().NotAutomatic
}

func (f PackageFile) ButAutomaticUpgrades() bool {
	return f.rec().ButAutomaticUpgrades
}

// IsStatus reports whether f is the dpkg status file, i.e. the record of
// installed packages.
func (f PackageFile) IsStatus() bool {
	return f.rec().IndexType == IndexTypeStatus
}

// ReleaseString renders the release fields in apt-cache policy notation,
// e.g. "v=12.5,o=Debian,a=stable,n=bookworm,l=Debian,c=main,b=amd64".
func (f PackageFile) ReleaseString() string {
	r := f.rec()
	var parts []string
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+value)
		}
	}
	add("v", r.Version)
	add("o", r.Origin)
	add("a", r.Archive)
	add("n", r.Codename)
	add("l", r.Label)
	add("c", r.Component)
	add("b", r.Architecture)
	return strings.Join(parts, ",")
}

// String describes f in the style of an apt-cache policy line. Files with
// incomplete release information are described by their file name alone.
func (f PackageFile) String() string {
	r := f.rec()
	if r.Site == "" || r.Origin == "" || r.Label == "" || r.Codename == "" || r.Architecture == "" {
		return r.FileName
	}
	base := r.BaseURI
	if base == "" {
		base = r.Site
	}
	return fmt.Sprintf("%s %s/%s %s (o:%s/l:%s/n:%s) (f:%s)",
		base, r.Archive, r.Component, r.Architecture, r.Origin, r.Label, r.Codename, r.FileName)
}
