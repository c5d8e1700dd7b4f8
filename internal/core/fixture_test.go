package core

import "testing"

const (
	curlStanza = `Package: curl
Version: 7.88.1-10
Architecture: amd64
Maintainer: Alessandro Ghedini <ghedo@debian.org>
Priority: optional
Section: web
Filename: pool/main/c/curl/curl_7.88.1-10_amd64.deb
SHA256: 1f3c1b6b2a7cbd2a4b2b0a41c0f4e6a7c1c5d9a0c4a1f1b3b7d5e3f2a1b0c9d8
Homepage: https://curl.se/
Description: command line tool for transferring data with URL syntax
 curl is a command line tool for transferring data with URL syntax,
 supporting DICT, FILE, FTP, FTPS, GOPHER, HTTP and HTTPS.
`
	libcStanza = `Package: libc6
Version: 2.36-9
Architecture: amd64
Maintainer: GNU Libc Maintainers <debian-glibc@lists.debian.org>
Section: libs
Source: glibc
Filename: pool/main/g/glibc/libc6_2.36-9_amd64.deb
Description: GNU C Library: Shared libraries
 Contains the standard libraries that are used by nearly all programs on
 the system.
`
	libcI386Stanza = `Package: libc6
Version: 2.36-9
Architecture: i386
Maintainer: GNU Libc Maintainers <debian-glibc@lists.debian.org>
Section: libs
Source: glibc
Description: GNU C Library: Shared libraries
`
	libcurlStanza = `Package: libcurl4
Version: 7.88.1-10
Architecture: amd64
Source: curl
Description: easy-to-use client-side URL transfer library (OpenSSL flavour)
`
	curlStatusStanza = `Package: curl
Status: install ok installed
Version: 7.88.1-10
Architecture: amd64
Maintainer: Alessandro Ghedini <ghedo@debian.org>
Description: command line tool for transferring data with URL syntax
`
)

// stanzaData concatenates stanzas the way an index file separates them and
// returns the locator of each.
func stanzaData(stanzas ...string) ([]byte, [][2]int) {
	var data []byte
	var locs [][2]int
	for _, s := range stanzas {
		locs = append(locs, [2]int{len(data), len(s)})
		data = append(data, s...)
		data = append(data, '\n')
	}
	return data, locs
}

var bookwormMain = PackageFileInfo{
	FileName:     "/var/lib/apt/lists/deb.debian.org_debian_dists_bookworm_main_binary-amd64_Packages",
	Archive:      "stable",
	Version:      "12.5",
	Origin:       "Debian",
	Codename:     "bookworm",
	Label:        "Debian",
	Site:         "deb.debian.org",
	Component:    "main",
	Architecture: "amd64",
	IndexType:    IndexTypePackages,
	BaseURI:      "http://deb.debian.org/debian",
}

var statusFile = PackageFileInfo{
	FileName:  "/var/lib/dpkg/status",
	IndexType: IndexTypeStatus,
}

// newTestUniverse builds a small amd64 universe with an i386 foreign
// architecture:
//
//	curl:amd64     7.88.1-10 (installed) -> libc6, libcurl4, awk (virtual)
//	libc6:amd64    2.36-9
//	libc6:i386     2.36-9
//	libcurl4:amd64 7.88.1-10
//	bar:amd64      no versions
func newTestUniverse(t testing.TB) *Universe {
	t.Helper()

	b := NewBuilder(WithNativeArch("amd64"), WithForeignArchs("i386"))

	data, locs := stanzaData(curlStanza, libcStanza, libcurlStanza, libcI386Stanza)
	mainFile := b.AddPackageFile(bookwormMain, data)
	status, statusLocs := stanzaData(curlStatusStanza)
	st := b.AddPackageFile(statusFile, status)

	curl := b.Package("curl", "amd64")
	curlVer, _ := b.AddVersion(curl, VersionSpec{Version: "7.88.1-10", Arch: "amd64", Section: "web", PriorityType: "optional"})
	b.AddVersionFile(curlVer, mainFile, locs[0][0], locs[0][1])
	b.AddVersionFile(curlVer, st, statusLocs[0][0], statusLocs[0][1])
	b.SetCurrent(curlVer)
	b.AddDependency(curlVer, DependencySpec{TargetName: "libc6", TargetVersion: "2.34", CompType: ">=", DepType: Depends})
	b.AddDependency(curlVer, DependencySpec{TargetName: "libcurl4", TargetVersion: "7.88.1-10", CompType: "=", DepType: Depends})
	b.AddDependency(curlVer, DependencySpec{TargetName: "awk", DepType: Recommends})

	libc := b.Package("libc6", "amd64")
	libcVer, _ := b.AddVersion(libc, VersionSpec{Version: "2.36-9", Arch: "amd64", Section: "libs", SourcePackage: "glibc"})
	b.AddVersionFile(libcVer, mainFile, locs[1][0], locs[1][1])

	libcurl := b.Package("libcurl4", "amd64")
	libcurlVer, _ := b.AddVersion(libcurl, VersionSpec{Version: "7.88.1-10", Arch: "amd64", SourcePackage: "curl"})
	b.AddVersionFile(libcurlVer, mainFile, locs[2][0], locs[2][1])

	libc386 := b.Package("libc6", "i386")
	libc386Ver, _ := b.AddVersion(libc386, VersionSpec{Version: "2.36-9", Arch: "i386", Section: "libs", SourcePackage: "glibc"})
	b.AddVersionFile(libc386Ver, mainFile, locs[3][0], locs[3][1])

	b.Package("bar", "amd64")

	return b.Build()
}
