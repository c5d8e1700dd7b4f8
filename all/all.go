// Package all imports all supported index formats.
//
// Import this package for its side effects to register all formats:
//
//	import (
//		"github.com/git-pkgs/aptcache"
//		_ "github.com/git-pkgs/aptcache/all"
//	)
//
//	// Now all index types can be loaded
//	types := aptcache.SupportedIndexTypes()
//	// ["Debian Package Index", "Debian dpkg status file"]
package all

import (
	_ "github.com/git-pkgs/aptcache/internal/index/packages"
	_ "github.com/git-pkgs/aptcache/internal/index/status"
)
