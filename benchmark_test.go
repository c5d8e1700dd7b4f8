package aptcache_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/git-pkgs/aptcache"
	_ "github.com/git-pkgs/aptcache/all"
)

// writeBenchIndex writes a Packages index of n packages, each with two
// versions and a dependency on its predecessor.
func writeBenchIndex(b *testing.B, n int) []aptcache.Source {
	b.Helper()
	var sb strings.Builder
	for i := range n {
		for _, ver := range []string{"1.0-1", "1.1-1"} {
			fmt.Fprintf(&sb, "Package: pkg%d\nVersion: %s\nArchitecture: amd64\n", i, ver)
			if i > 0 {
				fmt.Fprintf(&sb, "Depends: pkg%d (>= 1.0)\n", i-1)
			}
			fmt.Fprintf(&sb, "Description: benchmark package %d\n\n", i)
		}
	}
	path := filepath.Join(b.TempDir(), "Packages")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		b.Fatal(err)
	}
	return []aptcache.Source{{Path: path}}
}

func BenchmarkLoad(b *testing.B) {
	sources := writeBenchIndex(b, 5000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := aptcache.Load(ctx, sources); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCandidateVersion(b *testing.B) {
	u, err := aptcache.Load(context.Background(), writeBenchIndex(b, 5000))
	if err != nil {
		b.Fatal(err)
	}
	pol := aptcache.NewPolicy(nil)
	pkgs := u.AllPackages().Collect()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, p := range pkgs {
			pol.CandidateVersion(p)
		}
	}
}
