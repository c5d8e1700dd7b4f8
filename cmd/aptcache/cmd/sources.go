package cmd

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/aptcache/internal/core"
	"github.com/git-pkgs/aptcache/vercmp"
)

var sourcesArchive string

type sourceVersion struct {
	name, version string
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List source packages as src=version",
	Long: `List every source package and version the binary packages were built
from. With --archive, only versions found in index files of that archive
(suite or codename) are considered.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		seen := make(map[sourceVersion]bool)
		for p := range cache.AllPackages().Seq() {
			for v := range p.Versions().Seq() {
				if sourcesArchive != "" && !inArchive(v, sourcesArchive) {
					continue
				}
				seen[sourceVersion{v.SourcePackage(), v.SourceVersion()}] = true
			}
		}

		list := make([]sourceVersion, 0, len(seen))
		for sv := range seen {
			list = append(list, sv)
		}
		slices.SortFunc(list, func(a, b sourceVersion) int {
			return cmp.Or(cmp.Compare(a.name, b.name), vercmp.Compare(a.version, b.version))
		})

		out := cmd.OutOrStdout()
		for _, sv := range list {
			fmt.Fprintf(out, "%s=%s\n", sv.name, sv.version)
		}
		return nil
	},
}

func inArchive(v core.Version, archive string) bool {
	for vf := range v.Files().Seq() {
		if f := vf.File(); f.Archive() == archive || f.Codename() == archive {
			return true
		}
	}
	return false
}

func init() {
	sourcesCmd.Flags().StringVar(&sourcesArchive, "archive", "", "only versions from this suite or codename")
	rootCmd.AddCommand(sourcesCmd)
}
