package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/aptcache/internal/core"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the loaded index files and universe totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		counts := make(map[core.FileID]int)
		for p := range cache.AllPackages().Seq() {
			for v := range p.Versions().Seq() {
				for vf := range v.Files().Seq() {
					counts[vf.File().ID()]++
				}
			}
		}

		out := cmd.OutOrStdout()
		for f := range cache.PackageFiles().Seq() {
			fmt.Fprintf(out, "%s\n", f.FileName())
			fmt.Fprintf(out, "  type: %s\n", f.IndexType())
			if rel := f.ReleaseString(); rel != "" {
				fmt.Fprintf(out, "  release: %s\n", rel)
			}
			fmt.Fprintf(out, "  versions: %d\n", counts[f.ID()])
		}

		s := cache.Stats()
		fmt.Fprintf(out, "%d files, %d packages, %d versions, %d dependencies, %d version files\n",
			s.PackageFiles, s.Packages, s.Versions, s.Dependencies, s.VersionFiles)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)
}
