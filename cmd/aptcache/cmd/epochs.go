package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/aptcache/vercmp"
)

var epochsCmd = &cobra.Command{
	Use:   "epochs",
	Short: "List versions that carry an epoch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for p := range cache.AllPackages().Seq() {
			for v := range p.Versions().Seq() {
				if vercmp.HasEpoch(v.VerStr()) {
					fmt.Fprintln(out, v)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(epochsCmd)
}
