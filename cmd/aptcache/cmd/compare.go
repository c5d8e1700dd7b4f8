package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/aptcache/vercmp"
)

var compareCmd = &cobra.Command{
	Use:   "compare <version> <version>",
	Short: "Compare two Debian version strings",
	Long: `Compare two version strings with dpkg ordering and print the relation.

Examples:
  aptcache compare 1.0 1.0~rc1
  aptcache compare 1:2.0 3.0`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b := args[0], args[1]
		for _, s := range args {
			if err := vercmp.Valid(s); err != nil {
				return err
			}
		}
		op := "="
		switch c := vercmp.Compare(a, b); {
		case c < 0:
			op = "<"
		case c > 0:
			op = ">"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", a, op, b)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
