package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dependsInstalled bool

var dependsCmd = &cobra.Command{
	Use:   "depends <package>[:arch]...",
	Short: "Print the dependencies of the candidate version",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, arg := range args {
			p, err := findPackage(arg)
			if err != nil {
				return err
			}
			v, ok := cache.Policy.CandidateVersion(p)
			if dependsInstalled {
				v, ok = p.CurrentVersion()
			}
			if !ok {
				return fmt.Errorf("%s has no version to inspect", p.FullName())
			}

			fmt.Fprintln(out, v)
			for deps := v.Dependencies(); !deps.AtEnd(); deps.Advance() {
				d, err := deps.Current()
				if err != nil {
					return err
				}
				// A leading "|" marks an alternative to the next line.
				or := " "
				if d.IsOr() {
					or = "|"
				}
				target := d.TargetPackage().Name()
				if d.CompType() != "" {
					target += " (" + d.CompType() + " " + d.TargetVersion() + ")"
				}
				fmt.Fprintf(out, " %s%s: %s\n", or, d.DepType(), target)
			}
		}
		return nil
	},
}

var rdependsCmd = &cobra.Command{
	Use:   "rdepends <package>[:arch]...",
	Short: "Print the versions that depend on a package",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, arg := range args {
			p, err := findPackage(arg)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, p.FullName())
			fmt.Fprintln(out, "Reverse Depends:")
			for _, d := range p.ReverseDependencies() {
				fmt.Fprintf(out, "  %s %s: %s\n", d.ParentVersion(), d.DepType(), d)
			}
		}
		return nil
	},
}

func init() {
	dependsCmd.Flags().BoolVar(&dependsInstalled, "installed", false, "inspect the installed version instead of the candidate")
	rootCmd.AddCommand(dependsCmd)
	rootCmd.AddCommand(rdependsCmd)
}
