package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/aptcache"
)

var showURLs bool

var showCmd = &cobra.Command{
	Use:   "show <package>[:arch]...",
	Short: "Print the index records of every version of a package",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, arg := range args {
			p, err := findPackage(arg)
			if err != nil {
				return err
			}
			if p.IsVirtual() {
				return fmt.Errorf("%s is a virtual package", p.FullName())
			}
			for versions := p.Versions(); !versions.AtEnd(); versions.Advance() {
				v, err := versions.Current()
				if err != nil {
					return err
				}
				vf, err := v.Files().Current()
				if err != nil {
					return err
				}
				fmt.Fprint(out, strings.TrimRight(vf.Parser().Raw(), "\n")+"\n")
				if showURLs {
					urls := aptcache.BuildURLs(aptcache.DebianURLs(), v)
					keys := make([]string, 0, len(urls))
					for k := range urls {
						keys = append(keys, k)
					}
					sort.Strings(keys)
					for _, k := range keys {
						fmt.Fprintf(out, "X-URL-%s: %s\n", k, urls[k])
					}
				}
				fmt.Fprintln(out)
			}
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showURLs, "urls", false, "append registry, download, docs and purl URLs")
	rootCmd.AddCommand(showCmd)
}
