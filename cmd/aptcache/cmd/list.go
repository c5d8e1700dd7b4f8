package cmd

import (
	"fmt"
	"io"
	"path"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/git-pkgs/aptcache/internal/core"
)

var (
	listUpgradable bool
	listVersions   bool
	listDescribe   bool
	listWidth      int
)

var listCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List packages with their installed and candidate versions",
	Long: `List every real package as name:arch @ installed -> candidate.

Examples:
  aptcache list
  aptcache list 'lib*'
  aptcache list --upgradable
  aptcache list --versions curl
  aptcache list --describe --width 120 'python3-*'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := "*"
		if len(args) == 1 {
			pattern = args[0]
		}
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		out := cmd.OutOrStdout()

		if listUpgradable {
			for _, bp := range cache.Upgradable(cmd.Context()) {
				if ok, _ := path.Match(pattern, bp.Name); ok {
					fmt.Fprintln(out, bp)
				}
			}
			return nil
		}

		if listDescribe {
			return describePackages(out, pattern)
		}

		for pkgs := cache.AllPackages(); !pkgs.AtEnd(); pkgs.Advance() {
			p, err := pkgs.Current()
			if err != nil {
				return err
			}
			if p.IsVirtual() {
				continue
			}
			if ok, _ := path.Match(pattern, p.Name()); !ok {
				continue
			}
			if !listVersions {
				cand, _ := cache.Policy.CandidateVersion(p)
				fmt.Fprintln(out, core.NewBinaryPackage(p, cand))
				continue
			}
			desc := cache.Describe(p)
			fmt.Fprintln(out, desc)
			for _, vi := range desc.Versions {
				fmt.Fprintf(out, "  %s\n", vi)
			}
		}
		return nil
	},
}

// describePackages prints one aligned line per package: name, candidate
// version and short description, cut to listWidth terminal columns.
func describePackages(out io.Writer, pattern string) error {
	type row struct{ name, version, desc string }
	var rows []row
	nameW, verW := 0, 0
	for p := range cache.AllPackages().Seq() {
		if p.IsVirtual() {
			continue
		}
		if ok, _ := path.Match(pattern, p.Name()); !ok {
			continue
		}
		v, ok := cache.Policy.CandidateVersion(p)
		if !ok {
			if v, ok = p.CurrentVersion(); !ok {
				v, _ = p.Versions().Current()
			}
		}
		r := row{name: p.FullName(), version: v.VerStr()}
		if vf, err := v.Files().Current(); err == nil {
			r.desc = vf.Parser().ShortDescription()
		}
		nameW = max(nameW, runewidth.StringWidth(r.name))
		verW = max(verW, runewidth.StringWidth(r.version))
		rows = append(rows, r)
	}
	for _, r := range rows {
		fmt.Fprintln(out, describeLine(r.name, r.version, r.desc, nameW, verW, listWidth))
	}
	return nil
}

func describeLine(name, version, desc string, nameW, verW, width int) string {
	line := runewidth.FillRight(name, nameW) + "  " + runewidth.FillRight(version, verW)
	room := width - runewidth.StringWidth(line) - 2
	if desc == "" || room <= 0 {
		return runewidth.Truncate(line, max(width, 0), "")
	}
	return line + "  " + runewidth.Truncate(desc, room, "…")
}

func init() {
	listCmd.Flags().BoolVarP(&listDescribe, "describe", "d", false, "print the short description of each package")
	listCmd.Flags().IntVar(&listWidth, "width", 80, "terminal columns for --describe")
	listCmd.Flags().BoolVarP(&listUpgradable, "upgradable", "u", false, "only installed packages with a newer candidate")
	listCmd.Flags().BoolVar(&listVersions, "versions", false, "print every version with its priority")
	rootCmd.AddCommand(listCmd)
}
