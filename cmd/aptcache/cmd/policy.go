package cmd

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/git-pkgs/aptcache/internal/core"
)

var policyCmd = &cobra.Command{
	Use:   "policy [package[:arch]...]",
	Short: "Print priorities of index files, or the version table of packages",
	Long: `Without arguments, print the priority of every index file. With package
names, print the installed and candidate version and every available version
with the priority each index file gives it, like apt-cache policy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			printFilePolicy(out)
			return nil
		}
		for _, arg := range args {
			p, err := findPackage(arg)
			if err != nil {
				return err
			}
			printPackagePolicy(out, p)
		}
		return nil
	},
}

func printFilePolicy(out io.Writer) {
	fmt.Fprintln(out, "Package files:")
	for files := cache.PackageFiles(); !files.AtEnd(); files.Advance() {
		f, _ := files.Current()
		fmt.Fprintf(out, "%5d %s\n", cache.Policy.FileTrust(f), f)
		if rel := f.ReleaseString(); rel != "" {
			fmt.Fprintf(out, "      release %s\n", rel)
		}
	}
}

func printPackagePolicy(out io.Writer, p core.Package) {
	installed := "(none)"
	cur, hasCur := p.CurrentVersion()
	if hasCur {
		installed = cur.VerStr()
	}
	candidate := "(none)"
	cand, ok := cache.Policy.CandidateVersion(p)
	if ok {
		candidate = cand.VerStr()
	}

	fmt.Fprintf(out, "%s:\n", p.FullName())
	fmt.Fprintf(out, "  Installed: %s\n", installed)
	fmt.Fprintf(out, "  Candidate: %s\n", candidate)
	fmt.Fprintln(out, "  Version table:")
	width := 0
	for v := range p.Versions().Seq() {
		width = max(width, runewidth.StringWidth(v.VerStr()))
	}
	for v := range p.Versions().Seq() {
		marker := "   "
		if hasCur && v.ID() == cur.ID() {
			marker = "***"
		}
		fmt.Fprintf(out, " %s %s %d\n", marker, runewidth.FillRight(v.VerStr(), width), cache.Policy.Priority(v))
		for vf := range v.Files().Seq() {
			fmt.Fprintf(out, "      %5d %s\n", cache.Policy.FilePriority(vf), vf.File())
		}
	}
}

func init() {
	rootCmd.AddCommand(policyCmd)
}
