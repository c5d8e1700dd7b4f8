package main

import "github.com/git-pkgs/aptcache/cmd/aptcache/cmd"

func main() {
	cmd.Execute()
}
