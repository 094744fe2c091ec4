package main

import (
	"os"

	"gitwrap.dev/gitwrap/internal/cli"
	"gitwrap.dev/gitwrap/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		output.NewSplog().Error("%v", err)
		os.Exit(1)
	}
}
