// Package main is the entry point for the lottokeeper CLI.
package main

import (
	"os"

	"github.com/lottokeeper/lottokeeper/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
