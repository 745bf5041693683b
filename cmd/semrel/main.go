package main

import (
	"os"

	"github.com/ariel-frischer/semrel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
