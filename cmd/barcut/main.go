package main

import (
	"os"

	"github.com/piwi3910/barcut/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
