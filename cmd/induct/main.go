package main

import (
	"os"

	"github.com/induct-org/induct/cmd/induct/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
