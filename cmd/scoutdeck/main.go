package main

import (
	"os"

	"github.com/hcallahan/scoutdeck/cmd/scoutdeck/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
