package main

import (
	"os"

	"github.com/jongio/escapehatch/cmd/escapehatch/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
