package main

import (
	"os"

	"github.com/rustyeddy/foreclosure/cmd/foreclosure/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
