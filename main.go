package main

import (
	"os"

	"github.com/talentforge/talentforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
