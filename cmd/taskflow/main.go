package main

import (
	"os"

	"taskflow/cmd/taskflow/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
