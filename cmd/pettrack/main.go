package main

import (
	"os"

	"pettrack/cmd/pettrack/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
