// Command epigen generates reflection and serialization code from class
// spec files.
package main

import (
	"os"

	"epigen/cmd/epigen/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
