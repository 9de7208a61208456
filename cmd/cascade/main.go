package main

import (
	"fmt"
	"os"

	"github.com/cascade-lang/cascade/internal/cli/commands"
)

func main() {
	rootCmd := commands.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
