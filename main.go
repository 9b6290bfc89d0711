package main

import (
	"fmt"
	"os"

	"github.com/shroud-cli/shroud/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(cmd.ExitCode())
}
