package main

import (
	"fmt"
	"os"

	"github.com/carbonfit/cfit/pkg/cli/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
