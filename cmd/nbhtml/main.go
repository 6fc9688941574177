package main

import (
	"fmt"
	"os"

	"github.com/bjaus/nbhtml/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "nbhtml:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
