package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/chairside/internal/cli"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{}
	defer app.Close()

	// Detect interactive terminal: the bare command opens the dashboard only
	// when both ends are a TTY.
	app.IsInteractive = func() bool {
		return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
	}

	// Services are wired from config in the root command's pre-run hook.
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
