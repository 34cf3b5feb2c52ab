package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tallylists/tally/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands print their own diagnostics; anything surfacing here
		// that isn't an ExitError is a usage or flag problem cobra
		// reported but didn't print.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
