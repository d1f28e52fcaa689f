package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bakelabs/bake/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// An ExitError's status was already reported by the run itself.
		var exitErr *cmd.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "bake:", err)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
