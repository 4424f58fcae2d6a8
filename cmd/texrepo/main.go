package main

import (
	"errors"
	"fmt"
	"os"

	"texrepo/internal/faults"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errViolationsFound) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, errViolationsFound):
		return 1
	case errors.Is(err, faults.ErrLocked):
		return 3
	default:
		return 2
	}
}
