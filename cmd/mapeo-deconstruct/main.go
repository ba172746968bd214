package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/digidem/mapeo-config-deconstructor/internal/cli"
	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(deconstruct.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(deconstruct.ExitCodeForError(err))
	}
}
