package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vkm-labs/viewgen/internal/cli"
	"github.com/vkm-labs/viewgen/pkg/viewgen"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(viewgen.ExitPanic)
		}
	}()

	if os.Getenv("VIEWGEN_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(viewgen.ExitCodeForError(err))
	}
}
