// Package main is the entry point for the fmx CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"

	"github.com/eykd/fmx/cmd"
)

func main() {
	// Create a context that is cancelled on SIGINT (Ctrl+C).
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := fang.Execute(ctx, cmd.Root(),
		fang.WithVersion(cmd.BuildVersion()),
		fang.WithoutManpage(),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			fmt.Fprint(w, cmd.FormatError(err))
		}),
	)
	if err != nil {
		cancel()
		os.Exit(cmd.ExitCodeFromError(err))
	}
}
