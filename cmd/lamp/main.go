// Command lamp turns circuit netlists into schematic layouts, SVG
// previews, and pen plotter programs.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Naivedya-sahu/lamp-v2/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch err := cli.Execute(ctx); {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130 // interrupted, shell convention
	default:
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
}
