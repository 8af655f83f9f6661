// Command splinify fits B-spline curves to CSV data, evaluates them and
// plots them as SVG.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// cobra has printed the error
		stop()
		os.Exit(1)
	}
}
