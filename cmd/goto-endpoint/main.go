// goto-endpoint indexes the HTTP endpoints declared by Spring controllers and
// Feign clients and answers "where is this route handled?" from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		os.Exit(1)
	}
}
