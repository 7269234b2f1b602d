// Command pgquery parses PostgreSQL SQL and prints the parse tree, the
// referenced tables or the token stream.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}

// Execute runs the root command against os.Args.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
