package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// Interrupted runs already cleaned up; keep the exit quiet.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "dugout: %v\n", err)
		}
		os.Exit(1)
	}
}
