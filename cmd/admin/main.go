package main

import (
	"context"
	"os"

	"github.com/fadedpez/bankroll/internal/logging"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		logging.Default.Error("%v", err)
		os.Exit(1)
	}
}
