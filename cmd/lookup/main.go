package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/wcarank/internal/lookupcli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := lookupcli.NewCommand().ExecuteContext(ctx); err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
