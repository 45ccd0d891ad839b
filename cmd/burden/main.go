package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yildizm/burden/internal/cli"
)

// Build variables set by ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, version, commit, date, os.Args[1:])
	stop()
	os.Exit(code)
}
