package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/galaplate/petitions/bootstrap"
	"github.com/galaplate/petitions/console"
	"github.com/galaplate/petitions/logger"

	_ "github.com/galaplate/petitions/db/migrations"
	_ "github.com/galaplate/petitions/db/seeders"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bootstrap.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "console" {
		args = args[1:]
	}

	if err := console.NewKernel().Run(ctx, args); err != nil {
		logger.Error("command failed", map[string]any{"args": args, "error": err.Error()})
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		logger.Close()
		os.Exit(1)
	}
}
