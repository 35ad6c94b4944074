// Package main is the entry point for the todo CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/duyki2208/todo-list/internal/backend/restapi"
	"github.com/duyki2208/todo-list/internal/cli"
	"github.com/duyki2208/todo-list/internal/commands"
	"github.com/duyki2208/todo-list/internal/config"
	"github.com/duyki2208/todo-list/internal/logging"
	"github.com/duyki2208/todo-list/internal/task"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create store factory
	factory := func(ctx context.Context, cfg *config.Config) (task.Store, error) {
		logger := logging.Setup(config.AppName, cfg.LogDir(), cfg.Debug)
		slog.SetDefault(logger)

		opts := []restapi.Option{restapi.WithLogger(logger)}
		if token := cfg.Token(); token != "" {
			opts = append(opts, restapi.WithToken(token))
		}
		return restapi.New(cfg.BaseURL, cfg.UserID, opts...)
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
