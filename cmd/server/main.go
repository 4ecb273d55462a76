// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/quanty-ai/quanty/internal/app"
	"github.com/quanty-ai/quanty/internal/config"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run serves until shutdown and closes every component on the way out.
func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	slog.SetDefault(cfg.Log.NewLogger(os.Stderr))

	a, err := app.New(cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to build components: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("failed to close components", "error", err)
		}
	}()

	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	return a.Serve(ctx)
}
