package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/cart"
	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/client"
	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/config"
	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/shop"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/logger"
)

func main() {
	cfg, err := config.LoadShop()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Logs go to stderr so they do not interleave with the shop's output.
	log := logger.NewWithWriter("shop", cfg.LogLevel, os.Stderr)

	api := client.New(cfg.APIURL, cfg.RequestTimeout, log)
	session := cart.NewSession(api, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := shop.New(api, session, log).Run(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		log.Error("shop error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
