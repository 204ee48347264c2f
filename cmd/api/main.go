// Command api runs the CulinaGlass JSON API: generative recipe search,
// pantry vision, culinary lessons, nutrition analysis and the chef
// assistant, all backed by a single generative provider.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/culinaglass/core/internal/application/kitchen"
	"github.com/culinaglass/core/internal/application/panels"
	"github.com/culinaglass/core/internal/infrastructure/ai/gemini"
	"github.com/culinaglass/core/internal/infrastructure/config"
	httpserver "github.com/culinaglass/core/internal/infrastructure/http"
	"github.com/culinaglass/core/internal/infrastructure/images"
	"github.com/culinaglass/core/internal/infrastructure/logging"
	"github.com/culinaglass/core/internal/ports/outbound"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.App)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	client := gemini.NewClient(cfg.AI.APIKey, logger,
		gemini.WithBaseURL(cfg.AI.BaseURL),
		gemini.WithModel(cfg.AI.Model),
		gemini.WithHTTPTimeout(cfg.AI.RequestTimeout),
	)

	synth := images.NewSynthesizer(images.Config{
		BaseURL: cfg.Images.BaseURL,
		Width:   cfg.Images.Width,
		Height:  cfg.Images.Height,
		Tags:    cfg.Images.Tags,
	})

	svc := kitchen.NewService(client, synth, logger)

	startChat := outbound.ChatStarter(func(systemInstruction string) outbound.ChatSession {
		return client.StartChat(systemInstruction)
	})

	newSet := func() *panels.Set {
		return panels.NewSet(svc, startChat, cfg.Chat, cfg.Cache.MaxEntries, logger)
	}

	server := httpserver.NewServer(cfg, logger, newSet)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		logger.Fatal("server failed", zap.Error(err))
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown incomplete", zap.Error(err))
	}
}
