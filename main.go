package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/joho/godotenv"

	"github.com/apiconf/ndu/api"
	"github.com/apiconf/ndu/internal/agent"
	"github.com/apiconf/ndu/internal/config"
	"github.com/apiconf/ndu/internal/directory"
	"github.com/apiconf/ndu/internal/history"
	"github.com/apiconf/ndu/internal/log"
	"github.com/apiconf/ndu/internal/maps"
	"github.com/apiconf/ndu/internal/scrape"
	"github.com/apiconf/ndu/internal/session"
	"github.com/apiconf/ndu/internal/tools"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	logger := log.New(log.Config{
		Level: cfg.LogLevel(),
		JSON:  cfg.Environment == "production",
	})
	logger.Info("configuration loaded", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
	if g == nil {
		return fmt.Errorf("failed to initialize genkit")
	}

	dir, err := directory.New()
	if err != nil {
		return fmt.Errorf("load conference directory: %w", err)
	}

	var mapsClient *maps.Client
	if cfg.MapsAPIKey != "" {
		mapsClient, err = maps.New(cfg.MapsAPIKey)
		if err != nil {
			return fmt.Errorf("init maps client: %w", err)
		}
	} else {
		logger.Warn("GOOGLE_MAPS_API_KEY not set, directions tool will degrade")
	}

	scraper, err := scrape.New(cfg.Scraper, logger)
	if err != nil {
		return fmt.Errorf("init scraper: %w", err)
	}

	kitCfg := tools.KitConfig{
		Directory:  dir,
		Scraper:    scraper,
		Conference: cfg.Conference,
		Logger:     logger,
	}
	if mapsClient != nil {
		kitCfg.Maps = mapsClient
	}
	kit, err := tools.NewKit(kitCfg)
	if err != nil {
		return fmt.Errorf("init tool kit: %w", err)
	}
	if err := kit.Register(g); err != nil {
		return fmt.Errorf("register tools: %w", err)
	}

	contexts := session.NewStore(cfg.MaxHistoryMessages)

	store, err := history.NewFileStore(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("init history store: %w", err)
	}
	cache, err := history.New(store, history.WithCap(cfg.HistoryCap))
	if err != nil {
		return fmt.Errorf("init history cache: %w", err)
	}

	a, err := agent.New(agent.NewGenerator(g, cfg), contexts, cfg.Conference, logger)
	if err != nil {
		return fmt.Errorf("init agent: %w", err)
	}

	server := api.NewServer(cfg, a, cache, contexts, dir, logger)
	return server.Run(ctx, cfg.Addr)
}
