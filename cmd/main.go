package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytmeta/internal/catalog"
	"github.com/desertthunder/ytmeta/internal/normalize"
	"github.com/desertthunder/ytmeta/internal/server"
	"github.com/desertthunder/ytmeta/internal/services"
	"github.com/desertthunder/ytmeta/internal/shared"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	configPath := defaultConfigPath
	if p, ok := os.LookupEnv("YTMETA_CONFIG"); ok && p != "" {
		configPath = p
	}

	config, err := loadConfig(configPath, ".env")
	if err != nil {
		logger.Fatal("failed to load configuration", "path", configPath, "error", err)
	}
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Log.Level))

	metrics := server.NewMetrics()
	svc, err := newService(config, logger, metrics)
	if err != nil {
		logger.Fatal("failed to create service", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Service:    svc,
		Metrics:    metrics,
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.app().Run(ctx, os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}

// loadConfig reads the config file when it exists, falling back to defaults, then applies env overrides.
func loadConfig(path string, envFiles ...string) (*shared.Config, error) {
	config := shared.DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		if config, err = shared.LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if err := config.LoadEnv(envFiles...); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// newService wires the catalog client and parser described by config into a [services.Service].
func newService(config *shared.Config, logger *log.Logger, metrics *server.Metrics) (*services.Service, error) {
	mode, err := normalize.ParseMode(config.Normalize.Mode)
	if err != nil {
		return nil, err
	}

	client := catalog.NewClient(catalog.ClientOpts{
		BaseURL:   config.Catalog.BaseURL,
		AuthFile:  config.Catalog.AuthFile,
		Token:     config.Catalog.Token,
		Timeout:   config.Catalog.RequestTimeout(),
		RateLimit: config.Catalog.RateLimit,
		Burst:     config.Catalog.Burst,
		Logger:    logger,
	})

	parser := normalize.NewParser(
		normalize.WithMode(mode),
		normalize.WithArtistFallback(config.Normalize.ArtistFallback),
	)

	opts := services.Opts{
		Parser:             parser,
		Logger:             logger,
		RelatedArtistLimit: config.Service.RelatedArtistLimit,
		ConcurrentRelated:  config.Service.ConcurrentRelated,
		BatchConcurrency:   config.Service.BatchConcurrency,
	}
	if metrics != nil {
		opts.OnDegraded = metrics.RecordDegraded
	}

	return services.NewService(client, opts), nil
}
