package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytmeta/internal/server"
	"github.com/desertthunder/ytmeta/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP facade until the command context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.service()
	if err != nil {
		return err
	}

	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", shared.ErrInvalidArgument, cfg.Port)
	}

	router := server.NewRouter(svc, server.RouterOpts{
		CORSOrigin:   cfg.CORSOrigin,
		DefaultLimit: r.config.Service.DefaultLimit,
		Metrics:      r.metrics,
		Logger:       r.logger,
	})

	srv := server.NewServer(router, server.Opts{
		Addr:            cfg.Addr(),
		ShutdownTimeout: cfg.ShutdownGrace(),
		Logger:          r.logger,
	})

	return srv.Start(ctx)
}
