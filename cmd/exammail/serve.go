package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/exammail/internal/server"
	"github.com/dmitrymomot/exammail/internal/web"
	"github.com/dmitrymomot/exammail/pkg/health"
	"github.com/dmitrymomot/exammail/pkg/redis"
	"github.com/dmitrymomot/exammail/pkg/workspace"
)

func newServeCmd(e *env) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if address == "" {
				address = e.cfg.Server.Address
			}
			return serve(cmd.Context(), e, address)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "listen address (default: ADDRESS)")
	return cmd
}

func serve(ctx context.Context, e *env, address string) error {
	var (
		store  workspace.Store
		checks = health.Checks{}
		hooks  []server.Option
	)

	if url := e.cfg.Server.RedisURL; url != "" {
		client, err := redis.Open(ctx, url, redis.WithLogger(e.log))
		if err != nil {
			return err
		}
		store = workspace.NewRedis(client, workspace.WithRedisTTL(e.cfg.Server.UploadTTL))
		checks["redis"] = redis.Healthcheck(client)
		hooks = append(hooks, server.WithShutdownHook(redis.Shutdown(client)))
	} else {
		store = workspace.NewMemory(workspace.WithTTL(e.cfg.Server.UploadTTL))
		hooks = append(hooks, server.WithShutdownHook(func(context.Context) error {
			return store.Close()
		}))
	}

	srv := web.New(store, newDispatcher(e),
		web.WithLogger(e.log),
		web.WithColumns(e.columns),
		web.WithSheetName(e.cfg.Sheet.Name),
		web.WithMaxUploadSize(e.cfg.Server.MaxUploadSize),
		web.WithHealthChecks(checks),
	)

	opts := append([]server.Option{
		server.WithContext(ctx),
		server.WithAddress(address),
		server.WithLogger(e.log),
		server.WithShutdownTimeout(e.cfg.Server.ShutdownTimeout),
	}, hooks...)

	return server.Run(srv.Router(), opts...)
}
