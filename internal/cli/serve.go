package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/kisan-depin/dmrv/internal/api"
	"github.com/kisan-depin/dmrv/pkg/config"
	"github.com/kisan-depin/dmrv/pkg/evidence"
	"github.com/kisan-depin/dmrv/pkg/report"
	"github.com/kisan-depin/dmrv/pkg/sentinel"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr string // listen address override
}

// newServeCmd creates the serve command for the HTTP API server.
func newServeCmd(cfg *config.Config) *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the D-MRV HTTP API server",
		Long: `Serve starts the HTTP API exposing photo analysis, evidence rendering,
the farmer knowledge base, and stored verification reports.

Report storage picks the strongest configured backend: MongoDB when a
URI is set, then Redis, then in-process memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	addr := opts.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	store, err := openReportStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	c, err := openCache(cfg, false)
	if err != nil {
		return err
	}
	defer c.Close()

	var fetcher sentinel.Fetcher
	if cfg.Sentinel.Endpoint != "" {
		fetcher = sentinel.NewClient(cfg.Sentinel.Endpoint)
	}

	server := api.NewServer(api.Config{
		Runner:         evidence.NewRunner(c, nil, fetcher),
		Reports:        store,
		Agent:          newAgent(cfg),
		OutputDir:      cfg.Output.Dir,
		QualifyNames:   true,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// openReportStore builds the strongest configured report backend.
func openReportStore(ctx context.Context, cfg *config.Config) (report.Store, error) {
	if cfg.Mongo.URI != "" {
		return report.NewMongoStore(ctx, report.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	}
	if cfg.Redis.Addr != "" {
		return report.NewRedisStore(ctx, report.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return report.NewMemoryStore(), nil
}
