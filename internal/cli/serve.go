package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/deeds/internal/config"
	httpadapter "github.com/aretw0/deeds/pkg/adapters/http"
	"github.com/aretw0/deeds/pkg/adapters/telegram"
	"github.com/aretw0/deeds/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// ServeOptions configures Serve.
type ServeOptions struct {
	Config *config.Config
	Logger *slog.Logger
	// HTTP serves the JSON API on Config.HTTP.Addr.
	HTTP bool
	// Telegram runs the long polling bot with Config.Telegram.Token.
	Telegram bool
}

// Serve runs the enabled transports and the document watcher against one
// engine until ctx is done or one of them fails.
func Serve(ctx context.Context, opts ServeOptions) error {
	if !opts.HTTP && !opts.Telegram {
		return errors.New("nothing to serve: enable http or telegram")
	}
	cfg, logger := opts.Config, opts.Logger

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	srv, err := httpadapter.NewServer(nil,
		httpadapter.WithLogger(logger),
		httpadapter.WithGatherer(reg),
	)
	if err != nil {
		return err
	}

	stores, err := OpenStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	engine, err := NewEngine(cfg, logger, stores, metrics.Hooks(), srv.Hooks())
	if err != nil {
		return err
	}
	srv.Bot = engine

	g, gctx := errgroup.WithContext(ctx)

	if opts.HTTP {
		handler, err := srv.Handler()
		if err != nil {
			return err
		}
		httpServer := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			logger.Info("HTTP server listening", "address", cfg.HTTP.Addr, "document", cfg.Document.Path)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("could not stop server gracefully: %w", err)
			}
			logger.Info("HTTP server stopped")
			return nil
		})
	}

	if opts.Telegram {
		bot, err := telegram.New(cfg.Telegram.Token, engine,
			telegram.WithLogger(logger),
			telegram.WithTimeout(cfg.Telegram.Timeout),
		)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return bot.Run(gctx)
		})
	}

	if cfg.Document.Watch {
		g.Go(func() error {
			return engine.Watch(gctx)
		})
	}

	return handleExecutionError(g.Wait())
}
