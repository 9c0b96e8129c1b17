package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sljivkov/collateral-oracle/config"
	"github.com/sljivkov/collateral-oracle/handler"
	"github.com/sljivkov/collateral-oracle/logging"
	"github.com/sljivkov/collateral-oracle/oracle"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "collateral-oracle: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		envFile  = pflag.String("env-file", ".env", "path of an optional .env file")
		listen   = pflag.String("listen", "", "HTTP listen address, overrides ORACLE_LISTEN")
		logLevel = pflag.String("log-level", "", "log level, overrides ORACLE_LOG_LEVEL")
		mock     = pflag.String("mock-price", "", "serve every feed from memory at this answer")
	)
	pflag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		return err
	}

	var opts []config.Option
	if *listen != "" {
		opts = append(opts, config.WithListen(*listen))
	}
	if *logLevel != "" {
		opts = append(opts, config.WithLogLevel(*logLevel))
	}
	if *mock != "" {
		opts = append(opts, config.WithMockPrice(*mock))
	}

	cfg, err := config.NewConfig(opts...)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := newBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer b.close()

	registry := oracle.NewRegistry(cfg.OwnerAddress(), b.binder, oracle.WithLogger(logger))
	if err := seedFeeds(ctx, registry, b.binder, cfg, logger); err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	handler.New(e, registry, logger, handler.WithDomain(b.domain))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("listen", cfg.Listen), zap.Stringer("owner", registry.Owner()))
		if err := e.Start(cfg.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}
