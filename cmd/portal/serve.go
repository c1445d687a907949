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

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"liquidityPortal/internal/chain"
	"liquidityPortal/internal/config"
	"liquidityPortal/internal/handler"
	"liquidityPortal/internal/metrics"
	"liquidityPortal/internal/stats"
	"liquidityPortal/internal/watcher"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	var chainID uint64
	id, err := chainClient.GetChainID(ctx)
	switch {
	case err != nil:
		logger.Warn("chain id unavailable", zap.Error(err))
	case !id.IsUint64():
		logger.Warn("chain id does not fit in uint64", zap.String("chain_id", id.String()))
	default:
		chainID = id.Uint64()
	}

	m := metrics.New()
	reader, err := newReader(cfg, chainClient, m, logger)
	if err != nil {
		return err
	}

	sink, closeSinks, err := openSinks(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSinks()

	board := stats.NewBoard(nil)
	poller := watcher.NewPoller(watcher.Config{
		ChainID:  chainID,
		Interval: cfg.PollInterval,
	}, reader, board, sink, m, logger.Named("poller"))

	srv, err := handler.New(handler.Options{
		Version:     version,
		Pool:        reader.Address().Hex(),
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     m.Handler(),
	}, board, logger.Named("http"))
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("portal start",
		zap.String("rpc", cfg.RPCURL),
		zap.String("pool", reader.Address().Hex()),
		zap.Uint64("chain_id", chainID),
		zap.String("listen", cfg.Listen),
		zap.Duration("poll_interval", cfg.PollInterval),
		zap.String("out", cfg.Out),
		zap.Bool("postgres", cfg.PGDSN != ""),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return poller.Run(ctx)
	})
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
		return nil
	})

	return g.Wait()
}
