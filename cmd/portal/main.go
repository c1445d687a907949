package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"liquidityPortal/internal/chain"
	"liquidityPortal/internal/config"
	"liquidityPortal/internal/pool"
	"liquidityPortal/internal/storage"
	"liquidityPortal/internal/storage/postgres"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:          "portal",
		Short:        "Liquidity pool landing page",
		SilenceUsage: true,
		Version:      version,
	}

	root.PersistentFlags().String("config", "", "config file path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page and poll the pool",
		RunE:  runServe,
	}
	addCommonFlags(serveCmd.Flags())
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	serveCmd.Flags().Duration("poll-interval", 15*time.Second, "pool read interval")
	serveCmd.Flags().StringSlice("cors-origins", []string{"*"}, "allowed CORS origins for the stats API")
	root.AddCommand(serveCmd)

	readCmd := &cobra.Command{
		Use:   "read",
		Short: "Read the pool once and print the stats",
		RunE:  runRead,
	}
	addCommonFlags(readCmd.Flags())
	root.AddCommand(readCmd)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Print the latest stored snapshot",
		RunE:  runHistory,
	}
	historyCmd.Flags().String("rpc", "", "EVM RPC URL (resolves chain id for Postgres lookups)")
	historyCmd.Flags().String("pool", config.DefaultPool, "liquidity pool address")
	historyCmd.Flags().String("out", "", "snapshot JSONL path")
	historyCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	historyCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.AddCommand(historyCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addCommonFlags(flags *pflag.FlagSet) {
	flags.String("rpc", "", "EVM RPC URL")
	flags.String("pool", config.DefaultPool, "liquidity pool address")
	flags.Int("max-retries", 3, "maximum retry attempts per read")
	flags.Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	flags.String("out", "", "optional snapshot JSONL path")
	flags.String("pg-dsn", "", "optional Postgres DSN for snapshots")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func parsePool(input string) (common.Address, error) {
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid pool address: %s", input)
	}
	return common.HexToAddress(input), nil
}

func newReader(cfg config.Config, chainClient *chain.Client, observer pool.Observer, logger *zap.Logger) (*pool.Reader, error) {
	address, err := parsePool(cfg.Pool)
	if err != nil {
		return nil, err
	}
	return pool.NewReader(pool.ReaderConfig{
		Address:      address,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, chainClient, observer, logger)
}

// openSinks returns the snapshot sink configured by out and pg-dsn plus a
// cleanup func. With neither set the sink discards everything.
func openSinks(ctx context.Context, cfg config.Config) (storage.Storage, func(), error) {
	var sinks storage.Multi
	cleanup := func() {}

	if cfg.Out != "" {
		sinks = append(sinks, storage.NewJsonlStorage(cfg.Out))
	}
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return nil, cleanup, fmt.Errorf("connect postgres: %w", err)
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, cleanup, err
		}
		sinks = append(sinks, store)
		cleanup = store.Close
	}

	if len(sinks) == 0 {
		return storage.Nop{}, cleanup, nil
	}
	return sinks, cleanup, nil
}
