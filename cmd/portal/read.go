package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"liquidityPortal/internal/chain"
	"liquidityPortal/internal/config"
	"liquidityPortal/internal/model"
	"liquidityPortal/internal/stats"
	"liquidityPortal/internal/storage"
	"liquidityPortal/internal/watcher"
)

func runRead(cmd *cobra.Command, _ []string) error {
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

	chainID, err := chainClient.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}
	if !chainID.IsUint64() {
		return fmt.Errorf("chain id does not fit in uint64: %s", chainID)
	}

	reader, err := newReader(cfg, chainClient, nil, logger)
	if err != nil {
		return err
	}

	sink, closeSinks, err := openSinks(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSinks()

	snap, _, err := readOnce(ctx, reader, chainID.Uint64(), sink, logger)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// readOnce performs one read round. A partial round yields a snapshot with the
// default stats and is not stored.
func readOnce(ctx context.Context, source watcher.Source, chainID uint64, sink storage.Storage, logger *zap.Logger) (model.Snapshot, bool, error) {
	res, err := source.ReadAll(ctx)
	if err != nil {
		logger.Warn("pool read incomplete", zap.Error(err))
	}

	derived := stats.Derive(res.Total.Raw, res.Reserved.Raw)
	snap := watcher.BuildSnapshot(chainID, source.Address(), res, derived)

	if !res.Total.Present() || !res.Reserved.Present() {
		return snap, false, nil
	}
	if err := sink.PutSnapshots(ctx, []model.Snapshot{snap}); err != nil {
		return snap, false, fmt.Errorf("store snapshot: %w", err)
	}
	return snap, true, nil
}
