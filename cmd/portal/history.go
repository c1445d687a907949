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
	"liquidityPortal/internal/storage"
	"liquidityPortal/internal/storage/postgres"
)

func runHistory(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	address, err := parsePool(cfg.Pool)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		snap  model.Snapshot
		found bool
	)
	switch {
	case cfg.PGDSN != "":
		if cfg.RPCURL == "" {
			return fmt.Errorf("rpc url is required to resolve the chain id")
		}
		chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer chainClient.Close()
		chainID, err := chainClient.GetChainID(ctx)
		if err != nil {
			return fmt.Errorf("get chain id: %w", err)
		}

		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		snap, found, err = store.LatestSnapshot(ctx, chainID.Uint64(), address.Hex())
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
	case cfg.Out != "":
		snapshots, err := storage.NewJsonlStorage(cfg.Out).ReadSnapshots()
		if err != nil {
			return err
		}
		snap, found = latestForPool(snapshots, address.Hex())
	default:
		return fmt.Errorf("either out or pg-dsn is required")
	}

	if !found {
		logger.Info("no snapshot stored", zap.String("pool", address.Hex()))
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func latestForPool(snapshots []model.Snapshot, pool string) (model.Snapshot, bool) {
	for i := len(snapshots) - 1; i >= 0; i-- {
		if snapshots[i].Pool == pool {
			return snapshots[i], true
		}
	}
	return model.Snapshot{}, false
}
