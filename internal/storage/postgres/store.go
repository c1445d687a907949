package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"liquidityPortal/internal/model"
)

// Schema creates the snapshot table when missing.
const Schema = `
CREATE TABLE IF NOT EXISTS liquidity_snapshots (
	chain_id      BIGINT      NOT NULL,
	pool_address  TEXT        NOT NULL,
	block_number  BIGINT      NOT NULL,
	total_raw     NUMERIC(78) NOT NULL,
	reserved_raw  NUMERIC(78) NOT NULL,
	liquidity     TEXT        NOT NULL,
	reserved      TEXT        NOT NULL,
	utilization   TEXT        NOT NULL,
	fetched_at    TIMESTAMPTZ NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (chain_id, pool_address, block_number)
)`

// Store provides Postgres persistence for pool snapshots.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate applies Schema.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// PutSnapshots inserts or updates snapshots keyed by pool and block.
func (s *Store) PutSnapshots(ctx context.Context, snapshots []model.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, snap := range snapshots {
		batch.Queue(`
			INSERT INTO liquidity_snapshots (
				chain_id, pool_address, block_number, total_raw, reserved_raw,
				liquidity, reserved, utilization, fetched_at
			) VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8, $9::timestamptz)
			ON CONFLICT (chain_id, pool_address, block_number)
			DO UPDATE SET
				total_raw = EXCLUDED.total_raw,
				reserved_raw = EXCLUDED.reserved_raw,
				liquidity = EXCLUDED.liquidity,
				reserved = EXCLUDED.reserved,
				utilization = EXCLUDED.utilization,
				fetched_at = EXCLUDED.fetched_at
		`,
			int64(snap.ChainID),
			snap.Pool,
			int64(snap.Block),
			snap.TotalRaw,
			snap.ReservedRaw,
			snap.Liquidity,
			snap.Reserved,
			snap.Utilization,
			snap.FetchedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range snapshots {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LatestSnapshot returns the most recent snapshot for a pool.
func (s *Store) LatestSnapshot(ctx context.Context, chainID uint64, pool string) (model.Snapshot, bool, error) {
	if pool == "" {
		return model.Snapshot{}, false, fmt.Errorf("pool address required")
	}
	snap := model.Snapshot{ChainID: chainID, Pool: pool}
	var block int64
	row := s.pool.QueryRow(ctx, `
		SELECT block_number, total_raw::text, reserved_raw::text, liquidity, reserved, utilization,
			to_char(fetched_at AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		FROM liquidity_snapshots
		WHERE chain_id=$1 AND pool_address=$2
		ORDER BY block_number DESC, fetched_at DESC
		LIMIT 1
	`, int64(chainID), pool)
	if err := row.Scan(&block, &snap.TotalRaw, &snap.ReservedRaw, &snap.Liquidity, &snap.Reserved, &snap.Utilization, &snap.FetchedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Snapshot{}, false, nil
		}
		return model.Snapshot{}, false, err
	}
	snap.Block = uint64(block)
	return snap, true, nil
}
