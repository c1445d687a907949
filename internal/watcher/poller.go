package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"liquidityPortal/internal/model"
	"liquidityPortal/internal/pool"
	"liquidityPortal/internal/stats"
	"liquidityPortal/internal/storage"
)

// Source reads both pool fields.
type Source interface {
	ReadAll(ctx context.Context) (pool.Result, error)
	Address() common.Address
}

// StatsRecorder receives stats after every tick with both readings present.
type StatsRecorder interface {
	SetStats(d stats.Derived)
}

// Config holds poller settings.
type Config struct {
	ChainID  uint64
	Interval time.Duration
}

// Poller refreshes the board from the pool contract on a fixed cadence.
type Poller struct {
	cfg      Config
	source   Source
	board    *stats.Board
	sink     storage.Storage
	recorder StatsRecorder
	logger   *zap.Logger

	// pending is set when the board changed and no snapshot of that state has
	// been stored yet.
	pending bool
}

// NewPoller builds a Poller. sink and recorder may be nil.
func NewPoller(cfg Config, source Source, board *stats.Board, sink storage.Storage, recorder StatsRecorder, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sink == nil {
		sink = storage.Nop{}
	}
	return &Poller{
		cfg:      cfg,
		source:   source,
		board:    board,
		sink:     sink,
		recorder: recorder,
		logger:   logger,
	}
}

// Run polls until ctx is cancelled. The first tick happens immediately.
func (p *Poller) Run(ctx context.Context) error {
	if p.source == nil {
		return fmt.Errorf("pool source is nil")
	}
	if p.board == nil {
		return fmt.Errorf("board is nil")
	}
	if p.cfg.Interval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}

	p.logger.Info("poller start",
		zap.String("pool", p.source.Address().Hex()),
		zap.Duration("interval", p.cfg.Interval),
	)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		p.Tick(ctx)

		select {
		case <-ctx.Done():
			p.logger.Info("poller stop")
			return nil
		case <-ticker.C:
		}
	}
}

// Tick performs one read round and applies whatever succeeded.
func (p *Poller) Tick(ctx context.Context) {
	res, err := p.source.ReadAll(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Warn("pool read incomplete",
			zap.Bool("total", res.Total.Present()),
			zap.Bool("reserved", res.Reserved.Present()),
			zap.Error(err),
		)
	}

	changed := p.board.SetTotal(res.Total)
	if p.board.SetReserved(res.Reserved) {
		changed = true
	}
	if changed {
		p.pending = true
	}

	view := p.board.View()
	if view.Status != stats.StatusReady {
		p.logger.Debug("awaiting readings",
			zap.Bool("total", view.Total.Present()),
			zap.Bool("reserved", view.Reserved.Present()),
		)
		return
	}

	if p.recorder != nil {
		p.recorder.SetStats(view.Stats)
	}
	if changed {
		p.logger.Info("pool stats updated",
			zap.Uint64("block", res.Block),
			zap.String("liquidity", view.Stats.Liquidity),
			zap.String("reserved", view.Stats.Reserved),
			zap.String("utilization", view.Stats.Utilization),
		)
	}

	// Only rounds where both reads succeeded are stored; a change seen in a
	// partial round is stored by the next complete one.
	if !p.pending || !res.Total.Present() || !res.Reserved.Present() {
		return
	}
	snap := BuildSnapshot(p.cfg.ChainID, p.source.Address(), res, view.Stats)
	if err := p.sink.PutSnapshots(ctx, []model.Snapshot{snap}); err != nil {
		p.logger.Warn("store snapshot failed", zap.Error(err))
		return
	}
	p.pending = false
}

// BuildSnapshot turns a complete read round into a storable record.
func BuildSnapshot(chainID uint64, poolAddr common.Address, res pool.Result, derived stats.Derived) model.Snapshot {
	fetchedAt := res.Total.FetchedAt
	if res.Reserved.FetchedAt.After(fetchedAt) {
		fetchedAt = res.Reserved.FetchedAt
	}
	return model.Snapshot{
		ChainID:     chainID,
		Pool:        poolAddr.Hex(),
		Block:       res.Block,
		TotalRaw:    rawString(res.Total),
		ReservedRaw: rawString(res.Reserved),
		Liquidity:   derived.Liquidity,
		Reserved:    derived.Reserved,
		Utilization: derived.Utilization,
		FetchedAt:   fetchedAt.UTC().Format(time.RFC3339Nano),
	}
}

func rawString(r model.Reading) string {
	if !r.Present() {
		return ""
	}
	return r.Raw.String()
}
