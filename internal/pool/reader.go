package pool

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"liquidityPortal/internal/model"
)

// DefaultAddress is the liquidity pool the landing page reads from.
const DefaultAddress = "0x04825CDa198D4134f6Bb914f097b9ab141825bF4"

// Caller is the subset of the chain client used for contract reads.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	LatestBlockNumber(ctx context.Context) (uint64, error)
}

// Observer receives the outcome of every contract read.
type Observer interface {
	ObserveRead(field string, elapsed time.Duration, err error)
}

// ReaderConfig holds settings for pool reads.
type ReaderConfig struct {
	Address      common.Address
	MaxRetries   int
	RetryBackoff time.Duration
}

// Reader fetches liquidity readings from the pool contract.
type Reader struct {
	cfg      ReaderConfig
	caller   Caller
	poolABI  abi.ABI
	observer Observer
	logger   *zap.Logger
	now      func() time.Time
}

// Result holds both readings of one ReadAll round. A field whose read failed
// keeps a nil Raw value and its error.
type Result struct {
	Block       uint64
	Total       model.Reading
	Reserved    model.Reading
	TotalErr    error
	ReservedErr error
}

// NewReader builds a Reader for the configured pool.
func NewReader(cfg ReaderConfig, caller Caller, observer Observer, logger *zap.Logger) (*Reader, error) {
	if caller == nil {
		return nil, fmt.Errorf("chain client is nil")
	}
	if cfg.Address == (common.Address{}) {
		return nil, fmt.Errorf("pool address is required")
	}
	poolABI, err := LiquidityPoolABI()
	if err != nil {
		return nil, fmt.Errorf("parse pool abi: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{
		cfg:      cfg,
		caller:   caller,
		poolABI:  poolABI,
		observer: observer,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Address returns the pool address being read.
func (r *Reader) Address() common.Address {
	return r.cfg.Address
}

// Read fetches a single uint256 field. A zero block reads at latest.
func (r *Reader) Read(ctx context.Context, field string, block uint64) (model.Reading, error) {
	var blockPtr *big.Int
	if block > 0 {
		blockPtr = new(big.Int).SetUint64(block)
	}

	start := r.now()
	var value *big.Int
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		value, err = r.callUint256(ctx, field, blockPtr)
		if err != nil {
			r.logger.Debug("pool read attempt failed", zap.String("field", field), zap.Uint64("block", block), zap.Error(err))
		}
		return err
	})
	if r.observer != nil {
		r.observer.ObserveRead(field, r.now().Sub(start), err)
	}
	if err != nil {
		return model.Reading{Field: field}, err
	}

	return model.Reading{
		Field:     field,
		Raw:       value,
		Decimals:  model.USDCDecimals,
		Block:     block,
		FetchedAt: r.now().UTC(),
	}, nil
}

// ReadAll issues the totalLiquidity and reservedLiquidity reads concurrently,
// pinned to the latest block when it can be resolved. Each field succeeds or
// fails on its own; the returned error is the first failure, if any.
func (r *Reader) ReadAll(ctx context.Context) (Result, error) {
	var res Result

	block, err := r.caller.LatestBlockNumber(ctx)
	if err != nil {
		r.logger.Debug("latest block lookup failed, reading at latest", zap.Error(err))
		block = 0
	}
	res.Block = block

	var g errgroup.Group
	g.Go(func() error {
		res.Total, res.TotalErr = r.Read(ctx, model.FieldTotalLiquidity, block)
		if res.TotalErr != nil {
			return fmt.Errorf("read %s: %w", model.FieldTotalLiquidity, res.TotalErr)
		}
		return nil
	})
	g.Go(func() error {
		res.Reserved, res.ReservedErr = r.Read(ctx, model.FieldReservedLiquidity, block)
		if res.ReservedErr != nil {
			return fmt.Errorf("read %s: %w", model.FieldReservedLiquidity, res.ReservedErr)
		}
		return nil
	})

	return res, g.Wait()
}

func (r *Reader) callUint256(ctx context.Context, method string, block *big.Int) (*big.Int, error) {
	data, err := r.poolABI.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	to := r.cfg.Address
	msg := ethereum.CallMsg{To: &to, Data: data}
	resp, err := r.caller.CallContract(ctx, msg, block)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := r.poolABI.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("%s return size %d", method, len(values))
	}
	value, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s unexpected type %T", method, values[0])
	}
	return new(big.Int).Set(value), nil
}
