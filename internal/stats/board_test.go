package stats

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liquidityPortal/internal/model"
)

func reading(field string, raw int64) model.Reading {
	return model.Reading{
		Field:     field,
		Raw:       big.NewInt(raw),
		Decimals:  model.USDCDecimals,
		FetchedAt: time.Unix(1700000000, 0).UTC(),
	}
}

func TestBoardAwaitingUntilBothPresent(t *testing.T) {
	board := NewBoard(nil)
	assert.Equal(t, StatusAwaiting, board.Status())
	assert.Equal(t, Default(), board.Stats())

	board.SetReserved(reading(model.FieldReservedLiquidity, 500_000_000))
	assert.Equal(t, StatusAwaiting, board.Status())
	assert.Equal(t, Derived{Liquidity: "0", Reserved: "0", Utilization: "0.00"}, board.Stats())

	board.SetTotal(reading(model.FieldTotalLiquidity, 1_000_000_000))
	assert.Equal(t, StatusReady, board.Status())
	assert.Equal(t, Derived{Liquidity: "1000.00", Reserved: "500.00", Utilization: "50.00"}, board.Stats())
}

func TestBoardIgnoresAbsentReadings(t *testing.T) {
	board := NewBoard(nil)
	board.SetTotal(reading(model.FieldTotalLiquidity, 1_000_000_000))
	board.SetReserved(reading(model.FieldReservedLiquidity, 250_000_000))

	assert.False(t, board.SetTotal(model.Reading{Field: model.FieldTotalLiquidity}))
	assert.Equal(t, StatusReady, board.Status())
	assert.Equal(t, "25.00", board.Stats().Utilization)
}

func TestBoardRecomputesOnlyOnChange(t *testing.T) {
	board := NewBoard(nil)
	updates, cancel := board.Subscribe()
	defer cancel()

	board.SetTotal(reading(model.FieldTotalLiquidity, 1_000_000_000))
	select {
	case d := <-updates:
		t.Fatalf("unexpected update before both readings: %+v", d)
	default:
	}

	require.True(t, board.SetReserved(reading(model.FieldReservedLiquidity, 250_000_000)))
	assert.Equal(t, "25.00", (<-updates).Utilization)

	assert.False(t, board.SetReserved(reading(model.FieldReservedLiquidity, 250_000_000)))
	select {
	case d := <-updates:
		t.Fatalf("unexpected update for unchanged reading: %+v", d)
	default:
	}

	require.True(t, board.SetTotal(reading(model.FieldTotalLiquidity, 500_000_000)))
	assert.Equal(t, Derived{Liquidity: "500.00", Reserved: "250.00", Utilization: "50.00"}, <-updates)
}

func TestBoardSubscriptionCoalesces(t *testing.T) {
	board := NewBoard(nil)
	updates, cancel := board.Subscribe()

	board.SetTotal(reading(model.FieldTotalLiquidity, 1_000_000_000))
	board.SetReserved(reading(model.FieldReservedLiquidity, 100_000_000))
	board.SetReserved(reading(model.FieldReservedLiquidity, 200_000_000))
	board.SetReserved(reading(model.FieldReservedLiquidity, 300_000_000))

	assert.Equal(t, "30.00", (<-updates).Utilization)

	cancel()
	cancel()
	_, ok := <-updates
	assert.False(t, ok)

	board.SetReserved(reading(model.FieldReservedLiquidity, 400_000_000))
	assert.Equal(t, "40.00", board.Stats().Utilization)
}

func TestBoardView(t *testing.T) {
	board := NewBoard(NewMemo(4))
	board.SetTotal(reading(model.FieldTotalLiquidity, 0))
	board.SetReserved(reading(model.FieldReservedLiquidity, 0))

	view := board.View()
	assert.Equal(t, StatusReady, view.Status)
	assert.Equal(t, Derived{Liquidity: "0.00", Reserved: "0.00", Utilization: "0.00"}, view.Stats)
	assert.Equal(t, int64(0), view.Total.Raw.Int64())
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), view.UpdatedAt)
}
