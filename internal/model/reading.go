package model

import (
	"math/big"
	"time"
)

// Contract view functions read by the landing page.
const (
	FieldTotalLiquidity    = "totalLiquidity"
	FieldReservedLiquidity = "reservedLiquidity"
)

// USDCDecimals is the implied precision of pool amounts.
const USDCDecimals = 6

// Reading is a single point-in-time value fetched from a pool view function.
type Reading struct {
	Field     string
	Raw       *big.Int
	Decimals  uint8
	Block     uint64
	FetchedAt time.Time
}

// Present reports whether the reading holds a value.
func (r Reading) Present() bool {
	return r.Raw != nil
}
