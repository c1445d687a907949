package stats

import (
	"math/big"

	"github.com/shopspring/decimal"

	"liquidityPortal/internal/model"
)

// Initial values shown before both readings are available.
const (
	DefaultAmount      = "0"
	DefaultUtilization = "0.00"
)

var hundred = decimal.NewFromInt(100)

// Derived holds the formatted pool statistics shown on the landing page.
type Derived struct {
	Liquidity   string `json:"liquidity"`
	Reserved    string `json:"reserved"`
	Utilization string `json:"utilization"`
}

// Default returns the stats displayed while readings are missing.
func Default() Derived {
	return Derived{
		Liquidity:   DefaultAmount,
		Reserved:    DefaultAmount,
		Utilization: DefaultUtilization,
	}
}

// Derive converts raw base-unit amounts into fixed two-place strings.
// Either input being nil yields Default.
func Derive(total, reserved *big.Int) Derived {
	if total == nil || reserved == nil {
		return Default()
	}

	tl := fromBaseUnits(total)
	rl := fromBaseUnits(reserved)

	utilization := DefaultUtilization
	if tl.IsPositive() {
		utilization = rl.Mul(hundred).DivRound(tl, 2).StringFixed(2)
	}

	return Derived{
		Liquidity:   tl.StringFixed(2),
		Reserved:    rl.StringFixed(2),
		Utilization: utilization,
	}
}

func fromBaseUnits(value *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(value, -model.USDCDecimals)
}
