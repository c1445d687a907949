package stats

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveScenarios(t *testing.T) {
	cases := []struct {
		name     string
		total    *big.Int
		reserved *big.Int
		want     Derived
	}{
		{
			name:     "quarter reserved",
			total:    big.NewInt(1_000_000_000),
			reserved: big.NewInt(250_000_000),
			want:     Derived{Liquidity: "1000.00", Reserved: "250.00", Utilization: "25.00"},
		},
		{
			name:     "empty pool",
			total:    big.NewInt(0),
			reserved: big.NewInt(0),
			want:     Derived{Liquidity: "0.00", Reserved: "0.00", Utilization: "0.00"},
		},
		{
			name:     "total absent",
			total:    nil,
			reserved: big.NewInt(500_000_000),
			want:     Derived{Liquidity: "0", Reserved: "0", Utilization: "0.00"},
		},
		{
			name:     "reserved absent",
			total:    big.NewInt(500_000_000),
			reserved: nil,
			want:     Default(),
		},
		{
			name:     "zero total with reserve",
			total:    big.NewInt(0),
			reserved: big.NewInt(123_456_789),
			want:     Derived{Liquidity: "0.00", Reserved: "123.46", Utilization: "0.00"},
		},
		{
			name:     "one third",
			total:    big.NewInt(3_000_000),
			reserved: big.NewInt(1_000_000),
			want:     Derived{Liquidity: "3.00", Reserved: "1.00", Utilization: "33.33"},
		},
		{
			name:     "two thirds rounds up",
			total:    big.NewInt(3_000_000),
			reserved: big.NewInt(2_000_000),
			want:     Derived{Liquidity: "3.00", Reserved: "2.00", Utilization: "66.67"},
		},
		{
			name:     "amount midpoint rounds away from zero",
			total:    big.NewInt(1_005_000),
			reserved: big.NewInt(0),
			want:     Derived{Liquidity: "1.01", Reserved: "0.00", Utilization: "0.00"},
		},
		{
			name:     "utilization midpoint rounds away from zero",
			total:    big.NewInt(200_000_000),
			reserved: big.NewInt(2_010_000),
			want:     Derived{Liquidity: "200.00", Reserved: "2.01", Utilization: "1.01"},
		},
		{
			name:     "sub cent amounts",
			total:    big.NewInt(1),
			reserved: big.NewInt(1),
			want:     Derived{Liquidity: "0.00", Reserved: "0.00", Utilization: "100.00"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Derive(tc.total, tc.reserved))
		})
	}
}

func TestDeriveLargeValues(t *testing.T) {
	total, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	reserved := new(big.Int).Rsh(total, 1)

	got := Derive(total, reserved)
	assert.Equal(t, "50.00", got.Utilization)
	assert.Equal(t, "115792089237316195423570985008687907853269984665640564039457584007913129.64", got.Liquidity)
}

func TestDeriveUtilizationHasTwoDecimals(t *testing.T) {
	for total := int64(1); total <= 200; total += 7 {
		for reserved := int64(0); reserved <= total; reserved += 3 {
			got := Derive(big.NewInt(total*1_000_000), big.NewInt(reserved*1_000_000))
			dot := len(got.Utilization) - 3
			if dot < 1 || got.Utilization[dot] != '.' {
				t.Fatalf("utilization %q for %d/%d is not fixed to 2 places", got.Utilization, reserved, total)
			}
		}
	}
}

func TestDeriveIdempotent(t *testing.T) {
	total := big.NewInt(987_654_321)
	reserved := big.NewInt(123_456_789)

	first := Derive(total, reserved)
	second := Derive(total, reserved)
	assert.Equal(t, first, second)
	assert.Equal(t, "12.50", first.Utilization)
}

func TestMemoDerive(t *testing.T) {
	memo := NewMemo(2)

	a := memo.Derive(big.NewInt(1_000_000_000), big.NewInt(250_000_000))
	b := memo.Derive(big.NewInt(1_000_000_000), big.NewInt(250_000_000))
	assert.Equal(t, a, b)
	assert.Equal(t, "25.00", b.Utilization)

	c := memo.Derive(big.NewInt(1_000_000_000), big.NewInt(500_000_000))
	assert.Equal(t, "50.00", c.Utilization)

	assert.Equal(t, Default(), memo.Derive(nil, big.NewInt(1)))
}
