package pool

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const liquidityPoolABIJSON = `[
  {
    "inputs": [],
    "name": "totalLiquidity",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "reservedLiquidity",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  }
]`

var (
	liquidityPoolABI     abi.ABI
	liquidityPoolABIOnce sync.Once
	liquidityPoolABIErr  error
)

// LiquidityPoolABI returns the parsed liquidity pool ABI.
func LiquidityPoolABI() (abi.ABI, error) {
	liquidityPoolABIOnce.Do(func() {
		liquidityPoolABI, liquidityPoolABIErr = abi.JSON(strings.NewReader(liquidityPoolABIJSON))
	})
	return liquidityPoolABI, liquidityPoolABIErr
}
