package stats

import (
	"math/big"

	"github.com/bluele/gcache"
)

const defaultMemoSize = 64

// Memo caches Derive results keyed by the (total, reserved) pair.
type Memo struct {
	cache gcache.Cache
}

func NewMemo(size int) *Memo {
	if size <= 0 {
		size = defaultMemoSize
	}
	return &Memo{cache: gcache.New(size).LRU().Build()}
}

// Derive returns the memoized stats for the pair, computing them on a miss.
func (m *Memo) Derive(total, reserved *big.Int) Derived {
	if total == nil || reserved == nil {
		return Default()
	}

	key := memoKey(total, reserved)
	if v, err := m.cache.Get(key); err == nil {
		if derived, ok := v.(Derived); ok {
			return derived
		}
	}

	derived := Derive(total, reserved)
	_ = m.cache.Set(key, derived)
	return derived
}

func memoKey(total, reserved *big.Int) string {
	return total.String() + ":" + reserved.String()
}
