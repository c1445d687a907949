package stats

import (
	"sync"
	"time"

	"liquidityPortal/internal/model"
)

// Status describes whether both readings have arrived.
type Status string

const (
	StatusAwaiting Status = "awaiting"
	StatusReady    Status = "ready"
)

// View is a consistent copy of the board state.
type View struct {
	Status    Status
	Stats     Derived
	Total     model.Reading
	Reserved  model.Reading
	UpdatedAt time.Time
}

// Board holds the latest pool readings and the stats derived from them.
// Stats are recomputed only when a reading value changes, and readings never
// revert to absent once present.
type Board struct {
	mu        sync.RWMutex
	memo      *Memo
	total     model.Reading
	reserved  model.Reading
	derived   Derived
	updatedAt time.Time
	subs      map[int]chan Derived
	nextSub   int
}

func NewBoard(memo *Memo) *Board {
	if memo == nil {
		memo = NewMemo(0)
	}
	return &Board{
		memo:    memo,
		derived: Default(),
		subs:    make(map[int]chan Derived),
	}
}

// SetTotal records a totalLiquidity reading. Absent readings are ignored.
func (b *Board) SetTotal(r model.Reading) bool {
	return b.set(&b.total, r)
}

// SetReserved records a reservedLiquidity reading. Absent readings are ignored.
func (b *Board) SetReserved(r model.Reading) bool {
	return b.set(&b.reserved, r)
}

// Stats returns the current derived stats.
func (b *Board) Stats() Derived {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.derived
}

// Status reports awaiting until both readings are present.
func (b *Board) Status() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status()
}

// View returns a copy of the full board state.
func (b *Board) View() View {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return View{
		Status:    b.status(),
		Stats:     b.derived,
		Total:     b.total,
		Reserved:  b.reserved,
		UpdatedAt: b.updatedAt,
	}
}

// Subscribe returns a channel that receives the stats after every recompute.
// Only the latest value is buffered. The returned func cancels the subscription.
func (b *Board) Subscribe() (<-chan Derived, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextSub
	b.nextSub++
	ch := make(chan Derived, 1)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (b *Board) set(slot *model.Reading, r model.Reading) bool {
	if !r.Present() {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	changed := !slot.Present() || slot.Raw.Cmp(r.Raw) != 0
	*slot = r
	if !changed {
		return false
	}
	if b.status() != StatusReady {
		return true
	}

	b.derived = b.memo.Derive(b.total.Raw, b.reserved.Raw)
	b.updatedAt = latest(b.total.FetchedAt, b.reserved.FetchedAt)
	b.notify(b.derived)
	return true
}

func (b *Board) status() Status {
	if b.total.Present() && b.reserved.Present() {
		return StatusReady
	}
	return StatusAwaiting
}

// notify must be called with b.mu held.
func (b *Board) notify(d Derived) {
	for _, ch := range b.subs {
		select {
		case ch <- d:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- d:
		default:
		}
	}
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
