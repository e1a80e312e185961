package oneshot

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/maysqunaibi/strollers-mvp/internal/pkg/clock"
)

// Gate collapses concurrent and repeated invocations for the same key
// into a single execution whose result is memoized. The winning caller
// is chosen before the function runs, so two near-simultaneous callers
// can never both execute it.
//
// Completed entries are kept for the retention period, long enough to
// absorb redirect double-loads, then evicted so the map does not grow
// for the process lifetime. Entries still executing are never evicted.
type Gate[T any] struct {
	entries   sync.Map
	clock     clock.Clock
	retention time.Duration
}

type entry[T any] struct {
	once sync.Once
	val  T
	err  error
	// Unix nanos of completion; zero while the function is running.
	doneAt atomic.Int64
}

func NewGate[T any](clk clock.Clock, retention time.Duration) *Gate[T] {
	return &Gate[T]{clock: clk, retention: retention}
}

func (g *Gate[T]) Do(key string, fn func() (T, error)) (T, error) {
	g.evictExpired()

	e, _ := g.entries.LoadOrStore(key, &entry[T]{})
	en := e.(*entry[T])
	en.once.Do(func() {
		en.val, en.err = fn()
		en.doneAt.Store(g.clock.Now().UnixNano())
	})
	return en.val, en.err
}

// Forget drops the memoized result so a later explicit retry re-executes.
func (g *Gate[T]) Forget(key string) {
	g.entries.Delete(key)
}

func (g *Gate[T]) evictExpired() {
	cutoff := g.clock.Now().Add(-g.retention).UnixNano()
	g.entries.Range(func(key, value any) bool {
		en := value.(*entry[T])
		if doneAt := en.doneAt.Load(); doneAt != 0 && doneAt <= cutoff {
			g.entries.Delete(key)
		}
		return true
	})
}
