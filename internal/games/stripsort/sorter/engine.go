package sorter

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// Engine holds a strip order between sorts. While a sort runs, every other
// request fails with ErrBusy instead of queueing.
type Engine struct {
	busy atomic.Bool

	mu    sync.Mutex
	order []int
	delay time.Duration
}

// NewEngine returns an engine with n strips in identity order.
func NewEngine(n int, delay time.Duration) (*Engine, error) {
	e := &Engine{delay: delay}
	if err := e.Load(n); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) acquire() error {
	if !e.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (e *Engine) release() {
	e.busy.Store(false)
}

// Load replaces the order with n strips in identity order.
func (e *Engine) Load(n int) error {
	if n < MinSegments {
		return fmt.Errorf("%w: got %d", ErrTooFewSegments, n)
	}
	if err := e.acquire(); err != nil {
		return err
	}
	defer e.release()

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	e.mu.Lock()
	e.order = order
	e.mu.Unlock()
	return nil
}

// Shuffle applies a Fisher-Yates shuffle driven by rng.
func (e *Engine) Shuffle(rng *rand.Rand) error {
	if err := e.acquire(); err != nil {
		return err
	}
	defer e.release()

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := len(e.order) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		e.order[i], e.order[j] = e.order[j], e.order[i]
	}
	return nil
}

// Reset restores identity order.
func (e *Engine) Reset() error {
	if err := e.acquire(); err != nil {
		return err
	}
	defer e.release()

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.order {
		e.order[i] = i
	}
	return nil
}

// SetDelay changes the pause after each step for later sorts.
func (e *Engine) SetDelay(d time.Duration) {
	e.mu.Lock()
	e.delay = d
	e.mu.Unlock()
}

// Order returns a copy of the current order. During a sort it is the most
// recent snapshot.
func (e *Engine) Order() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return clone(e.order)
}

// Len returns the number of strips.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.order)
}

// Busy reports whether a sort is running.
func (e *Engine) Busy() bool {
	return e.busy.Load()
}

// Sort runs algo over the current order. Each snapshot is stored before it
// is forwarded to sink, so a failed sort leaves the engine at the last good
// step.
func (e *Engine) Sort(ctx context.Context, algo Algorithm, sink Sink) (Result, error) {
	if err := e.acquire(); err != nil {
		return Result{Algorithm: algo}, err
	}
	defer e.release()

	e.mu.Lock()
	ids := clone(e.order)
	delay := e.delay
	e.mu.Unlock()

	track := func(snap Snapshot) {
		e.mu.Lock()
		copy(e.order, snap.Order)
		e.mu.Unlock()
		if sink != nil {
			sink(snap)
		}
	}

	res, err := Run(ctx, algo, ids, Options{Delay: delay}, track)
	if err != nil {
		return res, err
	}
	e.mu.Lock()
	copy(e.order, res.Order)
	e.mu.Unlock()
	return res, nil
}
