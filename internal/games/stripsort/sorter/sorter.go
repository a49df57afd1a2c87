// Package sorter animates sorting algorithms over a permutation of strip ids.
//
// Every exchange or placement mutates the working order, publishes a full
// snapshot to a Sink and then waits the configured delay. Snapshots are
// totally ordered even when an algorithm recurses concurrently.
package sorter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

var (
	// ErrBusy is returned when a sort is already running.
	ErrBusy = errors.New("sorter: sort already in progress")
	// ErrInvalidPermutation is returned for input with repeated ids.
	ErrInvalidPermutation = errors.New("sorter: ids are not a permutation")
	// ErrCorrupted means a step left the order without every id exactly once.
	ErrCorrupted = errors.New("sorter: order corrupted")
	// ErrUnknownAlgorithm is returned by ParseAlgorithm and Run.
	ErrUnknownAlgorithm = errors.New("sorter: unknown algorithm")
	// ErrTooFewSegments is returned when loading fewer than MinSegments strips.
	ErrTooFewSegments = errors.New("sorter: need at least 2 segments")
)

// MinSegments is the smallest strip count the Engine accepts.
const MinSegments = 2

// Algorithm names a sorting strategy.
type Algorithm string

const (
	Bubble    Algorithm = "bubble"
	Selection Algorithm = "selection"
	Insertion Algorithm = "insertion"
	Merge     Algorithm = "merge"
	Heap      Algorithm = "heap"
	Quick     Algorithm = "quick"
	Tree      Algorithm = "tree"
)

// Algorithms lists every supported algorithm in menu order.
var Algorithms = []Algorithm{Bubble, Selection, Insertion, Merge, Heap, Quick, Tree}

var titles = map[Algorithm]string{
	Bubble:    "Bubble Sort",
	Selection: "Selection Sort",
	Insertion: "Insertion Sort",
	Merge:     "Merge Sort",
	Heap:      "Heap Sort",
	Quick:     "Quick Sort",
	Tree:      "Tree Sort",
}

// ParseAlgorithm resolves a case-insensitive algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := titles[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
	return a, nil
}

// Title returns the display name, e.g. "Quick Sort".
func (a Algorithm) Title() string {
	if t, ok := titles[a]; ok {
		return t
	}
	return string(a)
}

// Next returns the algorithm after a in menu order, wrapping around.
func (a Algorithm) Next() Algorithm {
	for i, x := range Algorithms {
		if x == a {
			return Algorithms[(i+1)%len(Algorithms)]
		}
	}
	return Algorithms[0]
}

// Snapshot is the full order after one step.
type Snapshot struct {
	Step    int   `json:"step"`
	Order   []int `json:"order"`
	Indices []int `json:"indices"` // positions touched by this step
}

// Sink receives snapshots in step order. It is called with the engine lock
// held and must not call back into the sorter.
type Sink func(Snapshot)

// Options tunes a run.
type Options struct {
	Delay time.Duration // pause after each step
}

// Result is the outcome of a run. On error Order is the last good snapshot.
type Result struct {
	Algorithm Algorithm `json:"algorithm"`
	Order     []int     `json:"order"`
	Steps     int       `json:"steps"`
}

type sortFunc func(s *stepper) error

var sorts = map[Algorithm]sortFunc{
	Bubble:    bubbleSort,
	Selection: selectionSort,
	Insertion: insertionSort,
	Merge:     mergeSort,
	Heap:      heapSort,
	Quick:     quickSort,
	Tree:      treeSort,
}

// Run sorts ids ascending with algo, publishing every step to sink.
// ids must be distinct; they need not be 0..n-1.
func Run(ctx context.Context, algo Algorithm, ids []int, opts Options, sink Sink) (Result, error) {
	fn, ok := sorts[algo]
	if !ok {
		return Result{Algorithm: algo, Order: clone(ids)}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}

	s, err := newStepper(ctx, ids, opts.Delay, sink)
	if err != nil {
		return Result{Algorithm: algo, Order: clone(ids)}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{Algorithm: algo, Order: clone(ids)}, fmt.Errorf("sorter: %w", err)
	}

	err = fn(s)
	if err == nil {
		err = s.failure()
	}
	return Result{Algorithm: algo, Order: s.lastGood(), Steps: s.stepCount()}, err
}

// IsSorted reports whether order is ascending.
func IsSorted(order []int) bool {
	for i := 1; i < len(order); i++ {
		if order[i-1] > order[i] {
			return false
		}
	}
	return true
}

func clone(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// stepper owns the working order. All mutations go through it so the
// permutation check and the snapshot happen under one lock.
type stepper struct {
	ctx   context.Context
	delay time.Duration
	sink  Sink

	mu    sync.Mutex
	order []int
	last  []int
	rank  map[int]int
	seen  []bool
	steps int
	err   error
}

func newStepper(ctx context.Context, ids []int, delay time.Duration, sink Sink) (*stepper, error) {
	rank := make(map[int]int, len(ids))
	for i, id := range ids {
		if _, dup := rank[id]; dup {
			return nil, fmt.Errorf("%w: id %d repeated", ErrInvalidPermutation, id)
		}
		rank[id] = i
	}
	return &stepper{
		ctx:   ctx,
		delay: delay,
		sink:  sink,
		order: clone(ids),
		last:  clone(ids),
		rank:  rank,
		seen:  make([]bool, len(ids)),
	}, nil
}

func (s *stepper) len() int {
	return len(s.order)
}

func (s *stepper) get(i int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order[i]
}

func (s *stepper) swap(i, j int) error {
	return s.step(func() { s.order[i], s.order[j] = s.order[j], s.order[i] }, i, j)
}

// touch publishes a step without changing the order.
func (s *stepper) touch(i int) error {
	return s.step(func() {}, i)
}

// rotate moves the element at from down to position to, shifting
// order[to:from] one place right.
func (s *stepper) rotate(from, to int) error {
	return s.step(func() {
		v := s.order[from]
		copy(s.order[to+1:from+1], s.order[to:from])
		s.order[to] = v
	}, to, from)
}

func (s *stepper) step(mutate func(), indices ...int) error {
	s.mu.Lock()
	if s.err != nil {
		err := s.err
		s.mu.Unlock()
		return err
	}
	mutate()
	if err := s.verify(); err != nil {
		s.err = err
		s.mu.Unlock()
		return err
	}
	s.steps++
	copy(s.last, s.order)
	if s.sink != nil {
		s.sink(Snapshot{Step: s.steps, Order: clone(s.order), Indices: indices})
	}
	s.mu.Unlock()

	if err := s.wait(); err != nil {
		s.mu.Lock()
		if s.err == nil {
			s.err = err
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// verify checks every original id is present exactly once. Caller holds mu.
func (s *stepper) verify() error {
	for i := range s.seen {
		s.seen[i] = false
	}
	for pos, id := range s.order {
		r, ok := s.rank[id]
		if !ok {
			return fmt.Errorf("%w: unknown id %d at %d", ErrCorrupted, id, pos)
		}
		if s.seen[r] {
			return fmt.Errorf("%w: id %d repeated at %d", ErrCorrupted, id, pos)
		}
		s.seen[r] = true
	}
	return nil
}

func (s *stepper) wait() error {
	if s.delay <= 0 {
		if err := s.ctx.Err(); err != nil {
			return fmt.Errorf("sorter: %w", err)
		}
		return nil
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-s.ctx.Done():
		return fmt.Errorf("sorter: %w", s.ctx.Err())
	case <-t.C:
		return nil
	}
}

func (s *stepper) failure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *stepper) lastGood() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.last)
}

func (s *stepper) stepCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}
