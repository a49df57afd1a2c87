// Package stripsort is a sorting visualizer: a row of colored strips is
// shuffled and then put back in order one step at a time by a chosen
// algorithm.
package stripsort

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/oilbox/internal/config"
	"github.com/vovakirdan/oilbox/internal/core"
	"github.com/vovakirdan/oilbox/internal/games/stripsort/sorter"
	"github.com/vovakirdan/oilbox/internal/registry"
)

const (
	hudRows   = 4
	minWidth  = 24
	minHeight = 8
	snapQueue = 256
)

// configPath stores the custom config path set via CLI
var configPath string

// algorithmOverride is set via CLI and wins over the config file.
var algorithmOverride string

var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetAlgorithm selects the starting algorithm by name.
func SetAlgorithm(name string) {
	algorithmOverride = name
}

// SetLogger routes sort diagnostics to l.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

func init() {
	registry.Register("stripsort", func() registry.Game {
		return New()
	})
}

// run is one in-flight sort. Each run owns its channels so a cancelled
// sort can never write into a newer one.
type run struct {
	cancel context.CancelFunc
	snaps  chan sorter.Snapshot
	done   chan runDone
}

type runDone struct {
	res sorter.Result
	err error
}

// Game wraps a sorter.Engine with keyboard control and bar rendering.
type Game struct {
	fixedCfg *config.StripSortConfig
	cfg      config.StripSortConfig
	runtime  core.RuntimeConfig
	rng      *rand.Rand

	engine *sorter.Engine
	algo   sorter.Algorithm
	choice sorter.Algorithm // picked in the menu, wins over config and CLI
	active *run

	order   []int
	touched []int
	steps   int
	sorts   int

	status      string
	statusColor core.Color

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates a game that loads its configuration on Reset.
func New() *Game {
	return &Game{algo: sorter.Bubble}
}

// NewWithConfig creates a game that always uses cfg.
func NewWithConfig(cfg config.StripSortConfig) *Game {
	g := New()
	g.fixedCfg = &cfg
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "stripsort"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Strip Sort"
}

// Reset stops any running sort and lays out the strips in identity order.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.stop()

	g.runtime = runtime
	g.cfg = g.loadConfig()
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.algo = sorter.Bubble
	if a, err := sorter.ParseAlgorithm(g.cfg.Algorithm); err == nil {
		g.algo = a
	}
	if algorithmOverride != "" {
		if a, err := sorter.ParseAlgorithm(algorithmOverride); err == nil {
			g.algo = a
		} else {
			logger.Warn("ignoring algorithm override", "err", err)
		}
	}
	if g.choice != "" {
		g.algo = g.choice
	}

	g.screenW, g.screenH = runtime.ScreenW, runtime.ScreenH
	n := g.fitSegments(g.cfg.Segments)
	engine, err := sorter.NewEngine(core.Max(n, sorter.MinSegments), g.delay())
	if err != nil {
		panic(err)
	}
	g.engine = engine
	g.order = engine.Order()
	g.touched = nil
	g.steps, g.sorts = 0, 0
	g.paused = false
	g.checkSize()
	g.setStatus("X shuffle, Enter sort", core.ColorGray)
}

func (g *Game) loadConfig() config.StripSortConfig {
	if g.fixedCfg != nil {
		return *g.fixedCfg
	}
	cfg, err := config.LoadStripSort(configPath)
	if err != nil {
		logger.Warn("using default stripsort config", "err", err)
		cfg = config.DefaultStripSortConfig()
	}
	return cfg
}

func (g *Game) delay() time.Duration {
	return time.Duration(g.cfg.DelayMs) * time.Millisecond
}

// fitSegments caps n at one strip per screen column.
func (g *Game) fitSegments(n int) int {
	if g.screenW > 0 {
		n = core.Min(n, g.screenW-2)
	}
	return core.Max(n, sorter.MinSegments)
}

func (g *Game) checkSize() {
	g.tooSmall = g.screenW > 0 && g.screenH > 0 &&
		(g.screenW < minWidth || g.screenH < minHeight || g.engine.Len() > g.screenW-2)
}

// Resize keeps the current order; it only pauses drawing while too small.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.checkSize()
}

// ChoiceTitle names the pre-game choice.
func (g *Game) ChoiceTitle() string {
	return "Algorithm"
}

// Choices lists the algorithms in menu order.
func (g *Game) Choices() []string {
	out := make([]string, len(sorter.Algorithms))
	for i, a := range sorter.Algorithms {
		out[i] = string(a)
	}
	return out
}

// Choose sets the starting algorithm for the next Reset.
func (g *Game) Choose(value string) error {
	a, err := sorter.ParseAlgorithm(value)
	if err != nil {
		return err
	}
	g.choice = a
	return nil
}

// Close cancels a running sort.
func (g *Game) Close() error {
	g.stop()
	return nil
}

func (g *Game) stop() {
	if g.active == nil {
		return
	}
	g.active.cancel()
	g.active = nil
}

// Step drains sort progress and handles one tick of input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.drain()

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return g.result()
	}

	switch {
	case in.Has(core.ActionConfirm):
		if g.Sorting() {
			g.active.cancel()
		} else {
			g.StartSort()
		}
	case in.Has(core.ActionShuffle):
		g.Shuffle()
	case in.Has(core.ActionRestart):
		g.ResetOrder()
	case in.Has(core.ActionNext), in.Has(core.ActionRight):
		g.cycleAlgorithm(1)
	case in.Has(core.ActionLeft):
		g.cycleAlgorithm(-1)
	case in.Has(core.ActionUp):
		g.resize(g.engine.Len() + 1)
	case in.Has(core.ActionDown):
		g.resize(g.engine.Len() - 1)
	}

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State()}
}

// drain applies every snapshot published since the last tick and picks up
// the outcome of a finished sort.
func (g *Game) drain() {
	if g.active == nil {
		return
	}
	for drained := false; !drained; {
		select {
		case snap := <-g.active.snaps:
			g.order = snap.Order
			g.touched = snap.Indices
			g.steps = snap.Step
		default:
			drained = true
		}
	}

	select {
	case d := <-g.active.done:
		g.finish(d)
	default:
	}
}

func (g *Game) finish(d runDone) {
	g.active.cancel()
	g.active = nil
	g.touched = nil
	g.order = g.engine.Order()
	g.steps = d.res.Steps

	switch {
	case d.err == nil:
		g.sorts++
		g.setStatus(fmt.Sprintf("Sorted with %s in %d steps", g.algo.Title(), d.res.Steps), core.ColorBrightGreen)
	case errors.Is(d.err, context.Canceled):
		g.setStatus("Sort stopped", core.ColorYellow)
	default:
		logger.Error("sort failed", "algorithm", g.algo, "err", d.err)
		g.setStatus("Sort error: "+d.err.Error(), core.ColorRed)
	}
}

// StartSort launches the selected algorithm in the background.
func (g *Game) StartSort() bool {
	if g.Sorting() {
		g.setStatus("Already sorting", core.ColorYellow)
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &run{
		cancel: cancel,
		snaps:  make(chan sorter.Snapshot, snapQueue),
		done:   make(chan runDone, 1),
	}
	g.active = r
	g.steps = 0
	g.engine.SetDelay(g.delay())

	engine, algo := g.engine, g.algo
	go func() {
		res, err := engine.Sort(ctx, algo, func(s sorter.Snapshot) {
			select {
			case r.snaps <- s:
			case <-ctx.Done():
			}
		})
		r.done <- runDone{res: res, err: err}
	}()

	g.setStatus(fmt.Sprintf("Sorting with %s...", algo.Title()), core.ColorBrightCyan)
	return true
}

// Shuffle randomizes the strip order.
func (g *Game) Shuffle() {
	if err := g.engine.Shuffle(g.rng); err != nil {
		g.busy(err)
		return
	}
	g.order = g.engine.Order()
	g.touched = nil
	g.steps = 0
	g.setStatus("Shuffled", core.ColorGray)
}

// ResetOrder puts the strips back in identity order.
func (g *Game) ResetOrder() {
	if err := g.engine.Reset(); err != nil {
		g.busy(err)
		return
	}
	g.order = g.engine.Order()
	g.touched = nil
	g.steps = 0
	g.setStatus("Reset", core.ColorGray)
}

func (g *Game) resize(n int) {
	if n < sorter.MinSegments || n != g.fitSegments(n) {
		return
	}
	if err := g.engine.Load(n); err != nil {
		g.busy(err)
		return
	}
	g.order = g.engine.Order()
	g.touched = nil
	g.steps = 0
	g.setStatus(fmt.Sprintf("%d segments", n), core.ColorGray)
}

func (g *Game) cycleAlgorithm(dir int) {
	if g.Sorting() {
		g.setStatus("Cannot change algorithm while sorting", core.ColorYellow)
		return
	}
	all := sorter.Algorithms
	for i, a := range all {
		if a == g.algo {
			g.algo = all[(i+dir+len(all))%len(all)]
			break
		}
	}
	g.setStatus("Algorithm: "+g.algo.Title(), core.ColorGray)
}

func (g *Game) busy(err error) {
	if errors.Is(err, sorter.ErrBusy) {
		g.setStatus("Busy: wait for the sort or press Enter to stop", core.ColorYellow)
		return
	}
	g.setStatus(err.Error(), core.ColorRed)
}

func (g *Game) setStatus(msg string, c core.Color) {
	g.status = msg
	g.statusColor = c
}

// Sorting reports whether a sort is in flight.
func (g *Game) Sorting() bool {
	return g.active != nil
}

// Algorithm returns the selected algorithm.
func (g *Game) Algorithm() sorter.Algorithm {
	return g.algo
}

// Order returns the order currently displayed.
func (g *Game) Order() []int {
	out := make([]int, len(g.order))
	copy(out, g.order)
	return out
}

// Status returns the status line text.
func (g *Game) Status() string {
	return g.status
}

// State returns the current game state. Score is the number of finished
// sorts this session.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.sorts,
		Paused: g.paused || g.tooSmall,
	}
}
