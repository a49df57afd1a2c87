// Package oilbox implements the Oilbox slide maze: push an oil box across a
// random maze where every move slides until something stops it.
package oilbox

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/oilbox/internal/config"
	"github.com/vovakirdan/oilbox/internal/core"
	"github.com/vovakirdan/oilbox/internal/games/oilbox/maze"
	"github.com/vovakirdan/oilbox/internal/registry"
)

const (
	cellWidth = 2 // screen columns per maze cell
	hudRows   = 3 // title, status and controls lines around the board
	minRows   = 5
	minCols   = 5
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset ("easy", "normal", "hard", "ramp").
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficultyPreset(preset)
}

// SetLogger routes game diagnostics to l. Games are silent by default so
// they do not draw over the alt screen.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

func init() {
	registry.Register("oilbox", func() registry.Game {
		return New()
	})
}

// Game is one Oilbox session: the current maze, the box, and the clear streak.
type Game struct {
	fixedCfg *config.OilboxConfig
	cfg      config.OilboxConfig
	runtime  core.RuntimeConfig
	rng      *rand.Rand
	now      func() time.Time
	tick     uint64

	difficulty *config.DifficultyManager
	preset     config.DifficultyPreset // chosen in the menu, wins over the CLI preset

	// Board
	rows, cols int
	grid       *maze.Grid
	start      maze.Cell
	goal       maze.Cell
	solvable   bool
	attempts   int

	player Player
	move   *moveTarget

	state      GameStateType
	clearTicks int // countdown to the next map while Cleared

	// Scoring
	streak   int
	credited bool // the current map already added to the streak
	hintUsed bool // a hint was shown on the current map
	scores   *HighScores
	recorded []int // finished streaks not yet reported to the platform

	// Hint gesture
	hint          []maze.Cell
	hintArmed     bool
	hintPressTick uint64

	clearDelayTicks int
	hintWindowTicks int

	// Stats
	maps  int
	moves int
	falls int

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates a game that loads its configuration on Reset.
func New() *Game {
	return &Game{
		now:    time.Now,
		scores: NewHighScores(10),
		state:  StateLoading,
	}
}

// NewWithConfig creates a game that always uses cfg instead of loading a file.
func NewWithConfig(cfg config.OilboxConfig) *Game {
	g := New()
	g.fixedCfg = &cfg
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "oilbox"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Oilbox"
}

// Reset starts a fresh session: streak zero and a newly generated maze.
// High scores survive a reset.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	if g.now == nil {
		g.now = time.Now
	}

	g.scores.SetKeep(g.cfg.Scores.Keep)

	g.tick = 0
	g.streak = 0
	g.recorded = nil
	g.paused = false
	g.maps, g.moves, g.falls = 0, 0, 0
	g.clearDelayTicks = runtime.MsToTicks(g.cfg.Timing.ClearDelayMs)
	g.hintWindowTicks = runtime.MsToTicks(g.cfg.Timing.HintWindowMs)

	g.screenW, g.screenH = runtime.ScreenW, runtime.ScreenH
	g.fit()

	g.grid = nil
	g.state = StateLoading
	if !g.tooSmall {
		g.newMap()
	}
}

func (g *Game) loadConfig() config.OilboxConfig {
	if g.fixedCfg != nil && g.preset == "" {
		return *g.fixedCfg
	}

	var cfg config.OilboxConfig
	if g.fixedCfg != nil {
		cfg = *g.fixedCfg
	} else {
		var err error
		cfg, err = config.LoadOilbox(configPath)
		if err != nil {
			logger.Warn("using default oilbox config", "err", err)
			cfg = config.DefaultOilboxConfig()
		}
	}

	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyOilboxPreset(&cfg, preset)
	}
	return cfg
}

// ChoiceTitle names the pre-game choice.
func (g *Game) ChoiceTitle() string {
	return "Difficulty"
}

// Choices lists the difficulty presets, default first.
func (g *Game) Choices() []string {
	return []string{
		string(config.DifficultyNormal),
		string(config.DifficultyEasy),
		string(config.DifficultyHard),
		string(config.DifficultyRamp),
	}
}

// Choose selects a difficulty preset for this game only. It takes effect
// on the next Reset.
func (g *Game) Choose(value string) error {
	p := config.ParseDifficultyPreset(value)
	if p == "" {
		return fmt.Errorf("oilbox: unknown difficulty %q", value)
	}
	g.preset = p
	return nil
}

// fit derives the maze size from the configured play area, shrunk to the
// screen when one is known.
func (g *Game) fit() {
	g.rows, g.cols = g.cfg.Board.Rows(), g.cfg.Board.Cols()
	if g.screenW > 0 && g.screenH > 0 {
		g.rows = core.Min(g.rows, g.screenH-hudRows)
		g.cols = core.Min(g.cols, g.screenW/cellWidth)
	}
	g.tooSmall = g.rows < minRows || g.cols < minCols
}

// Resize adapts to a new screen size without touching the maze or streak.
// A maze that no longer fits pauses the game until the screen grows again.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	if g.grid == nil {
		g.fit()
		if !g.tooSmall {
			g.newMap()
		}
		return
	}
	g.tooSmall = g.grid.Rows()+hudRows > h || g.grid.Cols()*cellWidth > w
}

// LoadScores seeds the high-score table with persisted records.
func (g *Game) LoadScores(records []core.ScoreRecord) {
	g.scores.Load(records)
}

// HighScores returns the current high-score table.
func (g *Game) HighScores() []core.ScoreRecord {
	return g.scores.List()
}

// UseMaze replaces the board with a prepared grid. The grid must contain
// one Start and one Goal cell. The streak is left alone.
func (g *Game) UseMaze(grid *maze.Grid) error {
	start, ok := grid.Find(maze.Start)
	if !ok {
		return fmt.Errorf("oilbox: maze has no start cell")
	}
	goal, ok := grid.Find(maze.Goal)
	if !ok {
		return fmt.Errorf("oilbox: maze has no goal cell")
	}
	if g.difficulty == nil {
		g.Reset(core.RuntimeConfig{TickRate: 60})
	}
	g.setMaze(grid, start, goal)
	g.solvable = maze.IsSolvable(grid, start, goal)
	g.attempts = 0
	return nil
}

// newMap generates a maze for the current streak and starts playing it.
func (g *Game) newMap() {
	gen := maze.Generator{
		Rows:        g.rows,
		Cols:        g.cols,
		WallDensity: g.difficulty.WallDensity(g.cfg.Generator.WallDensity, g.streak),
		MaxAttempts: g.cfg.Generator.MaxAttempts,
	}
	res, err := gen.Generate(g.rng)
	if err != nil {
		logger.Error("cannot generate maze", "rows", g.rows, "cols", g.cols, "err", err)
		g.tooSmall = true
		return
	}
	if !res.Solvable {
		logger.Warn("no solvable maze found, playing last attempt", "attempts", res.Attempts)
	} else {
		logger.Debug("maze generated", "attempts", res.Attempts, "rows", g.rows, "cols", g.cols,
			"density", gen.WallDensity)
	}

	g.setMaze(res.Grid, res.Start, res.Goal)
	g.solvable = res.Solvable
	g.attempts = res.Attempts
}

func (g *Game) setMaze(grid *maze.Grid, start, goal maze.Cell) {
	g.grid = grid
	g.start = start
	g.goal = goal
	g.player.StartPos = cellToPoint(start, g.cfg.Board.TileSize)
	g.player.Pos = g.player.StartPos
	g.move = nil
	g.hint = nil
	g.hintArmed = false
	g.hintUsed = false
	g.credited = false
	g.clearTicks = 0
	g.state = StatePlaying
	g.maps++
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	switch {
	case in.Has(core.ActionNewGame):
		g.NewGame()
	case in.Has(core.ActionHint):
		g.PressHint()
	case in.Has(core.ActionRestart):
		g.Restart()
	}

	switch g.state {
	case StateLoading:
		g.newMap()
	case StateResetting:
		g.snapToStart()
		g.state = StatePlaying
	case StateCleared:
		g.clearTicks--
		if g.clearTicks <= 0 {
			g.state = StateLoading
		}
	case StatePlaying:
		if g.move != nil {
			g.advance()
		} else if d, ok := directionOf(in); ok {
			g.Move(d)
		}
	}

	return g.result()
}

func (g *Game) result() core.StepResult {
	res := core.StepResult{State: g.State(), Scores: g.recorded}
	g.recorded = nil
	return res
}

func directionOf(in core.InputFrame) (maze.Dir, bool) {
	switch {
	case in.Has(core.ActionUp):
		return maze.Up, true
	case in.Has(core.ActionDown):
		return maze.Down, true
	case in.Has(core.ActionLeft):
		return maze.Left, true
	case in.Has(core.ActionRight):
		return maze.Right, true
	}
	return 0, false
}

// Move starts a slide. It returns false when the game is not accepting
// moves or the first step in that direction is blocked. Any movement input
// clears a displayed hint.
func (g *Game) Move(d maze.Dir) bool {
	if g.state != StatePlaying || g.move != nil || g.grid == nil {
		return false
	}
	g.hint = nil

	tile := g.cfg.Board.TileSize
	from := pointToCell(g.player.Pos, tile)
	cell, exited, ok := maze.Landing(maze.Slide(g.grid, from, d))
	if !ok {
		return false
	}

	g.move = &moveTarget{
		dir:          d,
		cell:         cell,
		from:         g.player.Pos,
		to:           cellToPoint(cell, tile),
		exitedBounds: exited,
	}
	g.moves++
	return true
}

// advance moves the box one tick along the current slide and resolves
// the landing once the target is reached exactly.
func (g *Game) advance() {
	if !stepToward(&g.player.Pos, g.move, g.cfg.Movement.MoveSpeed) {
		return
	}
	m := g.move
	g.move = nil

	if m.exitedBounds {
		g.falls++
		g.state = StateResetting
		return
	}
	if m.cell == g.goal {
		g.state = StateCleared
		g.clearTicks = g.clearDelayTicks
		if !g.hintUsed && !g.credited {
			g.streak++
			g.credited = true
		}
		logger.Debug("maze cleared", "streak", g.streak, "hint", g.hintUsed)
	}
}

// Progress is how far the current slide has travelled, from 0 to 1.
// It is 0 when no slide is in flight.
func (g *Game) Progress() float64 {
	if g.move == nil {
		return 0
	}
	total := g.move.distance()
	if total == 0 {
		return 1
	}
	done := core.Abs(g.player.Pos.X-g.move.from.X) + core.Abs(g.player.Pos.Y-g.move.from.Y)
	return float64(done) / float64(total)
}

func (g *Game) snapToStart() {
	g.player.Pos = g.player.StartPos
	g.move = nil
}

// Restart puts the box back on the start cell of the current maze.
// The streak is kept and a pending map change is cancelled.
func (g *Game) Restart() {
	if g.state == StateLoading || g.grid == nil {
		return
	}
	g.snapToStart()
	g.hint = nil
	g.clearTicks = 0
	g.state = StatePlaying
}

// NewGame records the current streak, resets it and generates a new maze.
func (g *Game) NewGame() {
	g.recordStreak()
	if g.tooSmall {
		return
	}
	g.newMap()
}

func (g *Game) recordStreak() {
	if g.streak > 0 {
		g.scores.Add(g.streak, g.now().Format(DateFormat))
		g.recorded = append(g.recorded, g.streak)
		logger.Info("streak recorded", "score", g.streak)
	}
	g.streak = 0
}

// PressHint registers one press of the hint key. Two presses within the
// hint window show the hint.
func (g *Game) PressHint() {
	if g.state == StateLoading || g.grid == nil {
		return
	}
	if g.hintArmed && g.tick-g.hintPressTick <= uint64(g.hintWindowTicks) {
		g.hintArmed = false
		g.ShowHint()
		return
	}
	g.hintArmed = true
	g.hintPressTick = g.tick
}

// ShowHint forfeits the streak like NewGame, restarts the current maze and
// displays the shortest path. Clearing this maze no longer counts. It
// returns false when no path exists, in which case nothing is displayed.
func (g *Game) ShowHint() bool {
	if g.state == StateLoading || g.grid == nil {
		return false
	}
	g.recordStreak()
	g.Restart()
	g.hintUsed = true

	path, ok := maze.FindPath(g.grid, g.start, g.goal)
	if !ok {
		logger.Warn("hint requested on unsolvable maze")
		return false
	}
	g.hint = path
	return true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.streak,
		GameOver: false,
		Paused:   g.paused || g.tooSmall,
	}
}
