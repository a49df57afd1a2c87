package oilbox

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/oilbox/internal/config"
	"github.com/vovakirdan/oilbox/internal/core"
	"github.com/vovakirdan/oilbox/internal/games/oilbox/maze"
)

const openBoard = `
#####
#S..#
#...#
#..G#
#####`

var testDate = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T, layout string) *Game {
	t.Helper()
	g := NewWithConfig(config.DefaultOilboxConfig())
	g.now = func() time.Time { return testDate }
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 7})

	if layout != "" {
		grid, err := maze.Parse(layout)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if err := g.UseMaze(grid); err != nil {
			t.Fatalf("UseMaze() error = %v", err)
		}
	}
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

// settle steps until the current slide finishes.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 1000 && g.move != nil; i++ {
		step(g)
	}
	if g.move != nil {
		t.Fatal("slide never finished")
	}
}

func TestReset(t *testing.T) {
	g := newTestGame(t, "")
	snap := g.Snapshot()

	if snap.State != StatePlaying {
		t.Errorf("State = %v, expected playing", snap.State)
	}
	if snap.Rows != 21 || snap.Cols != 37 {
		t.Errorf("board = %dx%d, expected 21x37", snap.Rows, snap.Cols)
	}
	if !snap.Solvable {
		t.Error("generated maze should be solvable")
	}
	if snap.Player != cellToPoint(snap.StartCell, 32) {
		t.Errorf("Player = %v, expected start pixel", snap.Player)
	}
	if snap.Streak != 0 || snap.Maps != 1 {
		t.Errorf("Streak = %d, Maps = %d", snap.Streak, snap.Maps)
	}
}

func TestSlideAnimationAndClear(t *testing.T) {
	g := newTestGame(t, openBoard)

	step(g, core.ActionRight)
	if g.move == nil {
		t.Fatal("Right should start a slide")
	}
	if g.Progress() != 0 {
		t.Errorf("Progress() at start = %v, expected 0", g.Progress())
	}

	// 64 pixels at 8 per tick.
	for i := 0; i < 4; i++ {
		step(g)
	}
	if got := g.Progress(); got != 0.5 {
		t.Errorf("Progress() halfway = %v, expected 0.5", got)
	}
	for i := 0; i < 4; i++ {
		step(g)
	}
	if g.move != nil {
		t.Fatal("slide should finish after 8 ticks")
	}
	if g.PlayerCell() != maze.At(1, 3) {
		t.Errorf("PlayerCell() = %v, expected (1,3)", g.PlayerCell())
	}
	if g.Snapshot().State != StatePlaying {
		t.Errorf("State = %v, expected playing", g.Snapshot().State)
	}

	step(g, core.ActionDown)
	settle(t, g)

	if g.Snapshot().State != StateCleared {
		t.Fatalf("State = %v, expected cleared", g.Snapshot().State)
	}
	if g.State().Score != 1 {
		t.Errorf("streak = %d, expected 1", g.State().Score)
	}

	// Directional input is ignored while cleared.
	step(g, core.ActionLeft)
	if g.move != nil {
		t.Error("no slide may start while cleared")
	}

	// 1500ms at 60 ticks per second, then one tick to build the next map.
	for i := 0; i < 90 && g.Snapshot().State == StateCleared; i++ {
		step(g)
	}
	if g.Snapshot().State != StateLoading {
		t.Fatalf("State = %v, expected loading after the clear delay", g.Snapshot().State)
	}
	step(g)
	snap := g.Snapshot()
	if snap.State != StatePlaying || snap.Maps != 3 || snap.Streak != 1 {
		t.Errorf("after regeneration: state %v, maps %d, streak %d", snap.State, snap.Maps, snap.Streak)
	}
	if snap.Rows != 21 {
		t.Errorf("regenerated board should use the configured size, got %d rows", snap.Rows)
	}
}

func TestBlockedMoveIsIgnored(t *testing.T) {
	g := newTestGame(t, `
#####
#S#.#
#...#
#..G#
#####`)
	before := g.player.Pos

	if g.Move(maze.Right) {
		t.Error("Move(Right) into an adjacent wall should fail")
	}
	step(g, core.ActionUp)

	if g.player.Pos != before || g.move != nil {
		t.Errorf("player moved: %v -> %v", before, g.player.Pos)
	}
	if g.Snapshot().State != StatePlaying {
		t.Errorf("State = %v, expected playing", g.Snapshot().State)
	}
}

func TestFallingOffTheMapResets(t *testing.T) {
	g := newTestGame(t, `
S...
#..G`)

	step(g, core.ActionRight)
	settle(t, g)

	if g.Snapshot().State != StateResetting {
		t.Fatalf("State = %v, expected resetting", g.Snapshot().State)
	}
	step(g)
	snap := g.Snapshot()
	if snap.State != StatePlaying || snap.Player != g.player.StartPos || snap.Falls != 1 {
		t.Errorf("after reset: state %v, player %v, falls %d", snap.State, snap.Player, snap.Falls)
	}
}

func TestHintGestureForfeitsStreak(t *testing.T) {
	g := newTestGame(t, openBoard)
	g.streak = 4

	step(g, core.ActionHint)
	if g.streak != 4 || len(g.hint) != 0 {
		t.Fatal("a single press must not trigger the hint")
	}
	res := step(g, core.ActionHint)

	if len(res.Scores) != 1 || res.Scores[0] != 4 {
		t.Errorf("Scores = %v, expected [4]", res.Scores)
	}
	if g.streak != 0 {
		t.Errorf("streak = %d, expected 0", g.streak)
	}
	scores := g.HighScores()
	if len(scores) != 1 || scores[0] != (core.ScoreRecord{Score: 4, Date: "2026-10-17"}) {
		t.Errorf("HighScores() = %v", scores)
	}

	snap := g.Snapshot()
	if len(snap.Hint) != 2 || snap.Hint[1] != maze.At(3, 3) {
		t.Fatalf("Hint = %v, expected two cells ending at the goal", snap.Hint)
	}
	if snap.Player != g.player.StartPos || !snap.HintUsed {
		t.Errorf("hint should restart at start and mark the map, got %+v", snap)
	}

	// Following the hint clears the display and earns no credit.
	for _, d := range maze.Directions(snap.StartCell, snap.Hint) {
		if !g.Move(d) {
			t.Fatalf("Move(%v) along hint failed", d)
		}
		if len(g.hint) != 0 {
			t.Error("movement should clear the hint display")
		}
		settle(t, g)
	}
	if g.Snapshot().State != StateCleared || g.streak != 0 {
		t.Errorf("state %v, streak %d: hinted clear must not count", g.Snapshot().State, g.streak)
	}
}

func TestHintWindow(t *testing.T) {
	g := newTestGame(t, openBoard)

	step(g, core.ActionHint)
	for i := 0; i < 30; i++ {
		step(g)
	}
	step(g, core.ActionHint)
	if len(g.hint) != 0 {
		t.Fatal("presses 31 ticks apart must not trigger the hint")
	}
	step(g, core.ActionHint)
	if len(g.hint) != 2 {
		t.Error("second press inside the window should trigger the hint")
	}
}

func TestHintWithoutPath(t *testing.T) {
	g := newTestGame(t, `
#####
#S#G#
#####`)
	g.streak = 2

	if g.ShowHint() {
		t.Error("ShowHint() should fail on an unsolvable maze")
	}
	if len(g.hint) != 0 || g.Snapshot().State != StatePlaying {
		t.Error("no hint should be displayed and play continues")
	}
	// The streak is forfeited before the path is searched.
	if g.streak != 0 {
		t.Errorf("streak = %d, expected 0", g.streak)
	}
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, openBoard)

	res := step(g, core.ActionNewGame)
	if len(res.Scores) != 0 {
		t.Errorf("zero streak should not be recorded, got %v", res.Scores)
	}

	g.streak = 3
	res = step(g, core.ActionNewGame)
	if len(res.Scores) != 1 || res.Scores[0] != 3 {
		t.Errorf("Scores = %v, expected [3]", res.Scores)
	}
	snap := g.Snapshot()
	if snap.Streak != 0 || snap.State != StatePlaying || snap.Maps != 4 {
		t.Errorf("after new game: %+v", snap)
	}
	if snap.Rows != 21 || snap.Cols != 37 {
		t.Errorf("new game should generate a full board, got %dx%d", snap.Rows, snap.Cols)
	}

	// Reported once only.
	if res := step(g); len(res.Scores) != 0 {
		t.Errorf("Scores repeated on next tick: %v", res.Scores)
	}
}

func TestRestart(t *testing.T) {
	g := newTestGame(t, openBoard)

	t.Run("mid slide snaps to start", func(t *testing.T) {
		step(g, core.ActionDown)
		step(g)
		step(g, core.ActionRestart)
		if g.move != nil || g.player.Pos != g.player.StartPos {
			t.Errorf("restart should discard the slide, player at %v", g.player.Pos)
		}
	})

	t.Run("from cleared keeps streak and stays on map", func(t *testing.T) {
		g.Move(maze.Down)
		settle(t, g)
		g.Move(maze.Right)
		settle(t, g)
		if g.Snapshot().State != StateCleared || g.streak != 1 {
			t.Fatalf("expected a clear, state %v streak %d", g.Snapshot().State, g.streak)
		}
		maps := g.maps

		step(g, core.ActionRestart)
		snap := g.Snapshot()
		if snap.State != StatePlaying || snap.Streak != 1 || snap.Maps != maps {
			t.Errorf("after restart: state %v streak %d maps %d", snap.State, snap.Streak, snap.Maps)
		}

		// The same maze cannot be cleared twice for credit.
		g.Move(maze.Right)
		settle(t, g)
		g.Move(maze.Down)
		settle(t, g)
		if g.Snapshot().State != StateCleared || g.streak != 1 {
			t.Errorf("re-clear: state %v streak %d, expected cleared with streak 1", g.Snapshot().State, g.streak)
		}
	})
}

func TestPause(t *testing.T) {
	g := newTestGame(t, openBoard)
	step(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	step(g, core.ActionRight)
	if g.move != nil {
		t.Error("input must be ignored while paused")
	}
	step(g, core.ActionPause)
	if g.State().Paused {
		t.Error("expected unpaused")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := NewWithConfig(config.DefaultOilboxConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 6, TickRate: 60, Seed: 1})

	if g.Snapshot().State != StatePausedSmall || !g.State().Paused {
		t.Fatalf("State = %v, expected paused_small_window", g.Snapshot().State)
	}
	screen := core.NewScreen(30, 6)
	g.Render(screen)
	if !strings.Contains(screen.String(), "small") {
		t.Errorf("too-small screen should say so:\n%s", screen.String())
	}

	g.Resize(80, 24)
	snap := g.Snapshot()
	if snap.State != StatePlaying || snap.Rows != 21 || snap.Cols != 37 {
		t.Errorf("after resize: state %v, board %dx%d", snap.State, snap.Rows, snap.Cols)
	}

	g.Resize(60, 24)
	if g.Snapshot().State != StatePausedSmall {
		t.Error("shrinking below the board should pause")
	}
}

func TestBoardShrinksToScreen(t *testing.T) {
	g := NewWithConfig(config.DefaultOilboxConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 15, TickRate: 60, Seed: 1})

	snap := g.Snapshot()
	if snap.Rows != 12 || snap.Cols != 20 {
		t.Errorf("board = %dx%d, expected 12x20", snap.Rows, snap.Cols)
	}
}

func TestDeterministicMaps(t *testing.T) {
	a := NewWithConfig(config.DefaultOilboxConfig())
	b := NewWithConfig(config.DefaultOilboxConfig())
	cfg := core.RuntimeConfig{TickRate: 60, Seed: 99}
	a.Reset(cfg)
	b.Reset(cfg)

	if strings.Join(a.Snapshot().Layout, "\n") != strings.Join(b.Snapshot().Layout, "\n") {
		t.Error("same seed should produce the same maze")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, openBoard)
	g.LoadScores([]core.ScoreRecord{{Score: 5, Date: "2026-01-02"}})

	screen := core.NewScreen(80, 10)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"OILBOX", "[]", "<>", "██", "TOP 10", "2026-01-02"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	g.ShowHint()
	g.Render(screen)
	if !strings.Contains(screen.String(), "Hint: 2 moves") {
		t.Errorf("hint status missing:\n%s", screen.String())
	}
}

func TestExhaustedGeneratorLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	prev := logger
	SetLogger(log.New(&buf))
	t.Cleanup(func() { logger = prev })

	cfg := config.DefaultOilboxConfig()
	cfg.Board = config.OilboxBoard{TileSize: 32, AreaWidth: 11 * 32, AreaHeight: 11 * 32}
	cfg.Generator = config.OilboxGenerator{WallDensity: 1, MaxAttempts: 1}

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		g := NewWithConfig(cfg)
		g.Reset(core.RuntimeConfig{TickRate: 60, Seed: rng.Int63()})
		if !g.Snapshot().Solvable {
			if g.Snapshot().State != StatePlaying {
				t.Error("an unsolvable fallback is still played")
			}
			if !strings.Contains(buf.String(), "no solvable maze") {
				t.Errorf("expected a warning, log = %q", buf.String())
			}
			return
		}
	}
	t.Fatal("expected an exhausted generation")
}

func TestChooseDifficulty(t *testing.T) {
	g := NewWithConfig(config.DefaultOilboxConfig())
	if g.ChoiceTitle() != "Difficulty" || g.Choices()[0] != "normal" {
		t.Errorf("choices = %q %v", g.ChoiceTitle(), g.Choices())
	}
	if err := g.Choose("brutal"); err == nil {
		t.Error("Choose(brutal) should fail")
	}
	if err := g.Choose("hard"); err != nil {
		t.Fatalf("Choose(hard) error = %v", err)
	}
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 3})

	if g.cfg.Generator.WallDensity != 0.22 {
		t.Errorf("WallDensity = %v, expected 0.22", g.cfg.Generator.WallDensity)
	}
	if g.cfg.Difficulty.Enabled {
		t.Error("hard preset should keep one density for every maze")
	}
}

func TestDefaultChoiceKeepsDensity(t *testing.T) {
	g := NewWithConfig(config.DefaultOilboxConfig())
	if err := g.Choose(g.Choices()[0]); err != nil {
		t.Fatalf("Choose(%q) error = %v", g.Choices()[0], err)
	}
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 3})

	for _, streak := range []int{0, 5, 20} {
		if got := g.difficulty.WallDensity(g.cfg.Generator.WallDensity, streak); got != 0.15 {
			t.Errorf("density at streak %d = %v, expected 0.15", streak, got)
		}
	}

	if err := g.Choose("ramp"); err != nil {
		t.Fatalf("Choose(ramp) error = %v", err)
	}
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 3})
	if got := g.difficulty.WallDensity(g.cfg.Generator.WallDensity, 0); got != 0.15 {
		t.Errorf("ramp density at streak 0 = %v, expected 0.15", got)
	}
	if got := g.difficulty.WallDensity(g.cfg.Generator.WallDensity, 20); got <= 0.15 {
		t.Errorf("ramp density at streak 20 = %v, expected growth", got)
	}
}

func TestZeroKeepUsesDefaultTable(t *testing.T) {
	cfg := config.DefaultOilboxConfig()
	cfg.Scores.Keep = 0
	g := NewWithConfig(cfg)
	g.now = func() time.Time { return testDate }
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 7})

	g.LoadScores([]core.ScoreRecord{{Score: 3, Date: "2026-10-01"}, {Score: 5, Date: "2026-10-02"}})
	if got := g.HighScores(); len(got) != 2 || got[0].Score != 5 {
		t.Errorf("HighScores() = %v, expected both records", got)
	}

	g.streak = 4
	g.recordStreak()
	if got := g.HighScores(); len(got) != 3 || got[1].Score != 4 {
		t.Errorf("HighScores() = %v, expected the streak kept", got)
	}
}
