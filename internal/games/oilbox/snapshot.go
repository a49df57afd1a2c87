package oilbox

import (
	"github.com/vovakirdan/oilbox/internal/core"
	"github.com/vovakirdan/oilbox/internal/games/oilbox/maze"
)

// GameStateType represents the current session state.
type GameStateType string

const (
	StateLoading     GameStateType = "loading"
	StatePlaying     GameStateType = "playing"
	StateCleared     GameStateType = "cleared"
	StateResetting   GameStateType = "resetting"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot is everything a renderer needs to draw one frame.
type Snapshot struct {
	Tick       uint64             `json:"tick"`
	State      GameStateType      `json:"state"`
	Rows       int                `json:"rows"`
	Cols       int                `json:"cols"`
	TileSize   int                `json:"tile_size"`
	Layout     []string           `json:"layout"`
	Player     Point              `json:"player"`
	Goal       Point              `json:"goal"`
	StartCell  maze.Cell          `json:"start_cell"`
	GoalCell   maze.Cell          `json:"goal_cell"`
	Walls      []maze.Cell        `json:"walls"`
	Hint       []maze.Cell        `json:"hint,omitempty"`
	Moving     bool               `json:"moving"`
	Progress   float64            `json:"progress"`
	Streak     int                `json:"streak"`
	HintUsed   bool               `json:"hint_used"`
	Solvable   bool               `json:"solvable"`
	Attempts   int                `json:"attempts"`
	Maps       int                `json:"maps"`
	Moves      int                `json:"moves"`
	Falls      int                `json:"falls"`
	HighScores []core.ScoreRecord `json:"high_scores"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := g.state
	if g.tooSmall {
		state = StatePausedSmall
	}

	snap := Snapshot{
		Tick:       g.tick,
		State:      state,
		TileSize:   g.cfg.Board.TileSize,
		Player:     g.player.Pos,
		Goal:       cellToPoint(g.goal, g.cfg.Board.TileSize),
		StartCell:  g.start,
		GoalCell:   g.goal,
		Moving:     g.move != nil,
		Progress:   g.Progress(),
		Streak:     g.streak,
		HintUsed:   g.hintUsed,
		Solvable:   g.solvable,
		Attempts:   g.attempts,
		Maps:       g.maps,
		Moves:      g.moves,
		Falls:      g.falls,
		HighScores: g.scores.List(),
	}
	if g.grid != nil {
		snap.Rows = g.grid.Rows()
		snap.Cols = g.grid.Cols()
		snap.Layout = g.grid.Layout()
		snap.Walls = g.grid.Walls()
	}
	if len(g.hint) > 0 {
		snap.Hint = append([]maze.Cell(nil), g.hint...)
	}
	return snap
}

// PlayerCell returns the cell the box currently occupies, rounded to the nearest tile.
func (g *Game) PlayerCell() maze.Cell {
	return pointToCell(g.player.Pos, g.cfg.Board.TileSize)
}
