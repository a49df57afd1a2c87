package maze

import (
	"errors"
	"math/rand"
)

// ErrTooSmall is returned when the grid has no room for distinct start and goal cells.
var ErrTooSmall = errors.New("maze: interior must hold at least two cells")

// Generator builds random bordered mazes that are solvable by slides.
type Generator struct {
	Rows        int
	Cols        int
	WallDensity float64 // probability that a free interior cell becomes a Wall
	MaxAttempts int
}

// DefaultGenerator returns the classic 21x37 board at 15% wall density.
func DefaultGenerator() Generator {
	return Generator{
		Rows:        21,
		Cols:        37,
		WallDensity: 0.15,
		MaxAttempts: 100,
	}
}

// Result is a generated maze. When Solvable is false every attempt failed and
// Grid is the last attempt, returned as a degraded fallback.
type Result struct {
	Grid     *Grid
	Start    Cell
	Goal     Cell
	Attempts int
	Solvable bool
}

// Generate draws mazes until one passes IsSolvable or MaxAttempts is reached.
func (gen Generator) Generate(rng *rand.Rand) (Result, error) {
	if gen.Rows < 3 || gen.Cols < 3 || (gen.Rows-2)*(gen.Cols-2) < 2 {
		return Result{}, ErrTooSmall
	}
	maxAttempts := gen.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var res Result
	for res.Attempts < maxAttempts {
		res.Attempts++
		res.Grid, res.Start, res.Goal = gen.attempt(rng)
		if IsSolvable(res.Grid, res.Start, res.Goal) {
			res.Solvable = true
			return res, nil
		}
	}
	return res, nil
}

// attempt builds a single candidate maze.
func (gen Generator) attempt(rng *rand.Rand) (*Grid, Cell, Cell) {
	g := NewGrid(gen.Rows, gen.Cols)
	for r := 0; r < gen.Rows; r++ {
		for c := 0; c < gen.Cols; c++ {
			if r == 0 || r == gen.Rows-1 || c == 0 || c == gen.Cols-1 {
				g.cells[r*gen.Cols+c] = Wall
			}
		}
	}

	start := gen.randomInterior(rng)
	g.Set(start, Start)

	goal := gen.randomInterior(rng)
	for goal == start {
		goal = gen.randomInterior(rng)
	}
	g.Set(goal, Goal)

	for r := 1; r < gen.Rows-1; r++ {
		for c := 1; c < gen.Cols-1; c++ {
			idx := r*gen.Cols + c
			if g.cells[idx] == Empty && rng.Float64() < gen.WallDensity {
				g.cells[idx] = Wall
			}
		}
	}
	return g, start, goal
}

func (gen Generator) randomInterior(rng *rand.Rand) Cell {
	return Cell{
		Row: rng.Intn(gen.Rows-2) + 1,
		Col: rng.Intn(gen.Cols-2) + 1,
	}
}
