package web

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/vovakirdan/oilbox/internal/games/oilbox/maze"
	"github.com/vovakirdan/oilbox/internal/registry"
)

const maxMazeSide = 101

// MazeResponse is a generated maze in ASCII rows.
type MazeResponse struct {
	Seed     int64     `json:"seed"`
	Rows     int       `json:"rows"`
	Cols     int       `json:"cols"`
	Layout   []string  `json:"layout"`
	Start    maze.Cell `json:"start"`
	Goal     maze.Cell `json:"goal"`
	Solvable bool      `json:"solvable"`
	Attempts int       `json:"attempts"`
	MinMoves int       `json:"min_moves"`
}

// HintRequest asks for the shortest slide path through a layout. From
// defaults to the layout's start cell.
type HintRequest struct {
	Layout []string   `json:"layout"`
	From   *maze.Cell `json:"from,omitempty"`
}

// HintResponse is the path found for a HintRequest.
type HintResponse struct {
	Solvable bool        `json:"solvable"`
	Path     []maze.Cell `json:"path"`
	Moves    []string    `json:"moves"`
}

func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, registry.List())
}

func (s *Server) generateMaze(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gen := maze.DefaultGenerator()

	seed := time.Now().UnixNano()
	var err error
	if v := q.Get("seed"); v != "" {
		if seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			writeError(w, http.StatusBadRequest, "seed must be an integer")
			return
		}
	}
	if gen.Rows, err = intParam(q.Get("rows"), gen.Rows, 3, maxMazeSide); err != nil {
		writeError(w, http.StatusBadRequest, "rows: "+err.Error())
		return
	}
	if gen.Cols, err = intParam(q.Get("cols"), gen.Cols, 3, maxMazeSide); err != nil {
		writeError(w, http.StatusBadRequest, "cols: "+err.Error())
		return
	}
	if v := q.Get("density"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil || d < 0 || d >= 1 {
			writeError(w, http.StatusBadRequest, "density must be in [0,1)")
			return
		}
		gen.WallDensity = d
	}

	res, err := gen.Generate(rand.New(rand.NewSource(seed)))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !res.Solvable {
		s.logger.Warn("maze generator exhausted its attempts", "seed", seed, "attempts", res.Attempts)
	}

	resp := MazeResponse{
		Seed:     seed,
		Rows:     res.Grid.Rows(),
		Cols:     res.Grid.Cols(),
		Layout:   res.Grid.Layout(),
		Start:    res.Start,
		Goal:     res.Goal,
		Solvable: res.Solvable,
		Attempts: res.Attempts,
	}
	if n, ok := maze.MinMoves(res.Grid, res.Start, res.Goal); ok {
		resp.MinMoves = n
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) mazeHint(w http.ResponseWriter, r *http.Request) {
	var req HintRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	g, err := maze.ParseRows(req.Layout)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal, ok := g.Find(maze.Goal)
	if !ok {
		writeError(w, http.StatusBadRequest, "layout has no goal cell")
		return
	}
	from, ok := g.Find(maze.Start)
	if req.From != nil {
		from, ok = *req.From, true
	}
	if !ok {
		writeError(w, http.StatusBadRequest, "layout has no start cell")
		return
	}
	if !g.InBounds(from) || g.IsWall(from) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("from %s is not a free cell", from))
		return
	}

	resp := HintResponse{Path: []maze.Cell{}, Moves: []string{}}
	if path, ok := maze.FindPath(g, from, goal); ok {
		resp.Solvable = true
		resp.Path = path
		for _, d := range maze.Directions(from, path) {
			resp.Moves = append(resp.Moves, d.String())
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// intParam parses an optional integer query value within [lo, hi].
func intParam(v string, def, lo, hi int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", v)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("must be between %d and %d", lo, hi)
	}
	return n, nil
}
