package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/oilbox/internal/games/oilbox/maze"
	"github.com/vovakirdan/oilbox/internal/storage"
)

func newTestServer(t *testing.T, withStore bool) (*Server, *storage.Store) {
	t.Helper()
	var store *storage.Store
	if withStore {
		var err error
		store, err = storage.Open(filepath.Join(t.TempDir(), "web.db"))
		if err != nil {
			t.Fatalf("Open() failed: %v", err)
		}
		t.Cleanup(func() { store.Close() })
	}
	return NewServer(DefaultConfig(), store, nil), store
}

func do(t *testing.T, s *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("cannot decode %q: %v", rec.Body.String(), err)
	}
	return v
}

// sseData returns the payload of the first event with the given name.
func sseData(body, event string) (string, bool) {
	marker := "event: " + event + "\ndata: "
	i := strings.Index(body, marker)
	if i < 0 {
		return "", false
	}
	rest := body[i+len(marker):]
	return rest[:strings.Index(rest, "\n")], true
}

func TestGenerateMazeIsDeterministic(t *testing.T) {
	s, _ := newTestServer(t, false)

	first := do(t, s, http.MethodGet, "/api/maze?seed=42&rows=9&cols=15", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", first.Code, first.Body.String())
	}
	second := do(t, s, http.MethodGet, "/api/maze?seed=42&rows=9&cols=15", nil)

	a := decode[MazeResponse](t, first)
	b := decode[MazeResponse](t, second)
	if !slices.Equal(a.Layout, b.Layout) {
		t.Error("same seed produced different layouts")
	}
	if a.Rows != 9 || a.Cols != 15 || len(a.Layout) != 9 {
		t.Errorf("size = %dx%d with %d rows", a.Rows, a.Cols, len(a.Layout))
	}
	if a.Solvable {
		g, err := maze.ParseRows(a.Layout)
		if err != nil {
			t.Fatal(err)
		}
		if !maze.IsSolvable(g, a.Start, a.Goal) {
			t.Error("maze reported solvable but is not")
		}
	}
}

func TestGenerateMazeRejectsBadParams(t *testing.T) {
	s, _ := newTestServer(t, false)

	for _, target := range []string{
		"/api/maze?rows=2",
		"/api/maze?cols=500",
		"/api/maze?density=1",
		"/api/maze?density=x",
		"/api/maze?seed=abc",
	} {
		if rec := do(t, s, http.MethodGet, target, nil); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, expected 400", target, rec.Code)
		}
	}
}

func TestMazeHint(t *testing.T) {
	s, _ := newTestServer(t, false)

	tests := []struct {
		name     string
		req      HintRequest
		status   int
		solvable bool
		moves    int
	}{
		{
			name:     "two slides",
			req:      HintRequest{Layout: []string{"#####", "#S..#", "#..G#", "#####"}},
			status:   http.StatusOK,
			solvable: true,
			moves:    2,
		},
		{
			name:   "boxed in",
			req:    HintRequest{Layout: []string{"#####", "#S#G#", "#####"}},
			status: http.StatusOK,
		},
		{
			name:     "from another cell",
			req:      HintRequest{Layout: []string{"#####", "#S..#", "#..G#", "#####"}, From: &maze.Cell{Row: 1, Col: 3}},
			status:   http.StatusOK,
			solvable: true,
			moves:    1,
		},
		{
			name:   "ragged rows",
			req:    HintRequest{Layout: []string{"####", "#S.G#"}},
			status: http.StatusBadRequest,
		},
		{
			name:   "no goal",
			req:    HintRequest{Layout: []string{"####", "#S.#", "####"}},
			status: http.StatusBadRequest,
		},
		{
			name:   "from a wall",
			req:    HintRequest{Layout: []string{"#####", "#S.G#", "#####"}, From: &maze.Cell{Row: 0, Col: 0}},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.req)
			rec := do(t, s, http.MethodPost, "/api/maze/hint", body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, expected %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}
			resp := decode[HintResponse](t, rec)
			if resp.Solvable != tt.solvable {
				t.Errorf("Solvable = %v, expected %v", resp.Solvable, tt.solvable)
			}
			if len(resp.Moves) != tt.moves || len(resp.Path) != tt.moves {
				t.Errorf("moves = %v path = %v, expected %d slides", resp.Moves, resp.Path, tt.moves)
			}
			if tt.moves > 0 && resp.Path[len(resp.Path)-1] != maze.At(2, 3) {
				t.Errorf("path ends at %v, expected the goal", resp.Path[len(resp.Path)-1])
			}
		})
	}
}

func TestMazeHintRejectsBadJSON(t *testing.T) {
	s, _ := newTestServer(t, false)
	if rec := do(t, s, http.MethodPost, "/api/maze/hint", []byte("{")); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400", rec.Code)
	}
}

func TestStreamSortRecordsRun(t *testing.T) {
	s, _ := newTestServer(t, true)

	rec := do(t, s, http.MethodGet, "/api/sort/quick?segments=12&seed=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if _, ok := sseData(body, "start"); !ok {
		t.Error("missing start event")
	}
	if _, ok := sseData(body, "step"); !ok {
		t.Error("missing step events")
	}
	data, ok := sseData(body, "done")
	if !ok {
		t.Fatalf("missing done event in %q", body)
	}

	var done SortDone
	if err := json.Unmarshal([]byte(data), &done); err != nil {
		t.Fatal(err)
	}
	if done.Status != storage.RunSorted || done.Segments != 12 {
		t.Errorf("done = %+v", done)
	}
	if !slices.IsSorted(done.Order) || len(done.Order) != 12 {
		t.Errorf("Order = %v, expected 0..11", done.Order)
	}
	if rec.Header().Get("X-Run-Id") != done.RunID {
		t.Error("X-Run-Id header should match the done event")
	}

	runs := decode[[]storage.SortRun](t, do(t, s, http.MethodGet, "/api/runs?algorithm=quick", nil))
	if len(runs) != 1 || runs[0].RunID != done.RunID || runs[0].Steps != done.Steps {
		t.Errorf("runs = %+v", runs)
	}

	one := do(t, s, http.MethodGet, "/api/runs/"+done.RunID, nil)
	if one.Code != http.StatusOK {
		t.Errorf("GET run: status = %d", one.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/runs/missing", nil); rec.Code != http.StatusNotFound {
		t.Errorf("missing run: status = %d, expected 404", rec.Code)
	}
}

func TestStreamSortRejectsBadRequests(t *testing.T) {
	s, _ := newTestServer(t, false)

	tests := []struct {
		target string
		status int
	}{
		{"/api/sort/bogo", http.StatusNotFound},
		{"/api/sort/merge?segments=1", http.StatusBadRequest},
		{"/api/sort/merge?segments=100000", http.StatusBadRequest},
		{"/api/sort/merge?delay_ms=-5", http.StatusBadRequest},
		{"/api/sort/merge?seed=x", http.StatusBadRequest},
	}
	for _, tt := range tests {
		if rec := do(t, s, http.MethodGet, tt.target, nil); rec.Code != tt.status {
			t.Errorf("%s: status = %d, expected %d", tt.target, rec.Code, tt.status)
		}
	}
}

func TestTopScores(t *testing.T) {
	s, store := newTestServer(t, true)
	store.SaveScore("oilbox", 4)  //nolint:errcheck
	store.SaveScore("oilbox", 11) //nolint:errcheck

	rec := do(t, s, http.MethodGet, "/api/scores/oilbox?limit=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[ScoresResponse](t, rec)
	if len(resp.Scores) != 1 || resp.Scores[0].Score != 11 {
		t.Errorf("Scores = %+v, expected the best one", resp.Scores)
	}
	if resp.Stats == nil || resp.Stats.GamesCount != 2 {
		t.Errorf("Stats = %+v", resp.Stats)
	}

	empty := decode[ScoresResponse](t, do(t, s, http.MethodGet, "/api/scores/stripsort", nil))
	if empty.Scores == nil || len(empty.Scores) != 0 {
		t.Errorf("expected an empty list, got %v", empty.Scores)
	}
}

func TestStoreEndpointsWithoutStore(t *testing.T) {
	s, _ := newTestServer(t, false)
	for _, target := range []string{"/api/scores/oilbox", "/api/runs", "/api/runs/x"} {
		if rec := do(t, s, http.MethodGet, target, nil); rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, expected 503", target, rec.Code)
		}
	}

	// Sorting still works, the run is just not recorded.
	if rec := do(t, s, http.MethodGet, "/api/sort/bubble?segments=4&seed=1", nil); rec.Code != http.StatusOK {
		t.Errorf("sort without store: status = %d", rec.Code)
	}
}
