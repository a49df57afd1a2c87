package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/oilbox/internal/storage"
)

const defaultListLimit = 10

// ScoresResponse lists the best scores of one game.
type ScoresResponse struct {
	GameID string               `json:"game_id"`
	Scores []storage.ScoreEntry `json:"scores"`
	Stats  *storage.GameStats   `json:"stats"`
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "score storage is not available")
		return false
	}
	return true
}

func (s *Server) topScores(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	gameID := chi.URLParam(r, "game")
	limit, err := intParam(r.URL.Query().Get("limit"), defaultListLimit, 1, 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit: "+err.Error())
		return
	}

	scores, err := s.store.TopScores(gameID, limit)
	if err != nil {
		s.logger.Error("cannot load scores", "game", gameID, "err", err)
		writeError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}
	stats, err := s.store.GetGameStats(gameID)
	if err != nil {
		s.logger.Error("cannot load stats", "game", gameID, "err", err)
		writeError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, ScoresResponse{GameID: gameID, Scores: scores, Stats: stats})
}

func (s *Server) recentRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	q := r.URL.Query()
	limit, err := intParam(q.Get("limit"), defaultListLimit, 1, 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit: "+err.Error())
		return
	}

	runs, err := s.store.RecentSortRuns(q.Get("algorithm"), limit)
	if err != nil {
		s.logger.Error("cannot load sort runs", "err", err)
		writeError(w, http.StatusInternalServerError, "cannot load sort runs")
		return
	}
	if runs == nil {
		runs = []storage.SortRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) sortRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	run, err := s.store.SortRunByID(chi.URLParam(r, "runID"))
	if err != nil {
		s.logger.Error("cannot load sort run", "err", err)
		writeError(w, http.StatusInternalServerError, "cannot load sort run")
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}
