package web

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vovakirdan/oilbox/internal/games/stripsort/sorter"
	"github.com/vovakirdan/oilbox/internal/storage"
)

const defaultStreamSegments = 32

// SortDone is the final event of a sort stream.
type SortDone struct {
	RunID     string `json:"run_id"`
	Algorithm string `json:"algorithm"`
	Segments  int    `json:"segments"`
	Steps     int    `json:"steps"`
	Status    string `json:"status"`
	Order     []int  `json:"order"`
	Error     string `json:"error,omitempty"`
}

// streamSort shuffles 0..segments-1 and streams every step of the sort as a
// "step" event, then a "done" event.
func (s *Server) streamSort(w http.ResponseWriter, r *http.Request) {
	algo, err := sorter.ParseAlgorithm(chi.URLParam(r, "algorithm"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	q := r.URL.Query()
	segments, err := intParam(q.Get("segments"), defaultStreamSegments, sorter.MinSegments, s.cfg.MaxSegments)
	if err != nil {
		writeError(w, http.StatusBadRequest, "segments: "+err.Error())
		return
	}
	delayMs, err := intParam(q.Get("delay_ms"), 0, 0, int(s.cfg.MaxDelay/time.Millisecond))
	if err != nil {
		writeError(w, http.StatusBadRequest, "delay_ms: "+err.Error())
		return
	}
	seed := time.Now().UnixNano()
	if v := q.Get("seed"); v != "" {
		if seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			writeError(w, http.StatusBadRequest, "seed must be an integer")
			return
		}
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	runID := uuid.NewString()
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Run-Id", runID)
	w.WriteHeader(http.StatusOK)

	ids := rand.New(rand.NewSource(seed)).Perm(segments)
	writeEvent(w, "start", map[string]any{"run_id": runID, "algorithm": algo, "order": ids})
	flusher.Flush()

	started := time.Now()
	res, err := sorter.Run(r.Context(), algo, ids, sorter.Options{Delay: time.Duration(delayMs) * time.Millisecond},
		func(snap sorter.Snapshot) {
			writeEvent(w, "step", snap)
			flusher.Flush()
		})

	done := SortDone{
		RunID:     runID,
		Algorithm: string(algo),
		Segments:  segments,
		Steps:     res.Steps,
		Status:    storage.RunSorted,
		Order:     res.Order,
	}
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		done.Status = storage.RunStopped
	default:
		done.Status = storage.RunFailed
		done.Error = err.Error()
		s.logger.Error("sort failed", "run_id", runID, "algorithm", algo, "err", err)
	}
	if done.Status != storage.RunStopped {
		writeEvent(w, "done", done)
		flusher.Flush()
	}

	s.logger.Debug("sort run finished", "run_id", runID, "algorithm", algo,
		"segments", segments, "steps", res.Steps, "status", done.Status)
	if s.store != nil {
		//nolint:errcheck // Best-effort save, the stream is already complete
		s.store.SaveSortRun(storage.SortRun{
			RunID:      runID,
			Algorithm:  string(algo),
			Segments:   segments,
			Steps:      res.Steps,
			Status:     done.Status,
			DurationMs: time.Since(started).Milliseconds(),
		})
	}
}

// writeEvent writes one server-sent event with a JSON payload.
func writeEvent(w http.ResponseWriter, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = w.Write([]byte("event: " + event + "\n"))
	for _, line := range strings.Split(string(data), "\n") {
		_, _ = w.Write([]byte("data: " + line + "\n"))
	}
	_, _ = w.Write([]byte("\n"))
}
