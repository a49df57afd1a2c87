package oilbox

import (
	"sort"

	"github.com/vovakirdan/oilbox/internal/core"
)

// DateFormat is how high-score dates are displayed and stored.
const DateFormat = "2006-01-02"

// HighScores is a bounded table of streak records ordered by score, highest first.
// Equal scores keep insertion order.
type HighScores struct {
	keep    int
	records []core.ScoreRecord
}

// defaultKeep is the table size used when none is configured.
const defaultKeep = 10

// NewHighScores creates an empty table that keeps at most keep entries.
func NewHighScores(keep int) *HighScores {
	h := &HighScores{}
	h.SetKeep(keep)
	return h
}

// SetKeep changes the table size and drops records past it. Values of zero
// or less select the default of 10.
func (h *HighScores) SetKeep(keep int) {
	if keep <= 0 {
		keep = defaultKeep
	}
	h.keep = keep
	h.normalize()
}

// Load replaces the table with records, dropping non-positive scores.
func (h *HighScores) Load(records []core.ScoreRecord) {
	h.records = h.records[:0]
	for _, r := range records {
		if r.Score > 0 {
			h.records = append(h.records, r)
		}
	}
	h.normalize()
}

// Add records a finished streak. Scores of zero or less are ignored.
func (h *HighScores) Add(score int, date string) bool {
	if score <= 0 {
		return false
	}
	h.records = append(h.records, core.ScoreRecord{Score: score, Date: date})
	h.normalize()
	return true
}

func (h *HighScores) normalize() {
	sort.SliceStable(h.records, func(i, j int) bool {
		return h.records[i].Score > h.records[j].Score
	})
	if len(h.records) > h.keep {
		h.records = h.records[:h.keep]
	}
}

// List returns a copy of the table.
func (h *HighScores) List() []core.ScoreRecord {
	out := make([]core.ScoreRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Best returns the top score, or 0 when the table is empty.
func (h *HighScores) Best() int {
	if len(h.records) == 0 {
		return 0
	}
	return h.records[0].Score
}
