package engine

import (
	"math"

	"github.com/yourusername/bacbo-predictor/internal/models"
)

const (
	// recordCapacity bounds the retained prediction/outcome pairs; older
	// records are discarded FIFO.
	recordCapacity = 20
	// recentWindow is how many retained records feed the recent win rate.
	recentWindow = 10
)

// accuracyTracker keeps lifetime win counters and a bounded window of the
// most recent scored predictions. Not safe for concurrent use; the engine's
// mutex covers it.
type accuracyTracker struct {
	wins    int
	total   int
	records []models.AccuracyRecord
}

// score compares a pending prediction against the actual outcome and records
// the pair.
func (t *accuracyTracker) score(predicted models.Outcome, confidence float64, actual models.Outcome) models.AccuracyRecord {
	record := models.AccuracyRecord{
		Predicted:  predicted,
		Actual:     actual,
		Confidence: confidence,
	}

	t.total++
	if record.Hit() {
		t.wins++
	}

	t.records = append(t.records, record)
	if len(t.records) > recordCapacity {
		t.records = t.records[1:]
	}
	return record
}

// stats returns the lifetime counters.
func (t *accuracyTracker) stats() models.PredictionStats {
	return models.PredictionStats{
		Wins:    t.wins,
		Total:   t.total,
		WinRate: t.winRate(),
	}
}

// report builds the full accuracy payload. The recent win rate only appears
// once more than ten predictions have been scored, and covers the last ten
// retained records (fewer if retention already dropped some).
func (t *accuracyTracker) report() models.StatsReport {
	report := models.StatsReport{
		WinRate:           t.winRate(),
		Wins:              t.wins,
		Total:             t.total,
		RecentPredictions: append([]models.AccuracyRecord(nil), t.records...),
	}

	if t.total > recentWindow && len(t.records) > 0 {
		window := t.records
		if len(window) > recentWindow {
			window = window[len(window)-recentWindow:]
		}
		hits := 0
		for _, record := range window {
			if record.Hit() {
				hits++
			}
		}
		rate := round1(float64(hits) / float64(len(window)) * 100)
		report.RecentWinRate = &rate
	}

	return report
}

func (t *accuracyTracker) winRate() float64 {
	if t.total == 0 {
		return 0
	}
	return round1(float64(t.wins) / float64(t.total) * 100)
}

// reset clears all counters and retained records.
func (t *accuracyTracker) reset() {
	t.wins = 0
	t.total = 0
	t.records = nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
