package engine

import "github.com/yourusername/bacbo-predictor/internal/models"

// Detector is a stateless heuristic that inspects a suffix of the outcome
// history and either proposes the next outcome with a confidence score or
// abstains.
type Detector interface {
	Name() string
	Analyze(history []models.Outcome) models.DetectorResult
}

// lastN returns the trailing n elements of history (the whole history when
// shorter). The returned slice aliases history and must not be mutated.
func lastN(history []models.Outcome, n int) []models.Outcome {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// countSides counts PLAYER and BANKER occurrences in a window. Ties are not
// counted on either side.
func countSides(window []models.Outcome) (player, banker int) {
	for _, o := range window {
		switch o {
		case models.OutcomePlayer:
			player++
		case models.OutcomeBanker:
			banker++
		}
	}
	return player, banker
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
