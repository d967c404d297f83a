package engine

import (
	"fmt"
	"math"

	"github.com/yourusername/bacbo-predictor/internal/models"
)

// DefaultQuantumThreshold is the side imbalance within the oscillation window
// at which the detector bets on mean reversion. Lower values make it fire
// more often.
const DefaultQuantumThreshold = 7

const (
	oscillationWindow = 15
	streakLength      = 5
	streakConfidence  = 89
	reversionBase     = 75
	reversionPerDiff  = 2
	reversionMaxScore = 90
	oscillationName   = "quantum"
)

// OscillationDetector bets against short-window imbalance between the two
// sides, with a fixed-confidence override when the last five rounds are a
// perfect run.
type OscillationDetector struct {
	Threshold int
}

// NewOscillationDetector creates an oscillation detector. A non-positive
// threshold falls back to the default.
func NewOscillationDetector(threshold int) *OscillationDetector {
	if threshold <= 0 {
		threshold = DefaultQuantumThreshold
	}
	return &OscillationDetector{Threshold: threshold}
}

// Name returns the detector name.
func (d *OscillationDetector) Name() string {
	return oscillationName
}

// Analyze inspects the last 15 rounds. An imbalance of at least Threshold
// predicts the minority side; failing that, a five-round run predicts the
// break of the streak.
func (d *OscillationDetector) Analyze(history []models.Outcome) models.DetectorResult {
	window := lastN(history, oscillationWindow)
	player, banker := countSides(window)
	diff := absInt(player - banker)

	if diff >= d.Threshold {
		side := models.OutcomePlayer
		if player > banker {
			side = models.OutcomeBanker
		}
		confidence := math.Min(reversionMaxScore, float64(reversionBase+diff*reversionPerDiff))
		reason := fmt.Sprintf("quantum imbalance %d (PLAYER %d x BANKER %d)", diff, player, banker)
		return models.Propose(side, confidence, reason)
	}

	streak := lastN(history, streakLength)
	if len(streak) == streakLength && allEqual(streak) {
		// A run of TIEs has no opposite side to bet on.
		if other, ok := streak[0].Opposite(); ok {
			reason := fmt.Sprintf("run of %d %s, betting the break", streakLength, streak[0])
			return models.Propose(other, streakConfidence, reason)
		}
	}

	return models.Abstain()
}

func allEqual(window []models.Outcome) bool {
	for _, o := range window[1:] {
		if o != window[0] {
			return false
		}
	}
	return true
}
