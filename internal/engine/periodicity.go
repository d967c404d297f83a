package engine

import (
	"fmt"

	"github.com/yourusername/bacbo-predictor/internal/models"
)

// DefaultPressurePoints are the round-count checkpoints that trigger the
// periodicity heuristic, scanned in ascending order.
var DefaultPressurePoints = []int{5, 7, 10, 15, 20, 25, 30}

const (
	pressureBase     = 85
	pressureBonusCap = 10
	pressureName     = "pressure"
)

// PeriodicityDetector fires when the running outcome count lands exactly on a
// pressure-point checkpoint and bets the minority side of that checkpoint's
// window.
type PeriodicityDetector struct {
	Checkpoints []int
}

// NewPeriodicityDetector creates a periodicity detector. An empty checkpoint
// list falls back to the defaults.
func NewPeriodicityDetector(checkpoints []int) *PeriodicityDetector {
	if len(checkpoints) == 0 {
		checkpoints = DefaultPressurePoints
	}
	return &PeriodicityDetector{Checkpoints: checkpoints}
}

// Name returns the detector name.
func (d *PeriodicityDetector) Name() string {
	return pressureName
}

// Analyze scans the checkpoints in ascending order and acts on the first one
// that divides the total round count evenly. Equal side counts predict
// PLAYER; only the first matching checkpoint is used.
func (d *PeriodicityDetector) Analyze(history []models.Outcome) models.DetectorResult {
	total := len(history)
	for _, p := range d.Checkpoints {
		if p <= 0 || total < p || total%p != 0 {
			continue
		}

		player, banker := countSides(lastN(history, p))
		side := models.OutcomePlayer
		if player > banker {
			side = models.OutcomeBanker
		}
		diff := absInt(player - banker)
		confidence := float64(pressureBase + minInt(pressureBonusCap, diff))
		reason := fmt.Sprintf("pressure point %d reached (PLAYER %d x BANKER %d)", p, player, banker)
		return models.Propose(side, confidence, reason)
	}

	return models.Abstain()
}
