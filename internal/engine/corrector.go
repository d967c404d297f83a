package engine

import (
	"fmt"
	"math"

	"github.com/yourusername/bacbo-predictor/internal/models"
)

const (
	correctionMinHistory = 50
	correctionWindow     = 100
	correctionRatioCap   = 0.52
	correctionScale      = 0.95
	correctionFloor      = 75
)

// applyFrequencyCorrection dampens the confidence of a prediction whose side
// has been over-represented across the long window. Only active once 50
// rounds are on record.
//
// The 75-point floor can raise a confidence that came in lower; that
// asymmetry matches the tuned behaviour and is kept on purpose.
func applyFrequencyCorrection(history []models.Outcome, pred models.Prediction) models.Prediction {
	if len(history) < correctionMinHistory || pred.Prediction == nil {
		return pred
	}
	side := *pred.Prediction
	if side != models.OutcomePlayer && side != models.OutcomeBanker {
		return pred
	}

	window := lastN(history, correctionWindow)
	count := 0
	for _, o := range window {
		if o == side {
			count++
		}
	}
	ratio := float64(count) / float64(len(window))
	if ratio <= correctionRatioCap {
		return pred
	}

	pred.Confidence = math.Max(correctionFloor, pred.Confidence*correctionScale)
	pred.Reason += reasonSeparator +
		fmt.Sprintf("%s frequency %.2f over recent rounds, confidence adjusted", side, ratio)
	return pred
}
