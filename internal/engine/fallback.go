package engine

import (
	"fmt"

	"github.com/yourusername/bacbo-predictor/internal/models"
)

const (
	fallbackWindow       = 10
	fallbackMinSideCount = 3
	fallbackConfidence   = 65
	fallbackEdgeScore    = 58
)

// fallbackPredict produces a default prediction when every detector
// abstained. An under-represented side in the last 10 rounds is preferred;
// otherwise BANKER is taken as the structural default.
func fallbackPredict(history []models.Outcome) models.Prediction {
	player, banker := countSides(lastN(history, fallbackWindow))

	switch {
	case player < fallbackMinSideCount:
		return propose(models.OutcomePlayer, fallbackConfidence,
			fmt.Sprintf("PLAYER under-represented in last %d rounds", fallbackWindow))
	case banker < fallbackMinSideCount:
		return propose(models.OutcomeBanker, fallbackConfidence,
			fmt.Sprintf("BANKER under-represented in last %d rounds", fallbackWindow))
	default:
		return propose(models.OutcomeBanker, fallbackEdgeScore, "default statistical edge")
	}
}

func propose(outcome models.Outcome, confidence float64, reason string) models.Prediction {
	return models.Prediction{
		Prediction: &outcome,
		Confidence: confidence,
		Reason:     reason,
	}
}
