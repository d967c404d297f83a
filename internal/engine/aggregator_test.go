package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bacbo-predictor/internal/models"
)

func vote(detector string, outcome models.Outcome, confidence, weight float64) models.WeightedVote {
	return models.WeightedVote{
		Detector: detector,
		Result:   models.Propose(outcome, confidence, detector+" reason"),
		Weight:   weight,
	}
}

func abstention(detector string, weight float64) models.WeightedVote {
	return models.WeightedVote{Detector: detector, Result: models.Abstain(), Weight: weight}
}

func TestAggregateAllAbstain(t *testing.T) {
	_, ok := aggregate([]models.WeightedVote{
		abstention("quantum", 0.45),
		abstention("fibonacci", 0.35),
		abstention("pressure", 0.20),
	})
	assert.False(t, ok)
}

func TestAggregateWinnerByWeightNotConfidence(t *testing.T) {
	// fibonacci+pressure outweigh quantum even though quantum is more
	// confident.
	pred, ok := aggregate([]models.WeightedVote{
		vote("quantum", models.OutcomePlayer, 90, 0.45),
		vote("fibonacci", models.OutcomeBanker, 83, 0.35),
		vote("pressure", models.OutcomeBanker, 85, 0.20),
	})

	require.True(t, ok)
	require.NotNil(t, pred.Prediction)
	assert.Equal(t, models.OutcomeBanker, *pred.Prediction)

	// Winner confidence averages only the winning group's votes:
	// (83*0.35 + 85*0.20) / 0.55
	assert.InDelta(t, 83.727, pred.Confidence, 0.001)
	assert.Contains(t, pred.Reason, "fibonacci reason")
	assert.Contains(t, pred.Reason, "pressure reason")
	assert.NotContains(t, pred.Reason, "quantum reason")
}

func TestAggregateTieBreakByEncounterOrder(t *testing.T) {
	pred, ok := aggregate([]models.WeightedVote{
		vote("quantum", models.OutcomePlayer, 80, 0.5),
		vote("fibonacci", models.OutcomeBanker, 95, 0.5),
	})

	require.True(t, ok)
	require.NotNil(t, pred.Prediction)
	assert.Equal(t, models.OutcomePlayer, *pred.Prediction)
	assert.InDelta(t, 80.0, pred.Confidence, 0.001)
}

func TestAggregateSingleVote(t *testing.T) {
	pred, ok := aggregate([]models.WeightedVote{
		abstention("quantum", 0.45),
		vote("fibonacci", models.OutcomeTie, 83, 0.35),
		abstention("pressure", 0.20),
	})

	require.True(t, ok)
	require.NotNil(t, pred.Prediction)
	assert.Equal(t, models.OutcomeTie, *pred.Prediction)
	assert.InDelta(t, 83.0, pred.Confidence, 0.001)
}

func TestFallbackPredict(t *testing.T) {
	tests := []struct {
		name       string
		history    string
		expected   models.Outcome
		confidence float64
	}{
		{"player under-represented", "TBPBBBBTBP", models.OutcomePlayer, 65},
		{"banker under-represented", "TPBPPPPTPB", models.OutcomeBanker, 65},
		{"default edge", "PPPBBBPBPB", models.OutcomeBanker, 58},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := fallbackPredict(historyOf(t, tt.history))
			require.NotNil(t, pred.Prediction)
			assert.Equal(t, tt.expected, *pred.Prediction)
			assert.Equal(t, tt.confidence, pred.Confidence)
		})
	}
}

func TestFrequencyCorrectionInactiveBelowMinimum(t *testing.T) {
	history := make([]models.Outcome, 49)
	for i := range history {
		history[i] = models.OutcomePlayer
	}
	pred := propose(models.OutcomePlayer, 90, "base")

	adjusted := applyFrequencyCorrection(history, pred)
	assert.Equal(t, pred, adjusted)
}

func TestFrequencyCorrectionDampensOverrepresentedSide(t *testing.T) {
	// 60 rounds, 40 of them PLAYER: ratio 0.67 over the window.
	history := make([]models.Outcome, 0, 60)
	for i := 0; i < 40; i++ {
		history = append(history, models.OutcomePlayer)
	}
	for i := 0; i < 20; i++ {
		history = append(history, models.OutcomeBanker)
	}

	pred := propose(models.OutcomePlayer, 90, "base")
	adjusted := applyFrequencyCorrection(history, pred)

	assert.InDelta(t, 85.5, adjusted.Confidence, 0.001)
	assert.Contains(t, adjusted.Reason, "confidence adjusted")
}

func TestFrequencyCorrectionFloorCanRaise(t *testing.T) {
	history := make([]models.Outcome, 0, 60)
	for i := 0; i < 40; i++ {
		history = append(history, models.OutcomeBanker)
	}
	for i := 0; i < 20; i++ {
		history = append(history, models.OutcomePlayer)
	}

	// 58-point fallback confidence gets raised to the 75-point floor.
	pred := propose(models.OutcomeBanker, 58, "default statistical edge")
	adjusted := applyFrequencyCorrection(history, pred)

	assert.Equal(t, 75.0, adjusted.Confidence)
}

func TestFrequencyCorrectionIgnoresBalancedSide(t *testing.T) {
	history := make([]models.Outcome, 0, 60)
	for i := 0; i < 30; i++ {
		history = append(history, models.OutcomePlayer, models.OutcomeBanker)
	}

	pred := propose(models.OutcomePlayer, 88, "base")
	adjusted := applyFrequencyCorrection(history, pred)
	assert.Equal(t, pred, adjusted)
}
