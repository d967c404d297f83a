package engine

import (
	"strings"

	"github.com/yourusername/bacbo-predictor/internal/models"
)

// Default aggregation weights, in detector evaluation order. They sum to 1.0.
const (
	DefaultQuantumWeight   = 0.45
	DefaultFibonacciWeight = 0.35
	DefaultPressureWeight  = 0.20
)

const reasonSeparator = " | "

type voteGroup struct {
	outcome       models.Outcome
	confidenceSum float64
	weightSum     float64
	reasons       []string
}

// aggregate merges the non-abstaining votes into one prediction. Votes are
// grouped by predicted outcome; the group with the largest accumulated weight
// wins, ties broken by first encounter in vote order. The winner's confidence
// is the weight-normalized average of its own votes only. Returns false when
// every detector abstained.
func aggregate(votes []models.WeightedVote) (models.Prediction, bool) {
	var groups []*voteGroup
	index := make(map[models.Outcome]*voteGroup)

	for _, vote := range votes {
		if vote.Result.Prediction == nil {
			continue
		}
		outcome := *vote.Result.Prediction
		group, ok := index[outcome]
		if !ok {
			group = &voteGroup{outcome: outcome}
			index[outcome] = group
			groups = append(groups, group)
		}
		group.confidenceSum += vote.Result.Confidence * vote.Weight
		group.weightSum += vote.Weight
		group.reasons = append(group.reasons, vote.Result.Reason)
	}

	var winner *voteGroup
	for _, group := range groups {
		if winner == nil || group.weightSum > winner.weightSum {
			winner = group
		}
	}
	if winner == nil || winner.weightSum == 0 {
		return models.Prediction{}, false
	}

	outcome := winner.outcome
	return models.Prediction{
		Prediction: &outcome,
		Confidence: winner.confidenceSum / winner.weightSum,
		Reason:     strings.Join(winner.reasons, reasonSeparator),
	}, true
}
