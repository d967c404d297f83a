package models

// DetectorResult is a single heuristic's proposal for the next outcome.
// A nil Prediction means the detector abstained; confidence is then 0.
type DetectorResult struct {
	Prediction *Outcome `json:"prediction"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason"`
}

// Abstain returns an empty detector result.
func Abstain() DetectorResult {
	return DetectorResult{}
}

// Propose returns a detector result voting for the given outcome.
func Propose(outcome Outcome, confidence float64, reason string) DetectorResult {
	return DetectorResult{
		Prediction: &outcome,
		Confidence: confidence,
		Reason:     reason,
	}
}

// WeightedVote pairs a detector result with its fixed aggregation weight.
// Weights across the detectors of one prediction cycle sum to 1.0.
type WeightedVote struct {
	Detector string         `json:"detector"`
	Result   DetectorResult `json:"result"`
	Weight   float64        `json:"weight"`
}

// Prediction is the engine's answer for the next round. A nil Prediction
// field means no call could be made (insufficient history or degraded
// analysis); Reason always explains the result.
type Prediction struct {
	Prediction *Outcome `json:"prediction"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason"`
}

// AccuracyRecord is one completed prediction/outcome pair.
type AccuracyRecord struct {
	Predicted  Outcome `json:"predicted" db:"predicted"`
	Actual     Outcome `json:"actual" db:"actual"`
	Confidence float64 `json:"confidence" db:"confidence"`
}

// Hit reports whether the prediction matched the actual outcome.
func (r AccuracyRecord) Hit() bool {
	return r.Predicted == r.Actual
}

// PredictionStats holds the lifetime accuracy counters of an engine.
// WinRate is wins/total*100, or 0 before the first scored prediction.
type PredictionStats struct {
	Wins    int     `json:"wins"`
	Total   int     `json:"total"`
	WinRate float64 `json:"win_rate"`
}

// StatsReport is the full accuracy payload returned to callers. RecentWinRate
// is only present once more than ten predictions have been scored, and covers
// the last ten retained records.
type StatsReport struct {
	WinRate           float64          `json:"win_rate"`
	Wins              int              `json:"wins"`
	Total             int              `json:"total"`
	RecentPredictions []AccuracyRecord `json:"recent_predictions"`
	RecentWinRate     *float64         `json:"recent_win_rate,omitempty"`
}

// RoundResult is what recording one outcome produced: the canonical outcome
// and, when a pending prediction was scored against it, the accuracy record.
type RoundResult struct {
	Outcome Outcome         `json:"outcome"`
	Scored  *AccuracyRecord `json:"scored,omitempty"`
}
