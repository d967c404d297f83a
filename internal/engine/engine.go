// Package engine implements the BacBo next-outcome prediction engine: an
// append-only outcome log, three pattern-detection heuristics, a
// weighted-vote aggregator, a long-window confidence correction and online
// accuracy bookkeeping.
package engine

import (
	"fmt"
	"sync"

	"github.com/yourusername/bacbo-predictor/internal/metrics"
	"github.com/yourusername/bacbo-predictor/internal/models"
)

// MinHistory is the number of recorded rounds required before any detector
// runs. Below it Predict returns an empty prediction.
const MinHistory = 5

// Config holds the tunable parameters of an engine. Zero values fall back to
// the defaults, so Config{} is a valid configuration.
type Config struct {
	QuantumThreshold  int
	ReferenceSequence []int
	PressurePoints    []int
	QuantumWeight     float64
	FibonacciWeight   float64
	PressureWeight    float64
}

// DefaultConfig returns the tuned default parameters.
func DefaultConfig() Config {
	return Config{
		QuantumThreshold:  DefaultQuantumThreshold,
		ReferenceSequence: DefaultReferenceSequence,
		PressurePoints:    DefaultPressurePoints,
		QuantumWeight:     DefaultQuantumWeight,
		FibonacciWeight:   DefaultFibonacciWeight,
		PressureWeight:    DefaultPressureWeight,
	}
}

type weightedDetector struct {
	detector Detector
	weight   float64
}

// Engine is a single prediction session. All state (outcome log, accuracy
// counters, pending prediction) lives behind one mutex, so an Engine is safe
// for concurrent callers.
type Engine struct {
	mu             sync.Mutex
	detectors      []weightedDetector
	history        []models.Outcome
	tracker        accuracyTracker
	lastPrediction *models.Prediction
}

// New creates an engine from the given configuration.
func New(cfg Config) *Engine {
	if cfg.QuantumWeight == 0 && cfg.FibonacciWeight == 0 && cfg.PressureWeight == 0 {
		cfg.QuantumWeight = DefaultQuantumWeight
		cfg.FibonacciWeight = DefaultFibonacciWeight
		cfg.PressureWeight = DefaultPressureWeight
	}

	return &Engine{
		detectors: []weightedDetector{
			{NewOscillationDetector(cfg.QuantumThreshold), cfg.QuantumWeight},
			{NewSequenceDetector(cfg.ReferenceSequence), cfg.FibonacciWeight},
			{NewPeriodicityDetector(cfg.PressurePoints), cfg.PressureWeight},
		},
	}
}

// Record validates and appends one outcome. If a prediction is pending it is
// scored against the new outcome first, before any further prediction can be
// computed; a prediction is scored at most once. On a validation failure the
// engine state is left unchanged.
func (e *Engine) Record(raw string) (models.RoundResult, error) {
	outcome, err := models.ParseOutcome(raw)
	if err != nil {
		return models.RoundResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	result := models.RoundResult{Outcome: outcome}
	if e.lastPrediction != nil && e.lastPrediction.Prediction != nil {
		record := e.tracker.score(*e.lastPrediction.Prediction, e.lastPrediction.Confidence, outcome)
		result.Scored = &record
	}
	e.lastPrediction = nil

	e.history = append(e.history, outcome)
	return result, nil
}

// Predict computes the next-outcome prediction from the current log. It does
// not mutate the log, but a callable prediction is kept as the pending
// prediction for the next accuracy comparison. Predict never fails: a panic
// anywhere in the pipeline degrades to an empty prediction carrying the
// error detail.
func (e *Engine) Predict() models.Prediction {
	e.mu.Lock()
	defer e.mu.Unlock()

	pred := e.predictLocked()
	if pred.Prediction != nil {
		e.lastPrediction = clonePrediction(pred)
	}
	return pred
}

// clonePrediction deep-copies a prediction so callers and the pending slot
// never share the outcome pointer.
func clonePrediction(pred models.Prediction) *models.Prediction {
	clone := models.Prediction{Confidence: pred.Confidence, Reason: pred.Reason}
	if pred.Prediction != nil {
		outcome := *pred.Prediction
		clone.Prediction = &outcome
	}
	return &clone
}

func (e *Engine) predictLocked() (pred models.Prediction) {
	if len(e.history) < MinHistory {
		return models.Prediction{
			Reason: fmt.Sprintf("insufficient history (minimum %d rounds)", MinHistory),
		}
	}

	defer func() {
		if r := recover(); r != nil {
			pred = models.Prediction{Reason: fmt.Sprintf("analysis error: %v", r)}
		}
	}()

	votes := make([]models.WeightedVote, 0, len(e.detectors))
	for _, wd := range e.detectors {
		result := wd.detector.Analyze(e.history)
		if result.Prediction != nil {
			metrics.RecordDetectorVote(wd.detector.Name())
		}
		votes = append(votes, models.WeightedVote{
			Detector: wd.detector.Name(),
			Result:   result,
			Weight:   wd.weight,
		})
	}

	merged, ok := aggregate(votes)
	if !ok {
		merged = fallbackPredict(e.history)
		metrics.RecordFallback()
	}

	return applyFrequencyCorrection(e.history, merged)
}

// Stats returns the accuracy report for this engine.
func (e *Engine) Stats() models.StatsReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.report()
}

// Rounds returns the number of recorded outcomes.
func (e *Engine) Rounds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.history)
}

// History returns a copy of the outcome log.
func (e *Engine) History() []models.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Outcome(nil), e.history...)
}

// LastPrediction returns a copy of the pending prediction, or nil when none
// is awaiting comparison.
func (e *Engine) LastPrediction() *models.Prediction {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastPrediction == nil {
		return nil
	}
	return clonePrediction(*e.lastPrediction)
}

// Reset clears the outcome log, the accuracy counters, the retained records
// and any pending prediction.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = nil
	e.tracker.reset()
	e.lastPrediction = nil
}
