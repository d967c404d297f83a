package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/bacbo-predictor/internal/models"
)

// DefaultReferenceSequence is the fixed progression the sequence-match
// detector scans for. Its values are unrelated to the outcome codes beyond
// the first three elements.
var DefaultReferenceSequence = []int{2, 3, 5, 8, 13, 21, 34}

const (
	sequenceWindow    = 10
	sequenceBase      = 83
	sequencePerOffset = 2
	sequenceName      = "fibonacci"
)

// SequenceDetector maps the recent outcomes to their numeric codes and looks
// for three-element windows of a reference sequence inside them.
type SequenceDetector struct {
	Reference []int
}

// NewSequenceDetector creates a sequence-match detector. An empty reference
// falls back to the default progression.
func NewSequenceDetector(reference []int) *SequenceDetector {
	if len(reference) == 0 {
		reference = DefaultReferenceSequence
	}
	return &SequenceDetector{Reference: reference}
}

// Name returns the detector name.
func (d *SequenceDetector) Name() string {
	return sequenceName
}

// Analyze renders the last 10 outcomes as a comma-joined code string and
// tests each sliding three-element window of the reference sequence for
// containment, lowest offset first. A hit predicts the outcome coded by the
// element after the window; codes without an outcome resolve to BANKER.
//
// The containment test is deliberately textual, not a numeric subsequence
// match: multi-digit reference elements can match across digit boundaries
// ("13" inside "1,3"). The heuristics were tuned against this behaviour, so
// it is kept as-is.
func (d *SequenceDetector) Analyze(history []models.Outcome) models.DetectorResult {
	window := lastN(history, sequenceWindow)
	codes := make([]string, len(window))
	for i, o := range window {
		codes[i] = strconv.Itoa(o.Code())
	}
	observed := strings.Join(codes, ",")

	for i := 0; i+2 < len(d.Reference); i++ {
		probe := fmt.Sprintf("%d,%d,%d", d.Reference[i], d.Reference[i+1], d.Reference[i+2])
		if !strings.Contains(observed, probe) {
			continue
		}

		next := models.OutcomeBanker
		if i+3 < len(d.Reference) {
			if mapped, ok := models.OutcomeForCode(d.Reference[i+3]); ok {
				next = mapped
			}
		}
		confidence := float64(sequenceBase + i*sequencePerOffset)
		reason := fmt.Sprintf("fibonacci window [%s] matched at offset %d", probe, i)
		return models.Propose(next, confidence, reason)
	}

	return models.Abstain()
}
