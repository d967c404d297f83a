package models

import (
	"fmt"
	"strings"
)

// Outcome is one of the three mutually exclusive results of a BacBo round.
type Outcome string

const (
	OutcomePlayer Outcome = "PLAYER"
	OutcomeBanker Outcome = "BANKER"
	OutcomeTie    Outcome = "TIE"
)

// Numeric codes used by the sequence-match detector.
const (
	codePlayer = 2
	codeBanker = 3
	codeTie    = 5
)

// ParseOutcome normalizes a raw token to its canonical outcome. Input is
// case-insensitive; anything outside the three known tokens fails with
// ErrInvalidOutcome.
func ParseOutcome(raw string) (Outcome, error) {
	switch Outcome(strings.ToUpper(strings.TrimSpace(raw))) {
	case OutcomePlayer:
		return OutcomePlayer, nil
	case OutcomeBanker:
		return OutcomeBanker, nil
	case OutcomeTie:
		return OutcomeTie, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOutcome, raw)
	}
}

// Valid reports whether the outcome is one of the canonical values.
func (o Outcome) Valid() bool {
	return o == OutcomePlayer || o == OutcomeBanker || o == OutcomeTie
}

// Code returns the numeric code of the outcome (PLAYER 2, BANKER 3, TIE 5).
func (o Outcome) Code() int {
	switch o {
	case OutcomePlayer:
		return codePlayer
	case OutcomeBanker:
		return codeBanker
	default:
		return codeTie
	}
}

// Opposite returns the other betting side. It is only meaningful for PLAYER
// and BANKER; a TIE has no opposite and reports false.
func (o Outcome) Opposite() (Outcome, bool) {
	switch o {
	case OutcomePlayer:
		return OutcomeBanker, true
	case OutcomeBanker:
		return OutcomePlayer, true
	default:
		return "", false
	}
}

// OutcomeForCode maps a numeric code back to its outcome.
func OutcomeForCode(code int) (Outcome, bool) {
	switch code {
	case codePlayer:
		return OutcomePlayer, true
	case codeBanker:
		return OutcomeBanker, true
	case codeTie:
		return OutcomeTie, true
	default:
		return "", false
	}
}
