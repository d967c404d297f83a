package models

import (
	"time"

	"github.com/google/uuid"
)

// Round is a persisted game round: the recorded outcome together with the
// prediction that was pending when it arrived, if any.
type Round struct {
	ID         uuid.UUID `db:"id" json:"id"`
	SessionID  uuid.UUID `db:"session_id" json:"session_id"`
	Sequence   int       `db:"sequence" json:"sequence" validate:"gt=0"`
	Outcome    Outcome   `db:"outcome" json:"outcome" validate:"required"`
	Predicted  *Outcome  `db:"predicted" json:"predicted,omitempty"`
	Confidence *float64  `db:"confidence" json:"confidence,omitempty"`
	Hit        *bool     `db:"hit" json:"hit,omitempty"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}

// StatsSnapshot is a periodic capture of a session's lifetime accuracy.
type StatsSnapshot struct {
	ID        uuid.UUID `db:"id" json:"id"`
	SessionID uuid.UUID `db:"session_id" json:"session_id"`
	Wins      int       `db:"wins" json:"wins"`
	Total     int       `db:"total" json:"total"`
	WinRate   float64   `db:"win_rate" json:"win_rate"`
	TakenAt   time.Time `db:"taken_at" json:"taken_at"`
}
