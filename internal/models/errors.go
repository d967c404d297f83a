package models

import "errors"

// Custom errors
var (
	ErrInvalidOutcome  = errors.New("invalid outcome: use PLAYER, BANKER or TIE")
	ErrSessionNotFound = errors.New("session not found")
	ErrNotFound        = errors.New("record not found")
)
