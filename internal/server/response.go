package server

import (
	"time"

	"github.com/google/uuid"
)

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)

// Response is the envelope of every calculation endpoint.
type Response struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   any                 `json:"calculation_result,omitempty"`
	Error               *ErrorResponse      `json:"error,omitempty"`
}

// CalculationMetadata identifies one request and how long it took.
type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func newMetadata(id uuid.UUID, started, completed time.Time, outcome string) CalculationMetadata {
	return CalculationMetadata{
		CalculationID:          id.String(),
		CalculationStartedAt:   started.UTC().Format(time.RFC3339),
		CalculationCompletedAt: completed.UTC().Format(time.RFC3339),
		CalculationDurationMs:  completed.Sub(started).Milliseconds(),
		CalculationOutcome:     outcome,
	}
}
