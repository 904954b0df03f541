package domain

import (
	"time"
)

type GenerationStatus string

const (
	GenerationPending    GenerationStatus = "pending"
	GenerationInProgress GenerationStatus = "in_progress"
	GenerationCompleted  GenerationStatus = "completed"
	GenerationFailed     GenerationStatus = "failed"
)

// DeckGeneration is an append-only record of one deck generation job.
// Records are never deleted; only status and slidesUrl change after creation.
type DeckGeneration struct {
	ID          int64            `json:"id"`
	GeneratedBy string           `json:"generatedBy"`
	PeriodType  PeriodType       `json:"periodType"`
	PeriodStart string           `json:"periodStart"`
	SlidesURL   *string          `json:"slidesUrl"`
	Status      GenerationStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	Version     int32            `json:"-"`
}

// CanTransition reports whether a generation may move from one status to
// another. Completed and failed are terminal.
func CanTransition(from, to GenerationStatus) bool {
	switch from {
	case GenerationPending:
		return to == GenerationInProgress || to == GenerationCompleted || to == GenerationFailed
	case GenerationInProgress:
		return to == GenerationCompleted || to == GenerationFailed
	default:
		return false
	}
}
