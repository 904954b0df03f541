package domain

// DeckJob is the message published to the deck queue when an admin triggers
// deck generation. The worker resolves the generation record by ID and drives
// its status transitions.
type DeckJob struct {
	GenerationID int64      `json:"generationId"`
	PeriodType   PeriodType `json:"periodType"`
	PeriodStart  string     `json:"periodStart"`
	RequestedBy  string     `json:"requestedBy"`
}
