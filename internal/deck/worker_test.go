package deck_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/pulseboard-dev/pulseboard/backend/internal/config"
	"github.com/pulseboard-dev/pulseboard/backend/internal/deck"
	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	generation     *domain.DeckGeneration
	submissions    []*domain.Submission
	submissionsErr error
	statuses       []domain.GenerationStatus
}

func (f *fakeStore) GetDeckGenerationByID(id int64) (*domain.DeckGeneration, error) {
	if f.generation == nil || f.generation.ID != id {
		return nil, sql.ErrNoRows
	}
	generation := *f.generation
	return &generation, nil
}

func (f *fakeStore) GetSubmissionsByPeriod(periodType domain.PeriodType, periodStart string) ([]*domain.Submission, error) {
	return f.submissions, f.submissionsErr
}

func (f *fakeStore) UpdateDeckGeneration(generation *domain.DeckGeneration) error {
	f.statuses = append(f.statuses, generation.Status)
	stored := *generation
	f.generation = &stored
	generation.Version++
	return nil
}

func newWorkerConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Deck.BaseURL = "https://decks.pulseboard.dev"
	cfg.Deck.RenderSeconds = 0
	return cfg
}

func pendingGeneration() *domain.DeckGeneration {
	return &domain.DeckGeneration{
		ID:          7,
		GeneratedBy: "admin@pulseboard.dev",
		PeriodType:  domain.PeriodWeekly,
		PeriodStart: "2025-01-06",
		Status:      domain.GenerationPending,
		Version:     1,
	}
}

func weeklyJob() domain.DeckJob {
	return domain.DeckJob{
		GenerationID: 7,
		PeriodType:   domain.PeriodWeekly,
		PeriodStart:  "2025-01-06",
		RequestedBy:  "admin@pulseboard.dev",
	}
}

func TestProcessJobCompletes(t *testing.T) {
	store := &fakeStore{
		generation: pendingGeneration(),
		submissions: []*domain.Submission{
			{ProductID: "sams", FieldName: "kr1_tof_actual", Value: "100"},
		},
	}
	worker := deck.NewWorker(newWorkerConfig(), store, nil)

	require.NoError(t, worker.ProcessJob(weeklyJob()))

	assert.Equal(t, []domain.GenerationStatus{domain.GenerationInProgress, domain.GenerationCompleted}, store.statuses)
	assert.Equal(t, domain.GenerationCompleted, store.generation.Status)
	require.NotNil(t, store.generation.SlidesURL)
	assert.Equal(t, "https://decks.pulseboard.dev/decks/7-weekly-2025-01-06.pdf", *store.generation.SlidesURL)
}

func TestProcessJobFailsOnEmptyPeriod(t *testing.T) {
	store := &fakeStore{generation: pendingGeneration()}
	worker := deck.NewWorker(newWorkerConfig(), store, nil)

	err := worker.ProcessJob(weeklyJob())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no submissions")

	assert.Equal(t, []domain.GenerationStatus{domain.GenerationInProgress, domain.GenerationFailed}, store.statuses)
	assert.Equal(t, domain.GenerationFailed, store.generation.Status)
	assert.Nil(t, store.generation.SlidesURL)
}

func TestProcessJobFailsOnStoreError(t *testing.T) {
	store := &fakeStore{
		generation:     pendingGeneration(),
		submissionsErr: errors.New("connection reset"),
	}
	worker := deck.NewWorker(newWorkerConfig(), store, nil)

	err := worker.ProcessJob(weeklyJob())
	require.Error(t, err)

	assert.Equal(t, []domain.GenerationStatus{domain.GenerationInProgress, domain.GenerationFailed}, store.statuses)
}

func TestProcessJobUnknownGeneration(t *testing.T) {
	store := &fakeStore{}
	worker := deck.NewWorker(newWorkerConfig(), store, nil)

	err := worker.ProcessJob(weeklyJob())
	require.Error(t, err)
	assert.Empty(t, store.statuses, "nothing to update when the record is missing")
}

func TestRunStopsWhenDeliveryChannelCloses(t *testing.T) {
	store := &fakeStore{
		generation: pendingGeneration(),
		submissions: []*domain.Submission{
			{ProductID: "sams", FieldName: "kr1_tof_actual", Value: "100"},
		},
	}
	worker := deck.NewWorker(newWorkerConfig(), store, nil)

	body, err := json.Marshal(weeklyJob())
	require.NoError(t, err)

	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- amqp.Delivery{Body: body}
	close(deliveries)

	done := make(chan struct{})
	go func() {
		worker.Run(context.Background(), deliveries)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after the broker closed the channel")
	}

	assert.Equal(t, domain.GenerationCompleted, store.generation.Status)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	worker := deck.NewWorker(newWorkerConfig(), &fakeStore{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		worker.Run(ctx, make(chan amqp.Delivery))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on context cancellation")
	}
}
