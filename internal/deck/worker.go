// Package deck runs queued deck generation jobs through to a terminal status.
package deck

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/pulseboard-dev/pulseboard/backend/internal/config"
	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

// Store is the slice of the repository the worker needs.
type Store interface {
	GetDeckGenerationByID(id int64) (*domain.DeckGeneration, error)
	GetSubmissionsByPeriod(periodType domain.PeriodType, periodStart string) ([]*domain.Submission, error)
	UpdateDeckGeneration(generation *domain.DeckGeneration) error
}

type Worker struct {
	cfg        *config.Config
	store      Store
	mailClient *mail.Client
}

func NewWorker(cfg *config.Config, store Store, mailClient *mail.Client) *Worker {
	return &Worker{
		cfg:        cfg,
		store:      store,
		mailClient: mailClient,
	}
}

// Run consumes deliveries until the context is cancelled or the broker closes
// the channel.
func (w *Worker) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-deliveries:
			if !ok {
				slog.Info("delivery channel closed")
				return
			}

			slog.Info("received job", slog.String("message", string(msg.Body)))

			job := domain.DeckJob{}
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				slog.Error("could not decode job", slog.String("error", err.Error()))
				_ = msg.Nack(false, false)
				continue
			}

			if err := w.ProcessJob(job); err != nil {
				slog.Error("deck generation failed", slog.Int64("generation_id", job.GenerationID), slog.String("error", err.Error()))
				// the record already carries the failed status; the
				// message itself is spent either way
			}

			_ = msg.Ack(false)
		}
	}
}

// ProcessJob drives one generation through the status machine. Every outcome
// leaves the record in a terminal state so nothing stays pending after the
// queue delivered the job.
func (w *Worker) ProcessJob(job domain.DeckJob) error {
	generation, err := w.store.GetDeckGenerationByID(job.GenerationID)
	if err != nil {
		return fmt.Errorf("load generation: %w", err)
	}

	if err := w.transition(generation, domain.GenerationInProgress); err != nil {
		return err
	}

	submissions, err := w.store.GetSubmissionsByPeriod(job.PeriodType, job.PeriodStart)
	if err != nil {
		_ = w.transition(generation, domain.GenerationFailed)
		return fmt.Errorf("load submissions: %w", err)
	}
	if len(submissions) == 0 {
		_ = w.transition(generation, domain.GenerationFailed)
		return fmt.Errorf("no submissions for %s period starting %s", job.PeriodType, job.PeriodStart)
	}

	// stand-in for the actual slide rendering
	time.Sleep(time.Duration(w.cfg.Deck.RenderSeconds) * time.Second)

	slidesURL := fmt.Sprintf("%s/decks/%d-%s-%s.pdf", w.cfg.Deck.BaseURL, generation.ID, job.PeriodType, job.PeriodStart)
	generation.SlidesURL = &slidesURL
	if err := w.transition(generation, domain.GenerationCompleted); err != nil {
		return err
	}

	slog.Info("deck completed", slog.Int64("generation_id", generation.ID), slog.String("slides_url", slidesURL))

	if w.cfg.Email.Enabled && w.mailClient != nil {
		if err := w.sendCompletionMail(generation); err != nil {
			// the deck is done; a lost notification is not worth a failed record
			slog.Error("could not send completion mail", slog.String("error", err.Error()))
		}
	}

	return nil
}

func (w *Worker) transition(generation *domain.DeckGeneration, to domain.GenerationStatus) error {
	if !domain.CanTransition(generation.Status, to) {
		return fmt.Errorf("illegal transition %s -> %s for generation %d", generation.Status, to, generation.ID)
	}

	generation.Status = to
	if err := w.store.UpdateDeckGeneration(generation); err != nil {
		return fmt.Errorf("update generation to %s: %w", to, err)
	}

	return nil
}

type completedMailData struct {
	RequestedBy string
	PeriodType  string
	PeriodStart string
	SlidesURL   string
}

func (w *Worker) sendCompletionMail(generation *domain.DeckGeneration) error {
	msg := mail.NewMsg()
	if err := msg.From(w.cfg.Email.From); err != nil {
		return err
	}
	if err := msg.To(generation.GeneratedBy); err != nil {
		return err
	}

	tmpl, err := template.ParseFiles("./templates/deck_completed_email.html")
	if err != nil {
		return err
	}

	data := completedMailData{
		RequestedBy: generation.GeneratedBy,
		PeriodType:  string(generation.PeriodType),
		PeriodStart: generation.PeriodStart,
		SlidesURL:   *generation.SlidesURL,
	}
	if err := msg.SetBodyHTMLTemplate(tmpl, data); err != nil {
		return err
	}
	msg.Subject("Pulseboard - your deck is ready")

	return w.mailClient.DialAndSend(msg)
}
