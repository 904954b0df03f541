package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
	"github.com/pulseboard-dev/pulseboard/backend/internal/utils"
	amqp "github.com/rabbitmq/amqp091-go"
)

// the admin listing shows more history than the generic recent feed
const adminGenerationsLimit = 20

func (h *Handler) GetGenerations(w http.ResponseWriter, r *http.Request) {
	limit, err := listLimit(r.URL.Query().Get("limit"), adminGenerationsLimit)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	generations, err := h.repository.GetRecentDeckGenerations(limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "generations", generations)
}

func listLimit(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}

	return parsed, nil
}

// GenerateDeck records a pending generation and hands the work to the deck
// worker through the queue. The response carries the pending record; clients
// poll the generations listing for completion.
func (h *Handler) GenerateDeck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PeriodType  string `json:"periodType" validate:"required,oneof=weekly monthly"`
		PeriodStart string `json:"periodStart" validate:"required,datetime=2006-01-02"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	periodType := domain.PeriodType(req.PeriodType)
	if err := utils.ValidatePeriodStart(periodType, req.PeriodStart); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user := r.Context().Value(CurrentUserCtx).(*domain.User)

	generation := &domain.DeckGeneration{
		GeneratedBy: user.Email,
		PeriodType:  periodType,
		PeriodStart: req.PeriodStart,
		Status:      domain.GenerationPending,
	}

	if err := h.repository.CreateDeckGeneration(generation); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	job := domain.DeckJob{
		GenerationID: generation.ID,
		PeriodType:   generation.PeriodType,
		PeriodStart:  generation.PeriodStart,
		RequestedBy:  generation.GeneratedBy,
	}
	jobData, err := json.Marshal(job)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.deckChannel.PublishWithContext(
		ctx,
		"",
		h.config.Deck.Queue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        jobData,
		},
	); err != nil {
		// the record exists but no worker will ever see it; mark it failed
		// so it does not sit pending forever
		generation.Status = domain.GenerationFailed
		if updateErr := h.repository.UpdateDeckGeneration(generation); updateErr != nil {
			slog.Error("could not mark generation failed after publish error", "generation_id", generation.ID, "error", updateErr)
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "deck generation queued", generation)
}
