package repository

import (
	"context"
	"time"

	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
)

func (r *Repository) CreateDeckGeneration(generation *domain.DeckGeneration) error {
	query := `
		INSERT INTO deck_generations (generated_by, period_type, period_start, slides_url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{generation.GeneratedBy, generation.PeriodType, generation.PeriodStart, generation.SlidesURL, generation.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&generation.ID, &generation.CreatedAt, &generation.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDeckGenerationByID(id int64) (*domain.DeckGeneration, error) {
	query := `
		SELECT generated_by, period_type, period_start, slides_url, status, created_at, version
		FROM deck_generations WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	generation := &domain.DeckGeneration{
		ID: id,
	}

	var start time.Time
	dst := []any{&generation.GeneratedBy, &generation.PeriodType, &start, &generation.SlidesURL, &generation.Status, &generation.CreatedAt, &generation.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	generation.PeriodStart = start.Format("2006-01-02")

	return generation, nil
}

// UpdateDeckGeneration writes status and slidesUrl back under a version check.
// Callers merge fields onto a record they loaded first.
func (r *Repository) UpdateDeckGeneration(generation *domain.DeckGeneration) error {
	query := `
		UPDATE deck_generations
		SET
			status = $1,
			slides_url = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{generation.Status, generation.SlidesURL, generation.ID, generation.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&generation.Version); err != nil {
		return err
	}

	return nil
}

// GetRecentDeckGenerations returns up to limit records, newest first. A limit
// of zero or less falls back to the configured recent-feed size.
func (r *Repository) GetRecentDeckGenerations(limit int) ([]*domain.DeckGeneration, error) {
	if limit <= 0 {
		limit = r.cfg.Deck.RecentLimit
	}

	query := `
		SELECT id, generated_by, period_type, period_start, slides_url, status, created_at, version
		FROM deck_generations
		ORDER BY created_at DESC
		LIMIT $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	generations := make([]*domain.DeckGeneration, 0)
	for rows.Next() {
		generation := &domain.DeckGeneration{}
		var start time.Time

		dst := []any{&generation.ID, &generation.GeneratedBy, &generation.PeriodType, &start, &generation.SlidesURL, &generation.Status, &generation.CreatedAt, &generation.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		generation.PeriodStart = start.Format("2006-01-02")

		generations = append(generations, generation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return generations, nil
}
