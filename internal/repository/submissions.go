package repository

import (
	"context"
	"time"

	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
)

// UpsertSubmission writes the value for (product, field, period start) as a
// single atomic statement. An existing row keeps its id; value, userEmail,
// periodType and updatedAt always reflect the latest write.
func (r *Repository) UpsertSubmission(submission *domain.Submission) error {
	query := `
		INSERT INTO submissions (product_id, field_name, value, user_email, period_type, period_start)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, field_name, period_start) DO UPDATE
		SET
			value = EXCLUDED.value,
			user_email = EXCLUDED.user_email,
			period_type = EXCLUDED.period_type,
			updated_at = now(),
			version = submissions.version + 1
		RETURNING id, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{submission.ProductID, submission.FieldName, submission.Value, submission.UserEmail, submission.PeriodType, submission.PeriodStart}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&submission.ID, &submission.UpdatedAt, &submission.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSubmission(productID string, fieldName string, periodStart string) (*domain.Submission, error) {
	query := `
		SELECT id, value, user_email, period_type, period_start, updated_at, version
		FROM submissions
		WHERE product_id = $1 AND field_name = $2 AND period_start = $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	submission := &domain.Submission{
		ProductID: productID,
		FieldName: fieldName,
	}

	var start time.Time
	dst := []any{&submission.ID, &submission.Value, &submission.UserEmail, &submission.PeriodType, &start, &submission.UpdatedAt, &submission.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, productID, fieldName, periodStart).Scan(dst...); err != nil {
		return nil, err
	}
	submission.PeriodStart = start.Format("2006-01-02")

	return submission, nil
}

func (r *Repository) GetSubmissionsByProduct(productID string, periodType domain.PeriodType, periodStart string) ([]*domain.Submission, error) {
	query := `
		SELECT id, product_id, field_name, value, user_email, period_type, period_start, updated_at, version
		FROM submissions
		WHERE product_id = $1 AND period_type = $2 AND period_start = $3
	`

	return r.querySubmissions(query, productID, periodType, periodStart)
}

func (r *Repository) GetSubmissionsByPeriod(periodType domain.PeriodType, periodStart string) ([]*domain.Submission, error) {
	query := `
		SELECT id, product_id, field_name, value, user_email, period_type, period_start, updated_at, version
		FROM submissions
		WHERE period_type = $1 AND period_start = $2
	`

	return r.querySubmissions(query, periodType, periodStart)
}

func (r *Repository) querySubmissions(query string, args ...any) ([]*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]*domain.Submission, 0)
	for rows.Next() {
		submission := &domain.Submission{}
		var start time.Time

		dst := []any{&submission.ID, &submission.ProductID, &submission.FieldName, &submission.Value, &submission.UserEmail, &submission.PeriodType, &start, &submission.UpdatedAt, &submission.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		submission.PeriodStart = start.Format("2006-01-02")

		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return submissions, nil
}
