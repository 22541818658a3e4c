package repository

import (
	"context"
	"database/sql"
	"threadsum/internal/model"
)

type ThreadSummaryRepository struct {
	db *sql.DB
}

func NewThreadSummaryRepository(db *sql.DB) *ThreadSummaryRepository {
	return &ThreadSummaryRepository{db: db}
}

// GetSummary returns nil without error when no summary is cached for the key.
func (r *ThreadSummaryRepository) GetSummary(ctx context.Context, hash string, length model.SummaryLength) (*model.ThreadSummary, error) {
	var s model.ThreadSummary
	err := r.db.QueryRowContext(ctx, `
		SELECT id, hash, length, summary_text, last_update, created_at
		FROM thread_summary
		WHERE hash = $1 AND length = $2
	`, hash, string(length)).Scan(&s.ID, &s.Hash, &s.Length, &s.Summary, &s.LastUpdate, &s.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *ThreadSummaryRepository) SaveSummary(ctx context.Context, hash string, length model.SummaryLength, summary string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO thread_summary(hash, length, summary_text)
		VALUES($1, $2, $3)
		ON CONFLICT (hash, length) DO UPDATE
		SET summary_text = EXCLUDED.summary_text, last_update = CURRENT_TIMESTAMP
	`, hash, string(length), summary)
	return err
}

// UpdateSummary reports whether a row matched the key.
func (r *ThreadSummaryRepository) UpdateSummary(ctx context.Context, hash string, length model.SummaryLength, summary string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE thread_summary SET summary_text = $3, last_update = CURRENT_TIMESTAMP
		WHERE hash = $1 AND length = $2
	`, hash, string(length), summary)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *ThreadSummaryRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
