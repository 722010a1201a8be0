package repository

import (
	"context"

	"lynxhire/internal/database"
	"lynxhire/internal/domain/job"

	"github.com/google/uuid"
)

type SavedJobRepository interface {
	// Toggle removes the pair when present and inserts it otherwise.
	// It reports whether the job is saved afterwards.
	Toggle(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error)
	IsSaved(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error)
	// ListByCandidate returns only saved postings that are still active.
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]job.Posting, error)
	CountByCandidate(ctx context.Context, candidateID uuid.UUID) (int, error)
}

type PostgresSavedJobRepository struct {
	db database.DB
}

func NewPostgresSavedJobRepository(db database.DB) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

func (r *PostgresSavedJobRepository) Toggle(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	saved := false
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		n, err := tx.Exec(ctx, `DELETE FROM saved_jobs WHERE candidate_id = $1 AND job_id = $2`, candidateID, jobID)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO saved_jobs (candidate_id, job_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			candidateID, jobID,
		); err != nil {
			return err
		}
		saved = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return saved, nil
}

func (r *PostgresSavedJobRepository) IsSaved(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM saved_jobs WHERE candidate_id = $1 AND job_id = $2)`,
		candidateID, jobID,
	).Scan(&ok)
	return ok, err
}

func (r *PostgresSavedJobRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]job.Posting, error) {
	rows, err := r.db.Query(ctx,
		jobSelect+` JOIN saved_jobs s ON s.job_id = j.id WHERE s.candidate_id = $1 AND j.status = 'active' ORDER BY s.created_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresSavedJobRepository) CountByCandidate(ctx context.Context, candidateID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM saved_jobs WHERE candidate_id = $1`, candidateID).Scan(&n)
	return n, err
}
