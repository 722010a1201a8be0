package repository

import (
	"context"

	"lynxhire/internal/database"
	"lynxhire/internal/domain/application"

	"github.com/google/uuid"
)

type CandidateApplicationRow struct {
	application.Application
	JobTitle    string
	CompanyName *string
}

type JobApplicationRow struct {
	application.Application
	CandidateName  *string
	CandidateEmail string
}

type ApplicationRepository interface {
	ExistsForPair(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error)
	Create(ctx context.Context, a application.Application) (application.Application, error)
	GetWithOwnership(ctx context.Context, id uuid.UUID) (application.Ownership, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) error
	SetMatchScore(ctx context.Context, id uuid.UUID, score int) error
	ListByCandidate(ctx context.Context, candidateID uuid.UUID, limit int) ([]CandidateApplicationRow, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]JobApplicationRow, error)
	CountByCandidate(ctx context.Context, candidateID uuid.UUID) (int, error)
	CountForOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) ExistsForPair(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`, jobID, candidateID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a new application. A concurrent insert for the same
// (job, candidate) pair loses on the unique index and yields ErrDuplicate.
func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (id, job_id, candidate_id, status, cover_letter, resume_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		a.ID, a.JobID, a.CandidateID, string(a.Status), a.CoverLetter, a.ResumeURL,
	)
	if err := row.Scan(&a.CreatedAt); err != nil {
		if database.IsUniqueViolation(err) {
			return application.Application{}, ErrDuplicate
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) GetWithOwnership(ctx context.Context, id uuid.UUID) (application.Ownership, error) {
	row := r.db.QueryRow(ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.status, a.cover_letter, a.resume_url, a.ai_match_score, a.created_at,
			j.profile_id, j.title
		 FROM applications a
		 JOIN job_postings j ON j.id = a.job_id
		 WHERE a.id = $1`,
		id,
	)

	var o application.Ownership
	var status string
	if err := row.Scan(&o.ID, &o.JobID, &o.CandidateID, &status, &o.CoverLetter, &o.ResumeURL, &o.AIMatchScore, &o.CreatedAt, &o.JobOwnerID, &o.JobTitle); err != nil {
		if database.IsNoRows(err) {
			return application.Ownership{}, ErrNotFound
		}
		return application.Ownership{}, err
	}
	o.Status = application.Status(status)
	return o, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE applications SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) SetMatchScore(ctx context.Context, id uuid.UUID, score int) error {
	n, err := r.db.Exec(ctx, `UPDATE applications SET ai_match_score = $1 WHERE id = $2`, score, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID, limit int) ([]CandidateApplicationRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.status, a.cover_letter, a.resume_url, a.ai_match_score, a.created_at,
			j.title, c.name
		 FROM applications a
		 JOIN job_postings j ON j.id = a.job_id
		 LEFT JOIN companies c ON c.id = j.company_id
		 WHERE a.candidate_id = $1
		 ORDER BY a.created_at DESC
		 LIMIT $2`,
		candidateID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CandidateApplicationRow, 0)
	for rows.Next() {
		var it CandidateApplicationRow
		var status string
		if err := rows.Scan(&it.ID, &it.JobID, &it.CandidateID, &status, &it.CoverLetter, &it.ResumeURL, &it.AIMatchScore, &it.CreatedAt, &it.JobTitle, &it.CompanyName); err != nil {
			return nil, err
		}
		it.Status = application.Status(status)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]JobApplicationRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.status, a.cover_letter, a.resume_url, a.ai_match_score, a.created_at,
			p.full_name, p.email
		 FROM applications a
		 JOIN profiles p ON p.id = a.candidate_id
		 WHERE a.job_id = $1
		 ORDER BY a.ai_match_score DESC NULLS LAST, a.created_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobApplicationRow, 0)
	for rows.Next() {
		var it JobApplicationRow
		var status string
		if err := rows.Scan(&it.ID, &it.JobID, &it.CandidateID, &status, &it.CoverLetter, &it.ResumeURL, &it.AIMatchScore, &it.CreatedAt, &it.CandidateName, &it.CandidateEmail); err != nil {
			return nil, err
		}
		it.Status = application.Status(status)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) CountByCandidate(ctx context.Context, candidateID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE candidate_id = $1`, candidateID).Scan(&n)
	return n, err
}

func (r *PostgresApplicationRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications a JOIN job_postings j ON j.id = a.job_id WHERE j.profile_id = $1`,
		ownerID,
	).Scan(&n)
	return n, err
}
