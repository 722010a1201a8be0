package repository

import (
	"context"
	"fmt"
	"strings"

	"lynxhire/internal/database"
	"lynxhire/internal/domain/job"

	"github.com/google/uuid"
)

type JobRepository interface {
	Create(ctx context.Context, p job.Posting) (job.Posting, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, ownerID uuid.UUID, status job.Status) error
	ListActive(ctx context.Context, f job.ListFilter) ([]job.Posting, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]job.Posting, error)
	CountActiveByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobSelect = `SELECT j.id, j.company_id, j.profile_id, j.status, j.title, j.description, j.requirements, j.nice_to_have,
	j.skills_required, j.work_type, j.location_type, j.city, j.province, j.salary_min, j.salary_max,
	j.experience_level, j.industry, j.ai_generated, j.created_at, c.name, c.logo_url
	FROM job_postings j
	LEFT JOIN companies c ON c.id = j.company_id`

func scanJob(row database.Row) (job.Posting, error) {
	var p job.Posting
	var status string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.OwnerProfileID, &status, &p.Title, &p.Description, &p.Requirements, &p.NiceToHave,
		&p.SkillsRequired, &p.WorkType, &p.LocationType, &p.City, &p.Province, &p.SalaryMin, &p.SalaryMax,
		&p.ExperienceLevel, &p.Industry, &p.AIGenerated, &p.CreatedAt, &p.CompanyName, &p.CompanyLogoURL,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return job.Posting{}, ErrNotFound
		}
		return job.Posting{}, err
	}
	p.Status = job.Status(status)
	return p, nil
}

func collectJobs(rows database.Rows) ([]job.Posting, error) {
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, p job.Posting) (job.Posting, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.SkillsRequired == nil {
		p.SkillsRequired = []string{}
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_postings (id, company_id, profile_id, status, title, description, requirements, nice_to_have,
			skills_required, work_type, location_type, city, province, salary_min, salary_max,
			experience_level, industry, ai_generated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		p.ID, p.CompanyID, p.OwnerProfileID, string(p.Status), p.Title, p.Description, p.Requirements, p.NiceToHave,
		p.SkillsRequired, p.WorkType, p.LocationType, p.City, p.Province, p.SalaryMin, p.SalaryMax,
		p.ExperienceLevel, p.Industry, p.AIGenerated,
	)
	if err != nil {
		return job.Posting{}, err
	}
	return r.GetByID(ctx, p.ID)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	return scanJob(r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
}

func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, ownerID uuid.UUID, status job.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE job_postings SET status = $1 WHERE id = $2 AND profile_id = $3`, string(status), id, ownerID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) ListActive(ctx context.Context, f job.ListFilter) ([]job.Posting, error) {
	where := []string{"j.status = 'active'"}
	args := make([]any, 0, 6)

	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		add("j.title ILIKE $%d", "%"+s+"%")
	}
	if s := strings.TrimSpace(f.WorkType); s != "" {
		add("j.work_type = $%d", s)
	}
	if s := strings.TrimSpace(f.LocationType); s != "" {
		add("j.location_type = $%d", s)
	}
	if s := strings.TrimSpace(f.ExperienceLevel); s != "" {
		add("j.experience_level = $%d", s)
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`%s WHERE %s ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d`,
		jobSelect, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]job.Posting, error) {
	rows, err := r.db.Query(ctx, jobSelect+` WHERE j.profile_id = $1 ORDER BY j.created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) CountActiveByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_postings WHERE profile_id = $1 AND status = 'active'`, ownerID).Scan(&n)
	return n, err
}
