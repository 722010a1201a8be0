package repository

import (
	"context"

	"lynxhire/internal/database"
	"lynxhire/internal/domain/profile"

	"github.com/google/uuid"
)

type CandidateProfileRepository interface {
	GetByProfileID(ctx context.Context, profileID uuid.UUID) (profile.CandidateProfile, error)
	Upsert(ctx context.Context, cp profile.CandidateProfile) (profile.CandidateProfile, error)
	SetResumeURL(ctx context.Context, profileID uuid.UUID, url string) error
}

type PostgresCandidateProfileRepository struct {
	db database.DB
}

func NewPostgresCandidateProfileRepository(db database.DB) *PostgresCandidateProfileRepository {
	return &PostgresCandidateProfileRepository{db: db}
}

const candidateProfileColumns = `profile_id, skills, years_experience, desired_salary_min, desired_salary_max,
	desired_work_types, work_authorization, province, education_level, resume_url`

func scanCandidateProfile(row database.Row) (profile.CandidateProfile, error) {
	var cp profile.CandidateProfile
	err := row.Scan(
		&cp.ProfileID, &cp.Skills, &cp.YearsExperience, &cp.DesiredSalaryMin, &cp.DesiredSalaryMax,
		&cp.DesiredWorkTypes, &cp.WorkAuthorization, &cp.Province, &cp.EducationLevel, &cp.ResumeURL,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return profile.CandidateProfile{}, ErrNotFound
		}
		return profile.CandidateProfile{}, err
	}
	return cp, nil
}

func (r *PostgresCandidateProfileRepository) GetByProfileID(ctx context.Context, profileID uuid.UUID) (profile.CandidateProfile, error) {
	return scanCandidateProfile(r.db.QueryRow(ctx,
		`SELECT `+candidateProfileColumns+` FROM candidate_profiles WHERE profile_id = $1`,
		profileID,
	))
}

// Upsert writes every editable field. The resume URL is only replaced when the
// incoming value is set, so uploads and form saves do not clobber each other.
func (r *PostgresCandidateProfileRepository) Upsert(ctx context.Context, cp profile.CandidateProfile) (profile.CandidateProfile, error) {
	if cp.Skills == nil {
		cp.Skills = []string{}
	}
	if cp.DesiredWorkTypes == nil {
		cp.DesiredWorkTypes = []string{}
	}
	return scanCandidateProfile(r.db.QueryRow(ctx,
		`INSERT INTO candidate_profiles (`+candidateProfileColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (profile_id) DO UPDATE SET
			skills = EXCLUDED.skills,
			years_experience = EXCLUDED.years_experience,
			desired_salary_min = EXCLUDED.desired_salary_min,
			desired_salary_max = EXCLUDED.desired_salary_max,
			desired_work_types = EXCLUDED.desired_work_types,
			work_authorization = EXCLUDED.work_authorization,
			province = EXCLUDED.province,
			education_level = EXCLUDED.education_level,
			resume_url = COALESCE(EXCLUDED.resume_url, candidate_profiles.resume_url),
			updated_at = now()
		 RETURNING `+candidateProfileColumns,
		cp.ProfileID, cp.Skills, cp.YearsExperience, cp.DesiredSalaryMin, cp.DesiredSalaryMax,
		cp.DesiredWorkTypes, cp.WorkAuthorization, cp.Province, cp.EducationLevel, cp.ResumeURL,
	))
}

func (r *PostgresCandidateProfileRepository) SetResumeURL(ctx context.Context, profileID uuid.UUID, url string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO candidate_profiles (profile_id, resume_url) VALUES ($1, $2)
		 ON CONFLICT (profile_id) DO UPDATE SET resume_url = EXCLUDED.resume_url, updated_at = now()`,
		profileID, url,
	)
	return err
}
