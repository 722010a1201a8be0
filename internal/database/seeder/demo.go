package seeder

import (
	"context"
	"fmt"

	"lynxhire/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Fixed ids keep the demo rows stable across runs.
var (
	DemoEmployerID  = uuid.MustParse("5d2f4c1e-8a3b-4f6d-9c0e-1b2a3c4d5e01")
	DemoCandidateID = uuid.MustParse("5d2f4c1e-8a3b-4f6d-9c0e-1b2a3c4d5e02")
	demoCompanyID   = uuid.MustParse("5d2f4c1e-8a3b-4f6d-9c0e-1b2a3c4d5e03")
)

const (
	DemoEmployerEmail  = "employer@demo.lynxhire.ca"
	DemoCandidateEmail = "candidate@demo.lynxhire.ca"
)

// AccountsSeeder creates one employer with a company and one candidate with
// a filled profile, both able to log in with Password.
type AccountsSeeder struct {
	Password string
}

func (AccountsSeeder) Name() string { return "demo_accounts" }

func (s AccountsSeeder) Run(ctx context.Context, db database.DB) error {
	if len(s.Password) < 8 {
		return fmt.Errorf("demo password must be at least 8 characters")
	}
	if err := requireColumns(ctx, db, "profiles", "id", "email", "password_hash", "full_name", "role", "onboarding_complete"); err != nil {
		return err
	}
	if err := requireColumns(ctx, db, "companies", "id", "profile_id", "name", "industry", "size", "website"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		accounts := []struct {
			id    uuid.UUID
			email string
			name  string
			role  string
		}{
			{DemoEmployerID, DemoEmployerEmail, "Dana Employer", "employer"},
			{DemoCandidateID, DemoCandidateEmail, "Casey Candidate", "candidate"},
		}
		for _, a := range accounts {
			if _, err := tx.Exec(ctx,
				`INSERT INTO profiles (id, email, password_hash, full_name, role, onboarding_complete)
				 VALUES ($1, $2, $3, $4, $5, true)
				 ON CONFLICT (id) DO NOTHING`,
				a.id, a.email, string(hash), a.name, a.role,
			); err != nil {
				return err
			}
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO companies (id, profile_id, name, industry, size, website)
			 VALUES ($1, $2, 'Northwind Software', 'Technology', '11-50', 'https://northwind.example')
			 ON CONFLICT (profile_id) DO NOTHING`,
			demoCompanyID, DemoEmployerID,
		); err != nil {
			return err
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO candidate_profiles (profile_id, skills, years_experience, desired_work_types, province, education_level)
			 VALUES ($1, $2, 4, $3, 'ON', 'bachelor')
			 ON CONFLICT (profile_id) DO NOTHING`,
			DemoCandidateID, []string{"Go", "PostgreSQL", "Docker"}, []string{"full_time"},
		)
		return err
	})
}

// JobsSeeder publishes a handful of active postings owned by the demo employer.
type JobsSeeder struct{}

func (JobsSeeder) Name() string { return "demo_jobs" }

func (JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "job_postings",
		"id", "company_id", "profile_id", "status", "title", "description",
		"skills_required", "work_type", "location_type", "city", "province",
		"salary_min", "salary_max", "experience_level",
	); err != nil {
		return err
	}

	items := []struct {
		id           string
		title        string
		description  string
		skills       []string
		workType     string
		locationType string
		city         string
		salaryMin    int
		salaryMax    int
		level        string
	}{
		{
			id:           "7a1c0e52-3b4d-4e6f-8a9b-0c1d2e3f4a01",
			title:        "Backend Developer (Go)",
			description:  "Build and maintain Go services, REST APIs and PostgreSQL-backed systems.",
			skills:       []string{"Go", "PostgreSQL", "Redis"},
			workType:     "full_time",
			locationType: "hybrid",
			city:         "Toronto",
			salaryMin:    95000,
			salaryMax:    125000,
			level:        "mid",
		},
		{
			id:           "7a1c0e52-3b4d-4e6f-8a9b-0c1d2e3f4a02",
			title:        "Platform Engineer",
			description:  "Operate CI/CD, Docker and Kubernetes for production workloads.",
			skills:       []string{"Kubernetes", "Docker", "Terraform"},
			workType:     "full_time",
			locationType: "remote",
			city:         "Ottawa",
			salaryMin:    110000,
			salaryMax:    140000,
			level:        "senior",
		},
		{
			id:           "7a1c0e52-3b4d-4e6f-8a9b-0c1d2e3f4a03",
			title:        "Junior Data Analyst",
			description:  "Build dashboards and tidy datasets for the operations team.",
			skills:       []string{"SQL", "Python"},
			workType:     "contract",
			locationType: "onsite",
			city:         "Waterloo",
			salaryMin:    55000,
			salaryMax:    65000,
			level:        "entry",
		},
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range items {
			if _, err := tx.Exec(ctx,
				`INSERT INTO job_postings
				   (id, company_id, profile_id, status, title, description, skills_required,
				    work_type, location_type, city, province, salary_min, salary_max, experience_level)
				 VALUES ($1, $2, $3, 'active', $4, $5, $6, $7, $8, $9, 'ON', $10, $11, $12)
				 ON CONFLICT (id) DO NOTHING`,
				uuid.MustParse(it.id), demoCompanyID, DemoEmployerID, it.title, it.description, it.skills,
				it.workType, it.locationType, it.city, it.salaryMin, it.salaryMax, it.level,
			); err != nil {
				return fmt.Errorf("insert %q: %w", it.title, err)
			}
		}
		return nil
	})
}
