package usecase

import (
	"context"
	"errors"
	"strings"

	"lynxhire/internal/domain/job"
	"lynxhire/internal/domain/profile"
	"lynxhire/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultJobListLimit = 20
	maxJobListLimit     = 50
)

type CreateJobInput struct {
	Title           string
	Description     string
	Requirements    string
	NiceToHave      string
	SkillsRequired  []string
	WorkType        string
	LocationType    string
	City            string
	Province        string
	SalaryMin       *int
	SalaryMax       *int
	ExperienceLevel string
	Industry        string
	Status          string
	AIGenerated     bool
}

type JobUsecase interface {
	CreateJob(ctx context.Context, caller profile.Caller, in CreateJobInput) (job.Posting, error)
	UpdateJobStatus(ctx context.Context, caller profile.Caller, jobID uuid.UUID, status string) error
	GetPublicJob(ctx context.Context, jobID uuid.UUID) (job.Posting, error)
	ListActiveJobs(ctx context.Context, f job.ListFilter) ([]job.Posting, error)
	ListEmployerJobs(ctx context.Context, caller profile.Caller) ([]job.Posting, error)
}

type Jobs struct {
	jobs      repository.JobRepository
	companies repository.CompanyRepository
	cache     SearchCache
	logger    logrus.FieldLogger
}

func NewJobUsecase(jobs repository.JobRepository, companies repository.CompanyRepository, cache SearchCache, logger logrus.FieldLogger) *Jobs {
	return &Jobs{jobs: jobs, companies: companies, cache: cache, logger: logger}
}

func (u *Jobs) CreateJob(ctx context.Context, caller profile.Caller, in CreateJobInput) (job.Posting, error) {
	if !caller.Authenticated() {
		return job.Posting{}, ErrUnauthorized
	}
	if caller.Role != profile.RoleEmployer {
		return job.Posting{}, ErrRoleForbidden
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	workType := strings.TrimSpace(in.WorkType)
	locationType := strings.TrimSpace(in.LocationType)
	if title == "" || description == "" || workType == "" || locationType == "" {
		return job.Posting{}, ErrInvalidInput
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		return job.Posting{}, ErrInvalidInput
	}

	status := job.StatusActive
	if s := strings.TrimSpace(in.Status); s != "" {
		status = job.Status(strings.ToLower(s))
		if !status.Valid() {
			return job.Posting{}, ErrInvalidInput
		}
	}

	company, err := u.companies.GetByProfileID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return job.Posting{}, ErrNotFound
		}
		return job.Posting{}, u.internal("load company", err)
	}

	created, err := u.jobs.Create(ctx, job.Posting{
		ID:              uuid.New(),
		CompanyID:       &company.ID,
		OwnerProfileID:  caller.ID,
		Status:          status,
		Title:           title,
		Description:     description,
		Requirements:    trimmedOrNil(in.Requirements),
		NiceToHave:      trimmedOrNil(in.NiceToHave),
		SkillsRequired:  cleanList(in.SkillsRequired),
		WorkType:        workType,
		LocationType:    locationType,
		City:            trimmedOrNil(in.City),
		Province:        trimmedOrNil(in.Province),
		SalaryMin:       in.SalaryMin,
		SalaryMax:       in.SalaryMax,
		ExperienceLevel: trimmedOrNil(in.ExperienceLevel),
		Industry:        trimmedOrNil(in.Industry),
		AIGenerated:     in.AIGenerated,
	})
	if err != nil {
		return job.Posting{}, u.internal("insert job", err)
	}

	u.invalidate(ctx)
	return created, nil
}

func (u *Jobs) UpdateJobStatus(ctx context.Context, caller profile.Caller, jobID uuid.UUID, status string) error {
	if !caller.Authenticated() {
		return ErrUnauthorized
	}
	if caller.Role != profile.RoleEmployer {
		return ErrRoleForbidden
	}
	next := job.Status(strings.ToLower(strings.TrimSpace(status)))
	if !next.Valid() {
		return ErrInvalidInput
	}

	if err := u.jobs.UpdateStatus(ctx, jobID, caller.ID, next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return u.internal("update job status", err)
	}

	u.invalidate(ctx)
	return nil
}

func (u *Jobs) GetPublicJob(ctx context.Context, jobID uuid.UUID) (job.Posting, error) {
	p, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return job.Posting{}, ErrNotFound
		}
		return job.Posting{}, u.internal("load job", err)
	}
	if p.Status != job.StatusActive {
		return job.Posting{}, ErrNotFound
	}
	return p, nil
}

func (u *Jobs) ListActiveJobs(ctx context.Context, f job.ListFilter) ([]job.Posting, error) {
	if f.Limit == 0 {
		f.Limit = defaultJobListLimit
	}
	if f.Limit < 0 || f.Limit > maxJobListLimit || f.Offset < 0 {
		return nil, ErrInvalidInput
	}

	key := JobsListCacheKey(f)
	if u.cache != nil {
		var cached []job.Posting
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			u.debug("jobs cache hit", key)
			return cached, nil
		}
		u.debug("jobs cache miss", key)
	}

	out, err := u.jobs.ListActive(ctx, f)
	if err != nil {
		return nil, u.internal("list active jobs", err)
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, 0); err == nil {
			u.debug("jobs cache set", key)
		}
	}
	return out, nil
}

func (u *Jobs) ListEmployerJobs(ctx context.Context, caller profile.Caller) ([]job.Posting, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthorized
	}
	if caller.Role != profile.RoleEmployer {
		return nil, ErrRoleForbidden
	}
	out, err := u.jobs.ListByOwner(ctx, caller.ID)
	if err != nil {
		return nil, u.internal("list employer jobs", err)
	}
	return out, nil
}

func (u *Jobs) invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, jobsListCachePrefix+"*"); err != nil && u.logger != nil {
		u.logger.WithError(err).Warn("jobs cache invalidation failed")
	}
}

func (u *Jobs) debug(msg, key string) {
	if u.logger != nil {
		u.logger.WithField("key", key).Debug(msg)
	}
}

func (u *Jobs) internal(op string, err error) error {
	if u.logger != nil {
		u.logger.WithError(err).WithField("op", op).Error("job operation failed")
	}
	return ErrInternal
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		k := strings.ToLower(it)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}
