package usecase

import (
	"context"
	"errors"
	"strings"

	"lynxhire/internal/domain/application"
	"lynxhire/internal/domain/job"
	"lynxhire/internal/domain/profile"
	"lynxhire/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const candidateApplicationsLimit = 50

type ApplicationDetail struct {
	Application      application.Ownership
	Candidate        profile.Profile
	CandidateProfile *profile.CandidateProfile
}

type ApplicationUsecase interface {
	Create(ctx context.Context, caller profile.Caller, jobID uuid.UUID, coverLetter string) (application.Application, error)
	UpdateStatus(ctx context.Context, caller profile.Caller, applicationID uuid.UUID, status string) error
	ListForCandidate(ctx context.Context, caller profile.Caller, limit int) ([]repository.CandidateApplicationRow, error)
	ListForJob(ctx context.Context, caller profile.Caller, jobID uuid.UUID) ([]repository.JobApplicationRow, error)
	GetForEmployer(ctx context.Context, caller profile.Caller, applicationID uuid.UUID) (ApplicationDetail, error)
}

type Applications struct {
	apps       repository.ApplicationRepository
	jobs       repository.JobRepository
	profiles   repository.ProfileRepository
	candidates repository.CandidateProfileRepository
	notifier   Notifier
	logger     logrus.FieldLogger
}

func NewApplicationUsecase(
	apps repository.ApplicationRepository,
	jobs repository.JobRepository,
	profiles repository.ProfileRepository,
	candidates repository.CandidateProfileRepository,
	notifier Notifier,
	logger logrus.FieldLogger,
) *Applications {
	return &Applications{
		apps:       apps,
		jobs:       jobs,
		profiles:   profiles,
		candidates: candidates,
		notifier:   notifier,
		logger:     logger,
	}
}

func (u *Applications) Create(ctx context.Context, caller profile.Caller, jobID uuid.UUID, coverLetter string) (application.Application, error) {
	if !caller.Authenticated() {
		return application.Application{}, ErrUnauthorized
	}
	if caller.Role != profile.RoleCandidate {
		return application.Application{}, ErrRoleForbidden
	}

	exists, err := u.apps.ExistsForPair(ctx, jobID, caller.ID)
	if err != nil {
		return application.Application{}, u.internal("check existing application", err)
	}
	if exists {
		return application.Application{}, ErrDuplicateApplication
	}

	posting, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return application.Application{}, ErrJobUnavailable
		}
		return application.Application{}, u.internal("load job", err)
	}
	if !posting.Status.AcceptsApplications() {
		return application.Application{}, ErrJobUnavailable
	}

	var resumeURL *string
	cp, err := u.candidates.GetByProfileID(ctx, caller.ID)
	switch {
	case err == nil:
		resumeURL = cp.ResumeURL
	case errors.Is(err, repository.ErrNotFound):
	default:
		return application.Application{}, u.internal("load candidate profile", err)
	}

	created, err := u.apps.Create(ctx, application.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		CandidateID: caller.ID,
		Status:      application.StatusNew,
		CoverLetter: trimmedOrNil(coverLetter),
		ResumeURL:   resumeURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return application.Application{}, ErrDuplicateApplication
		}
		return application.Application{}, u.internal("insert application", err)
	}

	notify(u.notifier, posting.OwnerProfileID, EventApplicationCreated, map[string]any{
		"application_id": created.ID,
		"job_id":         posting.ID,
		"job_title":      posting.Title,
	})
	return created, nil
}

func (u *Applications) UpdateStatus(ctx context.Context, caller profile.Caller, applicationID uuid.UUID, status string) error {
	if !caller.Authenticated() {
		return ErrUnauthorized
	}
	app, err := u.apps.GetWithOwnership(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return u.internal("load application", err)
	}
	if app.JobOwnerID != caller.ID {
		return ErrUnauthorized
	}
	next, ok := application.ParseStatus(status)
	if !ok {
		return ErrInvalidInput
	}
	if !application.CanTransition(app.Status, next) {
		return ErrInvalidInput
	}

	if err := u.apps.UpdateStatus(ctx, applicationID, next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return u.internal("update application status", err)
	}

	notify(u.notifier, app.CandidateID, EventApplicationStatusChanged, map[string]any{
		"application_id": app.ID,
		"job_id":         app.JobID,
		"job_title":      app.JobTitle,
		"status":         next,
	})
	return nil
}

func (u *Applications) ListForCandidate(ctx context.Context, caller profile.Caller, limit int) ([]repository.CandidateApplicationRow, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthorized
	}
	if caller.Role != profile.RoleCandidate {
		return nil, ErrRoleForbidden
	}
	if limit <= 0 || limit > candidateApplicationsLimit {
		limit = candidateApplicationsLimit
	}

	rows, err := u.apps.ListByCandidate(ctx, caller.ID, limit)
	if err != nil {
		return nil, u.internal("list candidate applications", err)
	}
	return rows, nil
}

func (u *Applications) ListForJob(ctx context.Context, caller profile.Caller, jobID uuid.UUID) ([]repository.JobApplicationRow, error) {
	if _, err := u.ownedJob(ctx, caller, jobID); err != nil {
		return nil, err
	}

	rows, err := u.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, u.internal("list job applications", err)
	}
	return rows, nil
}

func (u *Applications) GetForEmployer(ctx context.Context, caller profile.Caller, applicationID uuid.UUID) (ApplicationDetail, error) {
	if !caller.Authenticated() {
		return ApplicationDetail{}, ErrUnauthorized
	}

	app, err := u.apps.GetWithOwnership(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ApplicationDetail{}, ErrNotFound
		}
		return ApplicationDetail{}, u.internal("load application", err)
	}
	if app.JobOwnerID != caller.ID {
		return ApplicationDetail{}, ErrNotFound
	}

	candidate, err := u.profiles.GetByID(ctx, app.CandidateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ApplicationDetail{}, ErrNotFound
		}
		return ApplicationDetail{}, u.internal("load candidate", err)
	}
	candidate.PasswordHash = ""

	out := ApplicationDetail{Application: app, Candidate: candidate}
	cp, err := u.candidates.GetByProfileID(ctx, app.CandidateID)
	switch {
	case err == nil:
		out.CandidateProfile = &cp
	case errors.Is(err, repository.ErrNotFound):
	default:
		return ApplicationDetail{}, u.internal("load candidate profile", err)
	}
	return out, nil
}

func (u *Applications) ownedJob(ctx context.Context, caller profile.Caller, jobID uuid.UUID) (job.Posting, error) {
	if !caller.Authenticated() {
		return job.Posting{}, ErrUnauthorized
	}
	if caller.Role != profile.RoleEmployer {
		return job.Posting{}, ErrRoleForbidden
	}
	posting, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return job.Posting{}, ErrNotFound
		}
		return job.Posting{}, u.internal("load job", err)
	}
	if posting.OwnerProfileID != caller.ID {
		return job.Posting{}, ErrNotFound
	}
	return posting, nil
}

func (u *Applications) internal(op string, err error) error {
	if u.logger != nil {
		u.logger.WithError(err).WithField("op", op).Error("application workflow failed")
	}
	return ErrInternal
}

func trimmedOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
