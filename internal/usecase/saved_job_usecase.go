package usecase

import (
	"context"
	"errors"

	"lynxhire/internal/domain/job"
	"lynxhire/internal/domain/profile"
	"lynxhire/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type SavedJobUsecase interface {
	Toggle(ctx context.Context, caller profile.Caller, jobID uuid.UUID) (bool, error)
	List(ctx context.Context, caller profile.Caller) ([]job.Posting, error)
}

type SavedJobs struct {
	saved  repository.SavedJobRepository
	jobs   repository.JobRepository
	logger logrus.FieldLogger
}

func NewSavedJobUsecase(saved repository.SavedJobRepository, jobs repository.JobRepository, logger logrus.FieldLogger) *SavedJobs {
	return &SavedJobs{saved: saved, jobs: jobs, logger: logger}
}

func (u *SavedJobs) Toggle(ctx context.Context, caller profile.Caller, jobID uuid.UUID) (bool, error) {
	if !caller.Authenticated() {
		return false, ErrUnauthorized
	}
	if caller.Role != profile.RoleCandidate {
		return false, ErrRoleForbidden
	}

	posting, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrNotFound
		}
		return false, u.internal("load job", err)
	}
	// Postings that left the public listing can still be unsaved, never saved.
	if posting.Status != job.StatusActive {
		saved, err := u.saved.IsSaved(ctx, caller.ID, jobID)
		if err != nil {
			return false, u.internal("check saved job", err)
		}
		if !saved {
			return false, ErrNotFound
		}
	}

	saved, err := u.saved.Toggle(ctx, caller.ID, jobID)
	if err != nil {
		return false, u.internal("toggle saved job", err)
	}
	return saved, nil
}

func (u *SavedJobs) List(ctx context.Context, caller profile.Caller) ([]job.Posting, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthorized
	}
	if caller.Role != profile.RoleCandidate {
		return nil, ErrRoleForbidden
	}
	out, err := u.saved.ListByCandidate(ctx, caller.ID)
	if err != nil {
		return nil, u.internal("list saved jobs", err)
	}
	return out, nil
}

func (u *SavedJobs) internal(op string, err error) error {
	if u.logger != nil {
		u.logger.WithError(err).WithField("op", op).Error("saved job operation failed")
	}
	return ErrInternal
}
