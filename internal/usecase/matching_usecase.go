package usecase

import (
	"context"
	"errors"

	"lynxhire/internal/domain/profile"
	"lynxhire/internal/repository"
	"lynxhire/internal/scoring"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type MatchingUsecase interface {
	Score(ctx context.Context, caller profile.Caller, applicationID uuid.UUID) (scoring.Result, error)
}

type Matching struct {
	apps       repository.ApplicationRepository
	jobs       repository.JobRepository
	candidates repository.CandidateProfileRepository
	strategy   scoring.Strategy
	logger     logrus.FieldLogger
}

func NewMatchingUsecase(
	apps repository.ApplicationRepository,
	jobs repository.JobRepository,
	candidates repository.CandidateProfileRepository,
	strategy scoring.Strategy,
	logger logrus.FieldLogger,
) *Matching {
	return &Matching{apps: apps, jobs: jobs, candidates: candidates, strategy: strategy, logger: logger}
}

// Score computes and persists the match score of one application. Only the
// owner of the job and the applicant can see the application.
func (u *Matching) Score(ctx context.Context, caller profile.Caller, applicationID uuid.UUID) (scoring.Result, error) {
	if !caller.Authenticated() {
		return scoring.Result{}, ErrUnauthorized
	}

	app, err := u.apps.GetWithOwnership(ctx, applicationID)
	if err != nil {
		return scoring.Result{}, u.notFoundOr("load application", err)
	}
	if caller.ID != app.JobOwnerID && caller.ID != app.CandidateID {
		return scoring.Result{}, ErrNotFound
	}

	posting, err := u.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return scoring.Result{}, u.notFoundOr("load job", err)
	}
	candidate, err := u.candidates.GetByProfileID(ctx, app.CandidateID)
	if err != nil {
		return scoring.Result{}, u.notFoundOr("load candidate profile", err)
	}

	if u.strategy == nil {
		return scoring.Result{}, ErrNotConfigured
	}
	raw, err := u.strategy.Score(ctx, scoring.MatchContext{Job: posting, Candidate: candidate})
	if err != nil {
		if u.logger != nil {
			u.logger.WithError(err).WithField("application_id", applicationID).Error("match scoring failed")
		}
		return scoring.Result{}, ErrScoringFailed
	}

	res := scoring.Finalize(raw)
	if err := u.apps.SetMatchScore(ctx, applicationID, res.Score); err != nil {
		return scoring.Result{}, u.notFoundOr("persist match score", err)
	}
	return res, nil
}

func (u *Matching) notFoundOr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if u.logger != nil {
		u.logger.WithError(err).WithField("op", op).Error("match scoring failed")
	}
	return ErrInternal
}
