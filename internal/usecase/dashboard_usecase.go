package usecase

import (
	"context"

	"lynxhire/internal/domain/profile"
	"lynxhire/internal/repository"

	"github.com/sirupsen/logrus"
)

type DashboardStats struct {
	Applications      int `json:"applications,omitempty"`
	SavedJobs         int `json:"saved_jobs,omitempty"`
	ActiveJobs        int `json:"active_jobs,omitempty"`
	TotalApplications int `json:"total_applications,omitempty"`
}

type DashboardUsecase interface {
	Stats(ctx context.Context, caller profile.Caller) (DashboardStats, error)
}

type Dashboard struct {
	apps   repository.ApplicationRepository
	saved  repository.SavedJobRepository
	jobs   repository.JobRepository
	logger logrus.FieldLogger
}

func NewDashboardUsecase(apps repository.ApplicationRepository, saved repository.SavedJobRepository, jobs repository.JobRepository, logger logrus.FieldLogger) *Dashboard {
	return &Dashboard{apps: apps, saved: saved, jobs: jobs, logger: logger}
}

func (u *Dashboard) Stats(ctx context.Context, caller profile.Caller) (DashboardStats, error) {
	if !caller.Authenticated() {
		return DashboardStats{}, ErrUnauthorized
	}

	var out DashboardStats
	var err error
	switch caller.Role {
	case profile.RoleCandidate:
		if out.Applications, err = u.apps.CountByCandidate(ctx, caller.ID); err != nil {
			return DashboardStats{}, u.internal(err)
		}
		if out.SavedJobs, err = u.saved.CountByCandidate(ctx, caller.ID); err != nil {
			return DashboardStats{}, u.internal(err)
		}
	case profile.RoleEmployer:
		if out.ActiveJobs, err = u.jobs.CountActiveByOwner(ctx, caller.ID); err != nil {
			return DashboardStats{}, u.internal(err)
		}
		if out.TotalApplications, err = u.apps.CountForOwner(ctx, caller.ID); err != nil {
			return DashboardStats{}, u.internal(err)
		}
	default:
		return DashboardStats{}, ErrRoleForbidden
	}
	return out, nil
}

func (u *Dashboard) internal(err error) error {
	if u.logger != nil {
		u.logger.WithError(err).Error("dashboard stats failed")
	}
	return ErrInternal
}
