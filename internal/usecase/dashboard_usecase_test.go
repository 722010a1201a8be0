package usecase

import (
	"context"
	"errors"
	"testing"

	"lynxhire/internal/domain/application"
	"lynxhire/internal/domain/job"
	"lynxhire/internal/domain/profile"
	"lynxhire/internal/logger"

	"github.com/google/uuid"
)

func TestDashboardStats(t *testing.T) {
	owner, applicant := employer(), candidate()
	open := activeJob(owner.ID)
	paused := activeJob(owner.ID)
	paused.Status = job.StatusPaused
	jobs := newFakeJobs(open, paused)
	apps := newFakeApps(jobs,
		application.Application{ID: uuid.New(), JobID: open.ID, CandidateID: applicant.ID, Status: application.StatusNew},
		application.Application{ID: uuid.New(), JobID: paused.ID, CandidateID: uuid.New(), Status: application.StatusReviewed},
	)
	saved := newFakeSaved(jobs)
	saved.pairs[[2]uuid.UUID{applicant.ID, open.ID}] = true
	uc := NewDashboardUsecase(apps, saved, jobs, logger.Discard())

	got, err := uc.Stats(context.Background(), applicant)
	if err != nil {
		t.Fatalf("candidate stats: %v", err)
	}
	if got != (DashboardStats{Applications: 1, SavedJobs: 1}) {
		t.Fatalf("unexpected candidate stats %+v", got)
	}

	got, err = uc.Stats(context.Background(), owner)
	if err != nil {
		t.Fatalf("employer stats: %v", err)
	}
	if got != (DashboardStats{ActiveJobs: 1, TotalApplications: 2}) {
		t.Fatalf("unexpected employer stats %+v", got)
	}

	if _, err := uc.Stats(context.Background(), profile.Caller{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := uc.Stats(context.Background(), profile.Caller{ID: uuid.New(), Role: "admin"}); !errors.Is(err, ErrRoleForbidden) {
		t.Fatalf("expected ErrRoleForbidden, got %v", err)
	}
}
