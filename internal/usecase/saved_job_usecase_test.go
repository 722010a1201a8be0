package usecase

import (
	"context"
	"errors"
	"testing"

	"lynxhire/internal/domain/job"
	"lynxhire/internal/domain/profile"
	"lynxhire/internal/logger"

	"github.com/google/uuid"
)

func TestSavedJobToggle_SaveThenUnsave(t *testing.T) {
	posting := activeJob(uuid.New())
	jobs := newFakeJobs(posting)
	saved := newFakeSaved(jobs)
	uc := NewSavedJobUsecase(saved, jobs, logger.Discard())
	caller := candidate()

	first, err := uc.Toggle(context.Background(), caller, posting.ID)
	if err != nil || !first {
		t.Fatalf("expected saved, got %v %v", first, err)
	}
	list, err := uc.List(context.Background(), caller)
	if err != nil || len(list) != 1 || list[0].ID != posting.ID {
		t.Fatalf("expected saved posting listed, got %v %v", list, err)
	}

	second, err := uc.Toggle(context.Background(), caller, posting.ID)
	if err != nil || second {
		t.Fatalf("expected unsaved, got %v %v", second, err)
	}
	if len(saved.pairs) != 0 {
		t.Fatalf("expected no saved pairs, got %d", len(saved.pairs))
	}
}

func TestSavedJobToggle_Rejections(t *testing.T) {
	draft := activeJob(uuid.New())
	draft.Status = job.StatusDraft
	jobs := newFakeJobs(draft)
	uc := NewSavedJobUsecase(newFakeSaved(jobs), jobs, logger.Discard())

	tests := []struct {
		name   string
		caller profile.Caller
		jobID  uuid.UUID
		want   error
	}{
		{"anonymous", profile.Caller{}, draft.ID, ErrUnauthorized},
		{"employer", employer(), draft.ID, ErrRoleForbidden},
		{"missing job", candidate(), uuid.New(), ErrNotFound},
		{"draft job", candidate(), draft.ID, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Toggle(context.Background(), tt.caller, tt.jobID); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSavedJobToggle_PausedPostingCanOnlyBeUnsaved(t *testing.T) {
	posting := activeJob(uuid.New())
	jobs := newFakeJobs(posting)
	saved := newFakeSaved(jobs)
	uc := NewSavedJobUsecase(saved, jobs, logger.Discard())
	caller := candidate()

	if _, err := uc.Toggle(context.Background(), caller, posting.ID); err != nil {
		t.Fatalf("save: %v", err)
	}
	posting.Status = job.StatusPaused
	jobs.byID[posting.ID] = posting

	list, err := uc.List(context.Background(), caller)
	if err != nil || len(list) != 0 {
		t.Fatalf("paused posting must not be listed, got %v %v", list, err)
	}

	now, err := uc.Toggle(context.Background(), caller, posting.ID)
	if err != nil || now {
		t.Fatalf("expected unsave of paused posting, got %v %v", now, err)
	}
	if _, err := uc.Toggle(context.Background(), caller, posting.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound re-saving a paused posting, got %v", err)
	}
}

func TestSavedJobList_CandidatesOnly(t *testing.T) {
	jobs := newFakeJobs()
	uc := NewSavedJobUsecase(newFakeSaved(jobs), jobs, logger.Discard())

	if _, err := uc.List(context.Background(), employer()); !errors.Is(err, ErrRoleForbidden) {
		t.Fatalf("expected ErrRoleForbidden, got %v", err)
	}
	if _, err := uc.List(context.Background(), profile.Caller{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
