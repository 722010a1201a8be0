package job

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft   Status = "draft"
	StatusActive  Status = "active"
	StatusPaused  Status = "paused"
	StatusExpired Status = "expired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusPaused, StatusExpired:
		return true
	default:
		return false
	}
}

// AcceptsApplications reports whether candidates may apply to a posting in this status.
func (s Status) AcceptsApplications() bool {
	return s == StatusActive
}

type Posting struct {
	ID              uuid.UUID
	CompanyID       *uuid.UUID
	OwnerProfileID  uuid.UUID
	Status          Status
	Title           string
	Description     string
	Requirements    *string
	NiceToHave      *string
	SkillsRequired  []string
	WorkType        string
	LocationType    string
	City            *string
	Province        *string
	SalaryMin       *int
	SalaryMax       *int
	ExperienceLevel *string
	Industry        *string
	AIGenerated     bool
	CreatedAt       time.Time

	CompanyName    *string
	CompanyLogoURL *string
}

// ListFilter narrows the public listing of active postings.
type ListFilter struct {
	Search          string
	WorkType        string
	LocationType    string
	ExperienceLevel string
	Limit           int
	Offset          int
}

type SavedJob struct {
	CandidateID uuid.UUID
	JobID       uuid.UUID
	CreatedAt   time.Time
}
