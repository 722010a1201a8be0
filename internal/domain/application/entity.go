package application

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	ID           uuid.UUID
	JobID        uuid.UUID
	CandidateID  uuid.UUID
	Status       Status
	CoverLetter  *string
	ResumeURL    *string
	AIMatchScore *int
	CreatedAt    time.Time
}

// Ownership is an application joined with the profile owning its job posting.
type Ownership struct {
	Application
	JobOwnerID uuid.UUID
	JobTitle   string
}
