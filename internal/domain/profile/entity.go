package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleCandidate:
		return RoleCandidate, true
	case RoleEmployer:
		return RoleEmployer, true
	default:
		return "", false
	}
}

// Caller is the authenticated identity an operation runs on behalf of.
type Caller struct {
	ID   uuid.UUID
	Role Role
}

func (c Caller) Authenticated() bool {
	return c.ID != uuid.Nil
}

type Profile struct {
	ID                 uuid.UUID
	Email              string
	PasswordHash       string
	FullName           *string
	Role               Role
	OnboardingComplete bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type CandidateProfile struct {
	ProfileID         uuid.UUID
	Skills            []string
	YearsExperience   *int
	DesiredSalaryMin  *int
	DesiredSalaryMax  *int
	DesiredWorkTypes  []string
	WorkAuthorization *string
	Province          *string
	EducationLevel    *string
	ResumeURL         *string
}

type Company struct {
	ID          uuid.UUID
	ProfileID   uuid.UUID
	Name        string
	Description *string
	Culture     *string
	Industry    *string
	Size        *string
	Website     *string
	LogoURL     *string
	CreatedAt   time.Time
}
