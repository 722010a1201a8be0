package dto

import (
	"time"

	"lynxhire/internal/domain/application"
	"lynxhire/internal/repository"
	"lynxhire/internal/usecase"

	"github.com/google/uuid"
)

type CreateApplicationRequest struct {
	JobID       string `json:"job_id"`
	CoverLetter string `json:"cover_letter"`
}

type ApplicationResponse struct {
	ID           uuid.UUID `json:"id"`
	JobID        uuid.UUID `json:"job_id"`
	CandidateID  uuid.UUID `json:"candidate_id"`
	Status       string    `json:"status"`
	CoverLetter  *string   `json:"cover_letter"`
	ResumeURL    *string   `json:"resume_url"`
	AIMatchScore *int      `json:"ai_match_score"`
	CreatedAt    time.Time `json:"created_at"`
}

type CandidateApplicationResponse struct {
	ApplicationResponse
	JobTitle    string  `json:"job_title"`
	CompanyName *string `json:"company_name"`
}

type JobApplicationResponse struct {
	ApplicationResponse
	CandidateName  *string `json:"candidate_name"`
	CandidateEmail string  `json:"candidate_email"`
}

type ApplicationDetailResponse struct {
	ApplicationResponse
	JobTitle         string                    `json:"job_title"`
	Candidate        ProfileResponse           `json:"candidate"`
	CandidateProfile *CandidateProfileResponse `json:"candidate_profile"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:           a.ID,
		JobID:        a.JobID,
		CandidateID:  a.CandidateID,
		Status:       string(a.Status),
		CoverLetter:  a.CoverLetter,
		ResumeURL:    a.ResumeURL,
		AIMatchScore: a.AIMatchScore,
		CreatedAt:    a.CreatedAt,
	}
}

func NewCandidateApplicationResponses(rows []repository.CandidateApplicationRow) []CandidateApplicationResponse {
	out := make([]CandidateApplicationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, CandidateApplicationResponse{
			ApplicationResponse: NewApplicationResponse(r.Application),
			JobTitle:            r.JobTitle,
			CompanyName:         r.CompanyName,
		})
	}
	return out
}

func NewJobApplicationResponses(rows []repository.JobApplicationRow) []JobApplicationResponse {
	out := make([]JobApplicationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, JobApplicationResponse{
			ApplicationResponse: NewApplicationResponse(r.Application),
			CandidateName:       r.CandidateName,
			CandidateEmail:      r.CandidateEmail,
		})
	}
	return out
}

func NewApplicationDetailResponse(d usecase.ApplicationDetail) ApplicationDetailResponse {
	out := ApplicationDetailResponse{
		ApplicationResponse: NewApplicationResponse(d.Application.Application),
		JobTitle:            d.Application.JobTitle,
		Candidate:           NewProfileResponse(d.Candidate),
	}
	if d.CandidateProfile != nil {
		cp := NewCandidateProfileResponse(*d.CandidateProfile)
		out.CandidateProfile = &cp
	}
	return out
}
