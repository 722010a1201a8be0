package dto

import (
	"time"

	"lynxhire/internal/domain/job"
	"lynxhire/internal/usecase"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID              uuid.UUID  `json:"id"`
	CompanyID       *uuid.UUID `json:"company_id"`
	Status          string     `json:"status"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Requirements    *string    `json:"requirements"`
	NiceToHave      *string    `json:"nice_to_have"`
	SkillsRequired  []string   `json:"skills_required"`
	WorkType        string     `json:"work_type"`
	LocationType    string     `json:"location_type"`
	City            *string    `json:"city"`
	Province        *string    `json:"province"`
	SalaryMin       *int       `json:"salary_min"`
	SalaryMax       *int       `json:"salary_max"`
	ExperienceLevel *string    `json:"experience_level"`
	Industry        *string    `json:"industry"`
	AIGenerated     bool       `json:"ai_generated"`
	CompanyName     *string    `json:"company_name"`
	CompanyLogoURL  *string    `json:"company_logo_url"`
	CreatedAt       time.Time  `json:"created_at"`
}

type CreateJobRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Requirements    string   `json:"requirements"`
	NiceToHave      string   `json:"nice_to_have"`
	SkillsRequired  []string `json:"skills_required"`
	WorkType        string   `json:"work_type"`
	LocationType    string   `json:"location_type"`
	City            string   `json:"city"`
	Province        string   `json:"province"`
	SalaryMin       *int     `json:"salary_min"`
	SalaryMax       *int     `json:"salary_max"`
	ExperienceLevel string   `json:"experience_level"`
	Industry        string   `json:"industry"`
	Status          string   `json:"status"`
	AIGenerated     bool     `json:"ai_generated"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type JobDescriptionRequest struct {
	Title           string `json:"title"`
	Bullets         string `json:"bullets"`
	Company         string `json:"company"`
	Location        string `json:"location"`
	WorkType        string `json:"work_type"`
	ExperienceLevel string `json:"experience_level"`
	SalaryMin       *int   `json:"salary_min"`
	SalaryMax       *int   `json:"salary_max"`
}

type JobDescriptionResponse struct {
	Description string `json:"description"`
}

type SavedToggleResponse struct {
	Saved bool `json:"saved"`
}

func NewJobResponse(p job.Posting) JobResponse {
	return JobResponse{
		ID:              p.ID,
		CompanyID:       p.CompanyID,
		Status:          string(p.Status),
		Title:           p.Title,
		Description:     p.Description,
		Requirements:    p.Requirements,
		NiceToHave:      p.NiceToHave,
		SkillsRequired:  nonNil(p.SkillsRequired),
		WorkType:        p.WorkType,
		LocationType:    p.LocationType,
		City:            p.City,
		Province:        p.Province,
		SalaryMin:       p.SalaryMin,
		SalaryMax:       p.SalaryMax,
		ExperienceLevel: p.ExperienceLevel,
		Industry:        p.Industry,
		AIGenerated:     p.AIGenerated,
		CompanyName:     p.CompanyName,
		CompanyLogoURL:  p.CompanyLogoURL,
		CreatedAt:       p.CreatedAt,
	}
}

func NewJobResponses(items []job.Posting) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewJobResponse(it))
	}
	return out
}

func (r CreateJobRequest) Input() usecase.CreateJobInput {
	return usecase.CreateJobInput{
		Title:           r.Title,
		Description:     r.Description,
		Requirements:    r.Requirements,
		NiceToHave:      r.NiceToHave,
		SkillsRequired:  r.SkillsRequired,
		WorkType:        r.WorkType,
		LocationType:    r.LocationType,
		City:            r.City,
		Province:        r.Province,
		SalaryMin:       r.SalaryMin,
		SalaryMax:       r.SalaryMax,
		ExperienceLevel: r.ExperienceLevel,
		Industry:        r.Industry,
		Status:          r.Status,
		AIGenerated:     r.AIGenerated,
	}
}

func (r JobDescriptionRequest) Input() usecase.JobDescriptionInput {
	return usecase.JobDescriptionInput{
		Title:           r.Title,
		Bullets:         r.Bullets,
		Company:         r.Company,
		Location:        r.Location,
		WorkType:        r.WorkType,
		ExperienceLevel: r.ExperienceLevel,
		SalaryMin:       r.SalaryMin,
		SalaryMax:       r.SalaryMax,
	}
}
