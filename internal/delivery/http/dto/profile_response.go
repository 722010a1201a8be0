package dto

import (
	"time"

	"lynxhire/internal/domain/profile"
	ucuser "lynxhire/internal/usecase/user"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FullName           *string   `json:"full_name"`
	Role               string    `json:"role"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
}

type CandidateProfileResponse struct {
	Skills            []string `json:"skills"`
	YearsExperience   *int     `json:"years_experience"`
	DesiredSalaryMin  *int     `json:"desired_salary_min"`
	DesiredSalaryMax  *int     `json:"desired_salary_max"`
	DesiredWorkTypes  []string `json:"desired_work_types"`
	WorkAuthorization *string  `json:"work_authorization"`
	Province          *string  `json:"province"`
	EducationLevel    *string  `json:"education_level"`
	ResumeURL         *string  `json:"resume_url"`
}

type CompanyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Culture     *string   `json:"culture"`
	Industry    *string   `json:"industry"`
	Size        *string   `json:"size"`
	Website     *string   `json:"website"`
	LogoURL     *string   `json:"logo_url"`
}

type MeResponse struct {
	Profile          ProfileResponse           `json:"profile"`
	CandidateProfile *CandidateProfileResponse `json:"candidate_profile"`
	Company          *CompanyResponse          `json:"company"`
}

type UpdateMeRequest struct {
	FullName *string `json:"full_name"`
}

type CandidateProfileRequest struct {
	Skills            []string `json:"skills"`
	YearsExperience   *int     `json:"years_experience"`
	DesiredSalaryMin  *int     `json:"desired_salary_min"`
	DesiredSalaryMax  *int     `json:"desired_salary_max"`
	DesiredWorkTypes  []string `json:"desired_work_types"`
	WorkAuthorization *string  `json:"work_authorization"`
	Province          *string  `json:"province"`
	EducationLevel    *string  `json:"education_level"`
}

type CompanyRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Culture     *string `json:"culture"`
	Industry    *string `json:"industry"`
	Size        *string `json:"size"`
	Website     *string `json:"website"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                 p.ID,
		Email:              p.Email,
		FullName:           p.FullName,
		Role:               string(p.Role),
		OnboardingComplete: p.OnboardingComplete,
		CreatedAt:          p.CreatedAt,
	}
}

func NewCandidateProfileResponse(cp profile.CandidateProfile) CandidateProfileResponse {
	return CandidateProfileResponse{
		Skills:            nonNil(cp.Skills),
		YearsExperience:   cp.YearsExperience,
		DesiredSalaryMin:  cp.DesiredSalaryMin,
		DesiredSalaryMax:  cp.DesiredSalaryMax,
		DesiredWorkTypes:  nonNil(cp.DesiredWorkTypes),
		WorkAuthorization: cp.WorkAuthorization,
		Province:          cp.Province,
		EducationLevel:    cp.EducationLevel,
		ResumeURL:         cp.ResumeURL,
	}
}

func NewCompanyResponse(c profile.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Culture:     c.Culture,
		Industry:    c.Industry,
		Size:        c.Size,
		Website:     c.Website,
		LogoURL:     c.LogoURL,
	}
}

func NewMeResponse(me ucuser.Me) MeResponse {
	out := MeResponse{Profile: NewProfileResponse(me.Profile)}
	if me.CandidateProfile != nil {
		cp := NewCandidateProfileResponse(*me.CandidateProfile)
		out.CandidateProfile = &cp
	}
	if me.Company != nil {
		c := NewCompanyResponse(*me.Company)
		out.Company = &c
	}
	return out
}

func (r CandidateProfileRequest) Input() ucuser.CandidateProfileInput {
	return ucuser.CandidateProfileInput{
		Skills:            r.Skills,
		YearsExperience:   r.YearsExperience,
		DesiredSalaryMin:  r.DesiredSalaryMin,
		DesiredSalaryMax:  r.DesiredSalaryMax,
		DesiredWorkTypes:  r.DesiredWorkTypes,
		WorkAuthorization: r.WorkAuthorization,
		Province:          r.Province,
		EducationLevel:    r.EducationLevel,
	}
}

func (r CompanyRequest) Input() ucuser.CompanyInput {
	return ucuser.CompanyInput{
		Name:        r.Name,
		Description: r.Description,
		Culture:     r.Culture,
		Industry:    r.Industry,
		Size:        r.Size,
		Website:     r.Website,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
