package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"lynxhire/internal/domain/profile"
	"lynxhire/internal/repository"

	"github.com/sirupsen/logrus"
)

const MaxUploadBytes = 5 * 1024 * 1024

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrRoleForbidden = errors.New("role forbidden")
	ErrNotFound      = errors.New("not found")
	ErrNotConfigured = errors.New("not configured")
	ErrUpstream      = errors.New("upstream error")
	ErrInternal      = errors.New("internal error")
)

var (
	resumeTypes = map[string]string{
		"pdf":  "application/pdf",
		"doc":  "application/msword",
		"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
	logoTypes = map[string]string{
		"png":  "image/png",
		"jpg":  "image/jpeg",
		"jpeg": "image/jpeg",
		"webp": "image/webp",
		"svg":  "image/svg+xml",
	}
)

// FileStore uploads an object by path, replacing any previous object, and
// returns its public URL.
type FileStore interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error)
}

type Me struct {
	Profile          profile.Profile
	CandidateProfile *profile.CandidateProfile
	Company          *profile.Company
}

type UpdateMeInput struct {
	FullName *string
}

type CandidateProfileInput struct {
	Skills            []string
	YearsExperience   *int
	DesiredSalaryMin  *int
	DesiredSalaryMax  *int
	DesiredWorkTypes  []string
	WorkAuthorization *string
	Province          *string
	EducationLevel    *string
}

type CompanyInput struct {
	Name        string
	Description *string
	Culture     *string
	Industry    *string
	Size        *string
	Website     *string
}

type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

type Service struct {
	profiles   repository.ProfileRepository
	candidates repository.CandidateProfileRepository
	companies  repository.CompanyRepository
	files      FileStore
	logger     logrus.FieldLogger
}

func NewService(
	profiles repository.ProfileRepository,
	candidates repository.CandidateProfileRepository,
	companies repository.CompanyRepository,
	files FileStore,
	logger logrus.FieldLogger,
) *Service {
	return &Service{profiles: profiles, candidates: candidates, companies: companies, files: files, logger: logger}
}

func (s *Service) GetMe(ctx context.Context, caller profile.Caller) (Me, error) {
	p, err := s.profiles.GetByID(ctx, caller.ID)
	if err != nil {
		return Me{}, s.notFoundOr("load profile", err)
	}
	me := Me{Profile: sanitize(p)}

	switch p.Role {
	case profile.RoleCandidate:
		cp, err := s.candidates.GetByProfileID(ctx, caller.ID)
		if err == nil {
			me.CandidateProfile = &cp
		} else if !errors.Is(err, repository.ErrNotFound) {
			return Me{}, s.internal("load candidate profile", err)
		}
	case profile.RoleEmployer:
		c, err := s.companies.GetByProfileID(ctx, caller.ID)
		if err == nil {
			me.Company = &c
		} else if !errors.Is(err, repository.ErrNotFound) {
			return Me{}, s.internal("load company", err)
		}
	}
	return me, nil
}

func (s *Service) UpdateMe(ctx context.Context, caller profile.Caller, in UpdateMeInput) (Me, error) {
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		var v *string
		if name != "" {
			v = &name
		}
		if err := s.profiles.UpdateFullName(ctx, caller.ID, v); err != nil {
			return Me{}, s.notFoundOr("update full name", err)
		}
	}
	return s.GetMe(ctx, caller)
}

func (s *Service) UpsertCandidateProfile(ctx context.Context, caller profile.Caller, in CandidateProfileInput) (profile.CandidateProfile, error) {
	if caller.Role != profile.RoleCandidate {
		return profile.CandidateProfile{}, ErrRoleForbidden
	}
	if negative(in.YearsExperience) || negative(in.DesiredSalaryMin) || negative(in.DesiredSalaryMax) {
		return profile.CandidateProfile{}, ErrInvalidInput
	}
	if in.DesiredSalaryMin != nil && in.DesiredSalaryMax != nil && *in.DesiredSalaryMin > *in.DesiredSalaryMax {
		return profile.CandidateProfile{}, ErrInvalidInput
	}

	cp, err := s.candidates.Upsert(ctx, profile.CandidateProfile{
		ProfileID:         caller.ID,
		Skills:            dedupe(in.Skills),
		YearsExperience:   in.YearsExperience,
		DesiredSalaryMin:  in.DesiredSalaryMin,
		DesiredSalaryMax:  in.DesiredSalaryMax,
		DesiredWorkTypes:  dedupe(in.DesiredWorkTypes),
		WorkAuthorization: blankToNil(in.WorkAuthorization),
		Province:          blankToNil(in.Province),
		EducationLevel:    blankToNil(in.EducationLevel),
	})
	if err != nil {
		return profile.CandidateProfile{}, s.internal("upsert candidate profile", err)
	}
	return cp, nil
}

func (s *Service) UpsertCompany(ctx context.Context, caller profile.Caller, in CompanyInput) (profile.Company, error) {
	if caller.Role != profile.RoleEmployer {
		return profile.Company{}, ErrRoleForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return profile.Company{}, ErrInvalidInput
	}

	c, err := s.companies.Upsert(ctx, profile.Company{
		ProfileID:   caller.ID,
		Name:        name,
		Description: blankToNil(in.Description),
		Culture:     blankToNil(in.Culture),
		Industry:    blankToNil(in.Industry),
		Size:        blankToNil(in.Size),
		Website:     blankToNil(in.Website),
	})
	if err != nil {
		return profile.Company{}, s.internal("upsert company", err)
	}
	return c, nil
}

func (s *Service) CompleteOnboarding(ctx context.Context, caller profile.Caller) error {
	if err := s.profiles.SetOnboardingComplete(ctx, caller.ID); err != nil {
		return s.notFoundOr("complete onboarding", err)
	}
	return nil
}

func (s *Service) UploadResume(ctx context.Context, caller profile.Caller, up Upload) (string, error) {
	if caller.Role != profile.RoleCandidate {
		return "", ErrRoleForbidden
	}
	ext, contentType, err := fileType(up, resumeTypes, "pdf")
	if err != nil {
		return "", err
	}
	url, err := s.upload(ctx, fmt.Sprintf("resumes/%s/resume.%s", caller.ID, ext), contentType, up.Body)
	if err != nil {
		return "", err
	}
	if err := s.candidates.SetResumeURL(ctx, caller.ID, url); err != nil {
		return "", s.internal("store resume url", err)
	}
	return url, nil
}

func (s *Service) UploadLogo(ctx context.Context, caller profile.Caller, up Upload) (string, error) {
	if caller.Role != profile.RoleEmployer {
		return "", ErrRoleForbidden
	}
	ext, contentType, err := fileType(up, logoTypes, "png")
	if err != nil {
		return "", err
	}
	url, err := s.upload(ctx, fmt.Sprintf("logos/%s/logo.%s", caller.ID, ext), contentType, up.Body)
	if err != nil {
		return "", err
	}
	if err := s.companies.SetLogoURL(ctx, caller.ID, url); err != nil {
		return "", s.notFoundOr("store logo url", err)
	}
	return url, nil
}

func (s *Service) upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	if s.files == nil {
		return "", ErrNotConfigured
	}
	url, err := s.files.Upload(ctx, objectName, contentType, body)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("object", objectName).Error("file upload failed")
		}
		return "", ErrUpstream
	}
	return url, nil
}

func (s *Service) notFoundOr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return s.internal(op, err)
}

func (s *Service) internal(op string, err error) error {
	if s.logger != nil {
		s.logger.WithError(err).WithField("op", op).Error("profile operation failed")
	}
	return ErrInternal
}

func fileType(up Upload, allowed map[string]string, fallback string) (string, string, error) {
	if up.Body == nil || up.Size <= 0 || up.Size > MaxUploadBytes {
		return "", "", ErrInvalidInput
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(up.Filename), "."))
	if ext == "" {
		ext = fallback
	}
	contentType, ok := allowed[ext]
	if !ok {
		return "", "", ErrInvalidInput
	}
	return ext, contentType, nil
}

func sanitize(p profile.Profile) profile.Profile {
	p.PasswordHash = ""
	return p
}

func negative(v *int) bool {
	return v != nil && *v < 0
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		k := strings.ToLower(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

