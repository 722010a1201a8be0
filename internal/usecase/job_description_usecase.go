package usecase

import (
	"context"
	"fmt"
	"strings"

	"lynxhire/internal/domain/profile"
	"lynxhire/internal/scoring"

	"github.com/sirupsen/logrus"
)

const jobDescriptionMaxTokens = 1024

type JobDescriptionInput struct {
	Title           string
	Bullets         string
	Company         string
	Location        string
	WorkType        string
	ExperienceLevel string
	SalaryMin       *int
	SalaryMax       *int
}

type JobDescriptionUsecase interface {
	Generate(ctx context.Context, caller profile.Caller, in JobDescriptionInput) (string, error)
}

type JobDescriptions struct {
	gen    scoring.TextGenerator
	logger logrus.FieldLogger
}

func NewJobDescriptionUsecase(gen scoring.TextGenerator, logger logrus.FieldLogger) *JobDescriptions {
	return &JobDescriptions{gen: gen, logger: logger}
}

func (u *JobDescriptions) Generate(ctx context.Context, caller profile.Caller, in JobDescriptionInput) (string, error) {
	if !caller.Authenticated() {
		return "", ErrUnauthorized
	}
	if caller.Role != profile.RoleEmployer {
		return "", ErrRoleForbidden
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Bullets) == "" {
		return "", ErrInvalidInput
	}
	if u.gen == nil {
		return "", ErrNotConfigured
	}

	text, err := u.gen.Generate(ctx, jobDescriptionPrompt(in), jobDescriptionMaxTokens)
	if err != nil {
		if u.logger != nil {
			u.logger.WithError(err).Error("job description generation failed")
		}
		return "", ErrUpstream
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrUpstream
	}
	return text, nil
}

func jobDescriptionPrompt(in JobDescriptionInput) string {
	salary := "Competitive"
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > 0 && *in.SalaryMax > 0 {
		salary = fmt.Sprintf("CAD $%s – $%s/year", groupThousands(*in.SalaryMin), groupThousands(*in.SalaryMax))
	}

	var b strings.Builder
	b.WriteString("You are a professional Canadian HR copywriter. Write a compelling job description for the following role.\n\n")
	fmt.Fprintf(&b, "Job Title: %s\n", strings.TrimSpace(in.Title))
	fmt.Fprintf(&b, "Company: %s\n", orDefault(in.Company, "the company"))
	fmt.Fprintf(&b, "Location: %s (%s)\n", orDefault(in.Location, "Canada"), orDefault(in.WorkType, "full-time"))
	fmt.Fprintf(&b, "Experience Level: %s\n", orDefault(in.ExperienceLevel, "mid-level"))
	fmt.Fprintf(&b, "Salary: %s\n\n", salary)
	b.WriteString("Key bullet points to include:\n")
	b.WriteString(strings.TrimSpace(in.Bullets))
	b.WriteString("\n\nWrite a professional job description with these sections:\n")
	b.WriteString("1. About the Role (2-3 sentences)\n")
	b.WriteString("2. What You'll Do (4-6 bullet points)\n")
	b.WriteString("3. What We're Looking For (4-6 bullet points)\n\n")
	b.WriteString("Use Canadian English. Be specific, warm, and inclusive. Avoid jargon. ")
	b.WriteString("Do NOT include salary, company name placeholder text, or a call-to-action. Those are handled separately. ")
	b.WriteString(`Return ONLY the formatted job description text, no headings like "Job Description:".`)
	return b.String()
}

func orDefault(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}

func groupThousands(v int) string {
	s := fmt.Sprintf("%d", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
