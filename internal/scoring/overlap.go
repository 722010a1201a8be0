package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"
)

const (
	skillsWeight        = 50.0
	experienceWeight    = 15.0
	locationWeight      = 15.0
	salaryWeight        = 10.0
	authorizationWeight = 10.0
)

// requiredYears maps a posting's experience level to the years it implies.
var requiredYears = map[string]int{
	"entry":     0,
	"mid":       3,
	"senior":    5,
	"lead":      8,
	"executive": 10,
}

var authorizationCredit = map[string]float64{
	"citizen":                  1,
	"permanent_resident":       1,
	"open_work_permit":         1,
	"employer_specific_permit": 0.5,
	"student_visa":             0.5,
}

// SkillOverlap is a deterministic strategy used when no language model is
// configured. It applies the same rubric the model is asked to follow.
type SkillOverlap struct{}

func NewSkillOverlap() SkillOverlap {
	return SkillOverlap{}
}

func (SkillOverlap) Score(_ context.Context, mc MatchContext) (Raw, error) {
	skills, matched, required := skillRatio(mc.Candidate.Skills, mc.Job.SkillsRequired)

	total := skillsWeight*skills +
		experienceWeight*experienceRatio(mc) +
		locationWeight*locationRatio(mc) +
		salaryWeight*salaryRatio(mc) +
		authorizationWeight*authorizationRatio(mc)

	reason := fmt.Sprintf("Matches %d of %d required skills.", matched, required)
	if required == 0 {
		reason = "The posting lists no required skills."
	}
	return Raw{Score: math.Round(total), Reason: reason}, nil
}

func skillRatio(have, want []string) (float64, int, int) {
	owned := make(map[string]struct{}, len(have))
	for _, s := range have {
		if k := normalizeSkill(s); k != "" {
			owned[k] = struct{}{}
		}
	}

	required := 0
	matched := 0
	seen := make(map[string]struct{}, len(want))
	for _, s := range want {
		k := normalizeSkill(s)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		required++
		if _, ok := owned[k]; ok {
			matched++
		}
	}

	if required == 0 {
		return 1, 0, 0
	}
	return float64(matched) / float64(required), matched, required
}

func experienceRatio(mc MatchContext) float64 {
	if mc.Job.ExperienceLevel == nil {
		return 1
	}
	reqYears, ok := requiredYears[strings.ToLower(strings.TrimSpace(*mc.Job.ExperienceLevel))]
	if !ok || reqYears <= 0 {
		return 1
	}
	if mc.Candidate.YearsExperience == nil || *mc.Candidate.YearsExperience <= 0 {
		return 0
	}
	return clamp01(float64(*mc.Candidate.YearsExperience) / float64(reqYears))
}

func locationRatio(mc MatchContext) float64 {
	if strings.EqualFold(mc.Job.LocationType, "remote") || mc.Job.Province == nil {
		return 1
	}
	if mc.Candidate.Province == nil {
		return 0.5
	}
	if strings.EqualFold(strings.TrimSpace(*mc.Candidate.Province), strings.TrimSpace(*mc.Job.Province)) {
		return 1
	}
	return 0
}

func salaryRatio(mc MatchContext) float64 {
	if mc.Job.SalaryMax == nil || mc.Candidate.DesiredSalaryMin == nil || *mc.Candidate.DesiredSalaryMin <= 0 {
		return 1
	}
	return clamp01(float64(*mc.Job.SalaryMax) / float64(*mc.Candidate.DesiredSalaryMin))
}

func authorizationRatio(mc MatchContext) float64 {
	if mc.Candidate.WorkAuthorization == nil {
		return 0
	}
	return authorizationCredit[strings.ToLower(strings.TrimSpace(*mc.Candidate.WorkAuthorization))]
}

func normalizeSkill(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
