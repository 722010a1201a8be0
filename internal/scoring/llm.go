package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

const scoreMaxTokens = 256

// TextGenerator is a single-shot text completion endpoint.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// LLM scores a match by asking a language model and parsing its JSON answer.
type LLM struct {
	gen TextGenerator
}

func NewLLM(gen TextGenerator) *LLM {
	return &LLM{gen: gen}
}

func (s *LLM) Score(ctx context.Context, mc MatchContext) (Raw, error) {
	if s == nil || s.gen == nil {
		return Raw{}, fmt.Errorf("llm strategy: no generator")
	}
	text, err := s.gen.Generate(ctx, BuildPrompt(mc), scoreMaxTokens)
	if err != nil {
		return Raw{}, err
	}
	return ParseResponse(text), nil
}

// ParseResponse extracts {score, reason} from model output. Anything that is
// not a JSON object with a numeric score yields a NaN score.
func ParseResponse(text string) Raw {
	var payload map[string]any
	if err := json.Unmarshal([]byte(extractJSON(text)), &payload); err != nil {
		return Raw{Score: math.NaN()}
	}

	out := Raw{Score: math.NaN()}
	if v, ok := payload["score"].(float64); ok {
		out.Score = v
	}
	if v, ok := payload["reason"].(string); ok {
		out.Reason = strings.TrimSpace(v)
	}
	return out
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")
	return strings.TrimSpace(raw)
}

func BuildPrompt(mc MatchContext) string {
	j := mc.Job
	c := mc.Candidate

	var b strings.Builder
	b.WriteString("You are an AI recruitment assistant. Score how well this candidate matches this job.\n\n")

	b.WriteString("JOB:\n")
	fmt.Fprintf(&b, "- Title: %s\n", orSentinel(j.Title, "Unknown"))
	fmt.Fprintf(&b, "- Required Skills: %s\n", joinOr(j.SkillsRequired, "Not specified"))
	fmt.Fprintf(&b, "- Experience Level: %s\n", ptrOr(j.ExperienceLevel, "Not specified"))
	fmt.Fprintf(&b, "- Work Type: %s\n", orSentinel(j.WorkType, "Not specified"))
	fmt.Fprintf(&b, "- Location Type: %s\n", orSentinel(j.LocationType, "Not specified"))
	fmt.Fprintf(&b, "- Province: %s\n", ptrOr(j.Province, "Any"))
	fmt.Fprintf(&b, "- Salary Range: %s\n\n", salaryRange(j.SalaryMin, j.SalaryMax))

	b.WriteString("CANDIDATE:\n")
	fmt.Fprintf(&b, "- Skills: %s\n", joinOr(c.Skills, "None listed"))
	fmt.Fprintf(&b, "- Years of Experience: %s\n", intOr(c.YearsExperience, "Unknown"))
	fmt.Fprintf(&b, "- Work Authorization: %s\n", ptrOr(c.WorkAuthorization, "Not specified"))
	fmt.Fprintf(&b, "- Preferred Work Types: %s\n", joinOr(c.DesiredWorkTypes, "Any"))
	fmt.Fprintf(&b, "- Salary Expectation: %s\n\n", salaryRange(c.DesiredSalaryMin, c.DesiredSalaryMax))

	b.WriteString("Scoring weights:\n")
	b.WriteString("- Skills match: 50%\n")
	b.WriteString("- Experience level match: 15%\n")
	b.WriteString("- Location/remote preference: 15%\n")
	b.WriteString("- Salary alignment: 10%\n")
	b.WriteString("- Work authorization (must be Canadian eligible): 10%\n\n")

	b.WriteString("Return ONLY a JSON object with no markdown or explanation:\n")
	b.WriteString(`{"score": <integer 0-100>, "reason": "<one sentence explanation>"}`)
	return b.String()
}

func orSentinel(s, sentinel string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return sentinel
	}
	return s
}

func ptrOr(s *string, sentinel string) string {
	if s == nil {
		return sentinel
	}
	return orSentinel(*s, sentinel)
}

func intOr(v *int, sentinel string) string {
	if v == nil {
		return sentinel
	}
	return fmt.Sprintf("%d", *v)
}

func joinOr(items []string, sentinel string) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			parts = append(parts, it)
		}
	}
	if len(parts) == 0 {
		return sentinel
	}
	return strings.Join(parts, ", ")
}

func salaryRange(min, max *int) string {
	if min == nil || *min == 0 {
		return "Not specified"
	}
	upper := "?"
	if max != nil {
		upper = fmt.Sprintf("%d", *max)
	}
	return fmt.Sprintf("CAD $%d–$%s", *min, upper)
}
