package scoring

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"lynxhire/internal/domain/job"
	"lynxhire/internal/domain/profile"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{-5, 0},
		{42, 42},
		{137, 100},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
		{41.5, 42},
		{99.4, 99},
		{100, 100},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseResponse(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		score  int
		reason string
	}{
		{"negative", `{"score": -5, "reason": "weak"}`, 0, "weak"},
		{"plain", `{"score": 42, "reason": "ok"}`, 42, "ok"},
		{"above range", `{"score": 137}`, 100, ""},
		{"string score", `{"score": "not a number", "reason": "x"}`, 0, "x"},
		{"numeric string", `{"score": "42"}`, 0, ""},
		{"not json", `not a number`, 0, ""},
		{"fenced", "```json\n{\"score\": 77, \"reason\": \"fenced\"}\n```", 77, "fenced"},
		{"bare fence", "```{\"score\": 12}```", 12, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Finalize(ParseResponse(tc.text))
			if got.Score != tc.score || got.Reason != tc.reason {
				t.Fatalf("got %+v, want score=%d reason=%q", got, tc.score, tc.reason)
			}
		})
	}
}

type stubGenerator struct {
	text   string
	err    error
	prompt string
	tokens int
}

func (s *stubGenerator) Generate(_ context.Context, prompt string, maxTokens int) (string, error) {
	s.prompt = prompt
	s.tokens = maxTokens
	return s.text, s.err
}

func TestLLM_Score(t *testing.T) {
	gen := &stubGenerator{text: `{"score": 88, "reason": "strong"}`}
	s := NewLLM(gen)

	raw, err := s.Score(context.Background(), MatchContext{Job: job.Posting{Title: "Backend Developer"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if raw.Score != 88 || raw.Reason != "strong" {
		t.Fatalf("unexpected raw: %+v", raw)
	}
	if gen.tokens != 256 {
		t.Fatalf("expected 256 max tokens, got %d", gen.tokens)
	}
	if !strings.Contains(gen.prompt, "- Title: Backend Developer") {
		t.Fatalf("prompt missing title: %s", gen.prompt)
	}

	boom := errors.New("boom")
	_, err = NewLLM(&stubGenerator{err: boom}).Score(context.Background(), MatchContext{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected generator error, got %v", err)
	}
}

func TestBuildPrompt_Sentinels(t *testing.T) {
	p := BuildPrompt(MatchContext{})

	for _, want := range []string{
		"- Title: Unknown",
		"- Required Skills: Not specified",
		"- Experience Level: Not specified",
		"- Province: Any",
		"- Salary Range: Not specified",
		"- Skills: None listed",
		"- Years of Experience: Unknown",
		"- Work Authorization: Not specified",
		"- Preferred Work Types: Any",
		"- Salary Expectation: Not specified",
		`{"score": <integer 0-100>, "reason": "<one sentence explanation>"}`,
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_Values(t *testing.T) {
	min, max := 90000, 120000
	years := 6
	level := "senior"
	p := BuildPrompt(MatchContext{
		Job: job.Posting{
			Title:           "Platform Engineer",
			SkillsRequired:  []string{"Go", "Kubernetes"},
			ExperienceLevel: &level,
			SalaryMin:       &min,
			SalaryMax:       &max,
		},
		Candidate: profile.CandidateProfile{
			Skills:           []string{"Go"},
			YearsExperience:  &years,
			DesiredSalaryMin: &min,
		},
	})

	for _, want := range []string{
		"- Required Skills: Go, Kubernetes",
		"- Salary Range: CAD $90000–$120000",
		"- Years of Experience: 6",
		"- Salary Expectation: CAD $90000–$?",
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
