package scoring

import (
	"context"
	"math"

	"lynxhire/internal/domain/job"
	"lynxhire/internal/domain/profile"
)

const (
	MinScore = 0
	MaxScore = 100
)

// MatchContext is everything a strategy may look at for one application.
type MatchContext struct {
	Job       job.Posting
	Candidate profile.CandidateProfile
}

// Raw is a strategy's unsanitized answer. Score may be NaN or out of range.
type Raw struct {
	Score  float64
	Reason string
}

type Result struct {
	Score  int
	Reason string
}

type Strategy interface {
	Score(ctx context.Context, mc MatchContext) (Raw, error)
}

// Normalize turns any raw score into the persisted integer: non-finite values
// become 0, then the value is rounded half away from zero and clamped to [0, 100].
func Normalize(raw float64) int {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return MinScore
	}
	v := math.Round(raw)
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return int(v)
}

func Finalize(r Raw) Result {
	return Result{Score: Normalize(r.Score), Reason: r.Reason}
}
