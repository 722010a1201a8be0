package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"lynxhire/internal/domain/job"
)

const jobsListCachePrefix = "jobs:list:"

type jobListCacheKeyInput struct {
	Search          string `json:"search"`
	WorkType        string `json:"work_type"`
	LocationType    string `json:"location_type"`
	ExperienceLevel string `json:"experience_level"`
	Limit           int    `json:"limit"`
	Offset          int    `json:"offset"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func JobsListCacheKey(f job.ListFilter) string {
	in := jobListCacheKeyInput{
		Search:          normalizeSearchValue(f.Search),
		WorkType:        normalizeSearchValue(f.WorkType),
		LocationType:    normalizeSearchValue(f.LocationType),
		ExperienceLevel: normalizeSearchValue(f.ExperienceLevel),
		Limit:           f.Limit,
		Offset:          f.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return jobsListCachePrefix + hex.EncodeToString(sum[:])
}
