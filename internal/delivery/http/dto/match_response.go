package dto

import "github.com/google/uuid"

type MatchScoreResponse struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Score         int       `json:"score"`
	Reason        string    `json:"reason"`
}
