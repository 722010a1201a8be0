package message

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Content     string
	IsRead      bool
	CreatedAt   time.Time
}

type Conversation struct {
	OtherUserID   uuid.UUID
	OtherUserName string
	LastMessage   string
	LastMessageAt time.Time
	UnreadCount   int
}

// Summarize folds a caller's messages, newest first, into one conversation per partner.
func Summarize(userID uuid.UUID, newestFirst []Message) []Conversation {
	out := make([]Conversation, 0)
	index := make(map[uuid.UUID]int)

	for _, m := range newestFirst {
		other := m.SenderID
		if other == userID {
			other = m.RecipientID
		}

		i, seen := index[other]
		if !seen {
			index[other] = len(out)
			out = append(out, Conversation{
				OtherUserID:   other,
				LastMessage:   m.Content,
				LastMessageAt: m.CreatedAt,
			})
			i = len(out) - 1
		}

		if m.SenderID == other && m.RecipientID == userID && !m.IsRead {
			out[i].UnreadCount++
		}
	}
	return out
}
