package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"lynxhire/internal/domain/message"
	"lynxhire/internal/domain/profile"
	"lynxhire/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	maxMessageLength         = 5000
	conversationScanMessages = 500
)

type MessageUsecase interface {
	Send(ctx context.Context, caller profile.Caller, recipientID uuid.UUID, content string) (message.Message, error)
	Thread(ctx context.Context, caller profile.Caller, otherID uuid.UUID) ([]message.Message, error)
	Conversations(ctx context.Context, caller profile.Caller) ([]message.Conversation, error)
}

type Messages struct {
	messages repository.MessageRepository
	profiles repository.ProfileRepository
	notifier Notifier
	logger   logrus.FieldLogger
}

func NewMessageUsecase(messages repository.MessageRepository, profiles repository.ProfileRepository, notifier Notifier, logger logrus.FieldLogger) *Messages {
	return &Messages{messages: messages, profiles: profiles, notifier: notifier, logger: logger}
}

func (u *Messages) Send(ctx context.Context, caller profile.Caller, recipientID uuid.UUID, content string) (message.Message, error) {
	if !caller.Authenticated() {
		return message.Message{}, ErrUnauthorized
	}
	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > maxMessageLength || recipientID == uuid.Nil || recipientID == caller.ID {
		return message.Message{}, ErrInvalidInput
	}

	exists, err := u.profiles.Exists(ctx, recipientID)
	if err != nil {
		return message.Message{}, u.internal("check recipient", err)
	}
	if !exists {
		return message.Message{}, ErrNotFound
	}

	m, err := u.messages.Create(ctx, message.Message{
		ID:          uuid.New(),
		SenderID:    caller.ID,
		RecipientID: recipientID,
		Content:     content,
	})
	if err != nil {
		return message.Message{}, u.internal("insert message", err)
	}

	notify(u.notifier, recipientID, EventMessageReceived, map[string]any{
		"message_id": m.ID,
		"sender_id":  m.SenderID,
		"content":    m.Content,
		"created_at": m.CreatedAt,
	})
	return m, nil
}

// Thread returns the conversation with otherID, oldest first, and marks the
// messages the caller received in it as read.
func (u *Messages) Thread(ctx context.Context, caller profile.Caller, otherID uuid.UUID) ([]message.Message, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthorized
	}
	if otherID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	out, err := u.messages.Thread(ctx, caller.ID, otherID)
	if err != nil {
		return nil, u.internal("load thread", err)
	}
	if err := u.messages.MarkRead(ctx, otherID, caller.ID); err != nil {
		return nil, u.internal("mark thread read", err)
	}
	return out, nil
}

func (u *Messages) Conversations(ctx context.Context, caller profile.Caller) ([]message.Conversation, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthorized
	}

	msgs, err := u.messages.ListForUser(ctx, caller.ID, conversationScanMessages)
	if err != nil {
		return nil, u.internal("list messages", err)
	}
	convs := message.Summarize(caller.ID, msgs)

	ids := make([]uuid.UUID, 0, len(convs))
	for _, c := range convs {
		ids = append(ids, c.OtherUserID)
	}
	names, err := u.profiles.NamesByIDs(ctx, ids)
	if err != nil {
		return nil, u.internal("load partner names", err)
	}
	for i := range convs {
		convs[i].OtherUserName = names[convs[i].OtherUserID]
	}
	return convs, nil
}

func (u *Messages) internal(op string, err error) error {
	if u.logger != nil {
		u.logger.WithError(err).WithField("op", op).Error("messaging failed")
	}
	return ErrInternal
}
