package ports

import (
	"context"

	"github.com/voltworks/ev-service-api/internal/core/domain"
)

// MessageRepository defines persistence for conversations and messages.
type MessageRepository interface {
	CreateConversation(ctx context.Context, c *domain.Conversation) (*domain.Conversation, error)
	FindConversationByID(ctx context.Context, id string) (*domain.Conversation, error)
	ListConversations(ctx context.Context, participantID string) ([]*domain.Conversation, error)
	AppendMessage(ctx context.Context, m *domain.Message) (*domain.Message, error)
	ListMessages(ctx context.Context, conversationID string) ([]*domain.Message, error)
	// MarkRead flags all messages in the conversation not sent by readerID.
	MarkRead(ctx context.Context, conversationID, readerID string) error
	CountUnread(ctx context.Context, conversationID, readerID string) (int64, error)
}

// StartConversationInput opens a thread between the caller and another
// participant.
type StartConversationInput struct {
	InitiatorID     string
	RecipientID     string
	AppointmentCode string // optional
	Body            string // first message
}

// ConversationView is a conversation plus the caller's unread count.
type ConversationView struct {
	Conversation *domain.Conversation
	Unread       int64
}

// MessageService defines use-case operations for messaging.
type MessageService interface {
	Start(ctx context.Context, input StartConversationInput) (*domain.Conversation, error)
	ListMine(ctx context.Context, scope AccessScope) ([]ConversationView, error)
	// Get returns the conversation with its messages; callers must be a
	// participant unless elevated (admins may read).
	Get(ctx context.Context, scope AccessScope, id string) (*domain.Conversation, []*domain.Message, error)
	Post(ctx context.Context, scope AccessScope, conversationID, body string) (*domain.Message, error)
	MarkRead(ctx context.Context, scope AccessScope, conversationID string) error
}
