package service

import (
	"context"
	"strings"
	"time"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// MessageService implements conversations between customers and the
// workshop.
type MessageService struct {
	repo  ports.MessageRepository
	users ports.UserRepository
}

func NewMessageService(repo ports.MessageRepository, users ports.UserRepository) *MessageService {
	return &MessageService{repo: repo, users: users}
}

func (s *MessageService) Start(ctx context.Context, input ports.StartConversationInput) (*domain.Conversation, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" || input.RecipientID == "" || input.RecipientID == input.InitiatorID {
		return nil, domain.ErrNotParticipant
	}

	// The recipient must be a real account.
	if _, err := s.users.FindByID(ctx, input.RecipientID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	conversation, err := s.repo.CreateConversation(ctx, &domain.Conversation{
		ParticipantIDs:  []string{input.InitiatorID, input.RecipientID},
		AppointmentCode: input.AppointmentCode,
		CreatedAt:       now,
		LastMessageAt:   now,
	})
	if err != nil {
		return nil, err
	}

	_, err = s.repo.AppendMessage(ctx, &domain.Message{
		ConversationID: conversation.ID,
		SenderID:       input.InitiatorID,
		Body:           body,
		SentAt:         now,
	})
	if err != nil {
		return nil, err
	}

	return conversation, nil
}

func (s *MessageService) ListMine(ctx context.Context, scope ports.AccessScope) ([]ports.ConversationView, error) {
	conversations, err := s.repo.ListConversations(ctx, scope.UserID)
	if err != nil {
		return nil, err
	}

	views := make([]ports.ConversationView, 0, len(conversations))
	for _, c := range conversations {
		unread, err := s.repo.CountUnread(ctx, c.ID, scope.UserID)
		if err != nil {
			return nil, err
		}
		views = append(views, ports.ConversationView{Conversation: c, Unread: unread})
	}
	return views, nil
}

func (s *MessageService) Get(ctx context.Context, scope ports.AccessScope, id string) (*domain.Conversation, []*domain.Message, error) {
	conversation, err := s.authorize(ctx, scope, id)
	if err != nil {
		return nil, nil, err
	}
	messages, err := s.repo.ListMessages(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return conversation, messages, nil
}

func (s *MessageService) Post(ctx context.Context, scope ports.AccessScope, conversationID, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ErrConversationNotFound
	}
	if _, err := s.authorize(ctx, scope, conversationID); err != nil {
		return nil, err
	}
	return s.repo.AppendMessage(ctx, &domain.Message{
		ConversationID: conversationID,
		SenderID:       scope.UserID,
		Body:           body,
		SentAt:         time.Now().UTC(),
	})
}

func (s *MessageService) MarkRead(ctx context.Context, scope ports.AccessScope, conversationID string) error {
	if _, err := s.authorize(ctx, scope, conversationID); err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, conversationID, scope.UserID)
}

// authorize loads the conversation and checks the caller may access it.
// Admins may read any thread; everyone else must be a participant.
func (s *MessageService) authorize(ctx context.Context, scope ports.AccessScope, id string) (*domain.Conversation, error) {
	conversation, err := s.repo.FindConversationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scope.Role != domain.RoleAdmin && !conversation.HasParticipant(scope.UserID) {
		return nil, domain.ErrNotParticipant
	}
	return conversation, nil
}
