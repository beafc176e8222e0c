package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/voltworks/ev-service-api/internal/core/domain"
)

const (
	conversationsCollection = "conversations"
	messagesCollection      = "messages"
)

// MessageRepository implements ports.MessageRepository on MongoDB.
type MessageRepository struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{
		conversations: db.Collection(conversationsCollection),
		messages:      db.Collection(messagesCollection),
	}
}

func (r *MessageRepository) CreateConversation(ctx context.Context, c *domain.Conversation) (*domain.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c.ID = primitive.NewObjectID().Hex()
	if _, err := r.conversations.InsertOne(ctx, c); err != nil {
		return nil, fmt.Errorf("insert conversation: %w", err)
	}
	return c, nil
}

func (r *MessageRepository) FindConversationByID(ctx context.Context, id string) (*domain.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Conversation
	if err := r.conversations.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	return &c, nil
}

func (r *MessageRepository) ListConversations(ctx context.Context, participantID string) ([]*domain.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})
	cursor, err := r.conversations.Find(ctx, bson.M{"participant_ids": participantID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer cursor.Close(ctx)

	var conversations []*domain.Conversation
	for cursor.Next(ctx) {
		var c domain.Conversation
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("decode conversation: %w", err)
		}
		conversations = append(conversations, &c)
	}
	return conversations, cursor.Err()
}

func (r *MessageRepository) AppendMessage(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m.ID = primitive.NewObjectID().Hex()
	if _, err := r.messages.InsertOne(ctx, m); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	// Keep the conversation ordering key current.
	_, err := r.conversations.UpdateOne(ctx,
		bson.M{"_id": m.ConversationID},
		bson.M{"$set": bson.M{"last_message_at": m.SentAt.UTC()}},
	)
	if err != nil {
		return nil, fmt.Errorf("touch conversation: %w", err)
	}
	return m, nil
}

func (r *MessageRepository) ListMessages(ctx context.Context, conversationID string) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "sent_at", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []*domain.Message
	for cursor.Next(ctx) {
		var m domain.Message
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, &m)
	}
	return messages, cursor.Err()
}

func (r *MessageRepository) MarkRead(ctx context.Context, conversationID, readerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"conversation_id": conversationID,
		"sender_id":       bson.M{"$ne": readerID},
		"read":            false,
	}
	_, err := r.messages.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

func (r *MessageRepository) CountUnread(ctx context.Context, conversationID, readerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.messages.CountDocuments(ctx, bson.M{
		"conversation_id": conversationID,
		"sender_id":       bson.M{"$ne": readerID},
		"read":            false,
	})
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}
