package domain

import (
	"errors"
	"time"
)

var ErrConversationNotFound = errors.New("conversation not found")
var ErrNotParticipant = errors.New("not a conversation participant")

// Conversation is a two-party message thread, optionally tied to an
// appointment.
type Conversation struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	ParticipantIDs  []string  `json:"participant_ids" bson:"participant_ids"`
	AppointmentCode string    `json:"appointment_code,omitempty" bson:"appointment_code,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	LastMessageAt   time.Time `json:"last_message_at" bson:"last_message_at"`
}

// HasParticipant reports whether userID takes part in the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Message is a single entry in a conversation.
type Message struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	ConversationID string    `json:"conversation_id" bson:"conversation_id"`
	SenderID       string    `json:"sender_id" bson:"sender_id"`
	Body           string    `json:"body" bson:"body"`
	SentAt         time.Time `json:"sent_at" bson:"sent_at"`
	Read           bool      `json:"read" bson:"read"`
}
