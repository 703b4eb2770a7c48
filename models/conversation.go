package models

import "time"

// Conversation is a message thread between a fixed set of users, optionally
// about a job. ParticipantKey is the sorted participant ids, so a set of
// users shares a single conversation.
type Conversation struct {
	ID             uint                      `gorm:"primaryKey" json:"id"`
	JobID          *uint                     `gorm:"index" json:"job_id,omitempty"`
	ParticipantKey string                    `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	Participants   []ConversationParticipant `gorm:"constraint:OnDelete:CASCADE" json:"participants"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `gorm:"index" json:"updated_at"`
}

type ConversationParticipant struct {
	ConversationID uint `gorm:"primaryKey" json:"-"`
	UserID         uint `gorm:"primaryKey;index" json:"user_id"`
}

// HasParticipant reports whether userID takes part in the conversation.
func (c Conversation) HasParticipant(userID uint) bool {
	for _, p := range c.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index:idx_message_conversation_created" json:"conversation_id"`
	SenderID       uint      `gorm:"not null" json:"sender_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	Read           bool      `gorm:"column:is_read;not null;default:false" json:"read"`
	CreatedAt      time.Time `gorm:"index:idx_message_conversation_created" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
