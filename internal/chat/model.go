// File: internal/chat/model.go
package chat

import (
	"time"

	"carmarket_backend/internal/common"
	"carmarket_backend/internal/user"

	"github.com/google/uuid"
)

// Chat is a two-party conversation. The participant pair is stored in a
// canonical order (UserOneID < UserTwoID lexicographically) so a pair maps
// to exactly one conversation.
type Chat struct {
	common.BaseModel
	UserOneID uuid.UUID  `gorm:"type:uuid;not null;index:idx_chat_pair,unique"`
	UserTwoID uuid.UUID  `gorm:"type:uuid;not null;index:idx_chat_pair,unique"`
	UserOne   *user.User `gorm:"foreignKey:UserOneID;references:ID"`
	UserTwo   *user.User `gorm:"foreignKey:UserTwoID;references:ID"`
	Messages  []Message  `gorm:"foreignKey:ChatID"`
}

func (Chat) TableName() string {
	return "chats"
}

type Message struct {
	common.BaseModel
	ChatID   uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID uuid.UUID `gorm:"type:uuid;not null"`
	Content  string    `gorm:"type:text;not null"`
	Read     bool      `gorm:"not null;default:false"`
}

func (Message) TableName() string {
	return "chat_messages"
}

// --- DTOs for API ---

type OpenChatRequest struct {
	PeerID uuid.UUID `json:"peer_id" binding:"required"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	ChatID    uuid.UUID `json:"chat_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatResponse struct {
	ID          uuid.UUID          `json:"id"`
	Peer        *user.UserResponse `json:"peer,omitempty"`
	LastMessage *MessageResponse   `json:"last_message,omitempty"`
	UnreadCount int                `json:"unread_count"`
	CreatedAt   time.Time          `json:"created_at"`
}

type ChatDetailResponse struct {
	ID        uuid.UUID          `json:"id"`
	Peer      *user.UserResponse `json:"peer,omitempty"`
	Messages  []MessageResponse  `json:"messages"`
	CreatedAt time.Time          `json:"created_at"`
}

func toMessageResponse(m *Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		ChatID:    m.ChatID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

// peerOf returns the participant that is not the viewer.
func (c *Chat) peerOf(viewerID uuid.UUID) *user.User {
	if c.UserOneID == viewerID {
		return c.UserTwo
	}
	return c.UserOne
}
