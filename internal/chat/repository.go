// File: internal/chat/repository.go
package chat

import (
	"context"
	"errors"

	"carmarket_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repository defines persistence operations for chats and messages.
type Repository interface {
	CreateChat(ctx context.Context, chat *Chat) error
	FindChatByID(ctx context.Context, id uuid.UUID) (*Chat, error)
	FindChatByPair(ctx context.Context, userOneID, userTwoID uuid.UUID) (*Chat, error)
	FindChatsByParticipant(ctx context.Context, userID uuid.UUID) ([]*Chat, error)
	CreateMessage(ctx context.Context, message *Message) error
	FindMessages(ctx context.Context, chatID uuid.UUID) ([]*Message, error)
	LastMessage(ctx context.Context, chatID uuid.UUID) (*Message, error)
	CountUnread(ctx context.Context, chatID uuid.UUID, viewerID uuid.UUID) (int64, error)
	MarkMessagesRead(ctx context.Context, chatID uuid.UUID, viewerID uuid.UUID) error
}

type gormRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGORMRepository creates a new GORM-based repository for chats.
func NewGORMRepository(db *gorm.DB, logger *zap.Logger) Repository {
	return &gormRepository{db: db, logger: logger.Named("ChatRepository")}
}

func (r *gormRepository) CreateChat(ctx context.Context, chat *Chat) error {
	if err := r.db.WithContext(ctx).Create(chat).Error; err != nil {
		r.logger.Error("Failed to create chat", zap.Error(err))
		return common.ErrInternalServer.WithDetails("Failed to create conversation.")
	}
	return nil
}

func (r *gormRepository) FindChatByID(ctx context.Context, id uuid.UUID) (*Chat, error) {
	var chat Chat
	err := r.db.WithContext(ctx).
		Preload("UserOne").Preload("UserTwo").
		First(&chat, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Conversation not found.")
		}
		r.logger.Error("Failed to find chat", zap.Error(err), zap.String("chat_id", id.String()))
		return nil, common.ErrInternalServer
	}
	return &chat, nil
}

func (r *gormRepository) FindChatByPair(ctx context.Context, userOneID, userTwoID uuid.UUID) (*Chat, error) {
	var chat Chat
	err := r.db.WithContext(ctx).
		Preload("UserOne").Preload("UserTwo").
		First(&chat, "user_one_id = ? AND user_two_id = ?", userOneID, userTwoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		r.logger.Error("Failed to find chat by pair", zap.Error(err))
		return nil, common.ErrInternalServer
	}
	return &chat, nil
}

func (r *gormRepository) FindChatsByParticipant(ctx context.Context, userID uuid.UUID) ([]*Chat, error) {
	var chats []*Chat
	err := r.db.WithContext(ctx).
		Preload("UserOne").Preload("UserTwo").
		Where("user_one_id = ? OR user_two_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&chats).Error
	if err != nil {
		r.logger.Error("Failed to list chats", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, common.ErrInternalServer
	}
	return chats, nil
}

func (r *gormRepository) CreateMessage(ctx context.Context, message *Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		r.logger.Error("Failed to create message", zap.Error(err), zap.String("chat_id", message.ChatID.String()))
		return common.ErrInternalServer.WithDetails("Failed to send message.")
	}
	// Touch the chat so conversation lists sort by recent activity.
	if err := r.db.WithContext(ctx).Model(&Chat{}).Where("id = ?", message.ChatID).
		Update("updated_at", message.CreatedAt).Error; err != nil {
		r.logger.Warn("Failed to touch chat timestamp", zap.Error(err))
	}
	return nil
}

func (r *gormRepository) FindMessages(ctx context.Context, chatID uuid.UUID) ([]*Message, error) {
	var messages []*Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").Order("id ASC").
		Find(&messages).Error
	if err != nil {
		r.logger.Error("Failed to list messages", zap.Error(err), zap.String("chat_id", chatID.String()))
		return nil, common.ErrInternalServer
	}
	return messages, nil
}

func (r *gormRepository) LastMessage(ctx context.Context, chatID uuid.UUID) (*Message, error) {
	var message Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at DESC").Order("id DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to load last message", zap.Error(err), zap.String("chat_id", chatID.String()))
		return nil, common.ErrInternalServer
	}
	return &message, nil
}

func (r *gormRepository) CountUnread(ctx context.Context, chatID uuid.UUID, viewerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Message{}).
		Where("chat_id = ? AND sender_id <> ? AND read = ?", chatID, viewerID, false).
		Count(&count).Error
	if err != nil {
		r.logger.Error("Failed to count unread messages", zap.Error(err), zap.String("chat_id", chatID.String()))
		return 0, common.ErrInternalServer
	}
	return count, nil
}

func (r *gormRepository) MarkMessagesRead(ctx context.Context, chatID uuid.UUID, viewerID uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&Message{}).
		Where("chat_id = ? AND sender_id <> ? AND read = ?", chatID, viewerID, false).
		Update("read", true).Error
	if err != nil {
		r.logger.Error("Failed to mark messages read", zap.Error(err), zap.String("chat_id", chatID.String()))
		return common.ErrInternalServer
	}
	return nil
}
