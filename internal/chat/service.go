// File: internal/chat/service.go
package chat

import (
	"context"
	"strings"

	"carmarket_backend/internal/common"
	"carmarket_backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the business logic for conversations.
type Service interface {
	// Open returns the conversation between the caller and the peer,
	// creating it when none exists yet. Opening is idempotent.
	Open(ctx context.Context, callerID uuid.UUID, peerID uuid.UUID) (*ChatDetailResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]ChatResponse, error)
	GetMessages(ctx context.Context, chatID uuid.UUID, callerID uuid.UUID) (*ChatDetailResponse, error)
	SendMessage(ctx context.Context, chatID uuid.UUID, senderID uuid.UUID, content string) (*MessageResponse, error)
	MarkRead(ctx context.Context, chatID uuid.UUID, callerID uuid.UUID) error
}

// ServiceImplementation implements the Service interface.
type ServiceImplementation struct {
	repo        Repository
	userService user.Service
	logger      *zap.Logger
}

// NewService creates a new chat service.
func NewService(repo Repository, userService user.Service, logger *zap.Logger) Service {
	return &ServiceImplementation{repo: repo, userService: userService, logger: logger.Named("ChatService")}
}

// canonicalPair orders two participant IDs so a pair always maps to the
// same chat row.
func canonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if strings.Compare(a.String(), b.String()) <= 0 {
		return a, b
	}
	return b, a
}

func (s *ServiceImplementation) Open(ctx context.Context, callerID uuid.UUID, peerID uuid.UUID) (*ChatDetailResponse, error) {
	if callerID == peerID {
		return nil, common.ErrUnprocessableEntity.WithDetails("You cannot start a conversation with yourself.")
	}
	if _, err := s.userService.GetByID(ctx, peerID); err != nil {
		return nil, common.ErrNotFound.WithDetails("Peer user not found.")
	}

	one, two := canonicalPair(callerID, peerID)
	chat, err := s.repo.FindChatByPair(ctx, one, two)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); !ok || apiErr.Code != common.ErrNotFound.Code {
			return nil, err
		}
		chat = &Chat{UserOneID: one, UserTwoID: two}
		if createErr := s.repo.CreateChat(ctx, chat); createErr != nil {
			return nil, createErr
		}
		s.logger.Info("Conversation created",
			zap.String("chat_id", chat.ID.String()),
			zap.String("caller_id", callerID.String()),
			zap.String("peer_id", peerID.String()))
		chat, err = s.repo.FindChatByID(ctx, chat.ID)
		if err != nil {
			return nil, err
		}
	}
	return s.toDetail(ctx, chat, callerID)
}

func (s *ServiceImplementation) ListForUser(ctx context.Context, userID uuid.UUID) ([]ChatResponse, error) {
	chats, err := s.repo.FindChatsByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]ChatResponse, 0, len(chats))
	for _, chat := range chats {
		resp := ChatResponse{
			ID:        chat.ID,
			CreatedAt: chat.CreatedAt,
		}
		if peer := chat.peerOf(userID); peer != nil {
			peerResp := user.ToUserResponse(peer)
			resp.Peer = &peerResp
		}

		last, err := s.repo.LastMessage(ctx, chat.ID)
		if err != nil {
			return nil, err
		}
		if last != nil {
			lastResp := toMessageResponse(last)
			resp.LastMessage = &lastResp
		}

		unread, err := s.repo.CountUnread(ctx, chat.ID, userID)
		if err != nil {
			return nil, err
		}
		resp.UnreadCount = int(unread)

		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *ServiceImplementation) GetMessages(ctx context.Context, chatID uuid.UUID, callerID uuid.UUID) (*ChatDetailResponse, error) {
	chat, err := s.loadParticipantChat(ctx, chatID, callerID)
	if err != nil {
		return nil, err
	}
	return s.toDetail(ctx, chat, callerID)
}

func (s *ServiceImplementation) SendMessage(ctx context.Context, chatID uuid.UUID, senderID uuid.UUID, content string) (*MessageResponse, error) {
	if _, err := s.loadParticipantChat(ctx, chatID, senderID); err != nil {
		return nil, err
	}

	message := &Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  strings.TrimSpace(content),
		Read:     false,
	}
	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	resp := toMessageResponse(message)
	return &resp, nil
}

func (s *ServiceImplementation) MarkRead(ctx context.Context, chatID uuid.UUID, callerID uuid.UUID) error {
	if _, err := s.loadParticipantChat(ctx, chatID, callerID); err != nil {
		return err
	}
	return s.repo.MarkMessagesRead(ctx, chatID, callerID)
}

// loadParticipantChat fetches a chat and verifies the caller belongs to it.
// Outsiders get not-found, so conversation IDs do not leak.
func (s *ServiceImplementation) loadParticipantChat(ctx context.Context, chatID uuid.UUID, callerID uuid.UUID) (*Chat, error) {
	chat, err := s.repo.FindChatByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat.UserOneID != callerID && chat.UserTwoID != callerID {
		return nil, common.ErrNotFound.WithDetails("Conversation not found.")
	}
	return chat, nil
}

func (s *ServiceImplementation) toDetail(ctx context.Context, chat *Chat, viewerID uuid.UUID) (*ChatDetailResponse, error) {
	messages, err := s.repo.FindMessages(ctx, chat.ID)
	if err != nil {
		return nil, err
	}
	detail := &ChatDetailResponse{
		ID:        chat.ID,
		Messages:  make([]MessageResponse, len(messages)),
		CreatedAt: chat.CreatedAt,
	}
	for i, m := range messages {
		detail.Messages[i] = toMessageResponse(m)
	}
	if peer := chat.peerOf(viewerID); peer != nil {
		peerResp := user.ToUserResponse(peer)
		detail.Peer = &peerResp
	}
	return detail, nil
}
