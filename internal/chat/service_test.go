// File: internal/chat/service_test.go
package chat

import (
	"context"
	"testing"

	"carmarket_backend/internal/common"
	"carmarket_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRepository is a mock implementation of the chat Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateChat(ctx context.Context, chat *Chat) error {
	args := m.Called(ctx, chat)
	return args.Error(0)
}

func (m *MockRepository) FindChatByID(ctx context.Context, id uuid.UUID) (*Chat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Chat), args.Error(1)
}

func (m *MockRepository) FindChatByPair(ctx context.Context, userOneID, userTwoID uuid.UUID) (*Chat, error) {
	args := m.Called(ctx, userOneID, userTwoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Chat), args.Error(1)
}

func (m *MockRepository) FindChatsByParticipant(ctx context.Context, userID uuid.UUID) ([]*Chat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Chat), args.Error(1)
}

func (m *MockRepository) CreateMessage(ctx context.Context, message *Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockRepository) FindMessages(ctx context.Context, chatID uuid.UUID) ([]*Message, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Message), args.Error(1)
}

func (m *MockRepository) LastMessage(ctx context.Context, chatID uuid.UUID) (*Message, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Message), args.Error(1)
}

func (m *MockRepository) CountUnread(ctx context.Context, chatID uuid.UUID, viewerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, chatID, viewerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) MarkMessagesRead(ctx context.Context, chatID uuid.UUID, viewerID uuid.UUID) error {
	args := m.Called(ctx, chatID, viewerID)
	return args.Error(0)
}

// stubUserService answers GetByID from a fixed set of users; everything
// else panics via the embedded nil interface.
type stubUserService struct {
	user.Service
	users map[uuid.UUID]*user.User
}

func (s *stubUserService) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound.WithDetails("User not found.")
}

func newTestService(repo Repository, users ...*user.User) Service {
	byID := make(map[uuid.UUID]*user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return NewService(repo, &stubUserService{users: byID}, zap.NewNop())
}

func testUser(email string) *user.User {
	u := &user.User{Email: email, Name: email}
	u.ID = uuid.New()
	return u
}

func assertAPIErrorCode(t *testing.T, err error, want *common.APIError) {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok, "expected an APIError, got %v", err)
	assert.Equal(t, want.Code, apiErr.Code)
}

func TestOpenRejectsSelfChat(t *testing.T) {
	caller := testUser("caller@test.com")
	service := newTestService(new(MockRepository), caller)

	_, err := service.Open(context.Background(), caller.ID, caller.ID)
	assertAPIErrorCode(t, err, common.ErrUnprocessableEntity)
}

func TestOpenRequiresExistingPeer(t *testing.T) {
	caller := testUser("caller@test.com")
	service := newTestService(new(MockRepository), caller)

	_, err := service.Open(context.Background(), caller.ID, uuid.New())
	assertAPIErrorCode(t, err, common.ErrNotFound)
}

func TestOpenCreatesChatOnce(t *testing.T) {
	caller := testUser("caller@test.com")
	peer := testUser("peer@test.com")
	one, two := canonicalPair(caller.ID, peer.ID)

	mockRepo := new(MockRepository)
	mockRepo.On("FindChatByPair", mock.Anything, one, two).
		Return(nil, common.ErrNotFound.WithDetails("Conversation not found."))
	mockRepo.On("CreateChat", mock.Anything, mock.AnythingOfType("*chat.Chat")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*Chat).ID = uuid.New()
		}).
		Return(nil)
	mockRepo.On("FindChatByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(&Chat{UserOneID: one, UserTwoID: two, UserOne: userFor(one, caller, peer), UserTwo: userFor(two, caller, peer)}, nil)
	mockRepo.On("FindMessages", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return([]*Message{}, nil)

	service := newTestService(mockRepo, caller, peer)
	detail, err := service.Open(context.Background(), caller.ID, peer.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Peer)
	assert.Equal(t, peer.Email, detail.Peer.Email)
	assert.Empty(t, detail.Messages)
	mockRepo.AssertCalled(t, "CreateChat", mock.Anything, mock.AnythingOfType("*chat.Chat"))
}

func TestOpenReturnsExistingChat(t *testing.T) {
	caller := testUser("caller@test.com")
	peer := testUser("peer@test.com")
	one, two := canonicalPair(caller.ID, peer.ID)

	existing := &Chat{UserOneID: one, UserTwoID: two, UserOne: userFor(one, caller, peer), UserTwo: userFor(two, caller, peer)}
	existing.ID = uuid.New()

	mockRepo := new(MockRepository)
	mockRepo.On("FindChatByPair", mock.Anything, one, two).Return(existing, nil)
	mockRepo.On("FindMessages", mock.Anything, existing.ID).Return([]*Message{}, nil)

	service := newTestService(mockRepo, caller, peer)
	detail, err := service.Open(context.Background(), caller.ID, peer.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, detail.ID)
	mockRepo.AssertNotCalled(t, "CreateChat", mock.Anything, mock.Anything)
}

func TestGetMessagesHidesChatFromOutsiders(t *testing.T) {
	caller := testUser("caller@test.com")
	peer := testUser("peer@test.com")
	outsider := testUser("outsider@test.com")
	one, two := canonicalPair(caller.ID, peer.ID)

	existing := &Chat{UserOneID: one, UserTwoID: two}
	existing.ID = uuid.New()

	mockRepo := new(MockRepository)
	mockRepo.On("FindChatByID", mock.Anything, existing.ID).Return(existing, nil)

	service := newTestService(mockRepo, caller, peer, outsider)
	_, err := service.GetMessages(context.Background(), existing.ID, outsider.ID)
	assertAPIErrorCode(t, err, common.ErrNotFound)
}

func TestSendMessageTrimsContent(t *testing.T) {
	caller := testUser("caller@test.com")
	peer := testUser("peer@test.com")
	one, two := canonicalPair(caller.ID, peer.ID)

	existing := &Chat{UserOneID: one, UserTwoID: two}
	existing.ID = uuid.New()

	mockRepo := new(MockRepository)
	mockRepo.On("FindChatByID", mock.Anything, existing.ID).Return(existing, nil)
	mockRepo.On("CreateMessage", mock.Anything, mock.AnythingOfType("*chat.Message")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*Message).ID = uuid.New()
		}).
		Return(nil)

	service := newTestService(mockRepo, caller, peer)
	resp, err := service.SendMessage(context.Background(), existing.ID, caller.ID, "  hello there  ")
	require.NoError(t, err)
	assert.Equal(t, "hello there", resp.Content)
	assert.Equal(t, caller.ID, resp.SenderID)
	assert.False(t, resp.Read)
}

func TestListForUserAggregatesUnreadAndLastMessage(t *testing.T) {
	caller := testUser("caller@test.com")
	peer := testUser("peer@test.com")
	one, two := canonicalPair(caller.ID, peer.ID)

	existing := &Chat{UserOneID: one, UserTwoID: two, UserOne: userFor(one, caller, peer), UserTwo: userFor(two, caller, peer)}
	existing.ID = uuid.New()

	last := &Message{ChatID: existing.ID, SenderID: peer.ID, Content: "latest"}
	last.ID = uuid.New()

	mockRepo := new(MockRepository)
	mockRepo.On("FindChatsByParticipant", mock.Anything, caller.ID).Return([]*Chat{existing}, nil)
	mockRepo.On("LastMessage", mock.Anything, existing.ID).Return(last, nil)
	mockRepo.On("CountUnread", mock.Anything, existing.ID, caller.ID).Return(int64(2), nil)

	service := newTestService(mockRepo, caller, peer)
	chats, err := service.ListForUser(context.Background(), caller.ID)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, 2, chats[0].UnreadCount)
	require.NotNil(t, chats[0].LastMessage)
	assert.Equal(t, "latest", chats[0].LastMessage.Content)
	require.NotNil(t, chats[0].Peer)
	assert.Equal(t, peer.Email, chats[0].Peer.Email)
}

func TestMarkReadRequiresParticipant(t *testing.T) {
	caller := testUser("caller@test.com")
	peer := testUser("peer@test.com")
	one, two := canonicalPair(caller.ID, peer.ID)

	existing := &Chat{UserOneID: one, UserTwoID: two}
	existing.ID = uuid.New()

	mockRepo := new(MockRepository)
	mockRepo.On("FindChatByID", mock.Anything, existing.ID).Return(existing, nil)
	mockRepo.On("MarkMessagesRead", mock.Anything, existing.ID, caller.ID).Return(nil)

	service := newTestService(mockRepo, caller, peer)
	require.NoError(t, service.MarkRead(context.Background(), existing.ID, caller.ID))
	mockRepo.AssertCalled(t, "MarkMessagesRead", mock.Anything, existing.ID, caller.ID)
}

// userFor maps a canonical pair slot back to the matching test user.
func userFor(id uuid.UUID, candidates ...*user.User) *user.User {
	for _, u := range candidates {
		if u.ID == id {
			return u
		}
	}
	return nil
}
