package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/example/courier/internal/core/chat"
	"github.com/example/courier/internal/core/status"
	"github.com/example/courier/internal/ports/primary"
	"github.com/example/courier/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockConversationRepository implements secondary.ConversationRepository for testing.
type mockConversationRepository struct {
	conversations map[string]*secondary.ConversationRecord
	nextID        int
	findOrCreate  error
	getErr        error
	listErr       error
}

func newMockConversationRepository() *mockConversationRepository {
	return &mockConversationRepository{
		conversations: make(map[string]*secondary.ConversationRecord),
	}
}

func (m *mockConversationRepository) FindOrCreate(ctx context.Context, userLo, userHi string) (*secondary.ConversationRecord, error) {
	if m.findOrCreate != nil {
		return nil, m.findOrCreate
	}
	for _, c := range m.conversations {
		if c.UserLo == userLo && c.UserHi == userHi {
			return c, nil
		}
	}
	m.nextID++
	record := &secondary.ConversationRecord{
		ID:        fmt.Sprintf("conv-%d", m.nextID),
		UserLo:    userLo,
		UserHi:    userHi,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	m.conversations[record.ID] = record
	return record, nil
}

func (m *mockConversationRepository) GetByID(ctx context.Context, id string) (*secondary.ConversationRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if c, ok := m.conversations[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("conversation %s: %w", id, chat.ErrNotFound)
}

func (m *mockConversationRepository) ListForUser(ctx context.Context, userID string) ([]*secondary.ConversationRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.ConversationRecord
	for _, c := range m.conversations {
		if c.UserLo == userID || c.UserHi == userID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

// mockMessageRepository implements secondary.MessageRepository for testing.
// Messages are kept in append order, which doubles as chronological order.
type mockMessageRepository struct {
	messages  []*secondary.MessageRecord
	createErr error
	getErr    error
	listErr   error
}

func newMockMessageRepository() *mockMessageRepository {
	return &mockMessageRepository{}
}

func (m *mockMessageRepository) Create(ctx context.Context, message *secondary.MessageRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	copied := *message
	m.messages = append(m.messages, &copied)
	return nil
}

func (m *mockMessageRepository) GetByID(ctx context.Context, id string) (*secondary.MessageRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, msg := range m.messages {
		if msg.ID == id {
			return msg, nil
		}
	}
	return nil, fmt.Errorf("message %s: %w", id, chat.ErrNotFound)
}

func (m *mockMessageRepository) inConversation(conversationID string) []*secondary.MessageRecord {
	var result []*secondary.MessageRecord
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			result = append(result, msg)
		}
	}
	return result
}

func (m *mockMessageRepository) ListWindow(ctx context.Context, conversationID string, offset, limit int) ([]*secondary.MessageRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	msgs := m.inConversation(conversationID)
	if offset >= len(msgs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(msgs) {
		end = len(msgs)
	}
	return msgs[offset:end], nil
}

func (m *mockMessageRepository) Count(ctx context.Context, conversationID string) (int, error) {
	return len(m.inConversation(conversationID)), nil
}

func (m *mockMessageRepository) Last(ctx context.Context, conversationID string) (*secondary.MessageRecord, error) {
	msgs := m.inConversation(conversationID)
	if len(msgs) == 0 {
		return nil, nil
	}
	return msgs[len(msgs)-1], nil
}

func (m *mockMessageRepository) SetStatus(ctx context.Context, id, newStatus string) error {
	for _, msg := range m.messages {
		if msg.ID == id {
			msg.Status = newStatus
			return nil
		}
	}
	return fmt.Errorf("message %s: %w", id, chat.ErrNotFound)
}

func (m *mockMessageRepository) MarkConversationRead(ctx context.Context, conversationID, actorID string) (int, error) {
	count := 0
	for _, msg := range m.inConversation(conversationID) {
		if msg.SenderID != actorID && msg.Status != string(status.Read) {
			msg.Status = string(status.Read)
			count++
		}
	}
	return count, nil
}

func (m *mockMessageRepository) MarkMessagesRead(ctx context.Context, conversationID, actorID string) (int, error) {
	count := 0
	for _, msg := range m.inConversation(conversationID) {
		if msg.SenderID != actorID && (msg.Status == string(status.Sent) || msg.Status == string(status.Delivered)) {
			msg.Status = string(status.Read)
			count++
		}
	}
	return count, nil
}

func (m *mockMessageRepository) MarkOwnMessagesRead(ctx context.Context, conversationID, actorID string) (int, error) {
	count := 0
	for _, msg := range m.inConversation(conversationID) {
		if msg.SenderID == actorID && msg.Status == string(status.Sent) {
			msg.Status = string(status.Read)
			count++
		}
	}
	return count, nil
}

func (m *mockMessageRepository) UnreadCount(ctx context.Context, conversationID, userID string) (int, error) {
	count := 0
	for _, msg := range m.inConversation(conversationID) {
		if msg.SenderID != userID && msg.Status != string(status.Read) {
			count++
		}
	}
	return count, nil
}

// ============================================================================
// Test Helpers
// ============================================================================

func newTestMessagingService() (*MessagingServiceImpl, *mockConversationRepository, *mockMessageRepository) {
	conversationRepo := newMockConversationRepository()
	messageRepo := newMockMessageRepository()
	service := NewMessagingService(conversationRepo, messageRepo)
	return service, conversationRepo, messageRepo
}

// seedConversation registers a conversation between alice and bob.
func seedConversation(repo *mockConversationRepository, id, userLo, userHi string) {
	repo.conversations[id] = &secondary.ConversationRecord{
		ID:        id,
		UserLo:    userLo,
		UserHi:    userHi,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

// ============================================================================
// StartConversation Tests
// ============================================================================

func TestStartConversation_CreatesOnce(t *testing.T) {
	service, _, _ := newTestMessagingService()
	ctx := context.Background()

	first, err := service.StartConversation(ctx, primary.StartConversationRequest{ActorID: "alice", OtherID: "bob"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.Participants != [2]string{"alice", "bob"} {
		t.Errorf("participants = %v", first.Participants)
	}

	// The reversed pair resolves to the same conversation.
	second, err := service.StartConversation(ctx, primary.StartConversationRequest{ActorID: "bob", OtherID: "alice"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same conversation, got %s and %s", first.ID, second.ID)
	}
}

func TestStartConversation_WithSelf(t *testing.T) {
	service, _, _ := newTestMessagingService()

	_, err := service.StartConversation(context.Background(), primary.StartConversationRequest{ActorID: "alice", OtherID: "alice"})
	if !errors.Is(err, chat.ErrInvalidPair) {
		t.Errorf("error = %v, want ErrInvalidPair", err)
	}
}

// ============================================================================
// SendMessage Tests
// ============================================================================

func TestSendMessage_Success(t *testing.T) {
	service, conversationRepo, messageRepo := newTestMessagingService()
	ctx := context.Background()

	seedConversation(conversationRepo, "conv-1", "alice", "bob")

	msg, err := service.SendMessage(ctx, primary.SendMessageRequest{
		ConversationID: "conv-1",
		SenderID:       "alice",
		Text:           "  hello bob  ",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if msg.Text != "hello bob" {
		t.Errorf("text = %q, want trimmed %q", msg.Text, "hello bob")
	}
	if msg.Status != "sent" {
		t.Errorf("status = %q, want sent", msg.Status)
	}
	if msg.IsRead {
		t.Error("expected new message to be unread")
	}
	if len(messageRepo.messages) != 1 {
		t.Errorf("expected 1 stored message, got %d", len(messageRepo.messages))
	}
}

func TestSendMessage_AttachmentOnly(t *testing.T) {
	service, conversationRepo, _ := newTestMessagingService()
	ctx := context.Background()

	seedConversation(conversationRepo, "conv-1", "alice", "bob")

	msg, err := service.SendMessage(ctx, primary.SendMessageRequest{
		ConversationID: "conv-1",
		SenderID:       "bob",
		AttachmentURL:  "https://cdn.example.com/pic.jpg",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if msg.AttachmentURL == "" {
		t.Error("expected attachment URL to be kept")
	}
}

func TestSendMessage_Empty(t *testing.T) {
	service, conversationRepo, _ := newTestMessagingService()
	ctx := context.Background()

	seedConversation(conversationRepo, "conv-1", "alice", "bob")

	_, err := service.SendMessage(ctx, primary.SendMessageRequest{
		ConversationID: "conv-1",
		SenderID:       "alice",
		Text:           "   ",
	})
	if !errors.Is(err, chat.ErrEmptyMessage) {
		t.Errorf("error = %v, want ErrEmptyMessage", err)
	}
}

func TestSendMessage_NotParticipant(t *testing.T) {
	service, conversationRepo, _ := newTestMessagingService()
	ctx := context.Background()

	seedConversation(conversationRepo, "conv-1", "alice", "bob")

	_, err := service.SendMessage(ctx, primary.SendMessageRequest{
		ConversationID: "conv-1",
		SenderID:       "carol",
		Text:           "let me in",
	})
	if !errors.Is(err, chat.ErrNotParticipant) {
		t.Errorf("error = %v, want ErrNotParticipant", err)
	}
}

func TestSendMessage_ConversationNotFound(t *testing.T) {
	service, _, _ := newTestMessagingService()

	_, err := service.SendMessage(context.Background(), primary.SendMessageRequest{
		ConversationID: "missing",
		SenderID:       "alice",
		Text:           "hello",
	})
	if !errors.Is(err, chat.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// ============================================================================
// ListMessages Tests
// ============================================================================

func seedHistory(conversationRepo *mockConversationRepository, messageRepo *mockMessageRepository, n int) {
	seedConversation(conversationRepo, "conv-1", "alice", "bob")
	base := time.Now().UTC()
	for i := 0; i < n; i++ {
		messageRepo.messages = append(messageRepo.messages, &secondary.MessageRecord{
			ID:             fmt.Sprintf("msg-%02d", i),
			ConversationID: "conv-1",
			SenderID:       "alice",
			Body:           fmt.Sprintf("message %d", i),
			Status:         string(status.Sent),
			CreatedAt:      base.Add(time.Duration(i) * time.Second),
			UpdatedAt:      base.Add(time.Duration(i) * time.Second),
		})
	}
}

func TestListMessages_FirstPage(t *testing.T) {
	service, conversationRepo, messageRepo := newTestMessagingService()
	ctx := context.Background()

	seedHistory(conversationRepo, messageRepo, 25)

	page, err := service.ListMessages(ctx, primary.ListMessagesRequest{
		ConversationID: "conv-1",
		ActorID:        "bob",
		Page:           1,
		PageSize:       20,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if page.Count != 25 {
		t.Errorf("count = %d, want 25", page.Count)
	}
	if !page.HasNext || page.HasPrevious {
		t.Errorf("flags = (next %v, previous %v), want (true, false)", page.HasNext, page.HasPrevious)
	}
	if len(page.Messages) != 20 {
		t.Fatalf("expected 20 messages, got %d", len(page.Messages))
	}
	// The 20 most recent messages, ascending: msg-05 … msg-24.
	if page.Messages[0].ID != "msg-05" || page.Messages[19].ID != "msg-24" {
		t.Errorf("window = [%s, %s], want [msg-05, msg-24]", page.Messages[0].ID, page.Messages[19].ID)
	}
	if page.NextPage != 2 || page.PreviousPage != 0 {
		t.Errorf("cursors = (%d, %d), want (2, 0)", page.NextPage, page.PreviousPage)
	}
}

func TestListMessages_SecondPage(t *testing.T) {
	service, conversationRepo, messageRepo := newTestMessagingService()
	ctx := context.Background()

	seedHistory(conversationRepo, messageRepo, 25)

	page, err := service.ListMessages(ctx, primary.ListMessagesRequest{
		ConversationID: "conv-1",
		ActorID:        "alice",
		Page:           2,
		PageSize:       20,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// Page 2 is the prefix [0, 5): the oldest five messages.
	if len(page.Messages) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(page.Messages))
	}
	if page.Messages[0].ID != "msg-00" || page.Messages[4].ID != "msg-04" {
		t.Errorf("window = [%s, %s], want [msg-00, msg-04]", page.Messages[0].ID, page.Messages[4].ID)
	}
	if page.HasNext {
		t.Error("HasNext = true, want false")
	}
	if !page.HasPrevious || page.PreviousPage != 1 {
		t.Errorf("previous = (%v, %d), want (true, 1)", page.HasPrevious, page.PreviousPage)
	}
}

func TestListMessages_DefaultsApplied(t *testing.T) {
	service, conversationRepo, messageRepo := newTestMessagingService()
	ctx := context.Background()

	seedHistory(conversationRepo, messageRepo, 30)

	page, err := service.ListMessages(ctx, primary.ListMessagesRequest{
		ConversationID: "conv-1",
		ActorID:        "bob",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(page.Messages) != 20 {
		t.Errorf("expected default page size 20, got %d messages", len(page.Messages))
	}
}

func TestListMessages_NotParticipant(t *testing.T) {
	service, conversationRepo, messageRepo := newTestMessagingService()
	ctx := context.Background()

	seedHistory(conversationRepo, messageRepo, 3)

	_, err := service.ListMessages(ctx, primary.ListMessagesRequest{
		ConversationID: "conv-1",
		ActorID:        "carol",
	})
	if !errors.Is(err, chat.ErrNotParticipant) {
		t.Errorf("error = %v, want ErrNotParticipant", err)
	}
}

// ============================================================================
// SetMessageStatus Tests
// ============================================================================

func TestSetMessageStatus_Read(t *testing.T) {
	service, conversationRepo, messageRepo := newTestMessagingService()
	ctx := context.Background()

	seedHistory(conversationRepo, messageRepo, 1)

	msg, err := service.SetMessageStatus(ctx, primary.SetMessageStatusRequest{
		MessageID: "msg-00",
		Status:    "read",
		ActorID:   "bob",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if msg.Status != "read" {
		t.Errorf("status = %q, want read", msg.Status)
	}
	if !msg.IsRead {
		t.Error("IsRead = false, want true")
	}
}

func TestSetMessageStatus_InvalidStatus(t *testing.T) {
	service, conversationRepo, messageRepo := newTestMessagingService()
	ctx := context.Background()

	seedHistory(conversationRepo, messageRepo, 1)

	_, err := service.SetMessageStatus(ctx, primary.SetMessageStatusRequest{
		MessageID: "msg-00",
		Status:    "archived",
		ActorID:   "bob",
	})
	if !errors.Is(err, chat.ErrInvalidStatus) {
		t.Errorf("error = %v, want ErrInvalidStatus", err)
	}
}

func TestSetMessageStatus_NotParticipant(t *testing.T) {
	service, conversationRepo, messageRepo := newTestMessagingService()
	ctx := context.Background()

	seedHistory(conversationRepo, messageRepo, 1)

	_, err := service.SetMessageStatus(ctx, primary.SetMessageStatusRequest{
		MessageID: "msg-00",
		Status:    "read",
		ActorID:   "carol",
	})
	if !errors.Is(err, chat.ErrNotParticipant) {
		t.Errorf("error = %v, want ErrNotParticipant", err)
	}
}

func TestSetMessageStatus_MessageNotFound(t *testing.T) {
	service, _, _ := newTestMessagingService()

	_, err := service.SetMessageStatus(context.Background(), primary.SetMessageStatusRequest{
		MessageID: "missing",
		Status:    "read",
		ActorID:   "alice",
	})
	if !errors.Is(err, chat.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// ============================================================================
// Read-marking and unread Tests
// ============================================================================

func TestMarkConversationRead_Idempotent(t *testing.T) {
	service, conversationRepo, messageRepo := newTestMessagingService()
	ctx := context.Background()

	seedHistory(conversationRepo, messageRepo, 4) // all from alice

	marked, err := service.MarkConversationRead(ctx, "conv-1", "bob")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if marked != 4 {
		t.Errorf("marked = %d, want 4", marked)
	}

	marked, err = service.MarkConversationRead(ctx, "conv-1", "bob")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if marked != 0 {
		t.Errorf("second call marked = %d, want 0", marked)
	}
}

func TestMarkReadOperations_RequireParticipant(t *testing.T) {
	service, conversationRepo, messageRepo := newTestMessagingService()
	ctx := context.Background()

	seedHistory(conversationRepo, messageRepo, 2)

	ops := map[string]func() (int, error){
		"MarkConversationRead": func() (int, error) { return service.MarkConversationRead(ctx, "conv-1", "carol") },
		"MarkMessagesAsRead":   func() (int, error) { return service.MarkMessagesAsRead(ctx, "conv-1", "carol") },
		"MarkMyMessagesAsRead": func() (int, error) { return service.MarkMyMessagesAsRead(ctx, "conv-1", "carol") },
		"UnreadCount":          func() (int, error) { return service.UnreadCount(ctx, "conv-1", "carol") },
	}
	for name, op := range ops {
		if _, err := op(); !errors.Is(err, chat.ErrNotParticipant) {
			t.Errorf("%s: error = %v, want ErrNotParticipant", name, err)
		}
	}
}

func TestMarkMyMessagesAsRead_OnlyOwnSent(t *testing.T) {
	service, conversationRepo, messageRepo := newTestMessagingService()
	ctx := context.Background()

	seedHistory(conversationRepo, messageRepo, 3) // alice's sent messages

	marked, err := service.MarkMyMessagesAsRead(ctx, "conv-1", "alice")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if marked != 3 {
		t.Errorf("marked = %d, want 3", marked)
	}

	// bob owns nothing here.
	marked, err = service.MarkMyMessagesAsRead(ctx, "conv-1", "bob")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if marked != 0 {
		t.Errorf("marked = %d, want 0", marked)
	}
}

// ============================================================================
// Conversation summary Tests
// ============================================================================

func TestListConversations_Summaries(t *testing.T) {
	service, conversationRepo, messageRepo := newTestMessagingService()
	ctx := context.Background()

	seedHistory(conversationRepo, messageRepo, 2)

	summaries, err := service.ListConversations(ctx, "bob")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(summaries))
	}

	summary := summaries[0]
	if summary.UnreadCount != 2 {
		t.Errorf("unread = %d, want 2", summary.UnreadCount)
	}
	if summary.LastMessage == nil || summary.LastMessage.ID != "msg-01" {
		t.Errorf("expected last message msg-01, got %+v", summary.LastMessage)
	}
}
