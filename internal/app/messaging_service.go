// Package app contains the application services implementing the primary
// ports. Services validate, enforce participant access, and orchestrate
// repositories; pure domain rules live under internal/core.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/courier/internal/core/chat"
	"github.com/example/courier/internal/core/paging"
	"github.com/example/courier/internal/core/status"
	"github.com/example/courier/internal/ports/primary"
	"github.com/example/courier/internal/ports/secondary"
)

// MessagingServiceImpl implements the MessagingService interface.
type MessagingServiceImpl struct {
	conversationRepo secondary.ConversationRepository
	messageRepo      secondary.MessageRepository
}

// NewMessagingService creates a new MessagingService with injected dependencies.
func NewMessagingService(conversationRepo secondary.ConversationRepository, messageRepo secondary.MessageRepository) *MessagingServiceImpl {
	return &MessagingServiceImpl{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
	}
}

// StartConversation finds or creates the conversation between the actor and
// another user.
func (s *MessagingServiceImpl) StartConversation(ctx context.Context, req primary.StartConversationRequest) (*primary.ConversationSummary, error) {
	userLo, userHi, err := chat.NormalizePair(req.ActorID, req.OtherID)
	if err != nil {
		return nil, err
	}

	record, err := s.conversationRepo.FindOrCreate(ctx, userLo, userHi)
	if err != nil {
		return nil, fmt.Errorf("failed to find or create conversation: %w", err)
	}

	return s.buildSummary(ctx, record, req.ActorID)
}

// ListConversations lists the actor's conversations, most recently active first.
func (s *MessagingServiceImpl) ListConversations(ctx context.Context, actorID string) ([]*primary.ConversationSummary, error) {
	records, err := s.conversationRepo.ListForUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	summaries := make([]*primary.ConversationSummary, 0, len(records))
	for _, record := range records {
		summary, err := s.buildSummary(ctx, record, actorID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ListMessages returns one page of conversation history per the legacy
// windowing algorithm: page 1 is the newest tail, older pages are prefix
// slices that may overlap.
func (s *MessagingServiceImpl) ListMessages(ctx context.Context, req primary.ListMessagesRequest) (*primary.MessagePage, error) {
	conversation, err := s.requireParticipant(ctx, req.ConversationID, req.ActorID)
	if err != nil {
		return nil, err
	}

	total, err := s.messageRepo.Count(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}

	window := paging.Compute(total, paging.Request{Page: req.Page, PageSize: req.PageSize})

	var records []*secondary.MessageRecord
	if window.Len() > 0 {
		records, err = s.messageRepo.ListWindow(ctx, conversation.ID, window.Start, window.Len())
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}
	}

	messages := make([]*primary.Message, len(records))
	for i, record := range records {
		messages[i] = recordToMessage(record)
	}

	return &primary.MessagePage{
		Count:        total,
		HasNext:      window.HasNext(),
		HasPrevious:  window.HasPrevious(),
		NextPage:     window.NextPage(),
		PreviousPage: window.PreviousPage(),
		Messages:     messages,
	}, nil
}

// SendMessage appends a message to a conversation with initial status sent.
func (s *MessagingServiceImpl) SendMessage(ctx context.Context, req primary.SendMessageRequest) (*primary.Message, error) {
	conversation, err := s.requireParticipant(ctx, req.ConversationID, req.SenderID)
	if err != nil {
		return nil, err
	}

	// Blank text counts as absent; a message needs text or an attachment.
	text := strings.TrimSpace(req.Text)
	if text == "" && req.AttachmentURL == "" {
		return nil, chat.ErrEmptyMessage
	}

	now := time.Now().UTC()
	record := &secondary.MessageRecord{
		ID:             uuid.NewString(),
		ConversationID: conversation.ID,
		SenderID:       req.SenderID,
		Body:           text,
		AttachmentURL:  req.AttachmentURL,
		Status:         string(status.Sent),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.messageRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return recordToMessage(record), nil
}

// SetMessageStatus updates a single message's delivery status. Any of the
// four enumerated statuses is accepted from either participant; the status
// machine does not enforce monotonicity.
func (s *MessagingServiceImpl) SetMessageStatus(ctx context.Context, req primary.SetMessageStatusRequest) (*primary.Message, error) {
	newStatus, err := status.Parse(req.Status)
	if err != nil {
		return nil, err
	}

	record, err := s.messageRepo.GetByID(ctx, req.MessageID)
	if err != nil {
		return nil, err
	}

	conversation, err := s.conversationRepo.GetByID(ctx, record.ConversationID)
	if err != nil {
		return nil, err
	}

	if err := status.CanSetStatus(conversation.UserLo, conversation.UserHi, req.ActorID, newStatus); err != nil {
		return nil, err
	}

	if err := s.messageRepo.SetStatus(ctx, record.ID, string(newStatus)); err != nil {
		return nil, err
	}

	updated, err := s.messageRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated message: %w", err)
	}

	return recordToMessage(updated), nil
}

// MarkConversationRead marks all incoming messages as read.
func (s *MessagingServiceImpl) MarkConversationRead(ctx context.Context, conversationID, actorID string) (int, error) {
	conversation, err := s.requireParticipant(ctx, conversationID, actorID)
	if err != nil {
		return 0, err
	}
	return s.messageRepo.MarkConversationRead(ctx, conversation.ID, actorID)
}

// MarkMessagesAsRead marks incoming sent/delivered messages as read.
func (s *MessagingServiceImpl) MarkMessagesAsRead(ctx context.Context, conversationID, actorID string) (int, error) {
	conversation, err := s.requireParticipant(ctx, conversationID, actorID)
	if err != nil {
		return 0, err
	}
	return s.messageRepo.MarkMessagesRead(ctx, conversation.ID, actorID)
}

// MarkMyMessagesAsRead marks the actor's own sent messages as read by the
// other side.
func (s *MessagingServiceImpl) MarkMyMessagesAsRead(ctx context.Context, conversationID, actorID string) (int, error) {
	conversation, err := s.requireParticipant(ctx, conversationID, actorID)
	if err != nil {
		return 0, err
	}
	return s.messageRepo.MarkOwnMessagesRead(ctx, conversation.ID, actorID)
}

// UnreadCount returns the actor's unread count for a conversation.
func (s *MessagingServiceImpl) UnreadCount(ctx context.Context, conversationID, actorID string) (int, error) {
	conversation, err := s.requireParticipant(ctx, conversationID, actorID)
	if err != nil {
		return 0, err
	}
	return s.messageRepo.UnreadCount(ctx, conversation.ID, actorID)
}

// Helper methods

// requireParticipant loads a conversation and verifies the actor belongs to it.
func (s *MessagingServiceImpl) requireParticipant(ctx context.Context, conversationID, actorID string) (*secondary.ConversationRecord, error) {
	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if err := chat.CheckParticipant(conversation.UserLo, conversation.UserHi, actorID); err != nil {
		return nil, err
	}
	return conversation, nil
}

func (s *MessagingServiceImpl) buildSummary(ctx context.Context, record *secondary.ConversationRecord, actorID string) (*primary.ConversationSummary, error) {
	last, err := s.messageRepo.Last(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last message: %w", err)
	}

	unread, err := s.messageRepo.UnreadCount(ctx, record.ID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unread count: %w", err)
	}

	summary := &primary.ConversationSummary{
		ID:           record.ID,
		Participants: [2]string{record.UserLo, record.UserHi},
		CreatedAt:    record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    record.UpdatedAt.Format(time.RFC3339),
		UnreadCount:  unread,
	}
	if last != nil {
		summary.LastMessage = recordToMessage(last)
	}
	return summary, nil
}

func recordToMessage(record *secondary.MessageRecord) *primary.Message {
	return &primary.Message{
		ID:             record.ID,
		ConversationID: record.ConversationID,
		SenderID:       record.SenderID,
		Text:           record.Body,
		AttachmentURL:  record.AttachmentURL,
		Status:         record.Status,
		IsRead:         status.Status(record.Status).IsRead(),
		CreatedAt:      record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      record.UpdatedAt.Format(time.RFC3339),
	}
}

// Ensure MessagingServiceImpl implements the interface.
var _ primary.MessagingService = (*MessagingServiceImpl)(nil)
