// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/courier/internal/ports/primary"
)

// MessagingAdapter is a thin adapter that translates CLI operations to
// MessagingService calls. It depends only on the service interface, enabling
// easy testing with mocks.
type MessagingAdapter struct {
	service primary.MessagingService
	out     io.Writer
}

// NewMessagingAdapter creates a new MessagingAdapter with the given service.
func NewMessagingAdapter(service primary.MessagingService, out io.Writer) *MessagingAdapter {
	return &MessagingAdapter{
		service: service,
		out:     out,
	}
}

// StartConversation finds or creates the conversation with another user.
func (a *MessagingAdapter) StartConversation(ctx context.Context, actorID, otherID string) error {
	summary, err := a.service.StartConversation(ctx, primary.StartConversationRequest{
		ActorID: actorID,
		OtherID: otherID,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Conversation %s with %s\n", summary.ID, otherUser(summary, actorID))
	if summary.LastMessage != nil {
		fmt.Fprintf(a.out, "  Last message: %s\n", preview(summary.LastMessage))
	}
	if summary.UnreadCount > 0 {
		fmt.Fprintf(a.out, "  Unread: %d\n", summary.UnreadCount)
	}
	return nil
}

// ListConversations lists the actor's conversations, most recent first.
func (a *MessagingAdapter) ListConversations(ctx context.Context, actorID string) error {
	summaries, err := a.service.ListConversations(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}

	if len(summaries) == 0 {
		fmt.Fprintln(a.out, "No conversations")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-38s %-20s %s\n", "ID", "WITH", "LAST MESSAGE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────")
	for _, summary := range summaries {
		marker := ""
		if summary.UnreadCount > 0 {
			marker = color.New(color.FgHiMagenta).Sprintf(" [%d unread]", summary.UnreadCount)
		}
		last := "(empty)"
		if summary.LastMessage != nil {
			last = preview(summary.LastMessage)
		}
		fmt.Fprintf(a.out, "%-38s %-20s %s%s\n", summary.ID, otherUser(summary, actorID), last, marker)
	}
	fmt.Fprintln(a.out)

	return nil
}

// ListMessages shows one page of history, oldest line first like a chat log.
func (a *MessagingAdapter) ListMessages(ctx context.Context, conversationID, actorID string, page, pageSize int) error {
	result, err := a.service.ListMessages(ctx, primary.ListMessagesRequest{
		ConversationID: conversationID,
		ActorID:        actorID,
		Page:           page,
		PageSize:       pageSize,
	})
	if err != nil {
		return err
	}

	if len(result.Messages) == 0 {
		fmt.Fprintln(a.out, "No messages on this page")
		return nil
	}

	for _, msg := range result.Messages {
		mark := "✉"
		if msg.IsRead {
			mark = "✓"
		}
		body := msg.Text
		if body == "" {
			body = fmt.Sprintf("[attachment] %s", msg.AttachmentURL)
		}
		fmt.Fprintf(a.out, "%s [%s] %s: %s\n", mark, msg.CreatedAt, msg.SenderID, body)
	}

	fmt.Fprintf(a.out, "\nTotal: %d messages", result.Count)
	if result.HasNext {
		fmt.Fprintf(a.out, " (older history on --page %d)", result.NextPage)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Send appends a message to a conversation.
func (a *MessagingAdapter) Send(ctx context.Context, conversationID, senderID, text, attachmentURL string) error {
	msg, err := a.service.SendMessage(ctx, primary.SendMessageRequest{
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
		AttachmentURL:  attachmentURL,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Message sent: %s\n", msg.ID)
	fmt.Fprintf(a.out, "  Status: %s\n", msg.Status)
	return nil
}

// SetStatus updates a single message's delivery status.
func (a *MessagingAdapter) SetStatus(ctx context.Context, messageID, newStatus, actorID string) error {
	msg, err := a.service.SetMessageStatus(ctx, primary.SetMessageStatusRequest{
		MessageID: messageID,
		Status:    newStatus,
		ActorID:   actorID,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Message %s is now %s\n", msg.ID, msg.Status)
	return nil
}

// MarkConversationRead marks all incoming messages read.
func (a *MessagingAdapter) MarkConversationRead(ctx context.Context, conversationID, actorID string) error {
	marked, err := a.service.MarkConversationRead(ctx, conversationID, actorID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Marked %d messages read\n", marked)
	return nil
}

// MarkMessagesAsRead marks incoming sent/delivered messages read.
func (a *MessagingAdapter) MarkMessagesAsRead(ctx context.Context, conversationID, actorID string) error {
	marked, err := a.service.MarkMessagesAsRead(ctx, conversationID, actorID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Marked %d messages read\n", marked)
	return nil
}

// MarkMyMessagesAsRead records that the actor's outgoing messages were read.
func (a *MessagingAdapter) MarkMyMessagesAsRead(ctx context.Context, conversationID, actorID string) error {
	marked, err := a.service.MarkMyMessagesAsRead(ctx, conversationID, actorID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Marked %d of your messages as read by the other side\n", marked)
	return nil
}

// Unread prints the actor's unread count for a conversation.
func (a *MessagingAdapter) Unread(ctx context.Context, conversationID, actorID string) error {
	count, err := a.service.UnreadCount(ctx, conversationID, actorID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d unread\n", count)
	return nil
}

// otherUser returns the participant that is not the actor.
func otherUser(summary *primary.ConversationSummary, actorID string) string {
	if summary.Participants[0] == actorID {
		return summary.Participants[1]
	}
	return summary.Participants[0]
}

// preview truncates a message body for list output.
func preview(msg *primary.Message) string {
	body := msg.Text
	if body == "" {
		body = "[attachment]"
	}
	if len(body) > 40 {
		return body[:37] + "..."
	}
	return body
}
