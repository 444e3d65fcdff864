// Package http exposes the messaging operations over a JSON REST API.
//
// Authentication is an external collaborator: the server trusts the
// authenticated user ID handed to it in the X-User-ID header (set by the
// surrounding platform's gateway) and passes it to the services as the
// acting participant. There is no ambient current-user state.
package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"

	"github.com/example/courier/internal/core/chat"
	"github.com/example/courier/internal/ports/primary"
)

// Server wires the messaging service into a fiber application.
type Server struct {
	service primary.MessagingService
	log     *logrus.Logger
}

// NewServer creates a Server around the given service.
func NewServer(service primary.MessagingService, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{service: service, log: log}
}

// App builds the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "courier",
	})
	app.Use(logger.New())

	v1 := app.Group("/v1", s.requireActor)
	v1.Post("/conversations", s.startConversation)
	v1.Get("/conversations", s.listConversations)
	v1.Get("/conversations/:id/messages", s.listMessages)
	v1.Post("/conversations/:id/messages", s.sendMessage)
	v1.Post("/conversations/:id/mark_read", s.markConversationRead)
	v1.Post("/conversations/:id/mark_messages_read", s.markMessagesRead)
	v1.Post("/conversations/:id/mark_my_messages_read", s.markMyMessagesRead)
	v1.Get("/conversations/:id/unread", s.unreadCount)
	v1.Patch("/messages/:id/status", s.setMessageStatus)

	return app
}

// Listen starts serving on addr and blocks.
func (s *Server) Listen(addr string) error {
	s.log.WithField("addr", addr).Info("courier API listening")
	return s.App().Listen(addr)
}

// requireActor pulls the authenticated user from the gateway header.
func (s *Server) requireActor(c *fiber.Ctx) error {
	actor := c.Get("X-User-ID")
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing X-User-ID header",
		})
	}
	c.Locals("actor", actor)
	return c.Next()
}

func actorID(c *fiber.Ctx) string {
	actor, _ := c.Locals("actor").(string)
	return actor
}

func (s *Server) startConversation(c *fiber.Ctx) error {
	var body struct {
		OtherUserID string `json:"other_user_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid JSON body")
	}

	summary, err := s.service.StartConversation(c.Context(), primary.StartConversationRequest{
		ActorID: actorID(c),
		OtherID: body.OtherUserID,
	})
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(conversationJSON(summary))
}

func (s *Server) listConversations(c *fiber.Ctx) error {
	summaries, err := s.service.ListConversations(c.Context(), actorID(c))
	if err != nil {
		return s.fail(c, err)
	}

	out := make([]fiber.Map, len(summaries))
	for i, summary := range summaries {
		out[i] = conversationJSON(summary)
	}
	return c.JSON(fiber.Map{"conversations": out})
}

func (s *Server) listMessages(c *fiber.Ctx) error {
	page, err := s.service.ListMessages(c.Context(), primary.ListMessagesRequest{
		ConversationID: c.Params("id"),
		ActorID:        actorID(c),
		Page:           c.QueryInt("page", 1),
		PageSize:       c.QueryInt("page_size", 0),
	})
	if err != nil {
		return s.fail(c, err)
	}

	messages := make([]fiber.Map, len(page.Messages))
	for i, msg := range page.Messages {
		messages[i] = messageJSON(msg)
	}

	out := fiber.Map{
		"count":        page.Count,
		"has_next":     page.HasNext,
		"has_previous": page.HasPrevious,
		"messages":     messages,
	}
	if page.NextPage > 0 {
		out["next_page"] = page.NextPage
	}
	if page.PreviousPage > 0 {
		out["previous_page"] = page.PreviousPage
	}
	return c.JSON(out)
}

func (s *Server) sendMessage(c *fiber.Ctx) error {
	var body struct {
		Text          string `json:"text"`
		AttachmentURL string `json:"attachment_url"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid JSON body")
	}

	msg, err := s.service.SendMessage(c.Context(), primary.SendMessageRequest{
		ConversationID: c.Params("id"),
		SenderID:       actorID(c),
		Text:           body.Text,
		AttachmentURL:  body.AttachmentURL,
	})
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(messageJSON(msg))
}

func (s *Server) setMessageStatus(c *fiber.Ctx) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid JSON body")
	}

	msg, err := s.service.SetMessageStatus(c.Context(), primary.SetMessageStatusRequest{
		MessageID: c.Params("id"),
		Status:    body.Status,
		ActorID:   actorID(c),
	})
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(messageJSON(msg))
}

func (s *Server) markConversationRead(c *fiber.Ctx) error {
	return s.markWith(c, s.service.MarkConversationRead)
}

func (s *Server) markMessagesRead(c *fiber.Ctx) error {
	return s.markWith(c, s.service.MarkMessagesAsRead)
}

func (s *Server) markMyMessagesRead(c *fiber.Ctx) error {
	return s.markWith(c, s.service.MarkMyMessagesAsRead)
}

// markWith runs one of the bulk read-marking operations and returns the
// number of messages changed.
func (s *Server) markWith(c *fiber.Ctx, op func(ctx context.Context, conversationID, actorID string) (int, error)) error {
	marked, err := op(c.Context(), c.Params("id"), actorID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"marked_count": marked})
}

func (s *Server) unreadCount(c *fiber.Ctx) error {
	count, err := s.service.UnreadCount(c.Context(), c.Params("id"), actorID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// fail maps domain errors to HTTP responses.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, chat.ErrNotParticipant):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, chat.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, chat.ErrInvalidPair), errors.Is(err, chat.ErrEmptyMessage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, chat.ErrInvalidStatus):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	default:
		s.log.WithError(err).Error("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func conversationJSON(summary *primary.ConversationSummary) fiber.Map {
	out := fiber.Map{
		"id":           summary.ID,
		"participants": summary.Participants,
		"created_at":   summary.CreatedAt,
		"updated_at":   summary.UpdatedAt,
		"unread_count": summary.UnreadCount,
	}
	if summary.LastMessage != nil {
		out["last_message"] = messageJSON(summary.LastMessage)
	}
	return out
}

func messageJSON(msg *primary.Message) fiber.Map {
	return fiber.Map{
		"id":              msg.ID,
		"conversation_id": msg.ConversationID,
		"sender_id":       msg.SenderID,
		"text":            msg.Text,
		"attachment_url":  msg.AttachmentURL,
		"status":          msg.Status,
		"is_read":         msg.IsRead,
		"created_at":      msg.CreatedAt,
		"updated_at":      msg.UpdatedAt,
	}
}
