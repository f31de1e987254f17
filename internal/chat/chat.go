// ABOUTME: Chat collaborator: conversations with a mock assistant responder.
// ABOUTME: Conversations live in an injected Repository, never in package state.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned for unknown conversation IDs.
	ErrNotFound = errors.New("conversation not found")
	// ErrEmptyMessage is returned when Send receives blank text.
	ErrEmptyMessage = errors.New("message is empty")
)

// CodeSample is an optional snippet attached to an assistant reply.
type CodeSample struct {
	HTML string `json:"html,omitempty"`
	CSS  string `json:"css,omitempty"`
	JS   string `json:"js,omitempty"`
}

// Message is one chat turn.
type Message struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	IsUser    bool        `json:"isUser"`
	Timestamp time.Time   `json:"timestamp"`
	Code      *CodeSample `json:"code,omitempty"`
}

// Conversation is an ordered message log.
type Conversation struct {
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
}

// Reply is the result of Send.
type Reply struct {
	Message        Message `json:"message"`
	ConversationID string  `json:"conversationId"`
}

// Responder produces the assistant's answer to a user message.
type Responder interface {
	Respond(ctx context.Context, text string) (Message, error)
}

// Service coordinates the repository and responder.
type Service struct {
	repo      Repository
	responder Responder
	now       func() time.Time
}

// NewService creates a service. A nil responder uses MockResponder.
func NewService(repo Repository, responder Responder) *Service {
	if responder == nil {
		responder = MockResponder{}
	}
	return &Service{repo: repo, responder: responder, now: time.Now}
}

// Send appends text to the conversation and the assistant's reply after it.
// An empty or unknown conversationID starts a conversation; unknown IDs are kept.
func (s *Service) Send(ctx context.Context, text, conversationID string) (Reply, error) {
	if strings.TrimSpace(text) == "" {
		return Reply{}, ErrEmptyMessage
	}
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	user := Message{
		ID:        uuid.New().String(),
		Text:      text,
		IsUser:    true,
		Timestamp: s.now(),
	}
	bot, err := s.responder.Respond(ctx, text)
	if err != nil {
		return Reply{}, err
	}
	if bot.ID == "" {
		bot.ID = uuid.New().String()
	}
	if bot.Timestamp.IsZero() {
		bot.Timestamp = s.now()
	}

	if err := s.repo.Append(ctx, conversationID, user, bot); err != nil {
		return Reply{}, err
	}
	return Reply{Message: bot, ConversationID: conversationID}, nil
}

// Create starts an empty conversation and returns its ID.
func (s *Service) Create(ctx context.Context) (string, error) {
	id := uuid.New().String()
	if err := s.repo.Append(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// History returns the messages of a conversation in order.
func (s *Service) History(ctx context.Context, conversationID string) ([]Message, error) {
	conv, err := s.repo.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return conv.Messages, nil
}

// Delete removes a conversation.
func (s *Service) Delete(ctx context.Context, conversationID string) error {
	return s.repo.Delete(ctx, conversationID)
}

// Mock replies.
const (
	DisclaimerReply = "لطفاً توجه داشته باشید که من فقط اطلاعات عمومی ارائه می‌دهم و جایگزین مشاوره حرفه‌ای نیستم."
	CodeReply       = "در اینجا مثالی از کد جاوااسکریپت برای دکمه‌های مورد نظر شما آماده کردم:"
)

// MockResponder answers with a code sample when asked about code or buttons
// and with the general-information disclaimer otherwise.
type MockResponder struct{}

func (MockResponder) Respond(_ context.Context, text string) (Message, error) {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "کد") || strings.Contains(lower, "دکمه") {
		return Message{
			Text: CodeReply,
			Code: &CodeSample{
				HTML: "<button id=\"cancel-button\">Cancel</button>\n<button id=\"send-button\">Send</button>",
				CSS:  "button {\n  padding: 8px 16px;\n  border-radius: 4px;\n  cursor: pointer;\n}",
				JS: "let cancelButton = document.getElementById(\"cancel-button\");\n" +
					"let sendButton = document.getElementById(\"send-button\");\n\n" +
					"cancelButton.addEventListener(\"click\", function() {\n  console.log(\"Cancel button clicked\");\n});\n\n" +
					"sendButton.addEventListener(\"click\", function() {\n  console.log(\"Send button clicked\");\n});",
			},
		}, nil
	}
	return Message{Text: DisclaimerReply}, nil
}
