// Package chat answers free-form questions about one species.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/provider"
)

const (
	MaxMessages      = 20
	MaxMessageLength = 2000
	maxNameLength    = 200
)

// ErrChatDisabled is returned when no language model is configured.
var ErrChatDisabled = errors.New("chat disabled")

type completer interface {
	Complete(ctx context.Context, system string, messages []provider.ChatMessage) (string, error)
}

// Message is one chat turn.
type Message struct {
	Role    provider.ChatRole
	Content string
}

// AskInput is a conversation about a species. The last message must come
// from the user.
type AskInput struct {
	SpeciesName    string
	ScientificName string
	Messages       []Message
}

// Validate checks the conversation shape and sizes.
func (in AskInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(in.SpeciesName)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "species_name", Message: "required"})
	} else if utf8.RuneCountInString(name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "species_name", Message: "too long"})
	}
	if utf8.RuneCountInString(in.ScientificName) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "scientific_name", Message: "too long"})
	}

	switch {
	case len(in.Messages) == 0:
		errs = append(errs, domain.FieldError{Field: "messages", Message: "required"})
	case len(in.Messages) > MaxMessages:
		errs = append(errs, domain.FieldError{Field: "messages", Message: fmt.Sprintf("at most %d messages", MaxMessages)})
	default:
		for i, m := range in.Messages {
			field := fmt.Sprintf("messages[%d]", i)
			if m.Role != provider.ChatRoleUser && m.Role != provider.ChatRoleAssistant {
				errs = append(errs, domain.FieldError{Field: field + ".role", Message: "must be user or assistant"})
			}
			if strings.TrimSpace(m.Content) == "" {
				errs = append(errs, domain.FieldError{Field: field + ".content", Message: "required"})
			} else if utf8.RuneCountInString(m.Content) > MaxMessageLength {
				errs = append(errs, domain.FieldError{Field: field + ".content", Message: "too long"})
			}
		}
		if in.Messages[len(in.Messages)-1].Role != provider.ChatRoleUser {
			errs = append(errs, domain.FieldError{Field: "messages", Message: "last message must be from the user"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Service relays species conversations to a language model.
type Service struct {
	log *slog.Logger
	llm completer
}

// NewService creates a chat service. A nil llm disables chat.
func NewService(logger *slog.Logger, llm completer) *Service {
	return &Service{log: logger.With("service", "chat"), llm: llm}
}

// Enabled reports whether a language model is configured.
func (s *Service) Enabled() bool { return s.llm != nil }

// Ask returns the assistant's next message.
func (s *Service) Ask(ctx context.Context, in AskInput) (*Message, error) {
	if s.llm == nil {
		return nil, ErrChatDisabled
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	// A leading assistant greeting is dropped: the model API requires the
	// conversation to open with a user turn.
	msgs := in.Messages
	for len(msgs) > 0 && msgs[0].Role == provider.ChatRoleAssistant {
		msgs = msgs[1:]
	}

	turns := make([]provider.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		turns = append(turns, provider.ChatMessage{Role: m.Role, Content: strings.TrimSpace(m.Content)})
	}

	reply, err := s.llm.Complete(ctx, systemPrompt(in.SpeciesName, in.ScientificName), turns)
	if err != nil {
		s.log.ErrorContext(ctx, "chat completion failed",
			slog.String("species", in.SpeciesName),
			slog.String("error", err.Error()))
		return nil, err
	}

	return &Message{Role: provider.ChatRoleAssistant, Content: strings.TrimSpace(reply)}, nil
}

// Greeting is the assistant message that opens a conversation.
func Greeting(speciesName string) Message {
	return Message{
		Role:    provider.ChatRoleAssistant,
		Content: fmt.Sprintf("Hello! I'm here to answer any questions about the %s. What would you like to know?", strings.TrimSpace(speciesName)),
	}
}

func systemPrompt(name, scientific string) string {
	subject := strings.TrimSpace(name)
	if sci := strings.TrimSpace(scientific); sci != "" {
		subject += " (" + sci + ")"
	}
	return "You are a friendly wildlife expert helping a naturalist learn about the " + subject + ". " +
		"Answer questions about its identification, behaviour, habitat, diet, range and conservation. " +
		"Keep answers accurate and under 200 words. If a question is unrelated to this species or to " +
		"wildlife, politely steer the conversation back."
}
