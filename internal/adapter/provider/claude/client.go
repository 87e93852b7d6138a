// Package claude answers species questions through the Anthropic
// Messages API.
package claude

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/wildlife-backend/internal/config"
	"github.com/heartmarshall/wildlife-backend/internal/metrics"
	"github.com/heartmarshall/wildlife-backend/internal/provider"
)

const providerName = "anthropic"

// Client sends chat transcripts to a Claude model.
type Client struct {
	api       anthropic.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// NewClient creates a Client from configuration. Extra options are applied
// after the configured ones.
func NewClient(cfg config.ChatConfig, logger *slog.Logger, opts ...option.RequestOption) *Client {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	return &Client{
		api:       anthropic.NewClient(append(base, opts...)...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       logger.With("adapter", providerName),
	}
}

// Complete returns the assistant's reply to messages under the system prompt.
func (c *Client) Complete(ctx context.Context, system string, messages []provider.ChatMessage) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages:  make([]anthropic.MessageParam, 0, len(messages)),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	for _, m := range messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == provider.ChatRoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}

	metrics.ProviderRequestsTotal.WithLabelValues(providerName).Inc()
	start := time.Now()
	defer func() {
		metrics.ProviderDurationMs.WithLabelValues(providerName).Observe(float64(time.Since(start).Milliseconds()))
	}()

	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		metrics.ProviderFailTotal.WithLabelValues(providerName).Inc()
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &provider.Error{Provider: providerName, StatusCode: apiErr.StatusCode, Err: err}
		}
		return "", provider.WrapError(providerName, "messages.new", err)
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Type == "text" && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		metrics.ProviderFailTotal.WithLabelValues(providerName).Inc()
		return "", provider.WrapError(providerName, "messages.new", errors.New("empty response"))
	}

	c.log.DebugContext(ctx, "chat completed",
		slog.Int("turns", len(messages)),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
		slog.Duration("took", time.Since(start)))

	return strings.Join(parts, "\n"), nil
}
