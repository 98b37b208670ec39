package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/skillcoder/hamonitor/internal/logic/monitor"
)

// Slack posts alerts to a Slack incoming webhook.
type Slack struct {
	logger  *slog.Logger
	webhook string
	timeout time.Duration
	client  *http.Client
	limiter *rate.Limiter
}

type slackPayload struct {
	Channel string `json:"channel,omitempty"`
	Text    string `json:"text"`
}

func NewSlack(logger *slog.Logger, cfg Config) *Slack {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Slack{
		logger:  logger.With("component", "notify-slack"),
		webhook: cfg.SlackWebhookURL,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		limiter: newLimiter(cfg.RateLimit, cfg.Burst),
	}
}

var _ monitor.Notifier = (*Slack)(nil)

// Send posts text to the webhook. recipient is used as the channel override.
// The whole call, rate limiter wait included, is bounded by the configured timeout;
// an alert that cannot get a token in time is dropped with an error.
func (s *Slack) Send(ctx context.Context, recipient, text string) error {
	if s.webhook == "" {
		return ErrWebhookNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.limiter.Wait(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "notification dropped by rate limiter",
			"recipient", recipient,
			"text", text,
			"reason", err,
		)

		return fmt.Errorf("wait rate limiter: %w", err)
	}

	body, err := json.Marshal(slackPayload{Channel: recipient, Text: text})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhook, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("post webhook: %w: %d", ErrNon2xxResponse, resp.StatusCode)
	}

	s.logger.DebugContext(ctx, "notification sent", "recipient", recipient)

	return nil
}
