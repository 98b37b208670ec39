package notify

import "errors"

var (
	ErrWebhookNotConfigured = errors.New("webhook not configured")
	ErrNon2xxResponse       = errors.New("non-2xx response")
)
