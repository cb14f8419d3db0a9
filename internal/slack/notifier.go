// Package slack posts scan completion summaries to a Slack incoming webhook
package slack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/theopenlane/httpsling"
)

// DefaultRequestTimeout bounds a single webhook delivery
const DefaultRequestTimeout = 10 * time.Second

// Notifier delivers messages to one Slack incoming webhook
type Notifier struct {
	webhookURL string
	httpClient *http.Client
}

// Option configures the Notifier
type Option func(*Notifier)

// WithHTTPClient sets the HTTP client used for webhook requests
func WithHTTPClient(client *http.Client) Option {
	return func(n *Notifier) {
		if client != nil {
			n.httpClient = client
		}
	}
}

// WithTimeout replaces the request timeout of the default HTTP client.
// Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(n *Notifier) {
		if timeout > 0 {
			n.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// New creates a Notifier for webhookURL
func New(webhookURL string, opts ...Option) (*Notifier, error) {
	if webhookURL == "" {
		return nil, ErrMissingWebhookURL
	}

	u, err := url.Parse(webhookURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidWebhookURL
	}

	n := &Notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: DefaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(n)
	}

	return n, nil
}

// Send posts msg to the webhook
func (n *Notifier) Send(ctx context.Context, msg Message) error {
	requester := httpsling.MustNew(
		httpsling.URL(n.webhookURL),
		httpsling.Post(),
		httpsling.JSONBody(msg),
		httpsling.WithHTTPClient(n.httpClient),
	)

	resp, err := requester.SendWithContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	log.Debug().Int("blocks", len(msg.Blocks)).Msg("slack notification delivered")

	return nil
}
