package slack

import "errors"

var (
	// ErrMissingWebhookURL is returned when no Slack webhook URL is configured
	ErrMissingWebhookURL = errors.New("slack webhook URL is required")
	// ErrInvalidWebhookURL is returned when the webhook URL is not an absolute http(s) URL
	ErrInvalidWebhookURL = errors.New("slack webhook URL must be an absolute http or https URL")
	// ErrNotificationFailed is returned when the webhook request cannot be sent
	ErrNotificationFailed = errors.New("slack notification failed")
	// ErrUnexpectedStatus is returned when Slack answers with a non-200 status
	ErrUnexpectedStatus = errors.New("unexpected slack webhook response status")
	// ErrNilResult is returned when a summary is requested without a scan result
	ErrNilResult = errors.New("scan result is required")
)
