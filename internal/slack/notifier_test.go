package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	n, err := New("https://hooks.slack.com/services/T123/B456/xyz")
	require.NoError(t, err)

	assert.Equal(t, "https://hooks.slack.com/services/T123/B456/xyz", n.webhookURL)
	require.NotNil(t, n.httpClient)
	assert.Equal(t, DefaultRequestTimeout, n.httpClient.Timeout)
}

func TestNew_InvalidWebhookURL(t *testing.T) {
	testCases := []struct {
		name    string
		url     string
		wantErr error
	}{
		{name: "missing", url: "", wantErr: ErrMissingWebhookURL},
		{name: "no scheme", url: "hooks.slack.com/services/x", wantErr: ErrInvalidWebhookURL},
		{name: "wrong scheme", url: "ftp://hooks.slack.com/x", wantErr: ErrInvalidWebhookURL},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.url)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNew_Options(t *testing.T) {
	custom := &http.Client{Timeout: time.Minute}

	n, err := New("https://hooks.slack.com/test", WithHTTPClient(custom))
	require.NoError(t, err)
	assert.Same(t, custom, n.httpClient)

	n, err = New("https://hooks.slack.com/test", WithHTTPClient(nil), WithTimeout(0))
	require.NoError(t, err)
	assert.Equal(t, DefaultRequestTimeout, n.httpClient.Timeout)

	n, err = New("https://hooks.slack.com/test", WithTimeout(3*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, n.httpClient.Timeout)
}

func TestSend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "application/json"))

		var msg Message
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		assert.Equal(t, "scan finished", msg.Text)
		assert.Len(t, msg.Blocks, 1)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n, err := New(server.URL, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	err = n.Send(context.Background(), Message{
		Text:   "scan finished",
		Blocks: []Block{{Type: blockDivider}},
	})
	require.NoError(t, err)
}

func TestSend_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	n, err := New(server.URL, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	err = n.Send(context.Background(), Message{Text: "test"})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestSend_RequestError(t *testing.T) {
	n, err := New("http://127.0.0.1:1/hook", WithTimeout(time.Second))
	require.NoError(t, err)

	err = n.Send(context.Background(), Message{Text: "test"})
	assert.ErrorIs(t, err, ErrNotificationFailed)
}
