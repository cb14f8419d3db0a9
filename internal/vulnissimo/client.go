// Package vulnissimo is a client for the Vulnissimo scanning API
package vulnissimo

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the root endpoint of the Vulnissimo API
	DefaultBaseURL = "https://api.vulnissimo.io"
	// defaultRequestTimeout is the default timeout for Vulnissimo API requests
	defaultRequestTimeout = 30 * time.Second
	// scansPath is the collection path for scans
	scansPath = "scans"
)

// Client provides access to the Vulnissimo API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for the Vulnissimo client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default Vulnissimo API base URL
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// New creates a new Vulnissimo client
func New(opts ...Option) (*Client, error) {
	client := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	u, err := url.Parse(client.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidBaseURL
	}

	return client, nil
}

// scansURL returns the URL of the scan collection
func (c *Client) scansURL() string {
	return c.baseURL + "/" + scansPath
}

// scanURL returns the URL of a single scan
func (c *Client) scanURL(id uuid.UUID) string {
	return c.scansURL() + "/" + id.String()
}
