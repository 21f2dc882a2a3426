// Package jquants talks to the J-Quants API: it exchanges a refresh token for an
// ID token and fetches the trading calendar.
package jquants

import (
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/trading-calendar/internal/logger"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.jquants.com/v1"

const (
	authRefreshPath     = "/token/auth_refresh"
	tradingCalendarPath = "/markets/trading_calendar"
	dateLayout          = "2006-01-02"
)

// Client provides access to the J-Quants REST API.
type Client struct {
	baseURL string
	http    *resty.Client
	logger  *logger.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client. No timeout or retry is configured.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		http:    resty.New(),
		logger:  logger.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.http.SetBaseURL(c.baseURL).
		SetHeader("Accept", "application/json")

	return c
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc)
	}
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}
