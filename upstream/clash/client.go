// Package clash is the gateway to the Clash of Clans API and the tools
// exposing it to the agent. Auth is a static bearer token; clan and
// player tags are escaped into the URL path. Responses are returned
// unchanged.
package clash

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/dumptruck-ai/agents/upstream"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/dumptruck-ai/agents", "clash")

const (
	// DefaultBaseURL is the Clash of Clans API root.
	DefaultBaseURL = "https://api.clashofclans.com/v1"

	providerName = "clash"
	tokenEnv     = "CLASH_API_TOKEN"
)

// Config holds the Clash of Clans credential, sourced from the
// environment.
type Config struct {
	APIToken string `env:"CLASH_API_TOKEN"`
}

// Client is the Clash of Clans gateway. A missing token is reported on
// first use, not at construction.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Clash of Clans gateway with credentials from the
// environment.
func NewClient() (*Client, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to parse clash config")
	}
	return NewClientWithConfig(cfg), nil
}

// NewClientWithConfig creates a Clash of Clans gateway with explicit
// credentials.
func NewClientWithConfig(cfg Config) *Client {
	return &Client{
		cfg:     cfg,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// WithBaseURL overrides the API root.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// WithHTTPClient overrides the HTTP client.
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

// escapeTag encodes a clan or player tag for use as a path segment.
// Tags begin with '#', which must travel as %23.
func escapeTag(tag string) string {
	return strings.ReplaceAll(tag, "#", "%23")
}

// Get fetches an API endpoint and returns the JSON response unchanged.
// The bearer token is attached to every call. A non-200 status is an
// HTTPError carrying the provider's body. Single attempt, no retries.
func (c *Client) Get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	if c.cfg.APIToken == "" {
		return nil, upstream.NewConfigError(providerName, tokenEnv)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to call %s", endpoint)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, upstream.NewHTTPError(providerName, resp.StatusCode, string(body))
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"provider", providerName,
		"endpoint", endpoint,
		"response_size", len(body),
	)
	return body, nil
}
