// Package lastfm is the gateway to the Last.fm API and the tools exposing
// it to the agent. Auth is an API-key query parameter; every call requests
// the JSON format. Responses are returned unchanged.
package lastfm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/dumptruck-ai/agents/upstream"
	"github.com/effective-security/xlog"
	"github.com/tidwall/gjson"
)

var logger = xlog.NewPackageLogger("github.com/dumptruck-ai/agents", "lastfm")

const (
	// DefaultBaseURL is the Last.fm API root.
	DefaultBaseURL = "https://ws.audioscrobbler.com/2.0"

	providerName = "lastfm"
	apiKeyEnv    = "LASTFM_API_KEY"
)

// Config holds the Last.fm credential, sourced from the environment.
type Config struct {
	APIKey string `env:"LASTFM_API_KEY"`
}

// Client is the Last.fm gateway. A missing API key is reported on first
// use, not at construction.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Last.fm gateway with credentials from the
// environment.
func NewClient() (*Client, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to parse lastfm config")
	}
	return NewClientWithConfig(cfg), nil
}

// NewClientWithConfig creates a Last.fm gateway with explicit credentials.
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

// Call invokes a Last.fm API method and returns the JSON response
// unchanged. The API key and format=json are attached to every call.
// A non-200 status is an HTTPError; a 200 whose body carries an `error`
// field is an APIError with the provider's numeric code and message.
// Single attempt, no retries.
func (c *Client) Call(ctx context.Context, method string, params map[string]string) (json.RawMessage, error) {
	if c.cfg.APIKey == "" {
		return nil, upstream.NewConfigError(providerName, apiKeyEnv)
	}

	q := url.Values{}
	q.Set("method", method)
	q.Set("api_key", c.cfg.APIKey)
	q.Set("format", "json")
	for k, v := range params {
		q.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to call %s", method)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, upstream.NewHTTPError(providerName, resp.StatusCode, string(body))
	}

	// Last.fm reports logical failures with a 200 status and an error
	// field in the body.
	if errField := gjson.GetBytes(body, "error"); errField.Exists() {
		return nil, upstream.NewAPIError(providerName, int(errField.Int()), gjson.GetBytes(body, "message").String())
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"provider", providerName,
		"method", method,
		"response_size", len(body),
	)
	return body, nil
}
