// Package spotify is the gateway to the Spotify Web API and the tools
// exposing it to the agent. Auth is the OAuth2 client-credentials flow;
// the bearer token is cached on the client and refreshed shortly before
// it expires.
package spotify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/dumptruck-ai/agents/upstream"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/dumptruck-ai/agents", "spotify")

const (
	// DefaultAPIBaseURL is the Spotify Web API root.
	DefaultAPIBaseURL = "https://api.spotify.com/v1"
	// DefaultTokenURL is the client-credentials token endpoint.
	DefaultTokenURL = "https://accounts.spotify.com/api/token"

	providerName    = "spotify"
	clientIDEnv     = "SPOTIFY_CLIENT_ID"
	clientSecretEnv = "SPOTIFY_CLIENT_SECRET"

	// tokenSafetyMargin keeps a token from being used within 60 seconds
	// of its real expiry. A provider lifetime under 60s therefore yields
	// a token that is expired on arrival and refreshed on the next call;
	// that degenerate case is preserved as-is.
	tokenSafetyMargin = 60 * time.Second

	// defaultTokenLifetime applies when the provider omits expires_in or
	// reports zero.
	defaultTokenLifetime = 3600 * time.Second
)

// Config holds the Spotify client credentials, sourced from the
// environment.
type Config struct {
	ClientID     string `env:"SPOTIFY_CLIENT_ID"`
	ClientSecret string `env:"SPOTIFY_CLIENT_SECRET"`
}

type cachedToken struct {
	token     string
	expiresAt time.Time
}

// Client is the Spotify gateway. It owns the single token cache entry;
// access is serialized so concurrent tool calls never race a refresh.
type Client struct {
	cfg        Config
	apiBaseURL string
	tokenURL   string
	httpClient *http.Client

	mu    sync.Mutex
	cache *cachedToken

	// now is a clock seam for expiry tests.
	now func() time.Time
}

// NewClient creates a Spotify gateway with credentials from the
// environment. Missing credentials are reported on first use.
func NewClient() (*Client, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to parse spotify config")
	}
	return NewClientWithConfig(cfg), nil
}

// NewClientWithConfig creates a Spotify gateway with explicit credentials.
func NewClientWithConfig(cfg Config) *Client {
	return &Client{
		cfg:        cfg,
		apiBaseURL: DefaultAPIBaseURL,
		tokenURL:   DefaultTokenURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		now: time.Now,
	}
}

// WithAPIBaseURL overrides the Web API root.
func (c *Client) WithAPIBaseURL(baseURL string) *Client {
	c.apiBaseURL = baseURL
	return c
}

// WithTokenURL overrides the token endpoint.
func (c *Client) WithTokenURL(tokenURL string) *Client {
	c.tokenURL = tokenURL
	return c
}

// WithHTTPClient overrides the HTTP client.
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

// WithClock overrides the clock used for token expiry.
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// Token returns a valid bearer token, reusing the cached one when it has
// not reached its margin-adjusted expiry. At most one refresh happens per
// expiry window; the cache entry is replaced wholesale.
func (c *Client) Token(ctx context.Context) (string, error) {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return "", upstream.NewConfigError(providerName, clientIDEnv+" and "+clientSecretEnv)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cache != nil && c.now().Before(c.cache.expiresAt) {
		return c.cache.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to create token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to request token")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read token response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", upstream.NewAuthError(providerName, resp.StatusCode, string(body))
	}

	var tokenData struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenData); err != nil {
		return "", errors.Wrap(err, "failed to decode token response")
	}
	if tokenData.AccessToken == "" {
		return "", upstream.NewAuthError(providerName, resp.StatusCode, string(body))
	}

	lifetime := time.Duration(tokenData.ExpiresIn) * time.Second
	if lifetime == 0 {
		lifetime = defaultTokenLifetime
	}

	c.cache = &cachedToken{
		token:     tokenData.AccessToken,
		expiresAt: c.now().Add(lifetime - tokenSafetyMargin),
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"provider", providerName,
		"status", "token_refreshed",
		"expires_at", c.cache.expiresAt.Format(time.RFC3339),
	)
	return c.cache.token, nil
}

// Get invokes a Spotify Web API endpoint, such as "/search" or
// "/artists/{id}", and returns the JSON response unchanged. A non-200
// status is an HTTPError. Single attempt, no retries, no response caching.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}

	u := c.apiBaseURL + endpoint
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

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
