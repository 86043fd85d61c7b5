// Package openaiclient is a minimal client for the OpenAI-compatible
// chat completions API. It also serves providers that expose the same
// wire format behind a different base URL, such as OpenRouter and the
// Gemini OpenAI endpoint.
package openaiclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	DefaultBaseURL   = "https://api.openai.com/v1"
	DefaultChatModel = "gpt-4o-mini"
)

// ErrEmptyResponse is returned when the API returns no choices.
var ErrEmptyResponse = errors.New("empty response")

// Doer performs a HTTP request.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for an OpenAI-compatible chat completions endpoint.
type Client struct {
	Model string

	token      string
	baseURL    string
	httpClient Doer
}

// New returns a new chat completions client.
func New(model, token, baseURL string, httpClient Doer) (*Client, error) {
	if token == "" {
		return nil, errors.New("missing API token")
	}
	c := &Client{
		Model:      model,
		token:      token,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	return c, nil
}

// CreateChat creates a chat completion.
func (c *Client) CreateChat(ctx context.Context, r *ChatRequest) (*ChatCompletionResponse, error) {
	if r.Model == "" {
		if c.Model == "" {
			r.Model = DefaultChatModel
		} else {
			r.Model = c.Model
		}
	}
	resp, err := c.createChat(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}
	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
}

type errorMessage struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
