package openai

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/dumptruck-ai/agents/llms/openai/internal/openaiclient"
)

const (
	tokenEnvVarName   = "OPENAI_API_KEY"  //nolint:gosec
	modelEnvVarName   = "OPENAI_MODEL"    //nolint:gosec
	baseURLEnvVarName = "OPENAI_BASE_URL" //nolint:gosec
)

type options struct {
	token      string
	model      string
	baseURL    string
	httpClient openaiclient.Doer
}

// Option is a functional option for the OpenAI client.
type Option func(*options)

// WithToken passes the API token to the client. If not set, the token
// is read from the OPENAI_API_KEY environment variable.
func WithToken(token string) Option {
	return func(opts *options) {
		opts.token = token
	}
}

// WithModel passes the model name to the client. If not set, the model
// is read from the OPENAI_MODEL environment variable.
func WithModel(model string) Option {
	return func(opts *options) {
		opts.model = model
	}
}

// WithBaseURL passes the base url to the client. If not set, the base
// url is read from the OPENAI_BASE_URL environment variable, falling
// back to https://api.openai.com/v1. Point it at any provider that
// speaks the chat completions wire format.
func WithBaseURL(baseURL string) Option {
	return func(opts *options) {
		opts.baseURL = baseURL
	}
}

// WithHTTPClient allows setting a custom HTTP client.
func WithHTTPClient(client openaiclient.Doer) Option {
	return func(opts *options) {
		opts.httpClient = client
	}
}

func newClient(opts ...Option) (*openaiclient.Client, error) {
	options := &options{
		token:   os.Getenv(tokenEnvVarName),
		model:   os.Getenv(modelEnvVarName),
		baseURL: os.Getenv(baseURLEnvVarName),
	}
	for _, opt := range opts {
		opt(options)
	}

	if options.token == "" {
		return nil, errors.Newf("missing the API key, set it in the %s environment variable", tokenEnvVarName)
	}
	return openaiclient.New(options.model, options.token, options.baseURL, options.httpClient)
}
