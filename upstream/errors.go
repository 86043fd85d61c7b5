package upstream

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrNotFound is a sentinel for searches that complete successfully but
// match nothing. It is not an upstream failure; callers that can produce
// a "not found" result should translate it instead of propagating it.
var ErrNotFound = errors.New("upstream: not found")

// ConfigError indicates a required credential is missing. It is returned
// before any network call is attempted.
type ConfigError struct {
	Provider string
	Var      string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s environment variable is not set", e.Provider, e.Var)
}

// NewConfigError returns a ConfigError for the given provider and
// environment variable.
func NewConfigError(provider, envVar string) error {
	return errors.WithStack(&ConfigError{Provider: provider, Var: envVar})
}

// AuthError indicates a token-acquisition failure against a provider's
// identity endpoint. StatusCode is zero when the request never completed.
type AuthError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: auth failed: status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// NewAuthError returns an AuthError carrying the provider's status and body.
func NewAuthError(provider string, status int, body string) error {
	return errors.WithStack(&AuthError{Provider: provider, StatusCode: status, Body: body})
}

// HTTPError indicates a non-success HTTP status from a resource call.
// The raw body is carried unchanged so the agent can surface the
// provider's own message.
type HTTPError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.StatusCode, e.Body)
}

// NewHTTPError returns an HTTPError for the given provider response.
func NewHTTPError(provider string, status int, body string) error {
	return errors.WithStack(&HTTPError{Provider: provider, StatusCode: status, Body: body})
}

// APIError indicates a success HTTP status whose body carries a
// provider-level error, such as the Last.fm `error` field.
type APIError struct {
	Provider string
	Code     int
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: error %d: %s", e.Provider, e.Code, e.Message)
}

// NewAPIError returns an APIError with the provider's numeric code and message.
func NewAPIError(provider string, code int, message string) error {
	return errors.WithStack(&APIError{Provider: provider, Code: code, Message: message})
}

// IsConfigError reports whether err is a missing-credential failure.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// AsHTTPError unwraps an HTTPError if err carries one.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// AsAPIError unwraps an APIError if err carries one.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
