package upstream_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/dumptruck-ai/agents/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ConfigError(t *testing.T) {
	err := upstream.NewConfigError("lastfm", "LASTFM_API_KEY")
	assert.EqualError(t, err, "lastfm: LASTFM_API_KEY environment variable is not set")
	assert.True(t, upstream.IsConfigError(err))
	assert.True(t, upstream.IsConfigError(errors.WithMessage(err, "wrapped")))
	assert.False(t, upstream.IsConfigError(errors.New("other")))
}

func Test_HTTPError(t *testing.T) {
	err := upstream.NewHTTPError("spotify", 503, "upstream down")
	assert.EqualError(t, err, "spotify: HTTP 503: upstream down")

	he, ok := upstream.AsHTTPError(errors.WithMessage(err, "call failed"))
	require.True(t, ok)
	assert.Equal(t, 503, he.StatusCode)
	assert.Equal(t, "upstream down", he.Body)

	_, ok = upstream.AsHTTPError(upstream.NewAPIError("lastfm", 6, "User not found"))
	assert.False(t, ok)
}

func Test_APIError(t *testing.T) {
	err := upstream.NewAPIError("lastfm", 6, "User not found")
	assert.EqualError(t, err, "lastfm: error 6: User not found")

	ae, ok := upstream.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 6, ae.Code)
	assert.Equal(t, "User not found", ae.Message)
}

func Test_AuthError(t *testing.T) {
	err := upstream.NewAuthError("spotify", 400, `{"error":"invalid_client"}`)
	assert.EqualError(t, err, `spotify: auth failed: status 400: {"error":"invalid_client"}`)
}

func Test_NotFoundSentinel(t *testing.T) {
	err := errors.WithMessage(upstream.ErrNotFound, "no artist matched")
	assert.True(t, errors.Is(err, upstream.ErrNotFound))
}
