package clash_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dumptruck-ai/agents/tools"
	"github.com/dumptruck-ai/agents/upstream"
	"github.com/dumptruck-ai/agents/upstream/clash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Get_MissingToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := clash.NewClientWithConfig(clash.Config{}).WithBaseURL(srv.URL)
	_, err := client.Get(context.Background(), "/clans/%23ABC")
	require.Error(t, err)
	assert.True(t, upstream.IsConfigError(err))
	assert.EqualError(t, err, "clash: CLASH_API_TOKEN environment variable is not set")
	assert.False(t, called)
}

func Test_Get_AttachesBearer(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"name":"The Order"}`))
	}))
	defer srv.Close()

	client := clash.NewClientWithConfig(clash.Config{APIToken: "jwt-token"}).WithBaseURL(srv.URL)
	body, err := client.Get(context.Background(), "/clans/%23ABC")
	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt-token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, `{"name":"The Order"}`, string(body))
}

func Test_Get_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"reason":"accessDenied.invalidIp"}`))
	}))
	defer srv.Close()

	client := clash.NewClientWithConfig(clash.Config{APIToken: "jwt-token"}).WithBaseURL(srv.URL)
	_, err := client.Get(context.Background(), "/players/%23XYZ")
	require.Error(t, err)
	he, ok := upstream.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.StatusCode)
	assert.Equal(t, `{"reason":"accessDenied.invalidIp"}`, he.Body)
}

func toolByName(t *testing.T, list []tools.ITool, name string) tools.ITool {
	t.Helper()
	for _, tl := range list {
		if tl.Name() == name {
			return tl
		}
	}
	t.Fatalf("tool %q not found", name)
	return nil
}

func Test_Tools_TagEscaping(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := clash.NewClientWithConfig(clash.Config{APIToken: "jwt-token"}).WithBaseURL(srv.URL)
	list := clash.Tools(client)
	require.Len(t, list, 2)

	_, err := toolByName(t, list, "get_clan_details").
		Call(context.Background(), `{"clan_tag": "#2Y0J0PJ88"}`)
	require.NoError(t, err)
	assert.Equal(t, "/clans/%232Y0J0PJ88", gotPath)

	_, err = toolByName(t, list, "get_player_details").
		Call(context.Background(), `{"player_tag": "#8QU8J9LP"}`)
	require.NoError(t, err)
	assert.Equal(t, "/players/%238QU8J9LP", gotPath)
}
