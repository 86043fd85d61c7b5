package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dumptruck-ai/agents/llms"
	"github.com/dumptruck-ai/agents/llms/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_New_MissingToken(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := openai.New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func Test_GenerateContent_Text(t *testing.T) {
	var gotReq map[string]any
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotReq))
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "hello back"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 4, "total_tokens": 16}
		}`))
	}))
	defer srv.Close()

	model, err := openai.New(
		openai.WithToken("test-key"),
		openai.WithModel("gpt-4o-mini"),
		openai.WithBaseURL(srv.URL),
	)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", model.GetName())
	assert.Equal(t, llms.ProviderOpenAI, model.GetProviderType())

	resp, err := model.GenerateContent(context.Background(), []llms.Message{
		llms.MessageFromTextParts(llms.RoleSystem, "You are terse."),
		llms.MessageFromTextParts(llms.RoleHuman, "hello"),
	}, llms.WithTemperature(0.2))
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq["model"])
	msgs := gotReq["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])

	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "hello back", resp.Choices[0].Content)
	assert.Equal(t, "stop", resp.Choices[0].StopReason)
	assert.Equal(t, 16, resp.Choices[0].GenerationInfo["TotalTokens"])
}

func Test_GenerateContent_ToolCalls(t *testing.T) {
	var gotReq map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotReq))
		_, _ = w.Write([]byte(`{
			"choices": [{
				"index": 0,
				"message": {
					"role": "assistant",
					"content": "",
					"tool_calls": [{
						"id": "call_1",
						"type": "function",
						"function": {"name": "get_artist_details", "arguments": "{\"artist_id\": \"abc\"}"}
					}]
				},
				"finish_reason": "tool_calls"
			}],
			"usage": {"prompt_tokens": 30, "completion_tokens": 9, "total_tokens": 39}
		}`))
	}))
	defer srv.Close()

	model, err := openai.New(
		openai.WithToken("test-key"),
		openai.WithModel("gpt-4o-mini"),
		openai.WithBaseURL(srv.URL),
	)
	require.NoError(t, err)

	resp, err := model.GenerateContent(context.Background(),
		[]llms.Message{llms.MessageFromTextParts(llms.RoleHuman, "tell me about abc")},
		llms.WithTools([]llms.Tool{{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        "get_artist_details",
				Description: "Get artist details by ID.",
			},
		}}),
	)
	require.NoError(t, err)

	sentTools := gotReq["tools"].([]any)
	require.Len(t, sentTools, 1)
	fn := sentTools[0].(map[string]any)["function"].(map[string]any)
	assert.Equal(t, "get_artist_details", fn["name"])

	require.Len(t, resp.Choices, 1)
	require.Len(t, resp.Choices[0].ToolCalls, 1)
	tc := resp.Choices[0].ToolCalls[0]
	assert.Equal(t, "call_1", tc.ID)
	assert.Equal(t, "get_artist_details", tc.FunctionCall.Name)
	assert.JSONEq(t, `{"artist_id": "abc"}`, tc.FunctionCall.Arguments)
}

func Test_GenerateContent_ToolRoundTripMessages(t *testing.T) {
	var gotReq map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotReq))
		_, _ = w.Write([]byte(`{
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "done"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2}
		}`))
	}))
	defer srv.Close()

	model, err := openai.New(openai.WithToken("test-key"), openai.WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = model.GenerateContent(context.Background(), []llms.Message{
		llms.MessageFromTextParts(llms.RoleHuman, "lookup"),
		llms.MessageFromToolCalls(llms.RoleAI, llms.ToolCall{
			ID:   "call_1",
			Type: "function",
			FunctionCall: &llms.FunctionCall{
				Name:      "get_artist_details",
				Arguments: `{"artist_id": "abc"}`,
			},
		}),
		llms.MessageFromToolResponse(llms.ToolCallResponse{
			ToolCallID: "call_1",
			Name:       "get_artist_details",
			Content:    `{"id": "abc"}`,
		}),
	})
	require.NoError(t, err)

	msgs := gotReq["messages"].([]any)
	require.Len(t, msgs, 3)

	assistant := msgs[1].(map[string]any)
	assert.Equal(t, "assistant", assistant["role"])
	calls := assistant["tool_calls"].([]any)
	require.Len(t, calls, 1)
	assert.Equal(t, "call_1", calls[0].(map[string]any)["id"])

	tool := msgs[2].(map[string]any)
	assert.Equal(t, "tool", tool["role"])
	assert.Equal(t, "call_1", tool["tool_call_id"])
	assert.Equal(t, `{"id": "abc"}`, tool["content"])
}

func Test_GenerateContent_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	model, err := openai.New(openai.WithToken("bad-key"), openai.WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = model.GenerateContent(context.Background(),
		[]llms.Message{llms.MessageFromTextParts(llms.RoleHuman, "hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func Test_GenerateContent_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	model, err := openai.New(openai.WithToken("test-key"), openai.WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = model.GenerateContent(context.Background(),
		[]llms.Message{llms.MessageFromTextParts(llms.RoleHuman, "hi")})
	require.ErrorIs(t, err, openai.ErrEmptyResponse)
}
