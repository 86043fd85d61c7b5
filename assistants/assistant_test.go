package assistants_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/dumptruck-ai/agents/assistants"
	"github.com/dumptruck-ai/agents/chatmodel"
	"github.com/dumptruck-ai/agents/llms"
	"github.com/dumptruck-ai/agents/mocks/mockllms"
	"github.com/dumptruck-ai/agents/mocks/mocktools"
	"github.com/dumptruck-ai/agents/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func chatContext() context.Context {
	return chatmodel.WithChatContext(context.Background(), chatmodel.NewChatContext(chatmodel.NewChatID()))
}

func Test_Assistant_BuilderMethods(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mockllms.NewMockModel(ctrl)

	assistant := assistants.NewAssistant(mockLLM, "You are helpful and friendly AI assistant.")
	assert.Equal(t, "Generic Assistant", assistant.Name())
	assert.Equal(t, "An AI assistant that can perform various tasks.", assistant.Description())

	assistant = assistant.WithName("TestAssistant")
	assert.Equal(t, "TestAssistant", assistant.Name())

	assistant = assistant.WithDescription("Test Description")
	assert.Equal(t, "Test Description", assistant.Description())

	assert.Empty(t, assistant.GetTools())
	assert.Empty(t, assistant.LastRunMessages())

	mockTool := mocktools.NewMockITool(ctrl)
	mockTool.EXPECT().Name().Return("test_tool").AnyTimes()
	mockTool.EXPECT().Description().Return("Test tool description").AnyTimes()
	mockTool.EXPECT().Parameters().Return(map[string]any{}).AnyTimes()

	assistant = assistant.WithTools(mockTool)
	// duplicate registration is ignored
	assistant = assistant.WithTools(mockTool)
	toolsList := assistant.GetTools()
	assert.Len(t, toolsList, 1)
	assert.Equal(t, "test_tool", toolsList[0].Name())
}

func Test_Assistant_RequiresChatContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mockllms.NewMockModel(ctrl)
	assistant := assistants.NewAssistant(mockLLM, "You are helpful and friendly AI assistant.")

	_, err := assistant.Run(context.Background(), "hello")
	assert.True(t, errors.Is(err, chatmodel.ErrInvalidChatContext))
}

func Test_Assistant_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	calls := 0
	mockLLM := mockllms.NewMockModel(ctrl)
	mockLLM.EXPECT().GetName().Return("gpt-4o-mini").AnyTimes()
	mockLLM.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
			calls++
			require.NotEmpty(t, messages)
			assert.Equal(t, llms.RoleSystem, messages[0].Role)
			return &llms.ContentResponse{
				Choices: []*llms.ContentChoice{
					{
						Content: fmt.Sprintf("This is a test answer %d.", calls),
					},
				},
			}, nil
		}).Times(2)

	memstore := store.NewMemoryStore()

	var buf strings.Builder
	assistant := assistants.NewAssistant(mockLLM, "You are helpful and friendly AI assistant.",
		assistants.WithStore(memstore),
		assistants.WithCallback(assistants.NewPrinterCallback(&buf)),
	)

	ctx := chatContext()

	resp, err := assistant.Run(ctx, "What is a capital of largest country in Europe?")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Choices)
	assert.Equal(t, "This is a test answer 1.", resp.Choices[0].Content)

	history := memstore.Messages(ctx)
	require.Len(t, history, 2)
	assert.Equal(t, llms.RoleHuman, history[0].Role)
	assert.Equal(t, llms.RoleAI, history[1].Role)

	// second run carries the stored history
	resp, err = assistant.Run(ctx, "And its population?")
	require.NoError(t, err)
	assert.Equal(t, "This is a test answer 2.", resp.Choices[0].Content)

	history = memstore.Messages(ctx)
	assert.Len(t, history, 4)

	assert.Contains(t, buf.String(), "Assistant Start: Generic Assistant")
	assert.Contains(t, buf.String(), "This is a test answer 1.")
}

func Test_Assistant_RunWithToolCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTool := mocktools.NewMockITool(ctrl)
	mockTool.EXPECT().Name().Return("get_weather").AnyTimes()
	mockTool.EXPECT().Description().Return("Returns the weather for a city.").AnyTimes()
	mockTool.EXPECT().Parameters().Return(map[string]any{}).AnyTimes()
	mockTool.EXPECT().Call(gomock.Any(), `{"city":"Paris"}`).Return(`{"temp_c":21}`, nil).Times(1)

	calls := 0
	mockLLM := mockllms.NewMockModel(ctrl)
	mockLLM.EXPECT().GetName().Return("gpt-4o-mini").AnyTimes()
	mockLLM.EXPECT().GetProviderType().Return(llms.ProviderOpenAI).AnyTimes()
	mockLLM.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
			calls++
			if calls == 1 {
				return &llms.ContentResponse{
					Choices: []*llms.ContentChoice{
						{
							ToolCalls: []llms.ToolCall{
								{
									// empty ID gets a generated fallback
									FunctionCall: &llms.FunctionCall{
										Name:      "get_weather",
										Arguments: `{"city":"Paris"}`,
									},
								},
							},
						},
					},
				}, nil
			}

			// second round must carry the tool response
			last := messages[len(messages)-1]
			require.Equal(t, llms.RoleTool, last.Role)
			toolResp, ok := last.Parts[0].(llms.ToolCallResponse)
			require.True(t, ok)
			assert.Equal(t, "get_weather_0", toolResp.ToolCallID)
			assert.Equal(t, `{"temp_c":21}`, toolResp.Content)

			return &llms.ContentResponse{
				Choices: []*llms.ContentChoice{
					{Content: "It is 21C in Paris."},
				},
			}, nil
		}).Times(2)

	assistant := assistants.NewAssistant(mockLLM, "You are a weather assistant.").
		WithTools(mockTool)

	resp, err := assistant.Run(chatContext(), "What is the weather in Paris?")
	require.NoError(t, err)
	assert.Equal(t, "It is 21C in Paris.", resp.Choices[0].Content)

	// human, tool-call request, tool response, final answer
	messages := assistant.LastRunMessages()
	require.Len(t, messages, 4)
	assert.Equal(t, llms.RoleHuman, messages[0].Role)
	assert.Equal(t, llms.RoleAI, messages[1].Role)
	assert.Equal(t, llms.RoleTool, messages[2].Role)
	assert.Equal(t, llms.RoleAI, messages[3].Role)
}

func Test_Assistant_ToolNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTool := mocktools.NewMockITool(ctrl)
	mockTool.EXPECT().Name().Return("get_weather").AnyTimes()
	mockTool.EXPECT().Description().Return("Returns the weather for a city.").AnyTimes()
	mockTool.EXPECT().Parameters().Return(map[string]any{}).AnyTimes()

	calls := 0
	mockLLM := mockllms.NewMockModel(ctrl)
	mockLLM.EXPECT().GetName().Return("gpt-4o-mini").AnyTimes()
	mockLLM.EXPECT().GetProviderType().Return(llms.ProviderOpenAI).AnyTimes()
	mockLLM.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
			calls++
			if calls == 1 {
				return &llms.ContentResponse{
					Choices: []*llms.ContentChoice{
						{
							ToolCalls: []llms.ToolCall{
								{
									ID: "call_1",
									FunctionCall: &llms.FunctionCall{
										Name:      "get_forecast",
										Arguments: `{}`,
									},
								},
							},
						},
					},
				}, nil
			}

			last := messages[len(messages)-1]
			toolResp, ok := last.Parts[0].(llms.ToolCallResponse)
			require.True(t, ok)
			assert.Equal(t, "Tool `get_forecast` not found. Please check the tool name and try again with exact match. Available tools: get_weather", toolResp.Content)

			return &llms.ContentResponse{
				Choices: []*llms.ContentChoice{
					{Content: "Sorry, I cannot do forecasts."},
				},
			}, nil
		}).Times(2)

	var buf strings.Builder
	assistant := assistants.NewAssistant(mockLLM, "You are a weather assistant.",
		assistants.WithCallback(assistants.NewPrinterCallback(&buf)),
	).WithTools(mockTool)

	resp, err := assistant.Run(chatContext(), "What is the forecast for Paris?")
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I cannot do forecasts.", resp.Choices[0].Content)
	assert.Contains(t, buf.String(), "Tool Not Found: get_forecast")
}

func Test_Assistant_ToolError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTool := mocktools.NewMockITool(ctrl)
	mockTool.EXPECT().Name().Return("get_weather").AnyTimes()
	mockTool.EXPECT().Description().Return("Returns the weather for a city.").AnyTimes()
	mockTool.EXPECT().Parameters().Return(map[string]any{}).AnyTimes()
	mockTool.EXPECT().Call(gomock.Any(), gomock.Any()).Return("", errors.New("upstream is down")).Times(1)

	calls := 0
	mockLLM := mockllms.NewMockModel(ctrl)
	mockLLM.EXPECT().GetName().Return("gpt-4o-mini").AnyTimes()
	mockLLM.EXPECT().GetProviderType().Return(llms.ProviderOpenAI).AnyTimes()
	mockLLM.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
			calls++
			if calls == 1 {
				return &llms.ContentResponse{
					Choices: []*llms.ContentChoice{
						{
							ToolCalls: []llms.ToolCall{
								{
									ID: "call_1",
									FunctionCall: &llms.FunctionCall{
										Name:      "get_weather",
										Arguments: `{"city":"Paris"}`,
									},
								},
							},
						},
					},
				}, nil
			}

			last := messages[len(messages)-1]
			toolResp, ok := last.Parts[0].(llms.ToolCallResponse)
			require.True(t, ok)
			assert.Contains(t, toolResp.Content, "Tool call failed:")
			assert.Contains(t, toolResp.Content, "upstream is down")

			return &llms.ContentResponse{
				Choices: []*llms.ContentChoice{
					{Content: "The weather service is unavailable."},
				},
			}, nil
		}).Times(2)

	assistant := assistants.NewAssistant(mockLLM, "You are a weather assistant.").
		WithTools(mockTool)

	resp, err := assistant.Run(chatContext(), "What is the weather in Paris?")
	require.NoError(t, err)
	assert.Equal(t, "The weather service is unavailable.", resp.Choices[0].Content)
}

func Test_Assistant_ParallelToolCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTool := mocktools.NewMockITool(ctrl)
	mockTool.EXPECT().Name().Return("get_weather").AnyTimes()
	mockTool.EXPECT().Description().Return("Returns the weather for a city.").AnyTimes()
	mockTool.EXPECT().Parameters().Return(map[string]any{}).AnyTimes()
	mockTool.EXPECT().Call(gomock.Any(), `{"city":"Paris"}`).Return("21C", nil).Times(1)
	mockTool.EXPECT().Call(gomock.Any(), `{"city":"London"}`).Return("17C", nil).Times(1)

	calls := 0
	mockLLM := mockllms.NewMockModel(ctrl)
	mockLLM.EXPECT().GetName().Return("gpt-4o-mini").AnyTimes()
	mockLLM.EXPECT().GetProviderType().Return(llms.ProviderOpenAI).AnyTimes()
	mockLLM.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
			calls++
			if calls == 1 {
				return &llms.ContentResponse{
					Choices: []*llms.ContentChoice{
						{
							ToolCalls: []llms.ToolCall{
								{
									ID: "call_paris",
									FunctionCall: &llms.FunctionCall{
										Name:      "get_weather",
										Arguments: `{"city":"Paris"}`,
									},
								},
								{
									ID: "call_london",
									FunctionCall: &llms.FunctionCall{
										Name:      "get_weather",
										Arguments: `{"city":"London"}`,
									},
								},
							},
						},
					},
				}, nil
			}

			// responses must arrive in the original call order
			parisResp, ok := messages[len(messages)-2].Parts[0].(llms.ToolCallResponse)
			require.True(t, ok)
			assert.Equal(t, "call_paris", parisResp.ToolCallID)
			assert.Equal(t, "21C", parisResp.Content)

			londonResp, ok := messages[len(messages)-1].Parts[0].(llms.ToolCallResponse)
			require.True(t, ok)
			assert.Equal(t, "call_london", londonResp.ToolCallID)
			assert.Equal(t, "17C", londonResp.Content)

			return &llms.ContentResponse{
				Choices: []*llms.ContentChoice{
					{Content: "Paris 21C, London 17C."},
				},
			}, nil
		}).Times(2)

	assistant := assistants.NewAssistant(mockLLM, "You are a weather assistant.").
		WithTools(mockTool)

	resp, err := assistant.Run(chatContext(), "Compare weather in Paris and London.")
	require.NoError(t, err)
	assert.Equal(t, "Paris 21C, London 17C.", resp.Choices[0].Content)
}

func Test_Assistant_EmptyResponseRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mockllms.NewMockModel(ctrl)
	mockLLM.EXPECT().GetName().Return("gpt-4o-mini").AnyTimes()
	mockLLM.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&llms.ContentResponse{}, nil).
		Times(3)

	assistant := assistants.NewAssistant(mockLLM, "You are helpful and friendly AI assistant.")

	_, err := assistant.Run(chatContext(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func Test_Assistant_ToolCallsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTool := mocktools.NewMockITool(ctrl)
	mockTool.EXPECT().Name().Return("get_weather").AnyTimes()
	mockTool.EXPECT().Description().Return("Returns the weather for a city.").AnyTimes()
	mockTool.EXPECT().Parameters().Return(map[string]any{}).AnyTimes()
	mockTool.EXPECT().Call(gomock.Any(), gomock.Any()).Return("21C", nil).AnyTimes()

	mockLLM := mockllms.NewMockModel(ctrl)
	mockLLM.EXPECT().GetName().Return("gpt-4o-mini").AnyTimes()
	mockLLM.EXPECT().GetProviderType().Return(llms.ProviderOpenAI).AnyTimes()
	// the model keeps asking for the same tool
	mockLLM.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
			return &llms.ContentResponse{
				Choices: []*llms.ContentChoice{
					{
						ToolCalls: []llms.ToolCall{
							{
								ID: "call_1",
								FunctionCall: &llms.FunctionCall{
									Name:      "get_weather",
									Arguments: `{"city":"Paris"}`,
								},
							},
						},
					},
				},
			}, nil
		}).AnyTimes()

	assistant := assistants.NewAssistant(mockLLM, "You are a weather assistant.",
		assistants.WithMaxToolCalls(2),
	).WithTools(mockTool)

	_, err := assistant.Run(chatContext(), "What is the weather in Paris?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool calls limit is exceeded")
}
