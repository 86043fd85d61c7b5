package assistants

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dumptruck-ai/agents/chatmodel"
	"github.com/dumptruck-ai/agents/llms"
	"github.com/dumptruck-ai/agents/llmutils"
	"github.com/dumptruck-ai/agents/metricskey"
	"github.com/dumptruck-ai/agents/tools"
	"github.com/effective-security/x/slices"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
)

const (
	// DefaultMaxToolCalls bounds the total tool calls in one run.
	DefaultMaxToolCalls = 10
	// DefaultMaxMessages bounds the conversation length in one run.
	DefaultMaxMessages = 100
	// DefaultMaxRetries bounds retries on empty LLM responses.
	DefaultMaxRetries = 3
	// maxConsecutiveNotFound aborts a run when the model keeps
	// requesting tools that do not exist.
	maxConsecutiveNotFound = 3
)

// Assistant runs the tool-calling loop against a model with a fixed
// system prompt and tool set.
type Assistant struct {
	LLM llms.Model

	toolsByName map[string]tools.ITool
	toolsNames  []string
	tools       []tools.ITool
	llmToolDefs []llms.Tool

	cfg         *Config
	name        string
	description string
	sysprompt   string
	runMessages []llms.Message
}

var _ IAssistant = (*Assistant)(nil)

// NewAssistant initializes an Assistant with a model and system prompt.
func NewAssistant(llmModel llms.Model, sysprompt string, options ...Option) *Assistant {
	return &Assistant{
		cfg:         NewConfig(options...),
		LLM:         llmModel,
		sysprompt:   sysprompt,
		name:        "Generic Assistant",
		description: "An AI assistant that can perform various tasks.",
	}
}

// WithName sets the name of the assistant, used in logs and metrics.
func (a *Assistant) WithName(name string) *Assistant {
	a.name = name
	return a
}

// WithDescription sets the description of the assistant.
func (a *Assistant) WithDescription(description string) *Assistant {
	a.description = description
	return a
}

// Name returns the name of the assistant.
func (a *Assistant) Name() string {
	return a.name
}

// Description returns the description of the assistant.
func (a *Assistant) Description() string {
	return a.description
}

// GetTools returns the tools available to the assistant.
func (a *Assistant) GetTools() []tools.ITool {
	return a.tools
}

// WithTools adds new tools to the assistant,
// existing tools are not replaced.
func (a *Assistant) WithTools(list ...tools.ITool) *Assistant {
	if a.toolsByName == nil {
		a.toolsByName = make(map[string]tools.ITool)
	}
	for _, tool := range list {
		name := tool.Name()
		// use lowercase for the key
		nameLowerCase := strings.ToLower(name)
		if a.toolsByName[nameLowerCase] == nil {
			a.toolsByName[nameLowerCase] = tool
			a.toolsNames = append(a.toolsNames, name)
			a.tools = append(a.tools, tool)
			a.llmToolDefs = append(a.llmToolDefs, llms.Tool{
				Type: "function",
				Function: &llms.FunctionDefinition{
					Name:        name,
					Description: tool.Description(),
					Parameters:  tool.Parameters(),
				},
			})
		}
	}
	return a
}

// LastRunMessages returns the messages produced by the last run,
// excluding the system prompt and stored history.
func (a *Assistant) LastRunMessages() []llms.Message {
	return a.runMessages
}

// GetCallConfig returns a per-call config.
func (a *Assistant) GetCallConfig(opts ...Option) *Config {
	return a.cfg.Apply(opts...)
}

// Run executes the assistant loop for one user input.
func (a *Assistant) Run(ctx context.Context, input string, options ...Option) (*llms.ContentResponse, error) {
	started := time.Now()
	defer metricskey.PerfAssistantCall.MeasureSince(started, a.name)

	// reset the run messages
	a.runMessages = nil
	cfg := a.GetCallConfig(options...)

	callback := cfg.CallbackHandler
	if callback != nil {
		callback.OnAssistantStart(ctx, a, input)
	}

	resp, err := a.run(ctx, cfg, input)
	if err != nil {
		metricskey.StatsAssistantCallsFailed.IncrCounter(1, a.name)
		if callback != nil {
			callback.OnAssistantError(ctx, a, input, err)
		}
		return nil, err
	}
	metricskey.StatsAssistantCallsSucceeded.IncrCounter(1, a.name)
	if callback != nil {
		callback.OnAssistantEnd(ctx, a, input, resp)
	}
	return resp, nil
}

func (a *Assistant) run(ctx context.Context, cfg *Config, input string) (*llms.ContentResponse, error) {
	chatID, err := chatmodel.GetChatID(ctx)
	if err != nil {
		return nil, errors.WithStack(chatmodel.ErrInvalidChatContext)
	}

	messageHistory := []llms.Message{
		llms.MessageFromTextParts(llms.RoleSystem, a.sysprompt),
	}
	if cfg.Store != nil {
		prevMessages := cfg.Store.Messages(ctx)
		logger.ContextKV(ctx, xlog.DEBUG,
			"assistant", a.name,
			"chat_id", chatID,
			"message_history", len(prevMessages))
		messageHistory = append(messageHistory, prevMessages...)
	}

	if input != "" {
		userMessage := llms.MessageFromTextParts(llms.RoleHuman, input)
		a.runMessages = append(a.runMessages, userMessage)
		messageHistory = append(messageHistory, userMessage)
	}

	var extraOptions []Option
	if len(a.llmToolDefs) > 0 {
		if !a.LLM.GetProviderType().Supports(llms.CapabilityFunctionCalling) {
			return nil, errors.Newf("assistant %s: the LLM does not support function calling", a.name)
		}
		extraOptions = append(extraOptions, withTools(a.llmToolDefs))
	}
	callOpts := cfg.GetCallOptions(extraOptions...)

	modelName := a.LLM.GetName()

	var totalToolExecuted int
	var resp *llms.ContentResponse
	retryCount := 0
	consecutiveNotFoundCount := 0

	toolsLimit := values.NumbersCoalesce(cfg.MaxToolCalls, DefaultMaxToolCalls)
	messagesLimit := values.NumbersCoalesce(cfg.MaxMessages, DefaultMaxMessages)
	for {
		if len(messageHistory) >= messagesLimit {
			return nil, errors.Newf("assistant %s: the messages count exceeded limit", a.name)
		}

		metricskey.StatsLLMMessagesSent.IncrCounter(float64(len(messageHistory)), a.name, modelName)

		resp, err = a.LLM.GenerateContent(ctx, messageHistory, callOpts...)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to generate content from LLM")
		}

		tokensIn, tokensOut, tokensTotal := llmutils.CountTokens(resp)
		metricskey.StatsLLMInputTokens.IncrCounter(float64(tokensIn), a.name, modelName)
		metricskey.StatsLLMOutputTokens.IncrCounter(float64(tokensOut), a.name, modelName)
		metricskey.StatsLLMTotalTokens.IncrCounter(float64(tokensTotal), a.name, modelName)

		if len(resp.Choices) == 0 {
			retryCount++
			if retryCount >= DefaultMaxRetries {
				return nil, errors.Newf("assistant %s: LLM returned empty response after %d retries", a.name, retryCount)
			}
			logger.ContextKV(ctx, xlog.WARNING,
				"assistant", a.name,
				"status", "retrying_empty_response",
				"retry_count", retryCount,
			)
			continue
		}

		var toolExecuted, notFoundCount int
		toolExecuted, notFoundCount, messageHistory, err = a.executeToolCalls(ctx, cfg, messageHistory, resp)
		if err != nil {
			return nil, err
		}

		if toolExecuted == 0 {
			break
		}
		totalToolExecuted += toolExecuted
		consecutiveNotFoundCount += notFoundCount
		if consecutiveNotFoundCount > maxConsecutiveNotFound {
			return nil, errors.Newf("assistant %s: the number of not found tools is exceeded", a.name)
		}
		if notFoundCount == 0 {
			consecutiveNotFoundCount = 0
		}
		if totalToolExecuted >= toolsLimit {
			return nil, errors.Newf("assistant %s: the tool calls limit is exceeded", a.name)
		}
	}

	choices := resp.Choices
	logger.ContextKV(ctx, xlog.DEBUG,
		"assistant", a.name,
		"status", "response_analysis",
		"choices_count", len(choices),
		"tool_calls", totalToolExecuted,
	)

	result := choices[0].Content
	if len(choices) > 1 {
		// Combine multiple choices
		var combinedContent strings.Builder
		for i, choice := range choices {
			if i > 0 {
				combinedContent.WriteString("\n\n")
			}
			combinedContent.WriteString(choice.Content)
		}
		result = combinedContent.String()
	}

	a.runMessages = append(a.runMessages, llms.MessageFromTextParts(llms.RoleAI, result))

	if cfg.Store != nil && !cfg.SkipMessageHistory && len(a.runMessages) > 0 {
		_ = cfg.Store.Add(ctx, a.runMessages...)

		logger.ContextKV(ctx, xlog.DEBUG,
			"assistant", a.name,
			"chat_id", chatID,
			"status", "added_message_history",
			"message_history", len(a.runMessages),
			"human", slices.StringUpto(input, 64),
			"ai", slices.StringUpto(result, 64),
		)
	}

	return resp, nil
}

// executeToolCalls executes the tool calls in the response and returns
// the updated message history. All calls of one response are dispatched
// concurrently; results are appended in the original call order.
func (a *Assistant) executeToolCalls(ctx context.Context, cfg *Config, messageHistory []llms.Message, resp *llms.ContentResponse) (int, int, []llms.Message, error) {
	executedCount := 0
	notFoundCount := 0

	type toolCallResult struct {
		toolCall llms.ToolCall
		response string
		err      error
		index    int
	}

	var toolCalls []llms.ToolCall

	// Collect all tool calls first and add them to message history
	for _, choice := range resp.Choices {
		var choiceToolCalls []llms.ToolCall
		for i, toolCall := range choice.ToolCalls {
			executedCount++

			if toolCall.ID == "" {
				toolCall.ID = fmt.Sprintf("%s_%d", toolCall.FunctionCall.Name, i)
			}
			toolCall.Type = values.StringsCoalesce(toolCall.Type, "function")
			choiceToolCalls = append(choiceToolCalls, toolCall)

			logger.ContextKV(ctx, xlog.DEBUG,
				"assistant", a.name,
				"status", "tool_call_found",
				"tool_call_id", toolCall.ID,
				"tool_call_name", toolCall.FunctionCall.Name,
			)
		}

		if len(choiceToolCalls) == 0 {
			continue
		}

		toolCalls = append(toolCalls, choiceToolCalls...)
		assistantResponse := llms.MessageFromToolCalls(llms.RoleAI, choiceToolCalls...)
		messageHistory = append(messageHistory, assistantResponse)
		if !cfg.SkipMessageHistory {
			a.runMessages = append(a.runMessages, assistantResponse)
		}
	}

	if executedCount == 0 {
		return executedCount, notFoundCount, messageHistory, nil
	}

	resultChan := make(chan toolCallResult, len(toolCalls))
	var notFound sync.Map

	var wg sync.WaitGroup
	wg.Add(len(toolCalls))
	for i, toolCall := range toolCalls {
		go func(index int, tc llms.ToolCall) {
			defer wg.Done()
			toolName := tc.FunctionCall.Name
			toolArgs := tc.FunctionCall.Arguments

			tool := a.toolsByName[strings.ToLower(toolName)]
			if tool == nil {
				notFound.Store(index, true)
				metricskey.StatsToolCallsNotFound.IncrCounter(1, toolName)
				if cfg.CallbackHandler != nil {
					cfg.CallbackHandler.OnToolNotFound(ctx, a, toolName)
				}

				availableTools := strings.Join(a.toolsNames, ", ")
				logger.ContextKV(ctx, xlog.WARNING,
					"assistant", a.name,
					"status", "tool_not_found",
					"tool_name", toolName,
					"available_tools", availableTools,
				)

				resultChan <- toolCallResult{
					toolCall: tc,
					response: fmt.Sprintf("Tool `%s` not found. Please check the tool name and try again with exact match. Available tools: %s", toolName, availableTools),
					index:    index,
				}
				return
			}

			if cfg.CallbackHandler != nil {
				cfg.CallbackHandler.OnToolStart(ctx, tool, toolArgs)
			}

			started := time.Now()
			res, err := tool.Call(ctx, toolArgs)
			metricskey.PerfToolCall.MeasureSince(started, toolName)

			if err != nil {
				metricskey.StatsToolCallsFailed.IncrCounter(1, toolName)
				if cfg.CallbackHandler != nil {
					cfg.CallbackHandler.OnToolError(ctx, tool, toolArgs, err)
				}
				resultChan <- toolCallResult{
					toolCall: tc,
					err:      errors.WithMessagef(err, "failed to call tool %s", toolName),
					index:    index,
				}
				return
			}
			metricskey.StatsToolCallsSucceeded.IncrCounter(1, toolName)

			if cfg.CallbackHandler != nil {
				cfg.CallbackHandler.OnToolEnd(ctx, tool, toolArgs, res)
			}

			resultChan <- toolCallResult{
				toolCall: tc,
				response: res,
				index:    index,
			}
		}(i, toolCall)
	}

	wg.Wait()
	close(resultChan)

	notFound.Range(func(_, _ any) bool {
		notFoundCount++
		return true
	})

	// Collect results in the original call order
	results := make([]toolCallResult, len(toolCalls))
	for result := range resultChan {
		if result.index >= 0 && result.index < len(results) {
			results[result.index] = result
		}
	}

	for _, result := range results {
		var content string
		if result.err != nil {
			// Surface the failure to the model instead of aborting
			content = fmt.Sprintf("Tool call failed: %s", result.err.Error())
			logger.ContextKV(ctx, xlog.WARNING,
				"assistant", a.name,
				"status", "tool_call_failed",
				"tool", result.toolCall.FunctionCall.Name,
				"err", result.err.Error(),
			)
		} else {
			content = result.response
		}

		toolCallResponse := llms.MessageFromToolResponse(llms.ToolCallResponse{
			ToolCallID: result.toolCall.ID,
			Name:       result.toolCall.FunctionCall.Name,
			Content:    content,
		})
		messageHistory = append(messageHistory, toolCallResponse)
		if !cfg.SkipMessageHistory {
			a.runMessages = append(a.runMessages, toolCallResponse)
		}
	}

	return executedCount, notFoundCount, messageHistory, nil
}
