// Package openai adapts any OpenAI-compatible chat completions
// endpoint to the llms.Model interface.
package openai

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/dumptruck-ai/agents/llms"
	"github.com/dumptruck-ai/agents/llms/openai/internal/openaiclient"
)

const (
	RoleSystem    = "system"
	RoleAssistant = "assistant"
	RoleUser      = "user"
	RoleTool      = "tool"
)

// ErrEmptyResponse is returned when the provider returns no choices.
var ErrEmptyResponse = openaiclient.ErrEmptyResponse

// LLM is an llms.Model backed by a chat completions endpoint.
type LLM struct {
	client *openaiclient.Client
}

var _ llms.Model = (*LLM)(nil)

// New returns a new OpenAI-compatible model.
func New(opts ...Option) (*LLM, error) {
	c, err := newClient(opts...)
	if err != nil {
		return nil, err
	}
	return &LLM{client: c}, nil
}

// GetName implements the Model interface.
func (o *LLM) GetName() string {
	return o.client.Model
}

// GetProviderType implements the Model interface.
func (o *LLM) GetProviderType() llms.ProviderType {
	return llms.ProviderOpenAI
}

// GenerateContent implements the Model interface.
func (o *LLM) GenerateContent(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}

	chatMsgs := make([]*openaiclient.ChatMessage, 0, len(messages))
	for _, mc := range messages {
		msg := &openaiclient.ChatMessage{}
		switch mc.Role {
		case llms.RoleSystem:
			msg.Role = RoleSystem
		case llms.RoleAI:
			msg.Role = RoleAssistant
		case llms.RoleHuman:
			msg.Role = RoleUser
		case llms.RoleTool:
			msg.Role = RoleTool
			if len(mc.Parts) != 1 {
				return nil, errors.Errorf("expected exactly one part for role %v, got %v", mc.Role, len(mc.Parts))
			}
			p, ok := mc.Parts[0].(llms.ToolCallResponse)
			if !ok {
				return nil, errors.Errorf("expected part of type ToolCallResponse for role %v, got %T", mc.Role, mc.Parts[0])
			}
			msg.ToolCallID = p.ToolCallID
			msg.Content = p.Content
		default:
			return nil, errors.Errorf("role %v not supported", mc.Role)
		}

		for _, part := range mc.Parts {
			switch p := part.(type) {
			case llms.TextContent:
				msg.Content += p.Text
			case llms.ToolCall:
				msg.ToolCalls = append(msg.ToolCalls, toolCallFromToolCall(p))
			case llms.ToolCallResponse:
				// already handled above
			default:
				return nil, errors.Errorf("content part %T not supported", part)
			}
		}
		chatMsgs = append(chatMsgs, msg)
	}

	req := &openaiclient.ChatRequest{
		Model:       opts.Model,
		Messages:    chatMsgs,
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		MaxTokens:   opts.MaxTokens,
		Stop:        opts.StopWords,
		Seed:        opts.Seed,
		ToolChoice:  opts.ToolChoice,
	}
	for _, tool := range opts.Tools {
		t, err := toolFromTool(tool)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to convert tool")
		}
		req.Tools = append(req.Tools, t)
	}

	result, err := o.client.CreateChat(ctx, req)
	if err != nil {
		return nil, err
	}

	choices := make([]*llms.ContentChoice, len(result.Choices))
	for i, c := range result.Choices {
		choices[i] = &llms.ContentChoice{
			Content:    c.Message.Content,
			StopReason: c.FinishReason,
			GenerationInfo: map[string]any{
				"InputTokens":  result.Usage.PromptTokens,
				"OutputTokens": result.Usage.CompletionTokens,
				"TotalTokens":  result.Usage.TotalTokens,
			},
		}
		for _, tool := range c.Message.ToolCalls {
			choices[i].ToolCalls = append(choices[i].ToolCalls, llms.ToolCall{
				ID:   tool.ID,
				Type: string(tool.Type),
				FunctionCall: &llms.FunctionCall{
					Name:      tool.Function.Name,
					Arguments: tool.Function.Arguments,
				},
			})
		}
	}
	return &llms.ContentResponse{Choices: choices}, nil
}

// toolFromTool converts an llms.Tool to the wire Tool.
func toolFromTool(t llms.Tool) (openaiclient.Tool, error) {
	if t.Type != string(openaiclient.ToolTypeFunction) || t.Function == nil {
		return openaiclient.Tool{}, errors.Errorf("tool type %v not supported", t.Type)
	}
	return openaiclient.Tool{
		Type: openaiclient.ToolTypeFunction,
		Function: openaiclient.FunctionDefinition{
			Name:        t.Function.Name,
			Description: t.Function.Description,
			Parameters:  t.Function.Parameters,
		},
	}, nil
}

// toolCallFromToolCall converts an llms.ToolCall to the wire ToolCall.
func toolCallFromToolCall(tc llms.ToolCall) openaiclient.ToolCall {
	return openaiclient.ToolCall{
		ID:   tc.ID,
		Type: openaiclient.ToolType(tc.Type),
		Function: openaiclient.ToolFunction{
			Name:      tc.FunctionCall.Name,
			Arguments: tc.FunctionCall.Arguments,
		},
	}
}
