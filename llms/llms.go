package llms

import (
	"context"
)

// ProviderType is the type of provider.
type ProviderType string

const (
	// ProviderAnthropic is the Anthropic messages API.
	ProviderAnthropic ProviderType = "ANTHROPIC"
	// ProviderOpenAI is the OpenAI chat completions API, including
	// OpenAI-compatible endpoints such as OpenRouter.
	ProviderOpenAI ProviderType = "OPENAI"
)

// Model is the interface chat models implement.
type Model interface {
	// GetName returns the configured model name.
	GetName() string
	// GetProviderType returns the type of provider.
	GetProviderType() ProviderType
	// GenerateContent asks the model to generate content from a sequence
	// of messages.
	GenerateContent(ctx context.Context, messages []Message, options ...CallOption) (*ContentResponse, error)
}

// Capability is a bitmask indicating supported features of an LLM provider.
type Capability uint64

const (
	// CapabilityText is basic text or chat generation.
	CapabilityText Capability = 1 << iota
	// CapabilityFunctionCalling is function/tool calling.
	CapabilityFunctionCalling
	// CapabilityMultiToolCalling is several tool calls in one turn.
	CapabilityMultiToolCalling
	// CapabilitySystemPrompt is system prompt support.
	CapabilitySystemPrompt
)

var providerCapabilities = map[ProviderType]Capability{
	ProviderOpenAI: CapabilityText |
		CapabilityFunctionCalling |
		CapabilityMultiToolCalling |
		CapabilitySystemPrompt,

	ProviderAnthropic: CapabilityText |
		CapabilityFunctionCalling |
		CapabilityMultiToolCalling |
		CapabilitySystemPrompt,
}

// Supports reports whether the provider has the given capability.
func (pt ProviderType) Supports(c Capability) bool {
	return providerCapabilities[pt]&c == c
}

// Tool is a tool definition passed to the model.
type Tool struct {
	// Type is the type of the tool, typically "function".
	Type string `json:"type"`
	// Function is the function definition, if Type is "function".
	Function *FunctionDefinition `json:"function,omitempty"`
}

// FunctionDefinition is a definition of a function that can be called by
// the model.
type FunctionDefinition struct {
	// Name is the name of the function.
	Name string `json:"name"`
	// Description is a description of the function.
	Description string `json:"description"`
	// Parameters is the JSON schema of the function's parameters.
	Parameters any `json:"parameters,omitempty"`
}
