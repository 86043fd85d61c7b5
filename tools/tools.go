// Package tools defines the Tool interface the agent loop dispatches
// against. Tools wrap upstream API operations and expose a name, a
// description, and a JSON-schema parameter definition to the model.
package tools

import (
	"context"

	"github.com/dumptruck-ai/agents/llmutils"
)

//go:generate mockgen -source=tools.go -destination=../mocks/mocktools/tools_mock.gen.go -package mocktools

// ITool is a tool for the agent to interact with an upstream API.
type ITool interface {
	// Name returns the name of the tool.
	Name() string
	// Description returns the description of the tool, to be used in the
	// prompt. Should not exceed the model's limit.
	Description() string
	// Parameters returns the parameters definition of the function, to be
	// used in the prompt.
	Parameters() any

	// Call executes the tool with the given JSON input and returns the
	// result. If the tool fails to parse the input, it returns
	// chatmodel.ErrFailedUnmarshalInput.
	Call(context.Context, string) (string, error)
}

// Callback receives tool lifecycle events.
type Callback interface {
	OnToolStart(context.Context, ITool, string)
	OnToolEnd(context.Context, ITool, string, string)
	OnToolError(context.Context, ITool, string, error)
}

// Tool is a typed tool with a request and response type.
type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

type toolDescription struct {
	Name        string `json:"Name" yaml:"Name"`
	Description string `json:"Description" yaml:"Description"`
}

type toolsDescription struct {
	Tools []toolDescription `json:"Tools" yaml:"Tools"`
}

// GetDescriptions renders the tool names and descriptions as a JSON block
// for inclusion in a prompt.
func GetDescriptions(list ...ITool) string {
	var d toolsDescription
	for _, tool := range list {
		d.Tools = append(d.Tools, toolDescription{
			Name:        tool.Name(),
			Description: tool.Description(),
		})
	}
	return llmutils.BackticksJSON(llmutils.ToJSONIndent(d))
}
