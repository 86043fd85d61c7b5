// Package assistants runs the tool-calling agent loop: the model is
// invoked with the conversation and tool definitions, requested tool
// calls are dispatched, and their results are fed back until the model
// answers without requesting tools.
package assistants

import (
	"context"

	"github.com/dumptruck-ai/agents/llms"
	"github.com/dumptruck-ai/agents/tools"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/dumptruck-ai/agents", "assistants")

//go:generate mockgen -destination=../mocks/mockllms/llm_mock.gen.go -package mockllms github.com/dumptruck-ai/agents/llms Model
//go:generate mockgen -source=assistants.go -destination=../mocks/mockassistants/assistants_mock.gen.go -package mockassistants

// IAssistant is the navigable surface of an assistant, used by the
// server and by callbacks.
type IAssistant interface {
	// Name returns the name of the Assistant.
	Name() string
	// Description returns the description of the Assistant.
	Description() string
	// GetTools returns the tools available to the Assistant.
	GetTools() []tools.ITool
	// Run executes the assistant loop for one user input.
	Run(ctx context.Context, input string, options ...Option) (*llms.ContentResponse, error)
}

// Callback receives assistant and tool lifecycle events.
type Callback interface {
	tools.Callback
	OnAssistantStart(ctx context.Context, assistant IAssistant, input string)
	OnAssistantEnd(ctx context.Context, assistant IAssistant, input string, resp *llms.ContentResponse)
	OnAssistantError(ctx context.Context, assistant IAssistant, input string, err error)
	OnToolNotFound(ctx context.Context, assistant IAssistant, toolName string)
}
