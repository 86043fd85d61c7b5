// Package agents provides prebuilt assistants that wrap third-party
// REST APIs with tool-calling LLM loops.
package agents

import (
	"github.com/cockroachdb/errors"
	"github.com/dumptruck-ai/agents/assistants"
	"github.com/dumptruck-ai/agents/llms"
)

// AgentMusic and AgentClash are the registered agent names.
const (
	AgentMusic = "music"
	AgentClash = "clash"
)

// Names returns the available agent names.
func Names() []string {
	return []string{AgentMusic, AgentClash}
}

// New creates a prebuilt agent by name.
func New(name string, llmModel llms.Model, options ...assistants.Option) (assistants.IAssistant, error) {
	switch name {
	case AgentMusic:
		return NewMusicAgent(llmModel, options...)
	case AgentClash:
		return NewClashAgent(llmModel, options...)
	default:
		return nil, errors.Newf("unknown agent: %s", name)
	}
}
