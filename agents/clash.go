package agents

import (
	"github.com/cockroachdb/errors"
	"github.com/dumptruck-ai/agents/assistants"
	"github.com/dumptruck-ai/agents/llms"
	"github.com/dumptruck-ai/agents/upstream/clash"
)

const clashSystemPrompt = `You are a Clash of Clans assistant who helps users with their queries
about clans and players.

You have access to two tools:
- get_clan_details
- get_player_details

Guidelines:
- Users will generally query based on clan tags or player tags.
- Always choose the correct tool based on what the user is asking for.
- After calling a tool, analyze the returned information and answer
  the user's query as accurately and clearly as possible.`

// NewClashAgent creates an assistant over the Clash of Clans API,
// with the API token read from the environment.
func NewClashAgent(llmModel llms.Model, options ...assistants.Option) (*assistants.Assistant, error) {
	client, err := clash.NewClient()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create Clash of Clans client")
	}
	return NewClashAgentWithClient(llmModel, client, options...), nil
}

// NewClashAgentWithClient creates a Clash of Clans assistant over the
// provided upstream client.
func NewClashAgentWithClient(llmModel llms.Model, client *clash.Client, options ...assistants.Option) *assistants.Assistant {
	return assistants.NewAssistant(llmModel, clashSystemPrompt, options...).
		WithName("Clash of Clans Assistant").
		WithDescription("Answers questions about Clash of Clans clans and players by tag.").
		WithTools(clash.Tools(client)...)
}
