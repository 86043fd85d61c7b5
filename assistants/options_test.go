package assistants_test

import (
	"testing"

	"github.com/dumptruck-ai/agents/assistants"
	"github.com/dumptruck-ai/agents/llms"
	"github.com/dumptruck-ai/agents/store"
	"github.com/stretchr/testify/assert"
)

func Test_Config_Apply(t *testing.T) {
	memstore := store.NewMemoryStore()
	cfg := assistants.NewConfig(
		assistants.WithModel("gpt-4o-mini"),
		assistants.WithTemperature(0),
		assistants.WithStore(memstore),
		assistants.WithMaxToolCalls(5),
	)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, float64(0), cfg.Temperature)
	assert.Equal(t, 5, cfg.MaxToolCalls)
	assert.NotNil(t, cfg.Store)

	// per-call overrides leave the original untouched
	cfg2 := cfg.Apply(
		assistants.WithModel("claude-sonnet-4-20250514"),
		assistants.WithMaxTokens(1024),
		assistants.WithSkipMessageHistory(true),
	)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg2.Model)
	assert.Equal(t, 1024, cfg2.MaxTokens)
	assert.True(t, cfg2.SkipMessageHistory)

	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Zero(t, cfg.MaxTokens)
	assert.False(t, cfg.SkipMessageHistory)
}

func Test_Config_GetCallOptions(t *testing.T) {
	cfg := assistants.NewConfig()
	assert.Empty(t, cfg.GetCallOptions())

	cfg = assistants.NewConfig(
		assistants.WithModel("gpt-4o-mini"),
		assistants.WithMaxTokens(2048),
		assistants.WithTemperature(0.2),
		assistants.WithTopP(0.9),
		assistants.WithSeed(42),
		assistants.WithStopWords([]string{"END"}),
		assistants.WithToolChoice("auto"),
	)

	var callOpts llms.CallOptions
	for _, opt := range cfg.GetCallOptions() {
		opt(&callOpts)
	}
	assert.Equal(t, "gpt-4o-mini", callOpts.Model)
	assert.Equal(t, 2048, callOpts.MaxTokens)
	assert.Equal(t, 0.2, callOpts.Temperature)
	assert.Equal(t, 0.9, callOpts.TopP)
	assert.Equal(t, 42, callOpts.Seed)
	assert.Equal(t, []string{"END"}, callOpts.StopWords)
	assert.Equal(t, "auto", callOpts.ToolChoice)
}
