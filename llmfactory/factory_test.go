package llmfactory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dumptruck-ai/agents/llmfactory"
	"github.com/dumptruck-ai/agents/llms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
default_provider: anthropic
providers:
  - name: anthropic
    provider: ANTHROPIC
    token: ${TEST_ANTHROPIC_KEY}
    default_model: claude-sonnet-4-20250514
    available_models:
      - claude-sonnet-4-20250514
      - claude-3-5-haiku-20241022
  - name: openai
    provider: OPENAI
    token: test-openai-key
    default_model: gpt-4o-mini
    available_models:
      - gpt-4o-mini
      - gpt-4o
assistant_models:
  music:
    - gpt-4o
  default:
    - claude-sonnet-4-20250514
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "llm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))
	return path
}

func Test_Load(t *testing.T) {
	t.Setenv("TEST_ANTHROPIC_KEY", "test-anthropic-key")

	f, err := llmfactory.Load(writeConfig(t))
	require.NoError(t, err)

	model, err := f.DefaultModel()
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", model.GetName())
	assert.Equal(t, llms.ProviderAnthropic, model.GetProviderType())
}

func Test_ModelByType(t *testing.T) {
	t.Setenv("TEST_ANTHROPIC_KEY", "test-anthropic-key")

	f, err := llmfactory.Load(writeConfig(t))
	require.NoError(t, err)

	model, err := f.ModelByType("OPENAI")
	require.NoError(t, err)
	assert.Equal(t, llms.ProviderOpenAI, model.GetProviderType())

	// cached on second call
	again, err := f.ModelByType("openai")
	require.NoError(t, err)
	assert.Same(t, model, again)

	_, err = f.ModelByType("BEDROCK")
	require.Error(t, err)
}

func Test_ModelByName(t *testing.T) {
	t.Setenv("TEST_ANTHROPIC_KEY", "test-anthropic-key")

	f, err := llmfactory.Load(writeConfig(t))
	require.NoError(t, err)

	model, err := f.ModelByName("gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", model.GetName())

	// unknown model falls back to the default provider
	model, err = f.ModelByName("no-such-model")
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", model.GetName())
}

func Test_AssistantModel(t *testing.T) {
	t.Setenv("TEST_ANTHROPIC_KEY", "test-anthropic-key")

	f, err := llmfactory.Load(writeConfig(t))
	require.NoError(t, err)

	model, err := f.AssistantModel("music")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", model.GetName())

	model, err = f.AssistantModel("clash")
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", model.GetName())

	// an explicit preference wins over the configured mapping
	model, err = f.AssistantModel("music", "claude-3-5-haiku-20241022")
	require.NoError(t, err)
	assert.Equal(t, "claude-3-5-haiku-20241022", model.GetName())

	model, err = f.AssistantModel("clash", "gpt-4o-mini")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", model.GetName())
}

func Test_LoadConfig_Expansion(t *testing.T) {
	t.Setenv("TEST_ANTHROPIC_KEY", "from-env")

	cfg, err := llmfactory.LoadConfig(writeConfig(t))
	require.NoError(t, err)
	require.Len(t, cfg.Providers, 2)
	assert.Equal(t, "from-env", cfg.Providers[0].Token)

	empty, err := llmfactory.LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, empty.Providers)
}
