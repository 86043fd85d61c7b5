package llmfactory

import (
	"slices"

	"github.com/effective-security/x/configloader"
)

// Config describes the configured LLM providers.
type Config struct {
	// Providers specifies the list of providers to use.
	Providers []*ProviderConfig `json:"providers" yaml:"providers"`
	// DefaultProvider specifies the default provider to use.
	DefaultProvider string `json:"default_provider" yaml:"default_provider"`
	// AssistantModels specifies the mapping of assistants to models.
	// Key is the assistant name, value is a list of preferred model
	// names. Use `default` as the fallback for assistants without
	// their own entry.
	AssistantModels map[string][]string `json:"assistant_models" yaml:"assistant_models"`
}

// ProviderConfig describes one LLM provider.
type ProviderConfig struct {
	Name string `json:"name" yaml:"name"`
	// Provider specifies the provider type: OPENAI or ANTHROPIC.
	// OpenAI-compatible endpoints such as OpenRouter or the Gemini
	// OpenAI surface use OPENAI with a custom base_url.
	Provider string `json:"provider" yaml:"provider"`
	Token    string `json:"token,omitempty" yaml:"token,omitempty"`
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	DefaultModel    string   `json:"default_model,omitempty" yaml:"default_model,omitempty"`
	AvailableModels []string `json:"available_models,omitempty" yaml:"available_models,omitempty"`
}

// FindModel returns the first preferred model the provider offers,
// falling back to the provider's default.
func (c *ProviderConfig) FindModel(models ...string) string {
	for _, model := range models {
		if slices.Contains(c.AvailableModels, model) {
			return model
		}
	}
	return c.DefaultModel
}

// LoadConfig reads a YAML config file. Values may reference
// environment variables with ${VAR} syntax, expanded before parsing.
func LoadConfig(file string) (*Config, error) {
	cfg := new(Config)
	if file == "" {
		return cfg, nil
	}

	err := configloader.UnmarshalAndExpand(file, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
