package assistants

import (
	"github.com/dumptruck-ai/agents/llms"
	"github.com/dumptruck-ai/agents/store"
)

// Option is a function that can be used to modify the behavior of the
// assistant Config.
type Option func(*Config)

type Config struct {
	// Model is the model to use in an LLM call.
	Model    string
	modelSet bool

	// MaxTokens is the maximum number of tokens to generate in an LLM call.
	MaxTokens    int
	maxTokensSet bool

	// Temperature is the temperature for sampling in an LLM call, between 0 and 1.
	Temperature    float64
	temperatureSet bool

	// StopWords is a list of words to stop on in an LLM call.
	StopWords    []string
	stopWordsSet bool

	// TopP is the cumulative probability for top-p sampling in an LLM call.
	TopP    float64
	toppSet bool

	// Seed is a seed for deterministic sampling in an LLM call.
	Seed    int
	seedSet bool

	// ToolChoice is the choice of tool to use, "none", "auto" (the
	// default), or a specific tool.
	ToolChoice    any
	toolChoiceSet bool

	tools    []llms.Tool
	toolsSet bool

	//
	// Below are the options for the assistant loop, not related to
	// a single LLM call.
	//

	// CallbackHandler receives lifecycle events.
	CallbackHandler Callback

	// Store persists the conversation between runs. No store by default.
	Store store.MessageStore

	// MaxToolCalls bounds the total tool calls in one run.
	MaxToolCalls int

	// MaxMessages bounds the conversation length in one run.
	MaxMessages int

	// SkipMessageHistory skips persisting the run's messages.
	SkipMessageHistory bool
}

func NewConfig(opts ...Option) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Apply returns a copy of the config with the given options applied.
func (c *Config) Apply(opts ...Option) *Config {
	cfg := *c
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithModel is an option for LLM.Call.
func WithModel(model string) Option {
	return func(o *Config) {
		o.Model = model
		o.modelSet = true
	}
}

// WithMaxTokens is an option for LLM.Call.
func WithMaxTokens(maxTokens int) Option {
	return func(o *Config) {
		o.MaxTokens = maxTokens
		o.maxTokensSet = true
	}
}

// WithTemperature is an option for LLM.Call.
func WithTemperature(temperature float64) Option {
	return func(o *Config) {
		o.Temperature = temperature
		o.temperatureSet = true
	}
}

// WithStopWords is an option for setting the stop words for LLM.Call.
func WithStopWords(stopWords []string) Option {
	return func(o *Config) {
		o.StopWords = stopWords
		o.stopWordsSet = true
	}
}

// WithTopP will add an option to use top-p sampling for LLM.Call.
func WithTopP(topP float64) Option {
	return func(o *Config) {
		o.TopP = topP
		o.toppSet = true
	}
}

// WithSeed will add an option to use deterministic sampling for LLM.Call.
func WithSeed(seed int) Option {
	return func(o *Config) {
		o.Seed = seed
		o.seedSet = true
	}
}

// WithToolChoice is an option for LLM.Call.
func WithToolChoice(choice any) Option {
	return func(o *Config) {
		o.ToolChoice = choice
		o.toolChoiceSet = true
	}
}

func withTools(tools []llms.Tool) Option {
	return func(o *Config) {
		o.tools = tools
		o.toolsSet = true
	}
}

// WithCallback allows setting a custom Callback Handler.
func WithCallback(callbackHandler Callback) Option {
	return func(o *Config) {
		o.CallbackHandler = callbackHandler
	}
}

// WithStore sets the message store that persists the conversation
// between runs.
func WithStore(s store.MessageStore) Option {
	return func(o *Config) {
		o.Store = s
	}
}

// WithMaxToolCalls bounds the total tool calls for one run.
func WithMaxToolCalls(maxToolCalls int) Option {
	return func(o *Config) {
		o.MaxToolCalls = maxToolCalls
	}
}

// WithMaxMessages bounds the conversation length for one run.
func WithMaxMessages(maxMessages int) Option {
	return func(o *Config) {
		o.MaxMessages = maxMessages
	}
}

// WithSkipMessageHistory is an option that allows to skip adding
// assistant messages to the history store.
func WithSkipMessageHistory(skip bool) Option {
	return func(o *Config) {
		o.SkipMessageHistory = skip
	}
}

// GetCallOptions converts the config to the per-call LLM options.
func (c *Config) GetCallOptions(options ...Option) []llms.CallOption {
	cfg := c.Apply(options...)

	var callOptions []llms.CallOption
	if cfg.modelSet {
		callOptions = append(callOptions, llms.WithModel(cfg.Model))
	}
	if cfg.maxTokensSet {
		callOptions = append(callOptions, llms.WithMaxTokens(cfg.MaxTokens))
	}
	if cfg.temperatureSet {
		callOptions = append(callOptions, llms.WithTemperature(cfg.Temperature))
	}
	if cfg.stopWordsSet {
		callOptions = append(callOptions, llms.WithStopWords(cfg.StopWords))
	}
	if cfg.toppSet {
		callOptions = append(callOptions, llms.WithTopP(cfg.TopP))
	}
	if cfg.seedSet {
		callOptions = append(callOptions, llms.WithSeed(cfg.Seed))
	}
	if cfg.toolsSet {
		callOptions = append(callOptions, llms.WithTools(cfg.tools))
	}
	if cfg.toolChoiceSet {
		callOptions = append(callOptions, llms.WithToolChoice(cfg.ToolChoice))
	}
	return callOptions
}
