package config

// defaultModels maps each provider to its recommended conversational model.
var defaultModels = map[ProviderType]string{
	ProviderAnthropic: "claude-sonnet-4-5-20250929",
	ProviderOpenAI:    "gpt-4o",
	ProviderOllama:    "llama3",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderAnthropic,
		Model:    defaultModels[ProviderAnthropic],
		Currency: "BRL",
		DataDir:  ".viajo",
		Port:     8080,
	}
}

// DefaultModel returns the recommended model for the given provider,
// falling back to the Anthropic default for unknown providers.
func DefaultModel(provider ProviderType) string {
	if m, ok := defaultModels[provider]; ok {
		return m
	}
	return defaultModels[ProviderAnthropic]
}
