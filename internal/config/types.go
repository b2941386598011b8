package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderOllama    ProviderType = "ollama"
)

// Config is the top-level viajo configuration, corresponding to .viajo.yml.
type Config struct {
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`
	Currency string       `yaml:"currency" koanf:"currency"`
	DataDir  string       `yaml:"data_dir" koanf:"data_dir"`
	Port     int          `yaml:"port" koanf:"port"`
	Bot      BotConfig    `yaml:"bot" koanf:"bot"`
}

// BotConfig holds WhatsApp webhook credentials.
type BotConfig struct {
	VerifyToken string `yaml:"verify_token" koanf:"verify_token"`
	AppSecret   string `yaml:"app_secret" koanf:"app_secret"`
}
