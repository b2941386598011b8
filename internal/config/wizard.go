package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .viajo.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to viajo! Let's configure your assistant.")
	fmt.Println()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"anthropic", "openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	provider := ProviderType(providerStr)

	// 2. Model, defaulting to the provider's recommendation.
	modelPrompt := promptui.Prompt{
		Label:   "Model",
		Default: DefaultModel(provider),
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model selection: %w", err)
	}

	// 3. Default currency for trip budgets.
	currencyPrompt := promptui.Prompt{
		Label:   "Default currency",
		Default: "BRL",
		Validate: func(s string) error {
			if len(s) != 3 {
				return fmt.Errorf("use a three-letter code like BRL or USD")
			}
			return nil
		},
	}
	currency, err := currencyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("currency selection: %w", err)
	}

	// 4. HTTP port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: "8080",
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port selection: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	cfg := DefaultConfig()
	cfg.Provider = provider
	cfg.Model = model
	cfg.Currency = currency
	cfg.Port = port

	if err := cfg.Save(".viajo.yml"); err != nil {
		return nil, err
	}
	fmt.Println()
	fmt.Println("Configuration saved to .viajo.yml")

	if envVar := APIKeyEnvVar(provider); envVar != "" {
		if os.Getenv(envVar) == "" {
			fmt.Printf("Remember to set %s before running the server.\n", envVar)
		}
	}

	return cfg, nil
}
