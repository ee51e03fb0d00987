// Package config loads the application configuration from a JSON file, with
// environment fallbacks for the model API key.
package config

import (
	"encoding/json"
	"errors"
	"os"
)

// LLMConfig selects the model provider and credential.
type LLMConfig struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// Config is the full application configuration.
type Config struct {
	LLM        *LLMConfig `json:"llm,omitempty"`
	ServerAddr string     `json:"server_addr,omitempty"`
	OutputDir  string     `json:"output_dir,omitempty"`
	// MinSourceCoverage for the post-generation source check; nil keeps the
	// pipeline default, 0 disables the check.
	MinSourceCoverage *float64 `json:"min_source_coverage,omitempty"`
}

// Load reads JSON config from disk. A missing api_key falls back to the
// OPENAI_API_KEY environment variable.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)
	if cfg.LLM == nil || cfg.LLM.Provider == "" {
		return Config{}, errors.New("config must include llm.provider")
	}
	return cfg, nil
}

// Default returns a config built purely from the environment, for running
// without a config file.
func Default() Config {
	cfg := Config{
		LLM: &LLMConfig{Provider: "openai", Model: "gpt-4-0125-preview"},
	}
	applyEnv(&cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	if cfg.LLM == nil {
		return
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}
