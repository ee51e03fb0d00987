package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"llm": {"provider": "openai", "model": "gpt-4-0125-preview", "api_key": "sk-test"},
		"server_addr": ":9090",
		"output_dir": "out"
	}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.Model != "gpt-4-0125-preview" {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", cfg.LLM.APIKey)
	}
	if cfg.ServerAddr != ":9090" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr)
	}
}

func TestLoad_APIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	path := writeConfig(t, `{"llm": {"provider": "openai", "model": "gpt-4o"}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "sk-env" {
		t.Errorf("APIKey = %q, want env fallback", cfg.LLM.APIKey)
	}
}

func TestLoad_MissingProvider(t *testing.T) {
	path := writeConfig(t, `{"server_addr": ":8080"}`)
	if _, err := Load(path); err == nil {
		t.Error("Load should fail without llm.provider")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Load should fail for missing file")
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	if _, err := Load(path); err == nil {
		t.Error("Load should fail on malformed JSON")
	}
}

func TestDefault(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-default")
	cfg := Default()
	if cfg.LLM == nil || cfg.LLM.Provider != "openai" {
		t.Fatalf("LLM = %+v", cfg.LLM)
	}
	if cfg.LLM.APIKey != "sk-default" {
		t.Errorf("APIKey = %q", cfg.LLM.APIKey)
	}
}
