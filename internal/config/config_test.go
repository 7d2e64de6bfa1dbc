package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Validation.AnalyzerTimeoutSeconds != DefaultAnalyzerTimeoutSeconds {
		t.Errorf("Expected default timeout %d, got %d",
			DefaultAnalyzerTimeoutSeconds, cfg.Validation.AnalyzerTimeoutSeconds)
	}
	if cfg.Validation.MaxConcurrency != DefaultMaxConcurrency {
		t.Errorf("Expected default concurrency %d, got %d",
			DefaultMaxConcurrency, cfg.Validation.MaxConcurrency)
	}
	if cfg.Check.MinScore != DefaultMinScore {
		t.Errorf("Expected default min score %d, got %d", DefaultMinScore, cfg.Check.MinScore)
	}
	if !cfg.AutoFix.Enabled {
		t.Error("AutoFix should be enabled by default")
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Expected text format, got %s", cfg.Output.Format)
	}
}

func TestAnalyzerTimeout(t *testing.T) {
	cfg := ValidationConfig{AnalyzerTimeoutSeconds: 5}
	if cfg.AnalyzerTimeout().Seconds() != 5 {
		t.Errorf("Expected 5s timeout, got %v", cfg.AnalyzerTimeout())
	}

	// Invalid values fall back to the default
	cfg = ValidationConfig{AnalyzerTimeoutSeconds: 0}
	if cfg.AnalyzerTimeout().Seconds() != DefaultAnalyzerTimeoutSeconds {
		t.Errorf("Zero timeout should fall back to default, got %v", cfg.AnalyzerTimeout())
	}
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig with empty path should not error: %v", err)
	}
	if cfg.Check.MinScore != DefaultMinScore {
		t.Error("Empty path should yield defaults")
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "htmlscan.config.json")
	content := `{
  "validation": {"analyzer_timeout_seconds": 3, "max_concurrency": 2},
  "check": {"min_score": 85},
  "output": {"format": "json"}
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Validation.AnalyzerTimeoutSeconds != 3 {
		t.Errorf("Expected timeout 3, got %d", cfg.Validation.AnalyzerTimeoutSeconds)
	}
	if cfg.Check.MinScore != 85 {
		t.Errorf("Expected min score 85, got %d", cfg.Check.MinScore)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Expected json format, got %s", cfg.Output.Format)
	}
	// Unset sections keep defaults
	if !cfg.AutoFix.Enabled {
		t.Error("Unset auto_fix section should keep defaults")
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "htmlscan.config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Invalid config file should return an error")
	}
}

func TestLoadConfigWithTarget_Discovery(t *testing.T) {
	tempDir := t.TempDir()
	sub := filepath.Join(tempDir, "artifacts")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	path := filepath.Join(tempDir, "htmlscan.config.json")
	if err := os.WriteFile(path, []byte(`{"check": {"min_score": 90}}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	// Discovery walks up from the target directory.
	cfg, err := LoadConfigWithTarget("", sub)
	if err != nil {
		t.Fatalf("LoadConfigWithTarget failed: %v", err)
	}
	if cfg.Check.MinScore != 90 {
		t.Errorf("Expected discovered min score 90, got %d", cfg.Check.MinScore)
	}
}

func TestConfigTemplates(t *testing.T) {
	minimal := GetMinimalConfigTemplate()
	if !strings.Contains(minimal, "min_score") {
		t.Error("Minimal template should document min_score")
	}

	full := GetFullConfigTemplate(StrictnessStrict)
	if !strings.Contains(full, `"min_score": 80`) {
		t.Error("Strict template should carry the strict min score")
	}

	// Unknown strictness falls back to standard
	fallback := GetFullConfigTemplate(Strictness("bogus"))
	if !strings.Contains(fallback, `"min_score": 70`) {
		t.Error("Unknown strictness should fall back to standard preset")
	}
}
