package service

import (
	"fmt"

	"github.com/ludo-technologies/htmlscan/domain"
	"github.com/ludo-technologies/htmlscan/internal/config"
)

// ConfigurationLoaderImpl loads and validates pipeline configuration
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	if err := c.ValidateConfig(cfg); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

// LoadConfigForTarget loads configuration, discovering a config file near
// the target artifact when no explicit path is given
func (c *ConfigurationLoaderImpl) LoadConfigForTarget(configPath, targetPath string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(configPath, targetPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	if err := c.ValidateConfig(cfg); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads the discovered or built-in default configuration
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *config.Config {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err == nil {
		return cfg
	}
	return config.DefaultConfig()
}

// ValidateConfig validates the configuration
func (c *ConfigurationLoaderImpl) ValidateConfig(cfg *config.Config) error {
	if cfg.Validation.AnalyzerTimeoutSeconds < 0 {
		return fmt.Errorf("analyzer_timeout_seconds cannot be negative, got %d",
			cfg.Validation.AnalyzerTimeoutSeconds)
	}
	if cfg.Validation.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency cannot be negative, got %d",
			cfg.Validation.MaxConcurrency)
	}
	if cfg.Check.MinScore < 0 || cfg.Check.MinScore > 100 {
		return fmt.Errorf("min_score must be within [0,100], got %d", cfg.Check.MinScore)
	}

	validFormats := map[domain.OutputFormat]bool{
		domain.OutputFormatText: true,
		domain.OutputFormatJSON: true,
		domain.OutputFormatYAML: true,
	}
	if cfg.Output.Format != "" && !validFormats[domain.OutputFormat(cfg.Output.Format)] {
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, yaml)",
			cfg.Output.Format)
	}

	return nil
}
