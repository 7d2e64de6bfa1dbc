package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/htmlscan/internal/constants"
)

// Default runtime settings. The heuristic scoring thresholds live with
// the analyzers; these knobs only shape how the pipeline runs.
const (
	// DefaultAnalyzerTimeoutSeconds bounds each dimension analyzer task.
	// A timed-out analyzer is treated as an ordinary task failure.
	DefaultAnalyzerTimeoutSeconds = 10

	// DefaultMaxConcurrency caps how many analyzers run at once.
	DefaultMaxConcurrency = 4

	// DefaultMinScore is the overall score the check command requires.
	DefaultMinScore = 70
)

// Config represents the main configuration structure
type Config struct {
	// Validation holds validation pipeline configuration
	Validation ValidationConfig `json:"validation" mapstructure:"validation" yaml:"validation"`

	// AutoFix holds auto-fix engine configuration
	AutoFix AutoFixConfig `json:"autoFix" mapstructure:"auto_fix" yaml:"auto_fix"`

	// Check holds CI gate configuration
	Check CheckConfig `json:"check" mapstructure:"check" yaml:"check"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Analysis holds file collection configuration
	Analysis AnalysisConfig `json:"analysis,omitempty" mapstructure:"analysis" yaml:"analysis"`
}

// ValidationConfig holds configuration for the quality orchestrator
type ValidationConfig struct {
	// AnalyzerTimeoutSeconds bounds each analyzer task
	AnalyzerTimeoutSeconds int `json:"analyzerTimeoutSeconds" mapstructure:"analyzer_timeout_seconds" yaml:"analyzer_timeout_seconds"`

	// MaxConcurrency caps concurrent analyzer tasks
	MaxConcurrency int `json:"maxConcurrency" mapstructure:"max_concurrency" yaml:"max_concurrency"`
}

// AnalyzerTimeout returns the analyzer timeout as a duration
func (c ValidationConfig) AnalyzerTimeout() time.Duration {
	secs := c.AnalyzerTimeoutSeconds
	if secs <= 0 {
		secs = DefaultAnalyzerTimeoutSeconds
	}
	return time.Duration(secs) * time.Second
}

// AutoFixConfig holds per-stage toggles for the fix engine. Thresholds
// are part of the scoring contract and are not configurable.
type AutoFixConfig struct {
	Enabled          bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`
	FixAccessibility bool `json:"fixAccessibility" mapstructure:"fix_accessibility" yaml:"fix_accessibility"`
	FixTechnical     bool `json:"fixTechnical" mapstructure:"fix_technical" yaml:"fix_technical"`
	FixContent       bool `json:"fixContent" mapstructure:"fix_content" yaml:"fix_content"`
	FixDesign        bool `json:"fixDesign" mapstructure:"fix_design" yaml:"fix_design"`
}

// CheckConfig holds thresholds for the CI gate command
type CheckConfig struct {
	// MinScore is the minimum overall score required to pass
	MinScore int `json:"minScore" mapstructure:"min_score" yaml:"min_score"`

	// FailOnCritical fails the check when any critical issue exists,
	// regardless of score
	FailOnCritical bool `json:"failOnCritical" mapstructure:"fail_on_critical" yaml:"fail_on_critical"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether to show per-check breakdowns
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`
}

// AnalysisConfig holds file collection configuration
type AnalysisConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether to collect artifacts recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`

	// RespectGitignore skips files ignored by .gitignore
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Validation: ValidationConfig{
			AnalyzerTimeoutSeconds: DefaultAnalyzerTimeoutSeconds,
			MaxConcurrency:         DefaultMaxConcurrency,
		},
		AutoFix: AutoFixConfig{
			Enabled:          true,
			FixAccessibility: true,
			FixTechnical:     true,
			FixContent:       true,
			FixDesign:        true,
		},
		Check: CheckConfig{
			MinScore:       DefaultMinScore,
			FailOnCritical: true,
		},
		Output: OutputConfig{
			Format:      "text",
			ShowDetails: false,
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{"**/*.html", "**/*.htm"},
			ExcludePatterns: []string{
				"node_modules",
				"dist",
				"build",
				".git",
			},
			Recursive:        true,
			RespectGitignore: true,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration, discovering a config file
// near the target path when no explicit path is given.
func LoadConfigWithTarget(configPath, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	return config, nil
}

// configFileNames lists recognized config files in order of preference
var configFileNames = []string{
	constants.ConfigFileName,
	".htmlscanrc.json",
	".htmlscanrc",
	"htmlscan.yaml",
	"htmlscan.yml",
	"htmlscan.json",
	".htmlscan.json",
}

// findDefaultConfig searches for a config file starting at the target
// path (or the working directory) and walking up to the filesystem root.
func findDefaultConfig(targetPath string) string {
	startDir := targetPath
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		startDir = wd
	} else if info, err := os.Stat(startDir); err != nil || !info.IsDir() {
		startDir = filepath.Dir(startDir)
	}

	dir := startDir
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
