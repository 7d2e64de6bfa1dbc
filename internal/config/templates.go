package config

import "strconv"

// Strictness represents the check strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// StrictnessPreset holds threshold values for different strictness levels
type StrictnessPreset struct {
	MinScore       int
	FailOnCritical bool
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed:  {MinScore: 60, FailOnCritical: false},
		StrictnessStandard: {MinScore: 70, FailOnCritical: true},
		StrictnessStrict:   {MinScore: 80, FailOnCritical: true},
	}
}

// GetMinimalConfigTemplate returns a minimal config with essential options
func GetMinimalConfigTemplate() string {
	return `{
  "validation": {
    "analyzer_timeout_seconds": 10,
    "max_concurrency": 4
  },
  "check": {
    "min_score": 70
  },
  "output": {
    "format": "text"
  }
}
`
}

// GetFullConfigTemplate returns a documented config template for the
// given strictness level.
func GetFullConfigTemplate(strictness Strictness) string {
	preset, ok := GetStrictnessPresets()[strictness]
	if !ok {
		preset = GetStrictnessPresets()[StrictnessStandard]
	}

	return `{
  "_comment": "htmlscan configuration. Scoring weights (content 0.30, design 0.25, technical 0.25, accessibility 0.20), status cutoffs (90/80/70/60) and the analyzer keyword heuristics are part of the scoring contract and are not configurable.",

  "validation": {
    "_comment": "Each analyzer runs as an independent task; a timed-out analyzer counts as a task failure and its dimension scores zero.",
    "analyzer_timeout_seconds": 10,
    "max_concurrency": 4
  },

  "auto_fix": {
    "_comment": "Stage toggles. Stages run in fixed order: accessibility, technical, content, design. Thresholds (80/80/80/70) are fixed.",
    "enabled": true,
    "fix_accessibility": true,
    "fix_technical": true,
    "fix_content": true,
    "fix_design": true
  },

  "check": {
    "_comment": "CI gate. Exit 1 when the overall score is below min_score.",
    "min_score": ` + strconv.Itoa(preset.MinScore) + `,
    "fail_on_critical": ` + strconv.FormatBool(preset.FailOnCritical) + `
  },

  "output": {
    "_comment": "Output format: text, json, yaml.",
    "format": "text",
    "show_details": false
  },

  "analysis": {
    "_comment": "Artifact collection when validating directories.",
    "include_patterns": ["**/*.html", "**/*.htm"],
    "exclude_patterns": ["node_modules", "dist", "build", ".git"],
    "recursive": true,
    "respect_gitignore": true
  }
}
`
}
