package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "htmlscan"

	// ConfigFileName is the default config file name
	ConfigFileName = "htmlscan.config.json"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "HTMLSCAN"
)
