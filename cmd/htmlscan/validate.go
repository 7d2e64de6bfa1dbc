package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ludo-technologies/htmlscan/app"
	"github.com/ludo-technologies/htmlscan/domain"
	"github.com/ludo-technologies/htmlscan/service"
	"github.com/spf13/cobra"
)

var (
	validateDataPath   string
	validateFormat     string
	validateJSON       bool
	validateConfigPath string
	validateNoProgress bool
	validateFix        bool
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [path...]",
		Short: "Validate HTML portfolio artifacts",
		Long: `Validate HTML portfolio artifacts across the four quality dimensions:
content, design, technical and accessibility.

Portfolio data is read from --data, or from a sidecar file next to each
artifact (site.data.yaml for site.html). Without data, the data-driven
dimensions report a task failure and score zero.

Examples:
  htmlscan validate site.html
  htmlscan validate --data portfolio.yaml site.html
  htmlscan validate --format json generated/
  htmlscan validate --json site.html
  htmlscan validate --fix --data portfolio.yaml site.html`,
		RunE: runValidate,
	}

	cmd.Flags().StringVarP(&validateDataPath, "data", "d", "",
		"Portfolio data file (YAML or JSON)")
	cmd.Flags().StringVarP(&validateFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&validateJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&validateConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&validateNoProgress, "no-progress", false,
		"Disable the progress bar")
	cmd.Flags().BoolVar(&validateFix, "fix", false,
		"Apply mechanical repairs after validation and rewrite artifacts in place")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	format, err := resolveOutputFormat(validateFormat, validateJSON)
	if err != nil {
		return err
	}

	cfg, err := service.NewConfigurationLoader().LoadConfigForTarget(validateConfigPath, args[0])
	if err != nil {
		return err
	}

	uc := app.NewValidateUseCase(cfg)

	// Progress is auto-disabled for machine-readable output and non-TTY.
	pm := service.NewProgressManager(!validateNoProgress && format == domain.OutputFormatText)
	defer pm.Close()
	uc.SetProgressManager(pm)

	vcfg := app.ValidateConfig{
		OutputFormat:     format,
		OutputWriter:     os.Stdout,
		DataPath:         validateDataPath,
		Recursive:        cfg.Analysis.Recursive,
		ExcludePatterns:  cfg.Analysis.ExcludePatterns,
		RespectGitignore: cfg.Analysis.RespectGitignore,
		ApplyFixes:       validateFix,
	}

	_, err = uc.Execute(context.Background(), vcfg, args)
	return err
}

// resolveOutputFormat maps the format flags onto a domain format
func resolveOutputFormat(format string, jsonShorthand bool) (domain.OutputFormat, error) {
	if jsonShorthand {
		return domain.OutputFormatJSON, nil
	}
	switch format {
	case "text":
		return domain.OutputFormatText, nil
	case "json":
		return domain.OutputFormatJSON, nil
	case "yaml":
		return domain.OutputFormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
