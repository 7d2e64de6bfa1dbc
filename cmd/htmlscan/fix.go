package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ludo-technologies/htmlscan/app"
	"github.com/ludo-technologies/htmlscan/service"
	"github.com/spf13/cobra"
)

var (
	fixDataPath   string
	fixFormat     string
	fixJSON       bool
	fixConfigPath string
	fixInPlace    bool
	fixOutputPath string
)

func fixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [file]",
		Short: "Apply mechanical repairs to an HTML artifact",
		Long: `Validate an HTML artifact and repair the dimensions that scored below
their fix thresholds. Repairs are DOM-level mutations: added alt text,
document metadata, landmark elements and image substitutions.

The repaired HTML is written to --output, or back to the source file
with --write. With neither, only the fix record is printed.

Examples:
  htmlscan fix site.html
  htmlscan fix --write site.html
  htmlscan fix --output repaired.html --data portfolio.yaml site.html`,
		Args: cobra.ExactArgs(1),
		RunE: runFix,
	}

	cmd.Flags().StringVarP(&fixDataPath, "data", "d", "",
		"Portfolio data file (YAML or JSON)")
	cmd.Flags().StringVarP(&fixFormat, "format", "f", "text",
		"Output format for the fix record: text, json, yaml")
	cmd.Flags().BoolVar(&fixJSON, "json", false,
		"Output the fix record as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&fixConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVarP(&fixInPlace, "write", "w", false,
		"Rewrite the source file with the repaired HTML")
	cmd.Flags().StringVarP(&fixOutputPath, "output", "o", "",
		"Write the repaired HTML to this file")

	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	format, err := resolveOutputFormat(fixFormat, fixJSON)
	if err != nil {
		return err
	}

	cfg, err := service.NewConfigurationLoader().LoadConfigForTarget(fixConfigPath, args[0])
	if err != nil {
		return err
	}

	uc := app.NewFixUseCase(cfg)
	fcfg := app.FixConfig{
		OutputFormat: format,
		OutputWriter: os.Stdout,
		DataPath:     fixDataPath,
		InPlace:      fixInPlace,
		OutputPath:   fixOutputPath,
	}

	record, err := uc.Execute(context.Background(), fcfg, args[0])
	if err != nil {
		return err
	}
	if record != nil && !record.Success {
		return fmt.Errorf("repair pass failed; the original HTML was kept")
	}
	return nil
}
