package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ludo-technologies/htmlscan/app"
	"github.com/spf13/cobra"
)

var (
	completenessDataPath string
	completenessFormat   string
	completenessJSON     bool
	completenessPrompt   bool
	completenessMerge    string
	completenessOutput   string
)

func completenessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completeness [file]",
		Short: "Estimate whether a generated artifact was truncated",
		Long: `Estimate how much of an HTML artifact was generated before the output
limit cut it off, and whether it can be continued.

With --continue-prompt, an incomplete but recoverable artifact also
produces the resume instruction for the generation collaborator. With
--merge, a continuation fragment is spliced onto the artifact instead.

Examples:
  htmlscan completeness partial.html
  htmlscan completeness --continue-prompt --data portfolio.yaml partial.html
  htmlscan completeness --merge fragment.html --output merged.html partial.html`,
		Args: cobra.ExactArgs(1),
		RunE: runCompleteness,
	}

	cmd.Flags().StringVarP(&completenessDataPath, "data", "d", "",
		"Portfolio data file used for prompt context (YAML or JSON)")
	cmd.Flags().StringVarP(&completenessFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&completenessJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().BoolVar(&completenessPrompt, "continue-prompt", false,
		"Emit the continuation prompt for recoverable artifacts")
	cmd.Flags().StringVar(&completenessMerge, "merge", "",
		"Merge this continuation fragment file onto the artifact")
	cmd.Flags().StringVarP(&completenessOutput, "output", "o", "",
		"Write merged HTML to this file (default: stdout)")

	return cmd
}

func runCompleteness(cmd *cobra.Command, args []string) error {
	uc := app.NewCompletenessUseCase()

	if completenessMerge != "" {
		out := os.Stdout
		if completenessOutput != "" {
			file, err := os.Create(completenessOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", completenessOutput, err)
			}
			defer file.Close()
			out = file
		}
		return uc.Merge(args[0], completenessMerge, out)
	}

	format, err := resolveOutputFormat(completenessFormat, completenessJSON)
	if err != nil {
		return err
	}

	ccfg := app.CompletenessConfig{
		OutputFormat: format,
		OutputWriter: os.Stdout,
		BuildPrompt:  completenessPrompt,
		DataPath:     completenessDataPath,
	}

	_, err = uc.Execute(context.Background(), ccfg, args[0])
	return err
}
