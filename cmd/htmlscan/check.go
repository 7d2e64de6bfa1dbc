package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ludo-technologies/htmlscan/app"
	"github.com/ludo-technologies/htmlscan/domain"
	"github.com/ludo-technologies/htmlscan/internal/config"
	"github.com/ludo-technologies/htmlscan/internal/version"
	"github.com/ludo-technologies/htmlscan/service"
	"github.com/spf13/cobra"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkMinScore      int
	checkAllowCritical bool
	checkDataPath      string
	checkVerbose       bool
	checkJSON          bool
	checkConfigPath    string
)

// checkViolation records one failed gate condition
type checkViolation struct {
	Artifact  string `json:"artifact"`
	Rule      string `json:"rule"`
	Message   string `json:"message"`
	Actual    string `json:"actual,omitempty"`
	Threshold string `json:"threshold,omitempty"`
}

// checkResult aggregates the gate verdict for machine parsing
type checkResult struct {
	Passed      bool             `json:"passed"`
	ExitCode    int              `json:"exit_code"`
	Artifacts   int              `json:"artifacts"`
	MinScore    int              `json:"min_score"`
	Violations  []checkViolation `json:"violations"`
	Duration    int64            `json:"duration_ms"`
	GeneratedAt string           `json:"generated_at"`
	Version     string           `json:"version"`
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Fast quality gate for CI/CD pipelines",
		Long: `Validate artifacts and gate on the overall quality score.

Exit codes:
  0 - All artifacts pass
  1 - Quality threshold violated
  2 - Analysis error (file not found, bad data, etc.)

Examples:
  # Gate on the default minimum score
  htmlscan check generated/

  # Stricter gate
  htmlscan check --min-score 85 site.html

  # Allow critical issues as long as the score passes
  htmlscan check --allow-critical site.html

  # JSON output for machine parsing
  htmlscan check --json generated/`,
		RunE:          runCheck,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().IntVar(&checkMinScore, "min-score", config.DefaultMinScore,
		"Minimum overall score required to pass")
	cmd.Flags().BoolVar(&checkAllowCritical, "allow-critical", false,
		"Pass even when critical issues are present")
	cmd.Flags().StringVarP(&checkDataPath, "data", "d", "",
		"Portfolio data file applied to every artifact (YAML or JSON)")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show detailed output")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &CheckExitError{Code: 2, Message: "no paths specified"}
	}

	startTime := time.Now()

	cfg, err := service.NewConfigurationLoader().LoadConfigForTarget(checkConfigPath, args[0])
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	// Apply config values for flags not explicitly set on CLI
	if !cmd.Flags().Changed("min-score") && cfg.Check.MinScore > 0 {
		checkMinScore = cfg.Check.MinScore
	}
	failOnCritical := cfg.Check.FailOnCritical && !checkAllowCritical

	uc := app.NewValidateUseCase(cfg)
	vcfg := app.ValidateConfig{
		OutputFormat:     domain.OutputFormatText,
		OutputWriter:     io.Discard, // the gate prints its own verdict
		DataPath:         checkDataPath,
		Recursive:        cfg.Analysis.Recursive,
		ExcludePatterns:  cfg.Analysis.ExcludePatterns,
		RespectGitignore: cfg.Analysis.RespectGitignore,
	}

	results, err := uc.Execute(context.Background(), vcfg, args)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	result := &checkResult{
		Passed:     true,
		Artifacts:  len(results),
		MinScore:   checkMinScore,
		Violations: []checkViolation{},
	}

	for _, res := range results {
		gateArtifact(result, res, failOnCritical)
	}

	return outputCheckResult(result, startTime)
}

// gateArtifact applies the score and critical-issue gates to one report
func gateArtifact(result *checkResult, res app.ArtifactResult, failOnCritical bool) {
	report := res.Report

	if report.Overall.Status == domain.StatusError {
		result.Passed = false
		result.Violations = append(result.Violations, checkViolation{
			Artifact: res.Path,
			Rule:     "pipeline",
			Message:  "validation pipeline failed",
		})
		return
	}

	if report.Overall.Score < result.MinScore {
		result.Passed = false
		result.Violations = append(result.Violations, checkViolation{
			Artifact:  res.Path,
			Rule:      "min-score",
			Message:   fmt.Sprintf("overall score %d is below the minimum %d", report.Overall.Score, result.MinScore),
			Actual:    fmt.Sprintf("%d", report.Overall.Score),
			Threshold: fmt.Sprintf("%d", result.MinScore),
		})
	}

	if failOnCritical {
		for _, dim := range domain.Dimensions {
			dr, ok := report.Dimensions[dim]
			if !ok {
				continue
			}
			for _, issue := range dr.Issues {
				if issue.Severity == domain.SeverityCritical {
					result.Passed = false
					result.Violations = append(result.Violations, checkViolation{
						Artifact: res.Path,
						Rule:     "no-critical",
						Message:  fmt.Sprintf("critical %s issue: %s", dim, issue.Message),
					})
				}
			}
		}
	}
}

func outputCheckResult(result *checkResult, startTime time.Time) error {
	result.Duration = time.Since(startTime).Milliseconds()
	result.GeneratedAt = time.Now().Format(time.RFC3339)
	result.Version = version.Version
	result.ExitCode = 0
	if !result.Passed {
		result.ExitCode = 1
	}

	if checkJSON {
		return outputCheckJSON(result)
	}

	return outputCheckText(result)
}

func outputCheckText(result *checkResult) error {
	if result.Passed {
		fmt.Println("PASS: All quality checks passed")
		if checkVerbose {
			fmt.Printf("  Artifacts: %d\n", result.Artifacts)
			fmt.Printf("  Minimum score: %d\n", result.MinScore)
			fmt.Printf("  Duration: %dms\n", result.Duration)
		}
		return nil
	}

	fmt.Println("FAIL: Quality check failed")
	fmt.Printf("  Violations: %d\n", len(result.Violations))

	for _, v := range result.Violations {
		fmt.Printf("  [%s] %s: %s\n", v.Rule, v.Artifact, v.Message)
	}

	if checkVerbose {
		fmt.Printf("\nSummary:\n")
		fmt.Printf("  Artifacts: %d\n", result.Artifacts)
		fmt.Printf("  Minimum score: %d\n", result.MinScore)
		fmt.Printf("  Duration: %dms\n", result.Duration)
	}

	return &CheckExitError{Code: 1, Message: ""}
}

func outputCheckJSON(result *checkResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
	}

	if !result.Passed {
		return &CheckExitError{Code: 1, Message: ""}
	}
	return nil
}
