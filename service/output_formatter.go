package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/htmlscan/domain"
)

// OutputFormatterImpl implements the domain.OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// WriteComposite writes a composite report in the specified format
func (f *OutputFormatterImpl) WriteComposite(report *domain.CompositeReport, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, report)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, report)
	case domain.OutputFormatText:
		return f.writeCompositeText(report, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteFixRecord writes an auto-fix record in the specified format
func (f *OutputFormatterImpl) WriteFixRecord(record *domain.AutoFixRecord, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, record)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, record)
	case domain.OutputFormatText:
		return f.writeFixRecordText(record, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteCompleteness writes a completeness report in the specified format
func (f *OutputFormatterImpl) WriteCompleteness(report *domain.CompletenessReport, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, report)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, report)
	case domain.OutputFormatText:
		return f.writeCompletenessText(report, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (f *OutputFormatterImpl) writeCompositeText(report *domain.CompositeReport, writer io.Writer) error {
	var sb strings.Builder

	sb.WriteString("Quality Report\n")
	sb.WriteString("==============\n\n")
	fmt.Fprintf(&sb, "Overall: %d/100 (%s)\n\n", report.Overall.Score, report.Overall.Status)

	for _, dim := range domain.Dimensions {
		dr, ok := report.Dimensions[dim]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%-14s %3d  %d issue(s), %d passed\n",
			string(dim)+":", dr.Score, len(dr.Issues), len(dr.Passed))
	}

	issueCount := 0
	for _, dim := range domain.Dimensions {
		dr, ok := report.Dimensions[dim]
		if !ok {
			continue
		}
		for _, issue := range dr.Issues {
			if issueCount == 0 {
				sb.WriteString("\nIssues\n------\n")
			}
			issueCount++
			fmt.Fprintf(&sb, "[%s] %s: %s\n", issue.Severity, dim, issue.Message)
			if issue.FixHint != "" {
				fmt.Fprintf(&sb, "    hint: %s\n", issue.FixHint)
			}
		}
	}

	if len(report.Suggestions) > 0 {
		sb.WriteString("\nSuggestions\n-----------\n")
		for _, s := range report.Suggestions {
			fmt.Fprintf(&sb, "[%s] %s: %s\n", s.Priority, s.Category, s.Message)
		}
	}

	fmt.Fprintf(&sb, "\nArtifact: %d bytes, analyzed in %dms\n",
		report.Metadata.ArtifactLength, report.Metadata.DurationMs)

	_, err := io.WriteString(writer, sb.String())
	return err
}

func (f *OutputFormatterImpl) writeFixRecordText(record *domain.AutoFixRecord, writer io.Writer) error {
	var sb strings.Builder

	if !record.Success {
		sb.WriteString("Auto-fix failed; the artifact was left unchanged.\n")
	} else if !record.HTMLModified {
		sb.WriteString("No mechanical fixes were applicable.\n")
	} else {
		fmt.Fprintf(&sb, "Applied %d fix(es):\n", len(record.FixesApplied))
		for _, fix := range record.FixesApplied {
			fmt.Fprintf(&sb, "  - %s\n", fix)
		}
	}

	_, err := io.WriteString(writer, sb.String())
	return err
}

func (f *OutputFormatterImpl) writeCompletenessText(report *domain.CompletenessReport, writer io.Writer) error {
	var sb strings.Builder

	state := "complete"
	if !report.IsComplete {
		state = "incomplete"
	}
	fmt.Fprintf(&sb, "Document is %s (estimated %d%% generated)\n",
		state, report.EstimatedCompletionPercent)

	if len(report.Issues) > 0 {
		sb.WriteString("Structural issues:\n")
		for _, issue := range report.Issues {
			fmt.Fprintf(&sb, "  - %s\n", issue)
		}
	}

	if !report.IsComplete {
		if report.CanContinue {
			sb.WriteString("The document can be continued from where it stops.\n")
		} else {
			sb.WriteString("The document is too sparse to continue; regenerate it.\n")
		}
	}
	fmt.Fprintf(&sb, "Tag balance: %d opened, %d closed\n",
		report.TagBalance.OpenTags, report.TagBalance.CloseTags)

	_, err := io.WriteString(writer, sb.String())
	return err
}
