package domain

import "io"

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// OutputFormatter renders reports for the caller
type OutputFormatter interface {
	// WriteComposite writes a composite report in the specified format
	WriteComposite(report *CompositeReport, format OutputFormat, writer io.Writer) error

	// WriteFixRecord writes an auto-fix record in the specified format
	WriteFixRecord(record *AutoFixRecord, format OutputFormat, writer io.Writer) error

	// WriteCompleteness writes a completeness report in the specified format
	WriteCompleteness(report *CompletenessReport, format OutputFormat, writer io.Writer) error
}
