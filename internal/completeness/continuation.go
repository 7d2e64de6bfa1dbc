package completeness

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/htmlscan/domain"
)

// Protocol builds continuation instructions for the generation
// collaborator and merges its fragments back into the artifact.
type Protocol struct{}

// NewProtocol creates a continuation protocol
func NewProtocol() *Protocol {
	return &Protocol{}
}

// BuildPrompt packages the verbatim partial artifact, its structural
// defects and the minimal request context into a resume instruction.
// The receiving generator must emit only the missing remainder.
func (p *Protocol) BuildPrompt(req domain.ContinuationRequest) string {
	var sb strings.Builder

	sb.WriteString("The following HTML document was cut off before completion.\n")
	sb.WriteString("Continue it from the exact point where it stops. Output only the\n")
	sb.WriteString("missing remainder: no preamble, no repetition of existing markup.\n\n")

	if req.Report != nil {
		fmt.Fprintf(&sb, "Estimated completion: %d%%\n", req.Report.EstimatedCompletionPercent)
		if len(req.Report.Issues) > 0 {
			sb.WriteString("Detected structural defects:\n")
			for _, issue := range req.Report.Issues {
				fmt.Fprintf(&sb, "- %s\n", issue)
			}
		}
		sb.WriteString(missingCloserChecklist(req.Report.Structure))
		sb.WriteByte('\n')
	}

	if req.Data != nil {
		sb.WriteString("Original request context:\n")
		if name := strings.TrimSpace(req.Data.Personal.Name); name != "" {
			fmt.Fprintf(&sb, "- Subject: %s\n", name)
		}
		if title := strings.TrimSpace(req.Data.Personal.Title); title != "" {
			fmt.Fprintf(&sb, "- Professional title: %s\n", title)
		}
		fmt.Fprintf(&sb, "- Projects: %d\n", len(req.Data.Projects))
		if mood := strings.TrimSpace(req.Data.Style.Mood); mood != "" {
			fmt.Fprintf(&sb, "- Mood: %s\n", mood)
		}
		if scheme := strings.TrimSpace(req.Data.Style.ColorScheme); scheme != "" {
			fmt.Fprintf(&sb, "- Color scheme: %s\n", scheme)
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("Partial document:\n")
	sb.WriteString(req.PartialHTML)

	return sb.String()
}

// missingCloserChecklist spells out which document closers the
// continuation must still produce.
func missingCloserChecklist(structure domain.StructuralFlags) string {
	var missing []string
	if !structure.HasBodyClose {
		missing = append(missing, "</body>")
	}
	if !structure.HasHTMLClose {
		missing = append(missing, "</html>")
	}
	if len(missing) == 0 {
		return "All document closing tags are already present.\n"
	}
	return fmt.Sprintf("The continuation must end with: %s\n", strings.Join(missing, " "))
}
