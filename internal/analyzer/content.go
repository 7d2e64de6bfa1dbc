package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ludo-technologies/htmlscan/domain"
)

// Content heuristic thresholds. Part of the scoring contract.
const (
	// nameProbeMaxLen caps the substring used to look for the subject name.
	nameProbeMaxLen = 50

	// bioMinLen is the bio length below which the bio check is skipped.
	bioMinLen = 50

	// bioProbeLen is the bio prefix searched for in the page text.
	bioProbeLen = 30

	// skillsPassRatio and skillsSuggestRatio bucket the share of skills
	// actually found in the page.
	skillsPassRatio    = 0.8
	skillsSuggestRatio = 0.5

	// contactSuggestRatio is the displayed/supplied contact ratio below
	// which an issue (rather than a suggestion) is raised.
	contactSuggestRatio = 0.5

	// wordCountCritical and wordCountSuggest bucket total visible words.
	wordCountCritical = 100
	wordCountSuggest  = 300

	// uniqueParagraphRatio is the minimum share of unique paragraphs.
	uniqueParagraphRatio = 0.8
)

// skillsSectionLabels are the heading labels that mark a skills section.
var skillsSectionLabels = []string{"skills", "expertise", "technologies", "competencies"}

// requiredSections must exist; optionalSections only yield suggestions.
var (
	requiredSections = []string{"about", "projects"}
	optionalSections = []string{"skills", "contact"}
)

// placeholderPhrases flag unfinished generator output.
var placeholderPhrases = []string{
	"lorem ipsum",
	"placeholder text",
	"your text here",
	"sample text",
	"[insert",
	"coming soon",
}

// firstPersonMarkers signal a personal voice in the copy.
var firstPersonMarkers = []string{"i am", "i'm", "my ", "i've", "i work", "i create"}

// ContentAnalyzer checks that the collected portfolio data actually made
// it into the generated page.
type ContentAnalyzer struct{}

// NewContentAnalyzer creates a content analyzer
func NewContentAnalyzer() *ContentAnalyzer {
	return &ContentAnalyzer{}
}

// Dimension implements domain.Analyzer
func (a *ContentAnalyzer) Dimension() domain.Dimension {
	return domain.DimensionContent
}

// Validate implements domain.Analyzer
func (a *ContentAnalyzer) Validate(ctx context.Context, req domain.ValidationRequest) (*domain.DimensionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Data == nil {
		return nil, domain.NewInputError("content analysis requires portfolio data", nil)
	}

	doc, err := ParseDocument(req.HTML)
	if err != nil {
		return nil, domain.NewValidationError("failed to parse artifact", err)
	}

	b := newReportBuilder()

	a.checkName(b, doc, req.Data)
	a.checkProfessionalTitle(b, doc, req.Data)
	a.checkBio(b, doc, req.Data)
	a.checkProjects(b, doc, req.Data)
	a.checkSkills(b, doc, req.Data)
	a.checkContacts(b, doc, req.Data)
	a.checkSections(b, doc)
	a.checkWordCount(b, doc)
	a.checkPlaceholders(b, doc)
	a.checkDuplicateParagraphs(b, doc)
	a.checkPersonalVoice(b, doc)

	return b.build(domain.DimensionContent), nil
}

// checkName looks for the subject name via a case-insensitive substring
// probe of at most the first 50 characters of the name.
func (a *ContentAnalyzer) checkName(b *reportBuilder, doc *Document, data *domain.PortfolioData) {
	name := strings.TrimSpace(data.Personal.Name)
	if name == "" {
		return
	}
	probe := strings.ToLower(name)
	if len(probe) > nameProbeMaxLen {
		probe = probe[:nameProbeMaxLen]
	}
	if strings.Contains(doc.LowerText, probe) {
		b.pass("Subject name is displayed")
		return
	}
	b.issue("missing_name", domain.SeverityCritical,
		fmt.Sprintf("The name %q does not appear anywhere on the page", name),
		"Add the subject name to the main heading")
}

func (a *ContentAnalyzer) checkProfessionalTitle(b *reportBuilder, doc *Document, data *domain.PortfolioData) {
	title := strings.TrimSpace(data.Personal.Title)
	if title == "" {
		return
	}
	if strings.Contains(doc.LowerText, strings.ToLower(title)) {
		b.pass("Professional title is displayed")
		return
	}
	b.issue("missing_professional_title", domain.SeverityHigh,
		fmt.Sprintf("The professional title %q does not appear on the page", title),
		"Add the professional title near the name heading")
}

// checkBio probes for the bio's opening characters. Short bios are
// skipped: a prefix probe on a one-liner is too noisy to be meaningful.
func (a *ContentAnalyzer) checkBio(b *reportBuilder, doc *Document, data *domain.PortfolioData) {
	bio := strings.TrimSpace(data.Personal.Bio)
	if len(bio) <= bioMinLen {
		return
	}
	probe := strings.ToLower(bio)
	if len(probe) > bioProbeLen {
		probe = probe[:bioProbeLen]
	}
	if strings.Contains(doc.LowerText, probe) {
		b.pass("Bio text is included")
		return
	}
	b.issue("missing_bio", domain.SeverityMedium,
		"The bio text does not appear on the page",
		"Include the bio in the about section")
}

func (a *ContentAnalyzer) checkProjects(b *reportBuilder, doc *Document, data *domain.PortfolioData) {
	if len(data.Projects) == 0 {
		b.issue("no_projects", domain.SeverityCritical,
			"No projects were supplied; a portfolio without projects is empty",
			"Collect at least one project before generating")
		return
	}

	missingTitles := 0
	for _, project := range data.Projects {
		title := strings.TrimSpace(project.Title)
		if title == "" {
			continue
		}
		if strings.Contains(doc.LowerText, strings.ToLower(title)) {
			b.pass(fmt.Sprintf("Project %q is displayed", title))
		} else {
			missingTitles++
			b.issue("missing_project_title", domain.SeverityHigh,
				fmt.Sprintf("Project %q does not appear on the page", title),
				"Add the project to the projects section")
		}
	}

	a.checkProjectDescriptions(b, doc, data)
	a.checkProjectTags(b, doc, data)
}

func (a *ContentAnalyzer) checkProjectDescriptions(b *reportBuilder, doc *Document, data *domain.PortfolioData) {
	supplied, found := 0, 0
	for _, project := range data.Projects {
		desc := strings.TrimSpace(project.Description)
		if desc == "" {
			continue
		}
		supplied++
		probe := strings.ToLower(desc)
		if len(probe) > bioProbeLen {
			probe = probe[:bioProbeLen]
		}
		if strings.Contains(doc.LowerText, probe) {
			found++
		}
	}
	if supplied == 0 {
		return
	}
	if found == supplied {
		b.pass("All project descriptions are included")
	} else {
		b.suggest("missing_project_descriptions",
			fmt.Sprintf("%d of %d project descriptions are missing from the page", supplied-found, supplied),
			"Include each project's description under its title")
	}
}

func (a *ContentAnalyzer) checkProjectTags(b *reportBuilder, doc *Document, data *domain.PortfolioData) {
	supplied, found := 0, 0
	for _, project := range data.Projects {
		for _, tag := range project.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			supplied++
			if strings.Contains(doc.LowerText, strings.ToLower(tag)) {
				found++
			}
		}
	}
	if supplied == 0 {
		return
	}
	if float64(found)/float64(supplied) >= skillsSuggestRatio {
		b.pass("Project tags are represented")
	} else {
		b.suggest("missing_project_tags",
			"Most project tags are missing from the page",
			"Show project tags as labels next to each project")
	}
}

// checkSkills first locates a skills section by heading label or
// class/id marker, then measures how many supplied skills actually show.
func (a *ContentAnalyzer) checkSkills(b *reportBuilder, doc *Document, data *domain.PortfolioData) {
	if len(data.Skills) == 0 {
		return
	}

	if !a.hasSection(doc, skillsSectionLabels) {
		b.issue("missing_skills_section", domain.SeverityMedium,
			"No skills section was found",
			"Add a section listing the supplied skills")
		return
	}

	found := 0
	for _, skill := range data.Skills {
		if strings.Contains(doc.LowerText, strings.ToLower(strings.TrimSpace(skill))) {
			found++
		}
	}
	ratio := float64(found) / float64(len(data.Skills))
	switch {
	case ratio >= skillsPassRatio:
		b.pass("Skills section lists the supplied skills")
	case ratio >= skillsSuggestRatio:
		b.suggest("skills_incomplete",
			fmt.Sprintf("Only %d of %d skills are listed", found, len(data.Skills)),
			"List the remaining skills in the skills section")
	default:
		b.issue("skills_incomplete", domain.SeverityMedium,
			fmt.Sprintf("Only %d of %d skills are listed", found, len(data.Skills)),
			"List the supplied skills in the skills section")
	}
}

func (a *ContentAnalyzer) checkContacts(b *reportBuilder, doc *Document, data *domain.PortfolioData) {
	fields := data.Personal.ContactFields()
	if len(fields) == 0 {
		return
	}

	displayed := 0
	for _, value := range fields {
		// Contact values often live in href attributes, so probe the
		// raw markup rather than the visible text.
		if strings.Contains(doc.LowerHTML, strings.ToLower(value)) {
			displayed++
		}
	}

	ratio := float64(displayed) / float64(len(fields))
	switch {
	case displayed == len(fields):
		b.pass("All supplied contact details are displayed")
	case ratio >= contactSuggestRatio:
		b.suggest("contact_incomplete",
			fmt.Sprintf("%d of %d contact details are missing", len(fields)-displayed, len(fields)),
			"Display every supplied contact channel")
	default:
		b.issue("missing_contact_info", domain.SeverityMedium,
			fmt.Sprintf("Only %d of %d supplied contact details are displayed", displayed, len(fields)),
			"Add a contact section with the supplied details")
	}
}

func (a *ContentAnalyzer) checkSections(b *reportBuilder, doc *Document) {
	for _, label := range requiredSections {
		if a.hasSection(doc, []string{label}) {
			b.pass(fmt.Sprintf("Has a %s section", label))
		} else {
			b.issue("missing_section", domain.SeverityHigh,
				fmt.Sprintf("No %s section was found", label),
				fmt.Sprintf("Add a %s section", label))
		}
	}
	for _, label := range optionalSections {
		if !a.hasSection(doc, []string{label}) {
			b.suggest("missing_optional_section",
				fmt.Sprintf("No %s section was found", label),
				fmt.Sprintf("Consider adding a %s section", label))
		}
	}
}

// hasSection matches a section by heading text or class/id substring.
func (a *ContentAnalyzer) hasSection(doc *Document, labels []string) bool {
	for _, label := range labels {
		for _, h := range doc.Headings {
			if strings.Contains(strings.ToLower(h.Text), label) {
				return true
			}
		}
		if strings.Contains(doc.ClassIDText, label) {
			return true
		}
	}
	return false
}

func (a *ContentAnalyzer) checkWordCount(b *reportBuilder, doc *Document) {
	switch {
	case doc.WordCount < wordCountCritical:
		b.issue("insufficient_content", domain.SeverityCritical,
			fmt.Sprintf("The page has only %d words of visible text", doc.WordCount),
			"Generate fuller section copy")
	case doc.WordCount < wordCountSuggest:
		b.suggest("thin_content",
			fmt.Sprintf("The page has %d words; richer copy reads better", doc.WordCount),
			"Expand the about and project descriptions")
	default:
		b.pass("Page has substantial visible text")
	}
}

func (a *ContentAnalyzer) checkPlaceholders(b *reportBuilder, doc *Document) {
	for _, phrase := range placeholderPhrases {
		if strings.Contains(doc.LowerText, phrase) {
			b.issue("placeholder_text", domain.SeverityCritical,
				fmt.Sprintf("Placeholder text %q was left in the page", phrase),
				"Replace placeholder copy with real content")
			return
		}
	}
	b.pass("No placeholder text")
}

func (a *ContentAnalyzer) checkDuplicateParagraphs(b *reportBuilder, doc *Document) {
	if len(doc.Paragraphs) < 2 {
		return
	}
	seen := make(map[string]struct{}, len(doc.Paragraphs))
	for _, p := range doc.Paragraphs {
		seen[strings.ToLower(p)] = struct{}{}
	}
	ratio := float64(len(seen)) / float64(len(doc.Paragraphs))
	if ratio < uniqueParagraphRatio {
		b.suggest("duplicate_content",
			"Several paragraphs repeat the same text",
			"Vary the copy between sections")
	} else {
		b.pass("Paragraph content is varied")
	}
}

// checkPersonalVoice is a minor positive signal only; its absence never
// counts against the page.
func (a *ContentAnalyzer) checkPersonalVoice(b *reportBuilder, doc *Document) {
	for _, marker := range firstPersonMarkers {
		if strings.Contains(doc.LowerText, marker) {
			b.pass("Copy uses a personal voice")
			return
		}
	}
}
