package domain

// PersonalInfo holds the subject's identity and contact fields collected
// by the onboarding flow.
type PersonalInfo struct {
	Name      string `json:"name" yaml:"name"`
	Title     string `json:"title" yaml:"title"`
	Bio       string `json:"bio,omitempty" yaml:"bio,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Website   string `json:"website,omitempty" yaml:"website,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" yaml:"instagram,omitempty"`
	Behance   string `json:"behance,omitempty" yaml:"behance,omitempty"`
}

// ContactFields returns the supplied contact fields keyed by field name.
// Empty fields are omitted.
func (p PersonalInfo) ContactFields() map[string]string {
	fields := map[string]string{
		"email":     p.Email,
		"phone":     p.Phone,
		"website":   p.Website,
		"linkedin":  p.LinkedIn,
		"instagram": p.Instagram,
		"behance":   p.Behance,
	}
	for k, v := range fields {
		if v == "" {
			delete(fields, k)
		}
	}
	return fields
}

// Project is a single portfolio entry
type Project struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// StylePreferences captures the visual direction chosen during onboarding
type StylePreferences struct {
	Mood        string `json:"mood,omitempty" yaml:"mood,omitempty"`
	ColorScheme string `json:"color_scheme,omitempty" yaml:"color_scheme,omitempty"`
	Typography  string `json:"typography,omitempty" yaml:"typography,omitempty"`
	LayoutStyle string `json:"layout_style,omitempty" yaml:"layout_style,omitempty"`
}

// ImageRef references an uploaded image by URL and pixel dimensions.
// The image content is never fetched or decoded.
type ImageRef struct {
	URL    string `json:"url" yaml:"url"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"`
}

// ImageSet groups uploaded images by their role in generation
type ImageSet struct {
	// Moodboard images steer the visual direction; their presence
	// switches the design analyzer into moodboard mode.
	Moodboard []ImageRef `json:"moodboard,omitempty" yaml:"moodboard,omitempty"`

	// Process images document work in progress.
	Process []ImageRef `json:"process,omitempty" yaml:"process,omitempty"`

	// Final images are finished work expected to appear in the page.
	Final []ImageRef `json:"final,omitempty" yaml:"final,omitempty"`
}

// HasAny reports whether any image category was supplied
func (s ImageSet) HasAny() bool {
	return len(s.Moodboard) > 0 || len(s.Process) > 0 || len(s.Final) > 0
}

// ClientImages returns the images expected to be referenced by the page
// (process and final work, not moodboard inspiration).
func (s ImageSet) ClientImages() []ImageRef {
	out := make([]ImageRef, 0, len(s.Process)+len(s.Final))
	out = append(out, s.Process...)
	out = append(out, s.Final...)
	return out
}

// PortfolioData is the structured record handed over by the
// data-collection collaborator.
type PortfolioData struct {
	Personal PersonalInfo     `json:"personal" yaml:"personal"`
	Projects []Project        `json:"projects,omitempty" yaml:"projects,omitempty"`
	Skills   []string         `json:"skills,omitempty" yaml:"skills,omitempty"`
	Style    StylePreferences `json:"style,omitempty" yaml:"style,omitempty"`
	Images   ImageSet         `json:"images,omitempty" yaml:"images,omitempty"`
}
