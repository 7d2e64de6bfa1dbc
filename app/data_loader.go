package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/htmlscan/domain"
)

// sidecarSuffixes lists the recognized sidecar data files next to an
// artifact, in order of preference.
var sidecarSuffixes = []string{".data.yaml", ".data.yml", ".data.json"}

// LoadPortfolioData reads a portfolio data file (YAML or JSON)
func LoadPortfolioData(path string) (*domain.PortfolioData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewInputError(fmt.Sprintf("failed to read data file %s", path), err)
	}

	data := &domain.PortfolioData{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(content, data); err != nil {
			return nil, domain.NewInputError(fmt.Sprintf("failed to parse data file %s", path), err)
		}
		return data, nil
	}
	if err := yaml.Unmarshal(content, data); err != nil {
		return nil, domain.NewInputError(fmt.Sprintf("failed to parse data file %s", path), err)
	}
	return data, nil
}

// FindSidecarData locates the data file paired with an artifact, e.g.
// site.data.yaml next to site.html. Returns "" when none exists.
func FindSidecarData(artifactPath string) string {
	base := strings.TrimSuffix(artifactPath, filepath.Ext(artifactPath))
	for _, suffix := range sidecarSuffixes {
		candidate := base + suffix
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// resolveData loads portfolio data for an artifact: an explicit data path
// wins, otherwise the sidecar convention is tried. A nil result is valid;
// analyzers then run in artifact-only mode where applicable.
func resolveData(dataPath, artifactPath string) (*domain.PortfolioData, error) {
	if dataPath != "" {
		return LoadPortfolioData(dataPath)
	}
	if sidecar := FindSidecarData(artifactPath); sidecar != "" {
		return LoadPortfolioData(sidecar)
	}
	return nil, nil
}
