// Package app implements the use cases behind the CLI commands.
package app

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// FileHelper provides artifact collection utilities
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// CollectArtifacts collects HTML artifact files from paths
func (h *FileHelper) CollectArtifacts(paths []string, recursive bool, excludePatterns []string, respectGitignore bool) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if h.isArtifact(path) && !h.isExcluded(path, excludePatterns) {
				files = append(files, path)
			}
			continue
		}

		var matcher *ignore.GitIgnore
		if respectGitignore {
			// A missing .gitignore simply disables the filter.
			matcher, _ = ignore.CompileIgnoreFile(filepath.Join(path, ".gitignore"))
		}

		if recursive {
			err = filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}

				if info.IsDir() {
					dirName := filepath.Base(filePath)
					for _, pattern := range excludePatterns {
						if pattern == dirName {
							return filepath.SkipDir
						}
						if matched, _ := filepath.Match(pattern, dirName); matched {
							return filepath.SkipDir
						}
					}
					return nil
				}

				if !h.isArtifact(filePath) || h.isExcluded(filePath, excludePatterns) {
					return nil
				}
				if matcher != nil {
					if rel, relErr := filepath.Rel(path, filePath); relErr == nil && matcher.MatchesPath(rel) {
						return nil
					}
				}
				files = append(files, filePath)
				return nil
			})
		} else {
			entries, readErr := os.ReadDir(path)
			if readErr != nil {
				return nil, readErr
			}
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				filePath := filepath.Join(path, entry.Name())
				if !h.isArtifact(filePath) || h.isExcluded(filePath, excludePatterns) {
					continue
				}
				if matcher != nil && matcher.MatchesPath(entry.Name()) {
					continue
				}
				files = append(files, filePath)
			}
		}

		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// FileExists checks if a file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, err
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadFile reads file content
func (h *FileHelper) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// isArtifact checks if a file is an HTML artifact based on extension
func (h *FileHelper) isArtifact(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".html" || ext == ".htm"
}

// isExcluded checks if a path matches any exclude pattern
func (h *FileHelper) isExcluded(path string, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// ResolveArtifactPaths returns existing files directly or collects
// artifacts from directories
func ResolveArtifactPaths(
	fileHelper *FileHelper,
	paths []string,
	recursive bool,
	excludePatterns []string,
	respectGitignore bool,
) ([]string, error) {
	allFiles := true
	for _, path := range paths {
		exists, err := fileHelper.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}
	if allFiles {
		return paths, nil
	}
	return fileHelper.CollectArtifacts(paths, recursive, excludePatterns, respectGitignore)
}
