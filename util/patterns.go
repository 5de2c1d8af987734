package util

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// ScenarioExtension is the file extension of scenario scripts.
const ScenarioExtension = ".lt"

var noisyDirectories = []string{
	".git",
	".idea",
	".vscode",
	"node_modules",
	"vendor",
	"bin",
	"tmp",
}

// NoisyDirectoryExclusionPatterns returns patterns of directories that never hold
// scenario scripts worth replaying.
func NoisyDirectoryExclusionPatterns() []string {
	patterns := make([]string, 0, len(noisyDirectories)*2)
	for _, dir := range noisyDirectories {
		patterns = append(patterns, fmt.Sprintf("%v/**", dir), fmt.Sprintf("**/%v/**", dir))
	}
	return patterns
}

func expandPatternsIfNeeded(patterns []string) []string {
	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "*/") {
			patterns = append(patterns, strings.Replace(pattern, "*/", "", 1))
		}
		if strings.HasPrefix(pattern, "**/") {
			patterns = append(patterns, strings.Replace(pattern, "**/", "", 1))
		}
	}
	return patterns
}

// PathFilter decides which script paths get replayed. Paths use forward slashes.
type PathFilter struct {
	includePatterns []glob.Glob
	excludePatterns []glob.Glob
	ignoreCase      bool
}

func NewPathFilter(include []string, exclude []string, ignoreCase bool) (*PathFilter, error) {
	filter := &PathFilter{ignoreCase: ignoreCase}
	if ignoreCase {
		include, exclude = lowered(include), lowered(exclude)
	}
	var err error
	filter.includePatterns, err = compileGlobs(include)
	if err != nil {
		return nil, fmt.Errorf("failed to compile include patterns '%v': %v", include, err)
	}
	filter.excludePatterns, err = compileGlobs(exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to compile exclude patterns '%v': %v", exclude, err)
	}
	return filter, nil
}

func lowered(patterns []string) []string {
	res := make([]string, len(patterns))
	for i, pattern := range patterns {
		res[i] = strings.ToLower(pattern)
	}
	return res
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	patterns = expandPatternsIfNeeded(patterns)
	globs := make([]glob.Glob, len(patterns))
	for i, pattern := range patterns {
		compiled, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		globs[i] = compiled
	}
	return globs, nil
}

func matches(filePath string, patterns []glob.Glob) bool {
	for _, pattern := range patterns {
		if pattern.Match(filePath) {
			return true
		}
	}
	return false
}

// Match reports whether filePath is a scenario script that is included (when any
// include pattern is set) and not excluded.
func (filter *PathFilter) Match(filePath string) bool {
	if filter.ignoreCase {
		filePath = strings.ToLower(filePath)
	}
	if !strings.HasSuffix(filePath, ScenarioExtension) {
		return false
	}
	if len(filter.includePatterns) > 0 && !matches(filePath, filter.includePatterns) {
		return false
	}
	return !matches(filePath, filter.excludePatterns)
}
