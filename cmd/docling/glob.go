package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandGlobs expands patterns into a sorted-by-caller list of files
// relative to projectRoot. A pattern prefixed with "!" excludes matches
// instead of including them. Matches outside projectRoot are an error.
func ExpandGlobs(projectRoot string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	var includes, excludes []string
	for _, pattern := range patterns {
		if after, ok := strings.CutPrefix(pattern, "!"); ok {
			excludes = append(excludes, after)
		} else {
			includes = append(includes, pattern)
		}
	}
	if len(includes) == 0 {
		return nil, nil
	}

	fileSet := make(map[string]bool)
	for _, pattern := range includes {
		matches, err := expandGlob(projectRoot, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to expand glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			fileSet[match] = true
		}
	}
	for _, pattern := range excludes {
		matches, err := expandGlob(projectRoot, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to expand exclusion glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			delete(fileSet, match)
		}
	}

	files := make([]string, 0, len(fileSet))
	for file := range fileSet {
		files = append(files, file)
	}
	return files, nil
}

// expandGlob expands one pattern relative to projectRoot, returning paths
// relative to projectRoot and rejecting matches outside it.
func expandGlob(projectRoot, pattern string) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(projectRoot, pattern)
	}

	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, err
	}

	absProjectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute project root: %w", err)
	}

	var results []string
	for _, match := range matches {
		absMatch, err := filepath.Abs(match)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for %q: %w", match, err)
		}
		info, err := os.Stat(absMatch)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		relPath, err := filepath.Rel(absProjectRoot, absMatch)
		if err != nil {
			return nil, fmt.Errorf("failed to get relative path for %q: %w", absMatch, err)
		}
		if strings.HasPrefix(relPath, "..") {
			return nil, fmt.Errorf("file %q is outside project root %q", absMatch, absProjectRoot)
		}
		results = append(results, relPath)
	}
	return results, nil
}
