package memoizer

import (
	"path/filepath"
	"strings"
)

// RelevanceFilter excludes paths under irrelevant directory prefixes.
// Matching is a plain string prefix test on normalized absolute paths, so
// "/lib" also excludes "/lib64".
type RelevanceFilter struct {
	prefixes []string
}

// NewRelevanceFilter creates a filter for the given prefixes.
// Prefixes are normalized like paths, which drops any trailing separator:
// "/usr/lib/" excludes "/usr/lib64" too.
func NewRelevanceFilter(prefixes []string) *RelevanceFilter {
	normalized := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		normalized = append(normalized, normalize(p))
	}
	return &RelevanceFilter{prefixes: normalized}
}

// IsRelevant reports whether path should be tracked as a dependency.
func (f *RelevanceFilter) IsRelevant(path string) bool {
	path = normalize(path)
	for _, prefix := range f.prefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// normalize returns the clean absolute form of path.
func normalize(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
