package filter

import (
	"path/filepath"
	"strings"

	"github.com/oshokin/project-archiver/internal/domain/archive"
)

// globMeta lists characters that make a rule look like a shell pattern.
const globMeta = "*?["

// PathFilter rejects paths containing any of its exclusion rules.
// It is immutable after construction and safe for concurrent use.
type PathFilter struct {
	// rules are stored lowercased, in the order they were given.
	rules []archive.ExclusionRule
}

// New builds a PathFilter over the given rules. Empty rules are dropped
// because an empty substring would match every path.
func New(rules []archive.ExclusionRule) *PathFilter {
	normalized := make([]archive.ExclusionRule, 0, len(rules))

	for _, rule := range rules {
		if rule == "" {
			continue
		}

		normalized = append(normalized, archive.ExclusionRule(strings.ToLower(string(rule))))
	}

	return &PathFilter{rules: normalized}
}

// Excluded reports whether path contains any rule after normalization.
func (f *PathFilter) Excluded(path string) bool {
	normalized := Normalize(path)

	for _, rule := range f.rules {
		if strings.Contains(normalized, string(rule)) {
			return true
		}
	}

	return false
}

// MatchingRule returns the first rule that excludes path, if any.
func (f *PathFilter) MatchingRule(path string) (archive.ExclusionRule, bool) {
	normalized := Normalize(path)

	for _, rule := range f.rules {
		if strings.Contains(normalized, string(rule)) {
			return rule, true
		}
	}

	return "", false
}

// Rules returns a copy of the normalized rules.
func (f *PathFilter) Rules() []archive.ExclusionRule {
	return append([]archive.ExclusionRule(nil), f.rules...)
}

// GlobLikeRules returns the rules containing shell pattern characters.
// They are still matched literally.
func (f *PathFilter) GlobLikeRules() []archive.ExclusionRule {
	var result []archive.ExclusionRule

	for _, rule := range f.rules {
		if strings.ContainsAny(string(rule), globMeta) {
			result = append(result, rule)
		}
	}

	return result
}

// Normalize lowercases path and converts both backslashes and the OS separator to "/".
func Normalize(path string) string {
	path = strings.ToLower(path)
	path = strings.ReplaceAll(path, `\`, "/")

	return filepath.ToSlash(path)
}
