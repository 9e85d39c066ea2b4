package treestat

import (
	"path/filepath"
	"regexp"
	"strings"
)

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// shouldDescend reports whether a directory found at depth may be entered.
// A maxDepth of 0 means unlimited.
func shouldDescend(depth, maxDepth int) bool {
	return maxDepth == 0 || depth < maxDepth
}

// shouldExcludeByPattern checks if path matches any exclusion regex.
func shouldExcludeByPattern(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}

	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// matchSuffix returns the first suffix in order that name ends with.
// With no suffixes every name matches. The test is a plain string suffix,
// so "txt" matches "report.txt" and "subtxt" alike.
func matchSuffix(name string, suffixes []string) (string, bool) {
	if len(suffixes) == 0 {
		return "", true
	}

	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return suffix, true
		}
	}

	return "", false
}

// compilePatterns compiles the exclusion regexes.
func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, &PatternError{Pattern: p, Err: err}
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}
