// Package pathsep rewrites path separators to the host convention.
package pathsep

import (
	"os"
	"strings"
)

// Normalize returns path with every separator replaced by the one native to
// the running system.
func Normalize(path string) string {
	return NormalizeFor(path, os.PathSeparator)
}

// NormalizeFor returns path rewritten for a system whose separator is sep.
// Backslashes become slashes when sep is '/', slashes become backslashes when
// sep is '\\'. Any other separator leaves path untouched.
func NormalizeFor(path string, sep rune) string {
	switch sep {
	case '/':
		return strings.ReplaceAll(path, `\`, "/")
	case '\\':
		return strings.ReplaceAll(path, "/", `\`)
	default:
		return path
	}
}
