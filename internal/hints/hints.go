// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Suggest the first path under the user config directory
	for _, p := range searchedPaths {
		if filepath.Base(filepath.Dir(p)) == "go-md2gb" {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForInvalidUTF8 returns a hint for documents that are not UTF-8 encoded.
func ForInvalidUTF8() string {
	return format("re-encode the file as UTF-8 (e.g., iconv -t UTF-8 in.md > out.md)")
}

// ForInvalidPattern returns a hint for preserve phrases or followedBy
// patterns that fail to compile.
func ForInvalidPattern() string {
	return format(`patterns use RE2 syntax; escape literal characters such as \. \( \[`)
}

// ForProtectedContent returns hints for conversions rejected by --verify.
func ForProtectedContent(refreshEnabled bool) string {
	var hints []string
	if !refreshEnabled {
		hints = append(hints, "retry with --refresh-regions")
	}
	hints = append(hints, "exclude the word with --preserve")
	return formatHints(hints)
}

// ForPendingChanges returns a hint after --check found files to convert.
func ForPendingChanges() string {
	return format("run without --check to apply the changes")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
