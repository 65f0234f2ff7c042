// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"runtime"
	"strings"
)

// ForLatexNotFound returns install suggestions when no LaTeX engine is on PATH.
func ForLatexNotFound() string {
	switch runtime.GOOS {
	case "windows":
		return format("install MiKTeX from https://miktex.org/")
	case "darwin":
		return format("install MacTeX from https://www.tug.org/mactex/")
	default:
		return format("install TeX Live, e.g. apt-get install texlive-full")
	}
}

// ForMissingPackages returns a hint listing LaTeX packages the engine could
// not find.
func ForMissingPackages(packages []string) string {
	if len(packages) == 0 {
		return ""
	}
	return format("install LaTeX packages: " + strings.Join(packages, ", "))
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/docx2tex/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/docx2tex) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/docx2tex") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForCorrectionKey returns a hint for a missing correction API key.
func ForCorrectionKey(envVar string) string {
	if envVar == "" {
		return ""
	}
	return format("set " + envVar + " or disable correction with --no-correction")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForResourcesNotFound returns hints when an override resources directory
// does not contain the expected files.
func ForResourcesNotFound(expected []string) string {
	if len(expected) == 0 {
		return ""
	}
	return format("expected files: " + strings.Join(expected, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
