package docx2tex

import (
	"os"
	"path/filepath"

	"github.com/alnah/go-docx2tex/internal/assets"
)

// ResourceFiles returns the names of the editable resource files a
// resources directory may override: the LaTeX escape table, the
// abbreviation expansions, the correction whitelist, and the correction
// prompt. Files absent from the directory fall back to the embedded
// defaults.
func ResourceFiles() []string {
	return assets.KnownFiles()
}

// DefaultResourcesDir returns the user-level resources directory searched
// when no explicit directory is configured, typically
// ~/.config/docx2tex.
func DefaultResourcesDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "docx2tex"), nil
}
