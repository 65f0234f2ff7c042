package assets

import (
	"fmt"
	"slices"
)

// ValidateResourceName checks that a name refers to a known resource file.
// Anything else is rejected, which also rules out path separators and
// traversal sequences.
func ValidateResourceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidResourceName)
	}
	if !slices.Contains(KnownFiles(), name) {
		return fmt.Errorf("%w: %q", ErrInvalidResourceName, name)
	}
	return nil
}
