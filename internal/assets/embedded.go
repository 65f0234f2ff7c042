package assets

import (
	"embed"
	"fmt"
)

//go:embed data/*
var defaults embed.FS

// EmbeddedLoader loads resource files embedded at compile time.
// Implements Loader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// Load returns an embedded resource file by name.
func (e *EmbeddedLoader) Load(name string) ([]byte, error) {
	if err := ValidateResourceName(name); err != nil {
		return nil, err
	}

	content, err := defaults.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, name)
	}

	return content, nil
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
