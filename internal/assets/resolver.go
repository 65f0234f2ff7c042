package assets

import "errors"

// Resolver combines filesystem and embedded loaders with fallback logic.
// When a custom directory is configured, it is tried first; files absent
// there fall back to the embedded defaults, so users can override a single
// resource without copying the rest.
type Resolver struct {
	custom   Loader // nil if no custom path configured
	embedded Loader
}

// NewResolver creates a Resolver.
// If customBasePath is empty, only embedded defaults are used.
// Returns error if customBasePath is set but invalid.
func NewResolver(customBasePath string) (*Resolver, error) {
	resolver := &Resolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// Load returns a resource file, trying the custom loader first if available.
func (r *Resolver) Load(name string) ([]byte, error) {
	if r.custom == nil {
		return r.embedded.Load(name)
	}

	content, err := r.custom.Load(name)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !isNotFoundError(err) {
		return nil, err
	}

	return r.embedded.Load(name)
}

// HasCustomLoader returns true if a custom resource directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// isNotFoundError checks if the error indicates the resource was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrResourceNotFound)
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
