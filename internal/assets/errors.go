package assets

import "errors"

// Sentinel errors for resource operations.
var (
	// ErrResourceNotFound indicates the requested resource file does not exist.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrInvalidResourceName indicates the name is not one of the known
	// resource files.
	ErrInvalidResourceName = errors.New("invalid resource name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrResourceRead indicates an I/O error occurred while reading a resource file.
	ErrResourceRead = errors.New("failed to read resource")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrMalformedResource indicates a resource file parsed but failed validation.
	ErrMalformedResource = errors.New("malformed resource")
)
