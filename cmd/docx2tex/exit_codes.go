package main

import (
	"errors"
	"os"

	docx2tex "github.com/alnah/go-docx2tex"
)

// Exit codes for the docx2tex CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitLaTeX   = 4 // TeX engine missing or compilation failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// TeX engine errors (exit 4)
	if errors.Is(err, docx2tex.ErrCompilerNotFound) ||
		errors.Is(err, docx2tex.ErrCompile) {
		return ExitLaTeX
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, docx2tex.ErrOpenDocument) ||
		errors.Is(err, docx2tex.ErrNoWritableDir) ||
		errors.Is(err, docx2tex.ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, docx2tex.ErrConfigNotFound) ||
		errors.Is(err, docx2tex.ErrInvalidConfig) ||
		errors.Is(err, docx2tex.ErrResources) ||
		errors.Is(err, docx2tex.ErrEmptyInputPath) ||
		errors.Is(err, docx2tex.ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
