package main

// Notes:
// - exitCodeFor: we test all sentinel errors from docx2tex and the CLI package,
//   plus wrapped errors to verify errors.Is() chain works correctly.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	docx2tex "github.com/alnah/go-docx2tex"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// LaTeX errors (exit 4)
		{"compiler not found", docx2tex.ErrCompilerNotFound, ExitLaTeX},
		{"compilation failed", docx2tex.ErrCompile, ExitLaTeX},
		{"wrapped compile failure", fmt.Errorf("1 conversion(s) failed: %w", docx2tex.ErrCompile), ExitLaTeX},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"open document", docx2tex.ErrOpenDocument, ExitIO},
		{"no writable dir", docx2tex.ErrNoWritableDir, ExitIO},
		{"write output", docx2tex.ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no files", ErrNoFiles, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", docx2tex.ErrConfigNotFound, ExitUsage},
		{"invalid config", docx2tex.ErrInvalidConfig, ExitUsage},
		{"resources", docx2tex.ErrResources, ExitUsage},
		{"empty input path", docx2tex.ErrEmptyInputPath, ExitUsage},
		{"library extension check", docx2tex.ErrInvalidExtension, ExitUsage},
		{"cli extension check", ErrInvalidExtension, ExitUsage},
		{"invalid worker count", ErrInvalidWorkerCount, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"wrapped invalid config", fmt.Errorf("loading: %w", docx2tex.ErrInvalidConfig), ExitUsage},

		// General errors (exit 1)
		{"pipeline error", docx2tex.ErrPipeline, ExitGeneral},
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := exitCodeFor(tt.err)
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix convention compliance
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitLaTeX}
	seen := make(map[int]bool)
	for _, code := range codes {
		if code < 0 || code >= 126 {
			t.Errorf("exit code %d outside the portable range [0, 126)", code)
		}
		if seen[code] {
			t.Errorf("exit code %d is used twice", code)
		}
		seen[code] = true
	}
}
