package docx2tex

import "errors"

// Sentinel errors for library operations.
var (
	// Request validation errors.
	ErrEmptyInputPath   = errors.New("input path cannot be empty")
	ErrInvalidExtension = errors.New("input must be a .docx file")

	// Input and output errors.
	ErrOpenDocument  = errors.New("cannot open document")
	ErrNoWritableDir = errors.New("no writable output directory")
	ErrWriteOutput   = errors.New("failed to write output")

	// Configuration errors.
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrResources      = errors.New("failed to load resources")

	// Compilation errors. ErrCompile still leaves the .tex source behind;
	// the Result returned alongside it carries the path.
	ErrCompile          = errors.New("LaTeX compilation failed")
	ErrCompilerNotFound = errors.New("no LaTeX engine found")

	// ErrPipeline wraps a recovered panic from the conversion pipeline.
	ErrPipeline = errors.New("internal pipeline error")

	// ErrPoolClosed is returned by Acquire after the pool is closed.
	ErrPoolClosed = errors.New("converter pool is closed")
)
