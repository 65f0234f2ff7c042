// Package assets provides the editable resource files that drive text
// transformation and correction: the LaTeX escape table, the abbreviation
// expansions, the correction whitelist, and the correction prompt.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in defaults)
//	    ├── FilesystemLoader  - loads from a resources directory on disk
//	    └── Resolver          - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in resource files compiled into the
// binary, so the tool works with no setup.
//
// FilesystemLoader lets users override individual files from a directory
// (--resources flag or ~/.config/docx2tex/), with path traversal protection
// and symlink resolution.
//
// Resolver is the loader the converter uses. It tries the filesystem first,
// falling back to embedded defaults when a file is absent. Overriding one
// file does not require copying the others.
//
// # Files
//
//	{basePath}/
//	├── escapes.yaml        # LaTeX escape table, applied in order
//	├── abbreviations.yaml  # informal shorthand → full phrase
//	├── whitelist.yaml      # terms the correction service must not touch
//	└── prompt.txt          # correction prompt template
//
// # Security
//
// Resource names are validated against the known file set.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
