package docx2tex

import "log/slog"

// Request describes one conversion.
type Request struct {
	// InputPath is the .docx file to convert (required).
	InputPath string

	// OutputDir overrides the configured output root for this conversion.
	// Empty means use the converter's configuration.
	OutputDir string

	// TeXOnly stops after writing the .tex source, skipping compilation.
	TeXOnly bool

	// NoCorrection skips the external correction service for this
	// conversion even when the converter has it enabled.
	NoCorrection bool
}

// Result carries the paths produced by one conversion.
type Result struct {
	// TeXPath is the written LaTeX source.
	TeXPath string

	// PDFPath is the compiled document, or empty when compilation was
	// skipped or failed.
	PDFPath string

	// Images lists the media files extracted next to the LaTeX source.
	Images []string

	// Corrected reports whether the correction service ran.
	Corrected bool
}

// converterConfig holds option values until NewConverter resolves them.
type converterConfig struct {
	configFile   string
	outputDir    string
	resourcesDir string
	noCorrection bool
	noPDF        bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithConfigFile loads configuration from the given YAML file path or bare
// config name (searched in the working directory and ~/.config/docx2tex/).
func WithConfigFile(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.configFile = nameOrPath
	}
}

// WithOutputDir sets the preferred output root. It still has to pass the
// writability probe; see Convert.
func WithOutputDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.outputDir = dir
	}
}

// WithResourcesDir overrides individual resource files (escape table,
// abbreviations, whitelist, prompt) from the given directory. Files absent
// there fall back to the embedded defaults.
func WithResourcesDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.resourcesDir = dir
	}
}

// WithLogger sets the logger used by all pipeline stages.
// nil keeps slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithoutCorrection disables the external correction service regardless of
// configuration.
func WithoutCorrection() Option {
	return func(c *Converter) {
		c.cfg.noCorrection = true
	}
}

// WithoutPDF disables compilation regardless of configuration; conversions
// stop after writing the .tex source.
func WithoutPDF() Option {
	return func(c *Converter) {
		c.cfg.noPDF = true
	}
}
