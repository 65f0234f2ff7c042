package docx2tex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-docx2tex/internal/assets"
	"github.com/alnah/go-docx2tex/internal/config"
	"github.com/alnah/go-docx2tex/internal/correct"
	"github.com/alnah/go-docx2tex/internal/docxio"
	"github.com/alnah/go-docx2tex/internal/fileutil"
	"github.com/alnah/go-docx2tex/internal/pipeline"
	"github.com/alnah/go-docx2tex/internal/process"
	"github.com/alnah/go-docx2tex/internal/textex"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.DocumentWalker    = (*pipeline.Walker)(nil)
	_ pipeline.LaTeXRenderer     = (*pipeline.Renderer)(nil)
	_ correct.ParagraphCorrector = (*correct.Service)(nil)
	_ textex.PDFCompiler         = (*textex.Compiler)(nil)
)

// Converter orchestrates the document-to-LaTeX conversion pipeline.
// Create with NewConverter, use Convert per document, and Close when done.
// A Converter is reusable but not safe for concurrent Convert calls; use
// ConverterPool for parallel batches.
type Converter struct {
	cfg    converterConfig
	config *config.Config
	logger *slog.Logger

	load      func(path string) (*docxio.Document, error)
	walker    pipeline.DocumentWalker
	renderer  pipeline.LaTeXRenderer
	corrector correct.ParagraphCorrector // nil when correction is disabled
	compiler  textex.PDFCompiler         // nil when compilation is disabled
	closeIdle func()
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithConfigFile, WithOutputDir,
// WithResourcesDir). Returns an error if configuration or resource loading
// fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{load: docxio.Open}

	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	cfg := config.DefaultConfig()
	if c.cfg.configFile != "" {
		loaded, err := config.LoadConfig(c.cfg.configFile)
		if err != nil {
			return nil, convertConfigError(err)
		}
		cfg = loaded
	}
	if c.cfg.outputDir != "" {
		cfg.OutputDir = c.cfg.outputDir
	}
	if c.cfg.resourcesDir != "" {
		cfg.ResourcesDir = c.cfg.resourcesDir
	}
	if c.cfg.noCorrection {
		cfg.Correction.Enabled = false
	}
	if c.cfg.noPDF {
		cfg.Compile.Enabled = false
	}
	c.config = cfg

	res, err := loadResources(cfg.ResourcesDir)
	if err != nil {
		return nil, err
	}
	sanitizer := pipeline.NewSanitizer(res)

	// Create stages if not injected (e.g., by tests).
	if c.walker == nil {
		c.walker = pipeline.NewWalker(sanitizer, c.logger)
	}
	if c.renderer == nil {
		c.renderer = pipeline.NewRenderer(sanitizer, pipeline.RendererOptions{
			Packages: cfg.LaTeX.Packages,
			Settings: cfg.LaTeX.Settings,
			LogoPath: cfg.LaTeX.LogoPath,
		}, c.logger)
	}
	if c.corrector == nil && cfg.Correction.Enabled {
		if err := c.initCorrector(res); err != nil {
			return nil, err
		}
	}
	if c.compiler == nil && cfg.Compile.Enabled {
		c.compiler = textex.NewCompiler(&process.ExecRunner{}, textex.Options{
			Engines:    cfg.Compile.Engines,
			MaxRetries: cfg.Compile.MaxRetries,
		}, c.logger)
	}

	return c, nil
}

// loadResources resolves the resource files, trying the override directory
// first when set, then the user config directory, then embedded defaults.
func loadResources(resourcesDir string) (*assets.Resources, error) {
	if resourcesDir == "" {
		if dir, err := DefaultResourcesDir(); err == nil && fileutil.DirExists(dir) {
			resourcesDir = dir
		}
	}

	resolver, err := assets.NewResolver(resourcesDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResources, err)
	}
	res, err := assets.LoadResources(resolver)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResources, err)
	}
	return res, nil
}

// initCorrector wires the correction service when an API key is available.
// A missing key disables correction with a warning instead of failing:
// the conversion result is still useful without it.
func (c *Converter) initCorrector(res *assets.Resources) error {
	cor := c.config.Correction

	key := os.Getenv(cor.APIKeyEnv)
	if key == "" {
		c.logger.Warn("correction disabled: API key not set",
			slog.String("env", cor.APIKeyEnv))
		return nil
	}

	client, err := correct.NewCohereClient(cor.BaseURL, cor.Model, key,
		time.Duration(cor.TimeoutSeconds)*time.Second)
	if err != nil {
		return fmt.Errorf("%w: correction client: %v", ErrInvalidConfig, err)
	}

	c.corrector = correct.NewService(client, correct.Options{
		Prompt:    res.Prompt,
		Whitelist: res.Whitelist,
		BatchSize: cor.BatchSize,
		Separator: cor.Separator,
	}, c.logger)
	c.closeIdle = client.Close
	return nil
}

// Convert runs the full pipeline for one document. The context is checked
// between stages and passed to the correction call and the compile
// subprocess.
//
// When compilation fails, the returned error wraps ErrCompile (or
// ErrCompilerNotFound) and the Result is still non-nil with TeXPath set:
// the written source remains usable.
//
// Recovers from internal panics to prevent crashes from propagating to
// callers.
func (c *Converter) Convert(ctx context.Context, req Request) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrPipeline, r)
		}
	}()

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	src, err := c.load(req.InputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenDocument, err)
	}

	root, err := c.resolveOutputRoot(req.OutputDir)
	if err != nil {
		return nil, err
	}
	layout, err := ensureLayout(root)
	if err != nil {
		return nil, err
	}

	var images map[string]string
	if src.HasImages() {
		images, err = src.ExtractImages(layout.imagesDir)
		if err != nil {
			c.logger.Warn("image extraction failed, continuing without images",
				slog.Any("error", err))
			images = nil
		}
	}

	name := documentName(req.InputPath)

	doc := c.walker.Walk(ctx, src, name, images)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	corrected := false
	if c.corrector != nil && !req.NoCorrection && len(doc.CorrectionQueue) > 0 {
		// The service degrades to unchanged text on API failures; only
		// context errors come back.
		if err := c.corrector.CorrectParagraphs(ctx, doc.CorrectionQueue); err != nil {
			return nil, err
		}
		corrected = true
	}

	source := c.renderer.Render(ctx, doc)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	texPath := filepath.Join(layout.texDir, name+".tex")
	if err := os.WriteFile(texPath, []byte(source), 0o644); err != nil { // #nosec G306 -- LaTeX source, not a secret
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	c.logger.Info("wrote LaTeX source", slog.String("path", texPath))

	res := &Result{
		TeXPath:   texPath,
		Images:    sortedValues(images),
		Corrected: corrected,
	}

	if c.compiler == nil || req.TeXOnly {
		return res, nil
	}

	pdf, err := c.compiler.Compile(ctx, texPath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return res, convertCompileError(err)
	}

	final := filepath.Join(layout.pdfDir, name+".pdf")
	if err := fileutil.MoveFile(pdf, final); err != nil {
		return res, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	res.PDFPath = final
	c.logger.Info("wrote PDF", slog.String("path", final))

	return res, nil
}

// Close releases resources held by the converter (idle HTTP connections of
// the correction client).
func (c *Converter) Close() error {
	if c.closeIdle != nil {
		c.closeIdle()
	}
	return nil
}

// validateRequest checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Request
// manually. CLI users have their paths validated earlier during argument
// handling. Both paths converge here.
func validateRequest(req Request) error {
	if req.InputPath == "" {
		return ErrEmptyInputPath
	}
	if ext := filepath.Ext(req.InputPath); !strings.EqualFold(ext, ".docx") {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// documentName is the input file name without its extension; it names the
// output files and feeds the page header.
func documentName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// resolveOutputRoot probes candidate output roots in priority order and
// returns the first writable one: the per-request override, the configured
// directory, the executable's directory, the working directory, the user's
// Documents folder, and finally the system temp directory.
func (c *Converter) resolveOutputRoot(override string) (string, error) {
	candidates := []string{override, c.config.OutputDir}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Dir(exe))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, cwd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, "Documents", "PV_Convertis"))
	}
	candidates = append(candidates, filepath.Join(os.TempDir(), "docx2tex"))

	root, err := fileutil.ProbeWritableDir(candidates)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoWritableDir, err)
	}
	c.logger.Debug("output root resolved", slog.String("dir", root))
	return root, nil
}

// outputLayout is the directory triple every conversion writes into.
type outputLayout struct {
	texDir    string
	imagesDir string
	pdfDir    string
}

func ensureLayout(root string) (outputLayout, error) {
	l := outputLayout{
		texDir: filepath.Join(root, "LaTeX"),
		pdfDir: filepath.Join(root, "PDF"),
	}
	l.imagesDir = filepath.Join(l.texDir, "images")

	for _, dir := range []string{l.texDir, l.imagesDir, l.pdfDir} {
		if err := fileutil.EnsureDir(dir); err != nil {
			return outputLayout{}, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	return l, nil
}

// sortedValues flattens the relationship-id → path map into a stable list.
func sortedValues(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// convertConfigError maps internal config errors to public sentinels.
func convertConfigError(err error) error {
	if errors.Is(err, config.ErrConfigNotFound) {
		return fmt.Errorf("%w: %v", ErrConfigNotFound, err)
	}
	return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
}

// convertCompileError maps internal compile errors to public sentinels.
func convertCompileError(err error) error {
	if errors.Is(err, textex.ErrEngineNotFound) {
		return fmt.Errorf("%w: %v", ErrCompilerNotFound, err)
	}
	return fmt.Errorf("%w: %v", ErrCompile, err)
}
