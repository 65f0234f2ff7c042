// Package textex compiles generated LaTeX sources to PDF with a local
// engine such as pdflatex or lualatex.
//
// Compilation is resilient by design: engines are tried in order, a
// missing-package failure amends the document preamble and retries, and a
// successful build gets a second pass so cross-references resolve.
// Auxiliary build files are cleaned up afterwards.
package textex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-docx2tex/internal/fileutil"
	"github.com/alnah/go-docx2tex/internal/hints"
	"github.com/alnah/go-docx2tex/internal/process"
)

// Sentinel errors for compilation failures.
var (
	ErrNoEngines      = errors.New("textex: no engines configured")
	ErrEngineNotFound = errors.New("textex: no LaTeX engine installed")
	ErrCompileFailed  = errors.New("textex: compilation failed")
	ErrNoPDF          = errors.New("textex: engine reported success but produced no PDF")
)

// missingStyPattern matches the log line LaTeX emits for an absent style
// file.
var missingStyPattern = regexp.MustCompile("File `([^`]+)\\.sty' not found")

// auxiliaryExtensions lists the build byproducts removed after compiling.
var auxiliaryExtensions = []string{".aux", ".log", ".out", ".toc", ".fls", ".fdb_latexmk"}

const nonstopFlag = "-interaction=nonstopmode"

// PDFCompiler defines the contract for turning a .tex file into a PDF next
// to it.
type PDFCompiler interface {
	Compile(ctx context.Context, texPath string) (string, error)
}

// Options carries the compilation settings, normally taken from
// configuration.
type Options struct {
	// Engines are tried in order; a missing binary is skipped, a failing
	// run falls through to the next engine.
	Engines []string

	// MaxRetries bounds how many amend-and-recompile rounds a
	// missing-package failure may trigger.
	MaxRetries int
}

// Compiler shells out to LaTeX engines through a process runner.
type Compiler struct {
	runner  process.Runner
	engines []string
	retries int
	logger  *slog.Logger
}

// NewCompiler returns a Compiler. A nil logger falls back to slog.Default.
func NewCompiler(runner process.Runner, opts Options, logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{
		runner:  runner,
		engines: opts.Engines,
		retries: opts.MaxRetries,
		logger:  logger,
	}
}

// Compile builds texPath into a PDF in the same directory and returns the
// PDF path. The engine runs with user interaction disabled so a broken
// document cannot hang the build. When every engine fails and the combined
// output names missing style files, the preamble is amended with the
// matching \usepackage lines and compilation retries, at most MaxRetries
// times. After a successful build the engine runs once more so
// cross-references resolve, then auxiliary files are removed.
func (c *Compiler) Compile(ctx context.Context, texPath string) (string, error) {
	if len(c.engines) == 0 {
		return "", ErrNoEngines
	}

	dir := filepath.Dir(texPath)
	name := filepath.Base(texPath)
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	c.logger.Info("compiling LaTeX document", slog.String("file", name))

	var combined strings.Builder
	var notFoundErr error
	engine := ""
	lastRan := ""

	for _, eng := range c.engines {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		stdout, stderr, err := c.runner.Run(ctx, dir, eng, nonstopFlag, name)
		if errors.Is(err, exec.ErrNotFound) {
			c.logger.Warn("LaTeX engine not installed, trying next", slog.String("engine", eng))
			notFoundErr = err
			continue
		}

		lastRan = eng
		combined.WriteString(stdout)
		combined.WriteString("\n")
		combined.WriteString(stderr)
		combined.WriteString("\n")

		if err == nil {
			engine = eng
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		c.logger.Warn("LaTeX engine failed", slog.String("engine", eng), slog.Any("error", err))
	}

	if lastRan == "" {
		return "", fmt.Errorf("%w: %v%s", ErrEngineNotFound, notFoundErr, hints.ForLatexNotFound())
	}

	if engine == "" {
		var err error
		engine, err = c.retryWithMissingPackages(ctx, texPath, dir, name, lastRan, &combined)
		if err != nil {
			return "", err
		}
	}

	// Second pass so the table of contents and references settle.
	if _, _, err := c.runner.Run(ctx, dir, engine, nonstopFlag, name); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		c.logger.Debug("second pass failed", slog.Any("error", err))
	}

	c.cleanAuxiliary(dir, stem)

	pdfPath := filepath.Join(dir, stem+".pdf")
	if !fileutil.FileExists(pdfPath) {
		return "", fmt.Errorf("%w: %s", ErrNoPDF, pdfPath)
	}
	return pdfPath, nil
}

// retryWithMissingPackages amends the preamble with the style files the
// combined output names and recompiles with the engine that produced that
// output. It returns the engine that eventually succeeded.
func (c *Compiler) retryWithMissingPackages(
	ctx context.Context,
	texPath, dir, name, engine string,
	combined *strings.Builder,
) (string, error) {
	for attempt := 1; attempt <= c.retries; attempt++ {
		missing := missingPackages(combined.String())
		if len(missing) == 0 {
			break
		}

		added, err := amendPreamble(texPath, missing)
		if err != nil {
			return "", fmt.Errorf("textex: amending preamble: %w", err)
		}
		if added == 0 {
			// Everything named is already in the preamble; retrying cannot
			// change the outcome.
			break
		}

		c.logger.Info("added missing packages, retrying compilation",
			slog.Any("packages", missing),
			slog.Int("attempt", attempt))

		stdout, stderr, runErr := c.runner.Run(ctx, dir, engine, nonstopFlag, name)
		combined.WriteString(stdout)
		combined.WriteString("\n")
		combined.WriteString(stderr)
		combined.WriteString("\n")

		if runErr == nil {
			return engine, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
	}

	if missing := missingPackages(combined.String()); len(missing) > 0 {
		return "", fmt.Errorf("%w: missing packages %v%s",
			ErrCompileFailed, missing, hints.ForMissingPackages(missing))
	}
	return "", fmt.Errorf("%w:\n%s", ErrCompileFailed, lastLines(combined.String(), 12))
}

// cleanAuxiliary removes build byproducts, best effort.
func (c *Compiler) cleanAuxiliary(dir, stem string) {
	for _, ext := range auxiliaryExtensions {
		path := filepath.Join(dir, stem+ext)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			c.logger.Debug("could not remove auxiliary file",
				slog.String("path", path), slog.Any("error", err))
		}
	}
}

// missingPackages extracts the style file names the engine reported as
// absent, deduplicated in encounter order and stripped of any path prefix.
func missingPackages(output string) []string {
	var packages []string
	seen := make(map[string]bool)
	for _, m := range missingStyPattern.FindAllStringSubmatch(output, -1) {
		pkg := m[1]
		if i := strings.LastIndex(pkg, "/"); i >= 0 {
			pkg = pkg[i+1:]
		}
		if pkg == "" || seen[pkg] {
			continue
		}
		seen[pkg] = true
		packages = append(packages, pkg)
	}
	return packages
}

// amendPreamble inserts \usepackage lines for the given packages right
// before \begin{document}, skipping lines already present. It reports how
// many lines it added.
func amendPreamble(texPath string, packages []string) (int, error) {
	data, err := os.ReadFile(texPath)
	if err != nil {
		return 0, err
	}
	content := string(data)

	const marker = "\\begin{document}"
	idx := strings.Index(content, marker)
	if idx < 0 {
		return 0, fmt.Errorf("no %s in %s", marker, texPath)
	}

	var insert strings.Builder
	added := 0
	for _, pkg := range packages {
		line := "\\usepackage{" + pkg + "}"
		if strings.Contains(content, line) {
			continue
		}
		insert.WriteString(line)
		insert.WriteString("\n")
		added++
	}
	if added == 0 {
		return 0, nil
	}

	amended := content[:idx] + insert.String() + content[idx:]
	if err := os.WriteFile(texPath, []byte(amended), 0o644); err != nil {
		return 0, err
	}
	return added, nil
}

// lastLines returns the trailing n non-empty lines of output.
func lastLines(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	keep := make([]string, 0, n)
	for i := len(lines) - 1; i >= 0 && len(keep) < n; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		keep = append([]string{line}, keep...)
	}
	return strings.Join(keep, "\n")
}

// Compile-time interface compliance check.
var _ PDFCompiler = (*Compiler)(nil)
