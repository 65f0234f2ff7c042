package main

import (
	"context"
	"fmt"
	"log/slog"

	docx2tex "github.com/alnah/go-docx2tex"
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, pool Pool, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	if len(positional) == 0 {
		return ErrNoInput
	}

	files, err := discoverFiles(positional[0], flags.recursive)
	if err != nil {
		return err
	}

	base := docx2tex.Request{
		OutputDir:    flags.output.dir,
		TeXOnly:      flags.output.texOnly,
		NoCorrection: flags.correction.disabled,
	}

	results := convertBatch(ctx, pool, files, base)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		// Surface the first error so the exit code reflects what went wrong.
		for _, r := range results {
			if r.Err != nil {
				return fmt.Errorf("%d conversion(s) failed: %w", failed, r.Err)
			}
		}
	}
	return nil
}

// converterOptions maps CLI flags to the library options shared by every
// converter in the pool.
func converterOptions(flags *convertFlags, logger *slog.Logger) []docx2tex.Option {
	opts := []docx2tex.Option{docx2tex.WithLogger(logger)}
	if flags.common.config != "" {
		opts = append(opts, docx2tex.WithConfigFile(flags.common.config))
	}
	if flags.output.dir != "" {
		opts = append(opts, docx2tex.WithOutputDir(flags.output.dir))
	}
	if flags.resources.dir != "" {
		opts = append(opts, docx2tex.WithResourcesDir(flags.resources.dir))
	}
	if flags.correction.disabled {
		opts = append(opts, docx2tex.WithoutCorrection())
	}
	if flags.output.texOnly {
		opts = append(opts, docx2tex.WithoutPDF())
	}
	return opts
}

// cliLogger builds the logger backing library diagnostics. Verbose lowers
// the level to Debug and quiet raises it to Error; the default keeps
// warnings so the CLI's own prints stay the primary channel.
func cliLogger(flags *convertFlags, env *Environment) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case flags.common.quiet:
		level = slog.LevelError
	case flags.common.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: level}))
}
