package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds output destination and mode flags.
type outputFlags struct {
	dir     string
	texOnly bool
}

// correctionFlags holds correction service flags.
type correctionFlags struct {
	disabled bool
}

// resourceFlags holds resource override flags.
type resourceFlags struct {
	dir string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     outputFlags
	correction correctionFlags
	resources  resourceFlags
	workers    int
	recursive  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output-dir", "o", "", "output root (LaTeX/ and PDF/ are created inside)")
	fs.BoolVar(&f.texOnly, "tex-only", false, "write the .tex source and skip compilation")
}

// addCorrectionFlags adds correction flags to a FlagSet.
func addCorrectionFlags(fs *flag.FlagSet, f *correctionFlags) {
	fs.BoolVar(&f.disabled, "no-correction", false, "skip the spelling correction service")
}

// addResourceFlags adds resource override flags to a FlagSet.
func addResourceFlags(fs *flag.FlagSet, f *resourceFlags) {
	fs.StringVarP(&f.dir, "resources", "r", "", "directory overriding the embedded resource files")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.recursive, "recursive", false, "descend into subdirectories of a directory input")

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addCorrectionFlags(fs, &f.correction)
	addResourceFlags(fs, &f.resources)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
