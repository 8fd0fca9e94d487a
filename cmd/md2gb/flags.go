package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// conversionFlags holds flags that tune the substitution engine.
type conversionFlags struct {
	windowSize     int
	windowSizeSet  bool // --window-size given explicitly (0 is a valid value)
	preserve       []string
	refreshRegions bool
	verify         bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	workers    int
	dryRun     bool
	check      bool
	conversion conversionFlags
}

// rulesFlags holds flags for the rules command.
type rulesFlags struct {
	config string
	format string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "list every change")
}

// addConversionFlags adds engine tuning flags to a FlagSet.
func addConversionFlags(fs *flag.FlagSet, f *conversionFlags) {
	fs.IntVar(&f.windowSize, "window-size", 0, "characters searched for preserve phrases on each side (default 100)")
	// StringArray, not StringSlice: phrases are regexps and may contain commas
	fs.StringArrayVar(&f.preserve, "preserve", nil, "extra preserve phrase (regexp, repeatable)")
	fs.BoolVar(&f.refreshRegions, "refresh-regions", false, "rescan protected regions before every rule")
	fs.BoolVar(&f.verify, "verify", false, "fail a file if code or link targets would change")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "show what would change without writing")
	fs.BoolVar(&f.check, "check", false, "dry run that fails when any file would change")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addConversionFlags(fs, &f.conversion)

	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.conversion.windowSizeSet = fs.Changed("window-size")
	if f.check {
		f.dryRun = true
	}
	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrInvalidFlags)
	}

	return f, fs.Args(), nil
}

// parseRulesFlags parses rules command flags.
func parseRulesFlags(args []string, usage io.Writer) (*rulesFlags, error) {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &rulesFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.format, "format", "f", "text", "output format: text, yaml")

	fs.Usage = func() { printRulesUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrInvalidFlags, fs.Arg(0))
	}

	return f, nil
}
