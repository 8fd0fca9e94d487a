package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	md2gb "github.com/alnah/go-md2gb"
	"github.com/alnah/go-md2gb/internal/config"
	"github.com/alnah/go-md2gb/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrInvalidFlags       = errors.New("invalid flags")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrConversionFailed   = errors.New("conversion failed")
	ErrChangesPending     = errors.New("files need conversion")
)

// runConvertCmd parses flags, runs the conversion and maps the outcome to an
// exit code. SIGINT/SIGTERM cancel files that have not started yet.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		if !errors.Is(err, ErrInvalidFlags) {
			err = fmt.Errorf("%w: %v", ErrInvalidFlags, err)
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	// CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return withPatternHint(err)
	}

	conv, err := md2gb.NewConverter(buildConverterOptions(cfg)...)
	if err != nil {
		return withPatternHint(err)
	}

	paths, err := resolveInputPaths(positionalArgs, cfg.Input.DefaultDir)
	if err != nil {
		return err
	}

	files, err := discoverFiles(paths)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %v", ErrNoInput, paths)
	}

	workers := resolveWorkers(cfg.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", workers)
	}
	if !flags.common.quiet {
		printHeader(env, len(files), flags.dryRun)
	}

	start := env.Now()
	results := convertBatch(ctx, conv, files, batchOptions{workers: workers, dryRun: flags.dryRun})

	summary := printResults(results, reportOptions{
		quiet:          flags.common.quiet,
		verbose:        flags.common.verbose,
		dryRun:         flags.dryRun,
		refreshRegions: cfg.Conversion.RefreshRegions,
	}, env)

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Completed in %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d file(s) failed", ErrConversionFailed, summary.Failed)
	}
	if flags.check && summary.Pending > 0 {
		return fmt.Errorf("%w: %d file(s)%s", ErrChangesPending, summary.Pending, hints.ForPendingChanges())
	}

	return nil
}

// loadConfig loads the config named by the flag, falling back to
// MD2GB_CONFIG, or returns defaults when neither is set.
func loadConfig(flagConfig, envConfigPath string) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags over the config (CLI wins).
// --preserve appends to the configured extra phrases.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}

	conv := flags.conversion
	if conv.windowSizeSet {
		n := conv.windowSize
		cfg.Conversion.WindowSize = &n
	}
	if len(conv.preserve) > 0 {
		cfg.Conversion.ExtraPreservePhrases = append(cfg.Conversion.ExtraPreservePhrases, conv.preserve...)
	}
	if conv.refreshRegions {
		cfg.Conversion.RefreshRegions = true
	}
	if conv.verify {
		cfg.Conversion.Verify = true
	}
}

// buildConverterOptions translates the conversion section into library options.
// A nil list keeps the built-in table; a non-nil one replaces it.
func buildConverterOptions(cfg *config.Config) []md2gb.Option {
	conv := cfg.Conversion
	var opts []md2gb.Option

	if conv.WindowSize != nil {
		opts = append(opts, md2gb.WithWindowSize(*conv.WindowSize))
	}
	if conv.PreservePhrases != nil {
		opts = append(opts, md2gb.WithPreservePhrases(conv.PreservePhrases...))
	}
	if len(conv.ExtraPreservePhrases) > 0 {
		opts = append(opts, md2gb.WithExtraPreservePhrases(conv.ExtraPreservePhrases...))
	}
	if conv.Rules != nil {
		opts = append(opts, md2gb.WithRules(toRules(conv.Rules)...))
	}
	if len(conv.ExtraRules) > 0 {
		opts = append(opts, md2gb.WithExtraRules(toRules(conv.ExtraRules)...))
	}

	return append(opts,
		md2gb.WithRegionRefresh(conv.RefreshRegions),
		md2gb.WithVerify(conv.Verify),
	)
}

// toRules converts YAML rules to library rules.
func toRules(rules []config.RuleConfig) []md2gb.Rule {
	out := make([]md2gb.Rule, len(rules))
	for i, r := range rules {
		out[i] = md2gb.Rule{From: r.From, To: r.To, FollowedBy: r.FollowedBy}
	}
	return out
}

// withPatternHint appends the regexp syntax hint to pattern errors.
func withPatternHint(err error) error {
	if errors.Is(err, md2gb.ErrInvalidPhrase) || errors.Is(err, md2gb.ErrInvalidRule) {
		return fmt.Errorf("%w%s", err, hints.ForInvalidPattern())
	}
	return err
}
