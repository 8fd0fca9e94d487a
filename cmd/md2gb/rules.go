package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	flag "github.com/spf13/pflag"

	md2gb "github.com/alnah/go-md2gb"
	"github.com/alnah/go-md2gb/internal/config"
	"github.com/alnah/go-md2gb/internal/yamlutil"
)

// ErrUnknownFormat is returned for an unsupported --format value.
var ErrUnknownFormat = errors.New("unknown output format")

// rulesDocument is the YAML shape of the rules command. It is a valid
// config file, so the output can be saved and edited.
type rulesDocument struct {
	Conversion rulesConversion `yaml:"conversion"`
}

type rulesConversion struct {
	WindowSize      int                 `yaml:"windowSize"`
	PreservePhrases []string            `yaml:"preservePhrases"`
	Rules           []config.RuleConfig `yaml:"rules"`
}

// runRulesCmd prints the effective rule table, preserve list and window.
func runRulesCmd(args []string, env *Environment) int {
	flags, err := parseRulesFlags(args, env.Stderr)
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

	if err := runRules(flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runRules builds the converter exactly as convert would and prints its tables.
func runRules(flags *rulesFlags, env *Environment) error {
	if flags.format != "text" && flags.format != "yaml" {
		return fmt.Errorf("%w: %q (want text or yaml)", ErrUnknownFormat, flags.format)
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)

	if err := cfg.Validate(); err != nil {
		return withPatternHint(err)
	}

	conv, err := md2gb.NewConverter(buildConverterOptions(cfg)...)
	if err != nil {
		return withPatternHint(err)
	}

	if flags.format == "yaml" {
		return writeRulesYAML(env.Stdout, conv)
	}
	return writeRulesText(env.Stdout, conv)
}

// writeRulesText prints a numbered table in application order.
func writeRulesText(w io.Writer, conv *md2gb.Converter) error {
	rules := conv.Rules()

	fmt.Fprintf(w, "Rules (%d, applied in order):\n", len(rules))
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "From", "To", "Followed by"})
	for i, r := range rules {
		t.AppendRow(table.Row{i + 1, r.From, r.To, r.FollowedBy})
	}
	t.Render()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Preserve phrases (window %d):\n", conv.WindowSize())
	for _, p := range conv.PreservePhrases() {
		fmt.Fprintf(w, "  %s\n", p)
	}
	return nil
}

// writeRulesYAML prints the effective tables as a config file fragment.
func writeRulesYAML(w io.Writer, conv *md2gb.Converter) error {
	rules := conv.Rules()
	doc := rulesDocument{Conversion: rulesConversion{
		WindowSize:      conv.WindowSize(),
		PreservePhrases: conv.PreservePhrases(),
		Rules:           make([]config.RuleConfig, len(rules)),
	}}
	for i, r := range rules {
		doc.Conversion.Rules[i] = config.RuleConfig{From: r.From, To: r.To, FollowedBy: r.FollowedBy}
	}
	return yamlutil.Encode(w, doc)
}
