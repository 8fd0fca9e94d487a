package md2gb

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/alnah/go-md2gb/internal/pipeline"
)

// Converter rewrites markdown documents from American to British spelling.
// Create with NewConverter. A Converter is immutable after creation and safe
// for concurrent use by multiple goroutines.
type Converter struct {
	cfg     converterConfig
	engine  *pipeline.Engine
	checker *pipeline.ContentChecker
}

// NewConverter creates a Converter with the built-in rule table and preserve
// list. Use options to customise behaviour (e.g., WithWindowSize, WithExtraRules).
// Returns error if a rule or preserve phrase cannot be compiled.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			windowSize: DefaultWindowSize,
			phrases:    DefaultPreservePhrases(),
			rules:      DefaultRules(),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	guard, err := pipeline.NewContextGuard(c.cfg.windowSize, c.cfg.phrases)
	if err != nil {
		return nil, err
	}

	rules := make([]pipeline.Rule, 0, len(c.cfg.rules))
	for _, r := range c.cfg.rules {
		compiled, err := pipeline.CompileRule(r.From, r.To, r.FollowedBy)
		if err != nil {
			return nil, err
		}
		rules = append(rules, compiled)
	}

	c.engine = &pipeline.Engine{
		Rules:          rules,
		Guard:          guard,
		RefreshRegions: c.cfg.refreshRegions,
	}

	if c.cfg.verify {
		c.checker = pipeline.NewContentChecker()
	}

	return c, nil
}

// Convert rewrites input.Markdown and returns the new text with a change count.
// The context is only checked before work starts and during verification;
// conversion itself is a bounded in-memory pass.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !utf8.ValidString(input.Markdown) {
		return nil, ErrInvalidUTF8
	}

	applied := c.engine.Apply(input.Markdown)

	if c.checker != nil {
		if err := c.checker.Verify(ctx, input.Markdown, applied.Text); err != nil {
			return nil, err
		}
	}

	changes := make([]Change, len(applied.Changes))
	for i, ch := range applied.Changes {
		changes[i] = Change{Line: ch.Line, From: ch.From, To: ch.To}
	}

	return &ConvertResult{
		Markdown: applied.Text,
		Count:    applied.Count,
		Changes:  changes,
		DryRun:   input.DryRun,
	}, nil
}

// Rules returns the effective rule table in application order, normalised
// to lowercase.
func (c *Converter) Rules() []Rule {
	rules := make([]Rule, len(c.engine.Rules))
	for i, r := range c.engine.Rules {
		rules[i] = Rule{From: r.Source, To: r.Replacement, FollowedBy: r.FollowedBy}
	}
	return rules
}

// PreservePhrases returns the effective preserve list.
func (c *Converter) PreservePhrases() []string {
	return append([]string(nil), c.cfg.phrases...)
}

// WindowSize returns the effective context window size.
func (c *Converter) WindowSize() int {
	return c.cfg.windowSize
}
