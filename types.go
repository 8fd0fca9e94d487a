package md2gb

import "github.com/alnah/go-md2gb/internal/pipeline"

// DefaultWindowSize is the number of characters inspected on each side of a
// match when looking for preserve phrases.
const DefaultWindowSize = pipeline.DefaultWindowSize

// Rule is one American -> British rewrite.
type Rule struct {
	From       string `yaml:"from"`                 // single word, matched case-insensitively on word boundaries
	To         string `yaml:"to"`                   // replacement, stored lowercase
	FollowedBy string `yaml:"followedBy,omitempty"` // optional regexp the following text must start with
}

// DefaultRules returns the built-in rule table in application order.
func DefaultRules() []Rule {
	compiled := pipeline.DefaultRules()
	rules := make([]Rule, len(compiled))
	for i, r := range compiled {
		rules[i] = Rule{From: r.Source, To: r.Replacement, FollowedBy: r.FollowedBy}
	}
	return rules
}

// DefaultPreservePhrases returns the built-in preserve list (regular expressions).
func DefaultPreservePhrases() []string {
	return pipeline.DefaultPreservePhrases()
}

// Input contains the data for a single conversion.
type Input struct {
	Markdown string // Required: document text
	DryRun   bool   // Carried to the result; conversion is identical either way
}

// Change describes one applied substitution.
type Change struct {
	Line int    // 1-based line number
	From string // original word as written
	To   string // replacement as written
}

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	Markdown string   // Rewritten document
	Count    int      // Number of substitutions applied
	Changes  []Change // One entry per substitution, ordered by line
	DryRun   bool     // Echoes Input.DryRun
}

// Changed reports whether any substitution was applied.
func (r *ConvertResult) Changed() bool {
	return r != nil && r.Count > 0
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	windowSize     int
	phrases        []string
	rules          []Rule
	refreshRegions bool
	verify         bool
}

// WithWindowSize sets the context window, in characters, searched for
// preserve phrases on each side of a match. Negative values make
// NewConverter fail with ErrInvalidWindowSize.
func WithWindowSize(n int) Option {
	return func(c *Converter) {
		c.cfg.windowSize = n
	}
}

// WithPreservePhrases replaces the preserve list.
// Phrases are case-insensitive regular expressions.
func WithPreservePhrases(phrases ...string) Option {
	return func(c *Converter) {
		c.cfg.phrases = append([]string(nil), phrases...)
	}
}

// WithExtraPreservePhrases appends to the preserve list.
func WithExtraPreservePhrases(phrases ...string) Option {
	return func(c *Converter) {
		c.cfg.phrases = append(c.cfg.phrases, phrases...)
	}
}

// WithRules replaces the rule table. Order is significant.
func WithRules(rules ...Rule) Option {
	return func(c *Converter) {
		c.cfg.rules = append([]Rule(nil), rules...)
	}
}

// WithExtraRules appends rules after the current table.
func WithExtraRules(rules ...Rule) Option {
	return func(c *Converter) {
		c.cfg.rules = append(c.cfg.rules, rules...)
	}
}

// WithRegionRefresh rescans protected regions before every rule instead of
// once per document, so offsets never drift after length-changing rewrites.
func WithRegionRefresh(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.refreshRegions = enabled
	}
}

// WithVerify re-parses input and output with a CommonMark parser and fails
// the conversion with ErrProtectedContentChanged if code or link targets differ.
func WithVerify(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.verify = enabled
	}
}
