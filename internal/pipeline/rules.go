package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidRule indicates a rewrite rule could not be compiled.
var ErrInvalidRule = errors.New("invalid rewrite rule")

// ruleSourcePattern restricts rule sources to plain words (optionally hyphenated)
// so that ASCII word boundaries anchor them on both sides.
var ruleSourcePattern = regexp.MustCompile(`^[A-Za-z]+(?:-[A-Za-z]+)*$`)

// Rule is a compiled American -> British rewrite.
// Rules are immutable once compiled and safe to share between goroutines.
type Rule struct {
	Source      string // American spelling, e.g. "color"
	Replacement string // British spelling, lowercase canonical form
	FollowedBy  string // Optional regexp the text after the word must start with

	pattern   *regexp.Regexp
	lookahead *regexp.Regexp
}

// CompileRule builds a case-insensitive, word-boundary-anchored rule.
// followedBy emulates a lookahead: when non-empty, a match only counts if
// the text immediately after the word matches it, ignoring case.
func CompileRule(from, to, followedBy string) (Rule, error) {
	if !ruleSourcePattern.MatchString(from) {
		return Rule{}, fmt.Errorf("%w: source %q must be a single word", ErrInvalidRule, from)
	}
	if to == "" || strings.ContainsAny(to, "\r\n") {
		return Rule{}, fmt.Errorf("%w: replacement for %q must be a non-empty single line", ErrInvalidRule, from)
	}

	r := Rule{
		Source:      strings.ToLower(from),
		Replacement: strings.ToLower(to),
		FollowedBy:  followedBy,
		pattern:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(from) + `\b`),
	}

	if followedBy != "" {
		la, err := regexp.Compile(`(?i)^(?:` + followedBy + `)`)
		if err != nil {
			return Rule{}, fmt.Errorf("%w: followedBy for %q: %v", ErrInvalidRule, from, err)
		}
		r.lookahead = la
	}

	return r, nil
}

// MustCompileRule is like CompileRule but panics on error.
// Only for the static default table.
func MustCompileRule(from, to, followedBy string) Rule {
	r, err := CompileRule(from, to, followedBy)
	if err != nil {
		panic(err)
	}
	return r
}

// FindAll returns the [start, end) byte offsets of every match in text,
// in ascending order. A match touching a letter, digit or underscore on
// either side is part of a longer word and is dropped, whatever the script.
func (r Rule) FindAll(text string) [][]int {
	if r.pattern == nil {
		return nil
	}
	matches := r.pattern.FindAllStringIndex(text, -1)

	kept := matches[:0]
	for _, m := range matches {
		if !isWordBoundary(text, m[0], m[1]) {
			continue
		}
		if r.lookahead != nil && !r.lookahead.MatchString(text[m[1]:]) {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

// isWordBoundary reports whether text[start:end] stands alone as a word.
// RE2's \b only knows ASCII word characters.
func isWordBoundary(text string, start, end int) bool {
	if start > 0 {
		if prev, _ := utf8.DecodeLastRuneInString(text[:start]); isWordRune(prev) {
			return false
		}
	}
	if end < len(text) {
		if next, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(next) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// licenceNounContext limits "license" to noun usages ("license file").
const licenceNounContext = `\s+details|\s+file|\s+\.`

// defaultRules is the built-in table. Order matters: later rules see text
// already rewritten by earlier ones.
var defaultRules = []Rule{
	// -ize to -ise
	MustCompileRule("optimize", "optimise", ""),
	MustCompileRule("optimized", "optimised", ""),
	MustCompileRule("optimizing", "optimising", ""),
	MustCompileRule("optimization", "optimisation", ""),
	MustCompileRule("optimizations", "optimisations", ""),
	MustCompileRule("customize", "customise", ""),
	MustCompileRule("customized", "customised", ""),
	MustCompileRule("customizing", "customising", ""),
	MustCompileRule("customization", "customisation", ""),
	MustCompileRule("organize", "organise", ""),
	MustCompileRule("organized", "organised", ""),
	MustCompileRule("organizing", "organising", ""),
	MustCompileRule("organization", "organisation", ""),
	MustCompileRule("organizations", "organisations", ""),
	MustCompileRule("recognize", "recognise", ""),
	MustCompileRule("recognized", "recognised", ""),
	MustCompileRule("authorize", "authorise", ""),
	MustCompileRule("authorized", "authorised", ""),
	MustCompileRule("standardize", "standardise", ""),
	MustCompileRule("standardized", "standardised", ""),
	MustCompileRule("minimize", "minimise", ""),
	MustCompileRule("minimized", "minimised", ""),
	MustCompileRule("maximize", "maximise", ""),
	MustCompileRule("maximized", "maximised", ""),
	MustCompileRule("visualize", "visualise", ""),
	MustCompileRule("visualization", "visualisation", ""),

	// -or to -our
	MustCompileRule("color", "colour", ""),
	MustCompileRule("colored", "coloured", ""),
	MustCompileRule("colors", "colours", ""),
	MustCompileRule("favor", "favour", ""),
	MustCompileRule("favors", "favours", ""),
	MustCompileRule("honor", "honour", ""),
	MustCompileRule("behavior", "behaviour", ""),
	MustCompileRule("behaviors", "behaviours", ""),

	// -er to -re
	MustCompileRule("center", "centre", ""),
	MustCompileRule("centered", "centred", ""),

	// Noun only
	MustCompileRule("license", "licence", licenceNounContext),
}

// DefaultRules returns a copy of the built-in rule table.
func DefaultRules() []Rule {
	rules := make([]Rule, len(defaultRules))
	copy(rules, defaultRules)
	return rules
}
