package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// DefaultWindowSize is the number of characters inspected on each side of a match.
const DefaultWindowSize = 100

// Sentinel errors for context guard configuration.
var (
	ErrInvalidWindowSize = errors.New("invalid context window size")
	ErrInvalidPhrase     = errors.New("invalid preserve phrase")
)

// defaultPreservePhrases veto conversions near idioms and colour markup.
var defaultPreservePhrases = []string{
	`GitHub organization`,
	`github organization`,
	`organization cloner`,
	`organization secrets`,
	`color:#[0-9A-Fa-f]{3,6}`,
	`color\s*=\s*["']`,
}

// DefaultPreservePhrases returns a copy of the built-in preserve list.
func DefaultPreservePhrases() []string {
	phrases := make([]string, len(defaultPreservePhrases))
	copy(phrases, defaultPreservePhrases)
	return phrases
}

// ContextGuard vetoes a match when any preserve phrase appears in a window
// of surrounding text. The check is window-based, not grammatical, so an
// unrelated phrase nearby also suppresses the match.
type ContextGuard struct {
	Window  int
	phrases []*regexp.Regexp
}

// NewContextGuard compiles phrases as case-insensitive regular expressions.
func NewContextGuard(window int, phrases []string) (*ContextGuard, error) {
	if window < 0 {
		return nil, fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWindowSize, window)
	}

	g := &ContextGuard{Window: window, phrases: make([]*regexp.Regexp, 0, len(phrases))}
	for _, p := range phrases {
		if p == "" {
			return nil, fmt.Errorf("%w: empty phrase", ErrInvalidPhrase)
		}
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPhrase, p, err)
		}
		g.phrases = append(g.phrases, re)
	}
	return g, nil
}

// Vetoes reports whether the match text[start:end] must be left alone.
func (g *ContextGuard) Vetoes(text string, start, end int) bool {
	if g == nil || len(g.phrases) == 0 {
		return false
	}

	lo, hi := contextWindow(text, start, end, g.Window)
	window := text[lo:hi]
	for _, re := range g.phrases {
		if re.MatchString(window) {
			return true
		}
	}
	return false
}

// contextWindow widens [start, end) by n runes on each side, clipped to text.
func contextWindow(text string, start, end, n int) (lo, hi int) {
	lo = start
	for i := 0; i < n && lo > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:lo])
		lo -= size
	}
	hi = end
	for i := 0; i < n && hi < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[hi:])
		hi += size
	}
	return lo, hi
}
