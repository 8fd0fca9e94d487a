package pipeline

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Change records one applied substitution.
type Change struct {
	Line int    // 1-based line in the document
	From string // matched text as written
	To   string // replacement as written
}

// Result is the outcome of applying the rule table to one document.
type Result struct {
	Text    string
	Count   int
	Changes []Change
}

// Engine drives the rule table over a document, skipping protected regions
// and matches vetoed by the context guard.
//
// Regions are computed once from the original input and are not shifted when
// earlier rules change the text length. Set RefreshRegions to rescan the
// current text before each rule instead.
type Engine struct {
	Rules          []Rule
	Guard          *ContextGuard
	RefreshRegions bool
}

// Apply rewrites text and returns the result. It never fails on valid UTF-8.
func (e *Engine) Apply(text string) Result {
	// Casers hold state; one per call keeps Apply safe for concurrent use.
	caser := cases.Upper(language.BritishEnglish)

	regions := ProtectedRegions(text)
	out := text
	var changes []Change

	for i, rule := range e.Rules {
		if e.RefreshRegions && i > 0 {
			regions = ProtectedRegions(out)
		}

		matches := rule.FindAll(out)
		// Right to left so splices keep earlier offsets valid.
		for j := len(matches) - 1; j >= 0; j-- {
			start, end := matches[j][0], matches[j][1]
			if regions.Contains(start) {
				continue
			}
			if e.Guard.Vetoes(out, start, end) {
				continue
			}

			matched := out[start:end]
			replacement := matchCase(matched, rule.Replacement, caser)
			changes = append(changes, Change{
				Line: 1 + strings.Count(out[:start], "\n"),
				From: matched,
				To:   replacement,
			})
			out = out[:start] + replacement + out[end:]
		}
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Line < changes[j].Line
	})

	return Result{Text: out, Count: len(changes), Changes: changes}
}

// matchCase upper-cases the first letter of replacement when matched starts
// with an uppercase letter. The rest stays lowercase, even after a space or
// hyphen.
func matchCase(matched, replacement string, upper cases.Caser) string {
	r, _ := utf8.DecodeRuneInString(matched)
	if !unicode.IsUpper(r) {
		return replacement
	}
	_, size := utf8.DecodeRuneInString(replacement)
	return upper.String(replacement[:size]) + strings.ToLower(replacement[size:])
}
