package pipeline

import (
	"regexp"
	"sort"
)

// Kind identifies which construct produced a protected span.
type Kind int

const (
	KindCodeBlock Kind = iota
	KindInlineCode
	KindURL
	KindMermaidCSS
	KindHTMLColor
)

// String returns the kind's name as used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindCodeBlock:
		return "code_block"
	case KindInlineCode:
		return "inline_code"
	case KindURL:
		return "url"
	case KindMermaidCSS:
		return "mermaid_css"
	case KindHTMLColor:
		return "html_color"
	default:
		return "unknown"
	}
}

// Span is a [Start, End) byte range of the original document that must not be rewritten.
type Span struct {
	Start int
	End   int
	Kind  Kind
}

// Precompiled region patterns, one per protected construct.
var regionPatterns = []struct {
	kind    Kind
	pattern *regexp.Regexp
}{
	// Fenced code block, shortest match across lines
	{KindCodeBlock, regexp.MustCompile("(?s)```.*?```")},
	// Inline code, single line, no nested backtick
	{KindInlineCode, regexp.MustCompile("`[^`\n]+`")},
	// Bare URL up to whitespace or a closing bracket
	{KindURL, regexp.MustCompile(`https?://[^\s)\]]+`)},
	// Mermaid/inline CSS colour property
	{KindMermaidCSS, regexp.MustCompile(`color:#[0-9A-Fa-f]{3,6}`)},
	// HTML/XML colour attribute
	{KindHTMLColor, regexp.MustCompile(`color\s*=\s*["'][^"']*["']`)},
}

// ScanRegions returns every protected span in text, unsorted and possibly
// overlapping. An unterminated fence simply yields no code block span.
func ScanRegions(text string) []Span {
	var spans []Span
	for _, rp := range regionPatterns {
		for _, m := range rp.pattern.FindAllStringIndex(text, -1) {
			spans = append(spans, Span{Start: m[0], End: m[1], Kind: rp.kind})
		}
	}
	return spans
}

// Regions is a merged region set: sorted by Start, non-overlapping, with a
// strict gap between consecutive spans.
type Regions []Span

// MergeRegions sorts spans by start and folds any that overlap or touch into
// a single covering span. The merged span keeps the kind of its first member.
// The input slice is not modified.
func MergeRegions(spans []Span) Regions {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := Regions{sorted[0]}
	for _, next := range sorted[1:] {
		last := &merged[len(merged)-1]
		if next.Start <= last.End {
			if next.End > last.End {
				last.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}
	return merged
}

// ProtectedRegions scans and merges the protected spans of text.
func ProtectedRegions(text string) Regions {
	return MergeRegions(ScanRegions(text))
}

// Contains reports whether pos falls inside any region (start <= pos < end).
func (r Regions) Contains(pos int) bool {
	i := sort.Search(len(r), func(i int) bool { return r[i].End > pos })
	return i < len(r) && r[i].Start <= pos
}
