package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// ErrProtectedContentChanged indicates a conversion altered code or link targets.
var ErrProtectedContentChanged = errors.New("protected content changed")

// ContentChecker compares the code and link content of two markdown
// documents using a CommonMark parser, independent of the regex scanner.
type ContentChecker struct {
	md goldmark.Markdown
}

// NewContentChecker creates a ContentChecker with GFM extensions
// (autolinks are needed to see bare URLs).
func NewContentChecker() *ContentChecker {
	return &ContentChecker{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// protectedItem is one piece of content a conversion must never touch.
type protectedItem struct {
	kind  string
	value string
}

// Verify returns ErrProtectedContentChanged if code blocks, code spans,
// autolinks or link destinations differ between before and after.
func (c *ContentChecker) Verify(ctx context.Context, before, after string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	want := c.collect(before)
	got := c.collect(after)

	if len(want) != len(got) {
		return fmt.Errorf("%w: %d protected items before, %d after", ErrProtectedContentChanged, len(want), len(got))
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("%w: %s %q became %q", ErrProtectedContentChanged, want[i].kind, want[i].value, got[i].value)
		}
	}
	return nil
}

// collect walks the document AST in order and gathers protected content.
func (c *ContentChecker) collect(content string) []protectedItem {
	src := []byte(content)
	doc := c.md.Parser().Parse(text.NewReader(src))

	var items []protectedItem
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			items = append(items, protectedItem{kind: "code block", value: linesOf(node, src)})
		case *ast.CodeBlock:
			items = append(items, protectedItem{kind: "indented code", value: linesOf(node, src)})
		case *ast.CodeSpan:
			var sb strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if t, ok := child.(*ast.Text); ok {
					sb.Write(t.Segment.Value(src))
				}
			}
			items = append(items, protectedItem{kind: "inline code", value: sb.String()})
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			items = append(items, protectedItem{kind: "url", value: string(node.URL(src))})
		case *ast.Link:
			items = append(items, protectedItem{kind: "link", value: string(node.Destination)})
		case *ast.Image:
			items = append(items, protectedItem{kind: "image", value: string(node.Destination)})
		}
		return ast.WalkContinue, nil
	})
	return items
}

// linesOf concatenates the raw source lines of a block node.
func linesOf(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}
