package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/docsplit/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	doc := &doctree.Document{Title: documentTitle(filename)}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		emitMarkdown(doc, n, src)
	}
	return doc, nil
}

func emitMarkdown(doc *doctree.Document, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Heading:
		appendElement(doc, doctree.Heading(node.Level, inlineText(node, src)))
	case *ast.Paragraph, *ast.TextBlock:
		appendElement(doc, doctree.Text(inlineText(node, src)))
	case *ast.List:
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			var parts []string
			var nested []ast.Node
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if _, ok := c.(*ast.List); ok {
					nested = append(nested, c)
					continue
				}
				parts = append(parts, inlineText(c, src))
			}
			appendElement(doc, doctree.Element{Kind: doctree.KindListItem, Text: strings.Join(parts, " ")})
			for _, c := range nested {
				emitMarkdown(doc, c, src)
			}
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		appendElement(doc, doctree.Element{Kind: doctree.KindOther, Text: linesText(node, src)})
	case *ast.ThematicBreak:
	default:
		appendElement(doc, doctree.Element{Kind: doctree.KindOther, Text: inlineText(node, src)})
	}
}

// inlineText collects the text leaves under n on one line. Soft breaks and
// nested blocks become spaces; only a hard break is kept as a newline.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if c != n && c.Type() == ast.TypeBlock && buf.Len() > 0 && !endsWithSpace(buf.Bytes()) {
			buf.WriteByte(' ')
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			switch {
			case t.HardLineBreak():
				buf.WriteByte('\n')
			case t.SoftLineBreak():
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			buf.WriteString(linesText(c, src))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

func endsWithSpace(b []byte) bool {
	return len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\n')
}

// linesText returns the raw source lines of a block node.
func linesText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return strings.TrimSpace(buf.String())
}
