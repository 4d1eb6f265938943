package parser

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/docsplit/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	// go-docx needs a ReaderAt+size.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	out := &doctree.Document{Title: documentTitle(filename)}
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		appendElement(out, docxElement(docxStyle(para), docxParagraphText(para)))
	}
	return out, nil
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

// docxElement classifies a paragraph by its style id. Word writes ids like
// "Heading2"; some producers use the display name "heading 2".
func docxElement(style, text string) doctree.Element {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	switch {
	case s == "title":
		return doctree.Element{Kind: doctree.KindTitle, Text: text}
	case strings.HasPrefix(s, "heading"):
		if n, err := strconv.Atoi(strings.TrimPrefix(s, "heading")); err == nil && n >= 1 && n <= 9 {
			return doctree.Heading(n, text)
		}
	case strings.HasPrefix(s, "list"):
		return doctree.Element{Kind: doctree.KindListItem, Text: text}
	}
	return doctree.Text(text)
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		switch c := child.(type) {
		case *docx.Run:
			docxRunText(&buf, c)
		case *docx.Hyperlink:
			// go-docx keeps link text it wrote itself in InstrText; Word puts
			// it in ordinary text runs.
			n := buf.Len()
			docxRunText(&buf, &c.Run)
			if buf.Len() == n {
				buf.WriteString(c.Run.InstrText)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// docxRunText writes the text of one run. A plain <w:br/> is a line break
// within the paragraph; page and column breaks only separate words.
func docxRunText(buf *strings.Builder, run *docx.Run) {
	for _, rc := range run.Children {
		switch t := rc.(type) {
		case *docx.Text:
			buf.WriteString(t.Text)
		case *docx.Tab:
			buf.WriteByte('\t')
		case *docx.BarterRabbet:
			if t.Type == "" || t.Type == "textWrapping" {
				buf.WriteByte('\n')
			} else {
				buf.WriteByte(' ')
			}
		}
	}
}
