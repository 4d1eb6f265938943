package doctree

import "strings"

// Kind classifies an extracted element.
type Kind int

const (
	KindOther Kind = iota
	KindTitle
	KindHeading
	KindNarrativeText
	KindListItem
)

func (k Kind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindHeading:
		return "heading"
	case KindNarrativeText:
		return "narrative_text"
	case KindListItem:
		return "list_item"
	default:
		return "other"
	}
}

// Element is one unit of extracted document content.
type Element struct {
	Kind  Kind
	Text  string
	Level int // Heading depth, 1 = top-level. Only set for KindHeading.
}

// IsHeading reports whether the element opens a section.
func (e Element) IsHeading() bool {
	return e.Kind == KindHeading || e.Kind == KindTitle
}

// HeadingLevel returns the nesting level of a heading element. Titles sit
// above every heading at level 0.
func (e Element) HeadingLevel() int {
	if e.Kind == KindTitle {
		return 0
	}
	return e.Level
}

// Heading returns a heading element.
func Heading(level int, text string) Element {
	return Element{Kind: KindHeading, Text: text, Level: level}
}

// Text returns a narrative text element.
func Text(text string) Element {
	return Element{Kind: KindNarrativeText, Text: text}
}

// Document is the ordered element sequence extracted from one file.
type Document struct {
	Path     string    // Source file path
	Title    string    // File base name without extension
	Elements []Element // Document order
}

// Section is a heading and the content that follows it.
type Section struct {
	Title    string     `json:"title"`
	Level    int        `json:"level"`
	Body     []string   `json:"content"`
	Children []*Section `json:"children,omitempty"`
}

// Text returns the section body, one paragraph per line.
func (s *Section) Text() string {
	return strings.Join(s.Body, "\n")
}

// String renders the section the way it is persisted: title line, then body.
func (s *Section) String() string {
	if len(s.Body) == 0 {
		return s.Title
	}
	return s.Title + "\n" + s.Text()
}
