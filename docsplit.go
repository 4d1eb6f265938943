// Package docsplit splits documents into heading-anchored sections and
// writes each section to its own text file.
//
// Decoding is delegated to third-party readers (go-docx for Word files);
// this package groups the decoded elements by heading:
//
//	p, err := docsplit.Open("report.docx", docsplit.Config{})
//	if err != nil {
//		return err
//	}
//	for _, s := range p.ParseSections() {
//		fmt.Println(s.Title, s.Level)
//	}
//	err = p.SaveSectionsToFiles("out")
package docsplit

import (
	"io"
	"log/slog"

	"github.com/dgallion1/docsplit/internal/doctree"
	"github.com/dgallion1/docsplit/internal/export"
	"github.com/dgallion1/docsplit/internal/parser"
	"github.com/dgallion1/docsplit/internal/section"
)

type (
	// Element is one extracted unit: heading, paragraph, list item.
	Element = doctree.Element
	// Kind classifies an Element.
	Kind = doctree.Kind
	// Document is the ordered element sequence of one file.
	Document = doctree.Document
	// Section is a heading, its body and its nested sections.
	Section = doctree.Section

	// ExtractionError reports a missing, unreadable or malformed input.
	ExtractionError = parser.ExtractionError
	// SectionNotFoundError reports a title with no matching section.
	SectionNotFoundError = section.NotFoundError
	// FileWriteError reports one section file that could not be written.
	FileWriteError = export.FileWriteError
	// BatchWriteError collects the FileWriteErrors of one batch save.
	BatchWriteError = export.BatchError
)

const (
	KindOther         = doctree.KindOther
	KindTitle         = doctree.KindTitle
	KindHeading       = doctree.KindHeading
	KindNarrativeText = doctree.KindNarrativeText
	KindListItem      = doctree.KindListItem
)

// Config controls sectioning and persistence. The zero value drops
// preamble text, keeps the document title as a level 0 section and writes no
// manifest.
type Config struct {
	// PreambleTitle, when set, captures text before the first heading in a
	// section of that name.
	PreambleTitle string
	// SkipDocumentTitle ignores the first title element.
	SkipDocumentTitle bool
	// MaxFilenameLength bounds generated file names. Defaults to 100 bytes.
	MaxFilenameLength int
	// Manifest names a YAML index written next to the section files.
	Manifest string
	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// Parser holds one extracted document. Sections are rebuilt from the
// document on every call.
type Parser struct {
	doc *doctree.Document
	cfg Config
	log *slog.Logger
}

// Open extracts the document at path. It fails with *ExtractionError.
func Open(path string, cfg Config) (*Parser, error) {
	p := New(nil, cfg)
	doc, err := parser.Extract(path)
	if err != nil {
		p.log.Debug("extraction failed", "path", path, "error", err)
		return nil, err
	}
	p.doc = doc
	p.log.Debug("document extracted", "path", path, "elements", len(doc.Elements))
	return p, nil
}

// New wraps an already extracted document.
func New(doc *Document, cfg Config) *Parser {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if doc == nil {
		doc = &doctree.Document{}
	}
	return &Parser{doc: doc, cfg: cfg, log: log}
}

// Document returns the extracted document.
func (p *Parser) Document() *Document {
	return p.doc
}

// ParseSections groups the document's elements into sections.
func (p *Parser) ParseSections() []*Section {
	sections := section.Build(p.doc.Elements, section.Options{
		PreambleTitle:     p.cfg.PreambleTitle,
		SkipDocumentTitle: p.cfg.SkipDocumentTitle,
	})
	p.log.Debug("sections built", "path", p.doc.Path, "top_level", len(sections))
	return sections
}

// GetSection returns the first section, depth-first, titled exactly title.
func (p *Parser) GetSection(title string) (*Section, error) {
	return section.Find(p.ParseSections(), title)
}

// SaveSectionsToFiles writes every section to its own file in dir. Nested
// sections are written alongside their parents. Files that fail are
// reported together in a *BatchWriteError; the rest are still written.
func (p *Parser) SaveSectionsToFiles(dir string) error {
	_, err := p.writer(dir).WriteAll(p.ParseSections())
	return err
}

// SaveSection writes the section titled title to dir.
func (p *Parser) SaveSection(title, dir string) error {
	_, err := p.writer(dir).SaveSection(p.ParseSections(), title)
	return err
}

func (p *Parser) writer(dir string) *export.Writer {
	cfg := export.DefaultConfig()
	cfg.Manifest = p.cfg.Manifest
	if p.cfg.MaxFilenameLength > 0 {
		cfg.MaxNameLength = p.cfg.MaxFilenameLength
	}
	return export.NewWriter(dir, cfg, p.log)
}

// ParseFile extracts path and returns its sections.
func ParseFile(path string, cfg Config) ([]*Section, error) {
	p, err := Open(path, cfg)
	if err != nil {
		return nil, err
	}
	return p.ParseSections(), nil
}
