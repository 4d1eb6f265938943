package parser

import (
	"fmt"
	"os"

	"github.com/dgallion1/docsplit/internal/doctree"
)

// ExtractionError reports a file that could not be turned into elements.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extract reads the file at path and returns its elements. Failures are
// returned as *ExtractionError and never retried.
func Extract(path string) (*doctree.Document, error) {
	p, err := ForFile(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	doc, err := p.Parse(f, path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}
	doc.Path = path
	return doc, nil
}
