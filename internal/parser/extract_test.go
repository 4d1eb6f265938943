package parser

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/docsplit/internal/doctree"
)

func TestExtract_Docx(t *testing.T) {
	path := writeDocx(t, "intro.docx", []docxPara{
		{"Heading1", "Intro"},
		{"", "Hello"},
	})

	doc, err := Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Path != path {
		t.Errorf("expected path %q, got %q", path, doc.Path)
	}
	if doc.Title != "intro" {
		t.Errorf("expected title %q, got %q", "intro", doc.Title)
	}
	if len(doc.Elements) != 2 || doc.Elements[0] != doctree.Heading(1, "Intro") {
		t.Errorf("unexpected elements: %+v", doc.Elements)
	}
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "missing.docx"))
	var extractErr *ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected wrapped fs.ErrNotExist, got %v", err)
	}
}

func TestExtract_InvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.docx")
	if err := os.WriteFile(path, []byte("plain text pretending"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Extract(path)
	var extractErr *ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extractErr.Path != path {
		t.Errorf("expected path %q in error, got %q", path, extractErr.Path)
	}
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.xlsx")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	var extractErr *ExtractionError
	if _, err := Extract(path); !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"a.docx", false},
		{"A.DOCX", false},
		{"a.md", false},
		{"a.markdown", false},
		{"a.html", false},
		{"a.htm", false},
		{"a.pdf", false},
		{"a.txt", false},
		{"a.doc", true},
		{"noext", true},
	}
	for _, tt := range tests {
		_, err := ForFile(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForFile(%q): err=%v, wantErr=%v", tt.name, err, tt.wantErr)
		}
		if IsSupportedExtension(tt.name) == tt.wantErr {
			t.Errorf("IsSupportedExtension(%q) disagrees with ForFile", tt.name)
		}
	}
}

func TestPDFParser_InvalidData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("%PDF-garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	var extractErr *ExtractionError
	if _, err := Extract(path); !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}
