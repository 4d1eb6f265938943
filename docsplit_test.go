package docsplit

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
)

// writeDocx renders (style, text) pairs into a .docx under t.TempDir.
func writeDocx(t *testing.T, paras ...[2]string) string {
	t.Helper()
	w := docx.New().WithDefaultTheme()
	for _, p := range paras {
		para := w.AddParagraph()
		if p[0] != "" {
			para.Properties = &docx.ParagraphProperties{Style: &docx.Style{Val: p[0]}}
		}
		para.AddText(p[1])
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	path := filepath.Join(t.TempDir(), "sample.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func exampleParser() *Parser {
	return New(&Document{Elements: []Element{
		{Kind: KindHeading, Level: 1, Text: "Intro"},
		{Kind: KindNarrativeText, Text: "Hello"},
		{Kind: KindHeading, Level: 1, Text: "Body"},
		{Kind: KindNarrativeText, Text: "World"},
		{Kind: KindNarrativeText, Text: "!"},
	}}, Config{})
}

func TestParseSections_Example(t *testing.T) {
	sections := exampleParser().ParseSections()
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "Intro" || sections[0].Text() != "Hello" {
		t.Errorf("unexpected first section: %+v", sections[0])
	}
	if sections[1].Title != "Body" || sections[1].Text() != "World\n!" {
		t.Errorf("unexpected second section: %+v", sections[1])
	}
}

func TestParseSections_Idempotent(t *testing.T) {
	p := exampleParser()
	if !reflect.DeepEqual(p.ParseSections(), p.ParseSections()) {
		t.Error("expected repeated calls to yield equal sections")
	}
}

func TestGetSection(t *testing.T) {
	p := exampleParser()
	s, err := p.GetSection("Body")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Text() != "World\n!" {
		t.Errorf("unexpected body %q", s.Text())
	}

	for _, title := range []string{"", "body", "Missing"} {
		_, err := p.GetSection(title)
		var nf *SectionNotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("title %q: expected SectionNotFoundError, got %v", title, err)
		}
	}
}

func TestSaveSectionsToFiles_Example(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := exampleParser().SaveSectionsToFiles(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected exactly 2 files, got %d", len(entries))
	}
	for name, want := range map[string]string{
		"Intro.txt": "Intro\nHello",
		"Body.txt":  "Body\nWorld\n!",
	} {
		got, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(got) != want {
			t.Errorf("%s: expected %q, got %q", name, want, got)
		}
	}
}

func TestSaveSection(t *testing.T) {
	dir := t.TempDir()
	p := exampleParser()
	if err := p.SaveSection("Intro", dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "Intro.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Intro\nHello" {
		t.Errorf("unexpected content %q", got)
	}

	err = p.SaveSection("Nope", dir)
	var nf *SectionNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected SectionNotFoundError, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "Nope.txt")); !errors.Is(statErr, fs.ErrNotExist) {
		t.Errorf("no file should be written for a missing section")
	}
}

func TestOpen_Docx(t *testing.T) {
	path := writeDocx(t,
		[2]string{"Title", "Study"},
		[2]string{"", "Abstract text."},
		[2]string{"Heading1", "Methods"},
		[2]string{"", "We measured."},
		[2]string{"Heading1", "Results"},
		[2]string{"ListParagraph", "Finding one"},
		[2]string{"Heading2", "Notes"},
		[2]string{"", "Footnote."},
	)

	p, err := Open(path, Config{SkipDocumentTitle: true, PreambleTitle: "Introduction"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sections := p.ParseSections()

	var titles []string
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	if got := strings.Join(titles, ","); got != "Introduction,Methods,Results" {
		t.Fatalf("unexpected top-level titles %s", got)
	}
	if sections[0].Text() != "Abstract text." {
		t.Errorf("unexpected preamble %q", sections[0].Text())
	}
	results := sections[2]
	if results.Text() != "Finding one" || len(results.Children) != 1 {
		t.Errorf("unexpected Results section: %+v", results)
	}

	dir := t.TempDir()
	if err := p.SaveSectionsToFiles(dir); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "Notes.txt"))
	if err != nil {
		t.Fatalf("expected nested section file: %v", err)
	}
	if string(got) != "Notes\nFootnote." {
		t.Errorf("unexpected Notes.txt %q", got)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.docx"), Config{})
	var ee *ExtractionError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", err)
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope.docx"), Config{}); !errors.As(err, &ee) {
		t.Errorf("ParseFile: expected ExtractionError, got %v", err)
	}
}

func TestSaveSectionsToFiles_Manifest(t *testing.T) {
	dir := t.TempDir()
	p := New(exampleParser().Document(), Config{Manifest: "index.yaml"})
	if err := p.SaveSectionsToFiles(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "index.yaml"))
	if err != nil {
		t.Fatalf("expected manifest: %v", err)
	}
	if !strings.Contains(string(data), "file: Intro.txt") {
		t.Errorf("manifest missing Intro entry:\n%s", data)
	}
}

func TestSaveSectionsToFiles_OneParagraphPerLine(t *testing.T) {
	src := filepath.Join(t.TempDir(), "wrapped.md")
	md := "# H\n\nfirst line of one\nparagraph wrapped\n\nsecond para\n"
	if err := os.WriteFile(src, []byte(md), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Open(src, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dir := t.TempDir()
	if err := p.SaveSectionsToFiles(dir); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "H.txt"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(got), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected title plus 2 paragraph lines, got %q", got)
	}
	if lines[1] != "first line of one paragraph wrapped" || lines[2] != "second para" {
		t.Errorf("unexpected body lines %q", lines[1:])
	}
}
