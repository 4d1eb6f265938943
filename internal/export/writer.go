// Package export writes sections to one text file each.
package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docsplit/internal/doctree"
	"github.com/dgallion1/docsplit/internal/section"
	"gopkg.in/yaml.v3"
)

// Config controls file naming and the optional manifest.
type Config struct {
	MaxNameLength int    // Bytes per base name, extension excluded.
	Manifest      string // Manifest file name. Empty disables it.
}

// DefaultConfig returns the library defaults: no manifest.
func DefaultConfig() Config {
	return Config{MaxNameLength: DefaultMaxNameLength}
}

// FileWriteError reports one section file that could not be written.
type FileWriteError struct {
	Title string
	Path  string
	Err   error
}

func (e *FileWriteError) Error() string {
	if e.Title == "" {
		return fmt.Sprintf("write %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("write section %q to %s: %v", e.Title, e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }

// BatchError collects every failed file of one export.
type BatchError struct {
	Failures []*FileWriteError
}

func (e *BatchError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("%d section file(s) failed: %s", len(e.Failures), strings.Join(msgs, "; "))
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Written describes one file produced by an export.
type Written struct {
	Title  string `json:"title" yaml:"title"`
	Level  int    `json:"level" yaml:"level"`
	File   string `json:"file" yaml:"file"`
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// Result lists the files an export produced, in document order.
type Result struct {
	Dir   string    `json:"dir"`
	Files []Written `json:"files"`
}

// Writer persists sections under one directory.
type Writer struct {
	dir string
	cfg Config
	log *slog.Logger
}

func NewWriter(dir string, cfg Config, log *slog.Logger) *Writer {
	if cfg.MaxNameLength <= 0 {
		cfg.MaxNameLength = DefaultMaxNameLength
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Writer{dir: dir, cfg: cfg, log: log}
}

// WriteAll writes every section, nested ones included, as its own file in
// the writer's directory. Failed files are collected into a *BatchError;
// the remaining sections are still written.
func (w *Writer) WriteAll(sections []*doctree.Section) (Result, error) {
	res := Result{Dir: w.dir}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return res, &BatchError{Failures: []*FileWriteError{{Path: w.dir, Err: err}}}
	}

	names := newNamer(w.cfg.MaxNameLength)
	var failures []*FileWriteError

	var visit func(list []*doctree.Section, parent string)
	visit = func(list []*doctree.Section, parent string) {
		for _, s := range list {
			name := names.next(s.Title)
			if err := w.writeFile(name, s.String()); err != nil {
				w.log.Warn("section write failed", "title", s.Title, "file", name, "error", err)
				failures = append(failures, &FileWriteError{Title: s.Title, Path: filepath.Join(w.dir, name), Err: err})
			} else {
				w.log.Debug("section written", "title", s.Title, "file", name)
				res.Files = append(res.Files, Written{Title: s.Title, Level: s.Level, File: name, Parent: parent})
			}
			visit(s.Children, s.Title)
		}
	}
	visit(sections, "")

	if w.cfg.Manifest != "" {
		if err := w.writeManifest(res.Files); err != nil {
			failures = append(failures, &FileWriteError{Path: filepath.Join(w.dir, w.cfg.Manifest), Err: err})
		}
	}

	if len(failures) > 0 {
		return res, &BatchError{Failures: failures}
	}
	return res, nil
}

// Dir returns the directory the writer writes into.
func (w *Writer) Dir() string { return w.dir }

// WriteOne writes a single section. The returned entry names the file
// relative to Dir.
func (w *Writer) WriteOne(s *doctree.Section) (Written, error) {
	name := SanitizeName(s.Title, w.cfg.MaxNameLength) + fileExt
	path := filepath.Join(w.dir, name)
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return Written{}, &FileWriteError{Title: s.Title, Path: path, Err: err}
	}
	if err := w.writeFile(name, s.String()); err != nil {
		return Written{}, &FileWriteError{Title: s.Title, Path: path, Err: err}
	}
	w.log.Debug("section written", "title", s.Title, "file", name)
	return Written{Title: s.Title, Level: s.Level, File: name}, nil
}

// writeFile writes content to a temporary file next to the target and
// renames it into place, so the target is either complete or absent.
func (w *Writer) writeFile(name, content string) (err error) {
	tmp, err := os.CreateTemp(w.dir, ".docsplit-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpPath, filepath.Join(w.dir, name)); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

type manifest struct {
	Sections []Written `yaml:"sections"`
}

func (w *Writer) writeManifest(files []Written) error {
	data, err := yaml.Marshal(manifest{Sections: files})
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return w.writeFile(w.cfg.Manifest, string(data))
}

// ReadManifest loads a manifest written by WriteAll.
func ReadManifest(path string) ([]Written, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return m.Sections, nil
}

// SaveSection looks up title and writes that one section. A missing title
// yields *section.NotFoundError.
func (w *Writer) SaveSection(sections []*doctree.Section, title string) (Written, error) {
	s, err := section.Find(sections, title)
	if err != nil {
		return Written{}, err
	}
	return w.WriteOne(s)
}
