package api

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/dgallion1/docsplit"
	"github.com/dgallion1/docsplit/internal/export"
	"github.com/google/uuid"
)

type exportFailure struct {
	Title string `json:"title,omitempty"`
	Path  string `json:"path"`
	Error string `json:"error"`
}

// handleExport writes the sections of an uploaded document under a fresh
// directory in OutputRoot. With a "title" form value only that section is
// written.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	up := s.receiveUpload(w, r)
	if up == nil {
		return
	}
	defer up.cleanup()

	exportID := uuid.New().String()
	dir := filepath.Join(s.cfg.OutputRoot, exportID)
	log := s.requestLog(r).With("filename", up.filename, "export_id", exportID)

	p := s.open(w, up, log)
	if p == nil {
		return
	}

	ecfg := export.DefaultConfig()
	ecfg.Manifest = s.cfg.ExportManifest
	if s.cfg.MaxFilenameLength > 0 {
		ecfg.MaxNameLength = s.cfg.MaxFilenameLength
	}
	writer := export.NewWriter(dir, ecfg, log)

	if title := r.FormValue("title"); title != "" {
		s.exportOne(w, p, writer, exportID, title)
		return
	}

	res, err := writer.WriteAll(p.ParseSections())
	failures := []exportFailure{}
	var batch *export.BatchError
	if errors.As(err, &batch) {
		for _, f := range batch.Failures {
			failures = append(failures, exportFailure{Title: f.Title, Path: f.Path, Error: f.Err.Error()})
		}
	} else if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	code := http.StatusOK
	switch {
	case len(failures) > 0 && len(res.Files) == 0:
		code = http.StatusInternalServerError
	case len(failures) > 0:
		code = http.StatusMultiStatus
	}
	log.Info("export finished", "files", len(res.Files), "failures", len(failures))

	files := res.Files
	if files == nil {
		files = []export.Written{}
	}
	writeJSON(w, code, map[string]any{
		"export_id": exportID,
		"dir":       res.Dir,
		"files":     files,
		"failures":  failures,
	})
}

func (s *Server) exportOne(w http.ResponseWriter, p *docsplit.Parser, writer *export.Writer, exportID, title string) {
	written, err := writer.SaveSection(p.ParseSections(), title)
	var nf *docsplit.SectionNotFoundError
	switch {
	case errors.As(err, &nf):
		jsonError(w, nf.Error(), http.StatusNotFound)
		return
	case err != nil:
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"export_id": exportID,
		"dir":       writer.Dir(),
		"files":     []export.Written{written},
		"failures":  []exportFailure{},
	})
}
