package api

import (
	"errors"
	"net/http"

	"github.com/dgallion1/docsplit"
	"github.com/dgallion1/docsplit/internal/section"
)

// handleSections returns the section tree of an uploaded document.
func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	up := s.receiveUpload(w, r)
	if up == nil {
		return
	}
	defer up.cleanup()

	log := s.requestLog(r).With("filename", up.filename)
	p := s.open(w, up, log)
	if p == nil {
		return
	}

	doc := p.Document()
	kinds := make(map[string]int)
	for _, el := range doc.Elements {
		kinds[el.Kind.String()]++
	}

	sections := p.ParseSections()
	total := len(section.Flatten(sections))
	log.Info("sections built", "top_level", len(sections), "total", total)
	writeJSON(w, http.StatusOK, map[string]any{
		"document": up.filename,
		"title":    doc.Title,
		"elements": len(doc.Elements),
		"kinds":    kinds,
		"total":    total,
		"sections": sections,
	})
}

// handleFindSection returns the first section whose title matches the
// "title" form value exactly.
func (s *Server) handleFindSection(w http.ResponseWriter, r *http.Request) {
	up := s.receiveUpload(w, r)
	if up == nil {
		return
	}
	defer up.cleanup()

	title := r.FormValue("title")
	if title == "" {
		jsonError(w, "title is required", http.StatusBadRequest)
		return
	}

	log := s.requestLog(r).With("filename", up.filename)
	p := s.open(w, up, log)
	if p == nil {
		return
	}

	sec, err := p.GetSection(title)
	var nf *docsplit.SectionNotFoundError
	if errors.As(err, &nf) {
		jsonError(w, nf.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sec)
}
