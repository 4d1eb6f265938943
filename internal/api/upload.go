package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/docsplit"
	"github.com/dgallion1/docsplit/internal/parser"
	"github.com/go-chi/chi/v5/middleware"
)

// upload is a received document spooled to a temporary file.
type upload struct {
	filename string
	path     string
}

func (u *upload) cleanup() {
	os.Remove(u.path)
}

// receiveUpload reads the multipart "file" field into a temporary file that
// keeps the original extension, since extraction is chosen by extension.
// On failure it writes the error response and returns nil.
func (s *Server) receiveUpload(w http.ResponseWriter, r *http.Request) *upload {
	// Extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return nil
	}

	tmp, err := os.CreateTemp("", "docsplit-upload-*"+strings.ToLower(filepath.Ext(filename)))
	if err != nil {
		jsonError(w, "failed to spool upload", http.StatusInternalServerError)
		return nil
	}
	up := &upload{filename: filename, path: tmp.Name()}

	n, err := io.Copy(tmp, io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	closeErr := tmp.Close()
	if err != nil || closeErr != nil {
		up.cleanup()
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil
	}
	if n > s.cfg.MaxUploadBytes {
		up.cleanup()
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil
	}
	return up
}

// open extracts an upload and records its latency. On failure it writes the
// error response and returns nil.
func (s *Server) open(w http.ResponseWriter, up *upload, log *slog.Logger) *docsplit.Parser {
	start := time.Now()
	p, err := docsplit.Open(up.path, s.sectionConfig(log))
	if s.stats != nil {
		s.stats.Observe(strings.ToLower(filepath.Ext(up.filename)), time.Since(start), err)
	}
	if err != nil {
		log.Warn("extraction failed", "error", err)
		jsonError(w, "extraction failed: "+err.Error(), http.StatusUnprocessableEntity)
		return nil
	}
	// Report the client's filename rather than the spool path.
	doc := p.Document()
	doc.Path = up.filename
	if doc.Title == filepath.Base(strings.TrimSuffix(up.path, filepath.Ext(up.path))) {
		doc.Title = strings.TrimSuffix(up.filename, filepath.Ext(up.filename))
	}
	return p
}

func (s *Server) requestLog(r *http.Request) *slog.Logger {
	return s.log.With("request_id", middleware.GetReqID(r.Context()))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
