package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"trimplan/internal/config"
	"trimplan/internal/domain"
	"trimplan/internal/httputil"
	"trimplan/internal/service/plan"
	"trimplan/internal/service/render"
)

// defaultImportName labels raw-body imports that carry no filename
const defaultImportName = "upload.json"

// ExportJSON downloads the document as trim-produksjonsplan.json
// GET /api/plan/export
func (h *PlanHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Export()
	if err != nil {
		h.logger.Error("failed to export plan", "error", err)
		handleError(w, err)
		return
	}
	httputil.RespondAttachment(w, "application/json", plan.ExportFileName, data)
}

// ImportJSON replaces the document with an uploaded file.
// Accepts multipart/form-data with a "file" part, or the JSON as the raw body
// (optionally named via ?filename=).
// POST /api/plan/import
func (h *PlanHandler) ImportJSON(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxImportBytes+1<<20)

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = defaultImportName
	}
	var body io.Reader = r.Body

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		file, header, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				httputil.RespondError(w, http.StatusRequestEntityTooLarge, "file too large")
				return
			}
			httputil.RespondError(w, http.StatusBadRequest, "multipart form must contain a \"file\" part")
			return
		}
		defer func() { _ = file.Close() }() // Error ignored: read-only upload

		filename = header.Filename
		body = file
	}

	doc, err := h.service.Import(r.Context(), filename, body)
	if err != nil {
		var importErr *domain.ImportError
		if errors.As(err, &importErr) {
			h.logger.Warn("import rejected", "file", filename, "error", importErr.Err)
		}
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// ExportMarkdown downloads the print view as Markdown
// GET /api/plan/export.md
func (h *PlanHandler) ExportMarkdown(w http.ResponseWriter, r *http.Request) {
	doc := h.service.Current()
	data, err := render.Markdown(doc)
	if err != nil {
		h.logger.Error("failed to render markdown", "error", err)
		handleError(w, err)
		return
	}
	httputil.RespondAttachment(w, "text/markdown; charset=utf-8", render.FileName(doc, "md"), data)
}

// PrintView serves the printable HTML page. Use the browser's print dialog
// to produce a PDF.
// GET /plan/print
func (h *PlanHandler) PrintView(w http.ResponseWriter, r *http.Request) {
	doc := h.service.Current()
	data, err := render.HTML(doc)
	if err != nil {
		h.logger.Error("failed to render print view", "error", err)
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Suggested-Filename", render.FileName(doc, "pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
