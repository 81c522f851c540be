package ui

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gowrangle/adapters/excel"
	"gowrangle/domain/core"
	"gowrangle/domain/header"
	"gowrangle/domain/mapping"
	"gowrangle/internal/report"
)

// maxUploadBytes bounds multipart upload memory usage
const maxUploadBytes = 32 << 20

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload accepts a multipart xlsx/csv upload, runs the pipeline,
// persists the mapping, and returns it
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	var grid *header.Grid
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv":
		grid, err = excel.ReadCSVGrid(file)
	case ".xlsx":
		grid, err = excel.ReadExcelGrid(file)
	default:
		writeError(w, http.StatusBadRequest, "unsupported file type, expected .xlsx or .csv")
		return
	}
	if err != nil {
		log.Printf("[UI] Upload parse failed for %s: %v", fileHeader.Filename, err)
		writeError(w, http.StatusBadRequest, "could not parse uploaded file")
		return
	}

	rec, _, err := a.wrangler.Wrangle(r.Context(), fileHeader.Filename, grid)
	if err != nil {
		if core.IsInputError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[UI] Wrangle failed for %s: %v", fileHeader.Filename, err)
		writeError(w, http.StatusInternalServerError, "pipeline failed")
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (a *App) handleListMappings(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	list, err := a.wrangler.List(r.Context(), limit, offset)
	if err != nil {
		log.Printf("[UI] List mappings failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list mappings")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *App) handleGetMapping(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.loadMapping(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleMappingReport renders the per-column comparison as HTML
func (a *App) handleMappingReport(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.loadMapping(w, r)
	if !ok {
		return
	}

	md := report.Build(rec.HeaderRows, rec.Columns).RenderMarkdown()

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.CompletePage})
	html := markdown.ToHTML([]byte(md), p, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

// handleMappingReportCSV renders the comparison as CSV
func (a *App) handleMappingReportCSV(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.loadMapping(w, r)
	if !ok {
		return
	}

	data, err := report.Build(rec.HeaderRows, rec.Columns).RenderCSV()
	if err != nil {
		log.Printf("[UI] CSV render failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="column_comparison.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (a *App) loadMapping(w http.ResponseWriter, r *http.Request) (*mapping.Record, bool) {
	id := chi.URLParam(r, "id")
	rec, err := a.wrangler.Get(r.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			writeError(w, http.StatusNotFound, "mapping not found")
		} else {
			writeError(w, http.StatusBadRequest, "invalid mapping id")
		}
		return nil, false
	}
	return rec, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[UI] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
