package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"Trestle/internal/export"
	"Trestle/internal/params"
	"Trestle/internal/report"
	"Trestle/internal/scia"
)

// Handler serves the bridge endpoints. One request recomputes everything
// from the posted parameter set; nothing is cached between requests.
type Handler struct {
	Design    params.Design
	AssetsDir string
	Analysis  *scia.Analysis
}

// decodeParams reads a parameter set from the request body. An empty body
// yields the defaults.
func decodeParams(r *http.Request) (params.Params, error) {
	p := params.Defaults()
	err := json.NewDecoder(r.Body).Decode(&p)
	if err != nil && !errors.Is(err, io.EOF) {
		return p, fmt.Errorf("invalid request payload: %w", err)
	}
	return p, nil
}

// writeError maps the error kinds onto HTTP statuses: user input problems
// are 400, missing deployment assets 500, engine failures 502.
func writeError(w http.ResponseWriter, err error) {
	var fieldErr *params.FieldError
	var infeasible *params.InfeasibleError
	var assetErr *scia.AssetError
	var analysisErr *scia.AnalysisError
	switch {
	case errors.As(err, &fieldErr), errors.As(err, &infeasible):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &assetErr):
		log.Printf("asset error: %v", err)
		http.Error(w, "deployment asset missing", http.StatusInternalServerError)
	case errors.As(err, &analysisErr):
		log.Printf("analysis error: %v", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeDownload(w http.ResponseWriter, filename, contentType string, content []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(content)
}

// Defaults returns the parameter set the editor opens with.
func (h *Handler) Defaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, params.Defaults())
}

// Layout returns the 3D layout scene.
func (h *Handler) Layout(w http.ResponseWriter, r *http.Request) {
	p, err := decodeParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	scene, err := GenerateLayout(p, h.Design, 1)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, scene)
}

// Foundations returns the foundation scene with the layout ghosted behind
// it. The structural model is built first; the visualization reads it.
func (h *Handler) Foundations(w http.ResponseWriter, r *http.Request) {
	p, err := decodeParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	model, err := GenerateModel(p, h.Design)
	if err != nil {
		writeError(w, err)
		return
	}
	scene, err := GenerateFoundations(p, model, h.Design, 0.5)
	if err != nil {
		writeError(w, err)
		return
	}
	layout, err := GenerateLayout(p, h.Design, 0.1)
	if err != nil {
		writeError(w, err)
		return
	}
	scene.Merge(layout)
	writeJSON(w, scene)
}

// Analyze runs the external engine on the generated model and streams back
// the engineering report PDF.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	p, err := decodeParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	model, err := GenerateModel(p, h.Design)
	if err != nil {
		writeError(w, err)
		return
	}
	esa, err := scia.LoadTemplateESA(h.AssetsDir)
	if err != nil {
		writeError(w, err)
		return
	}
	report, jobID, err := h.Analysis.Execute(r.Context(), model, esa)
	if err != nil {
		writeError(w, err)
		return
	}
	writeDownload(w, fmt.Sprintf("report_%s.pdf", jobID), "application/pdf", report)
}

// DownloadXML returns the generated exchange data document.
func (h *Handler) DownloadXML(w http.ResponseWriter, r *http.Request) {
	p, err := decodeParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	model, err := GenerateModel(p, h.Design)
	if err != nil {
		writeError(w, err)
		return
	}
	data, _, err := model.GenerateXML()
	if err != nil {
		writeError(w, err)
		return
	}
	writeDownload(w, "viktor.xml", "application/xml", data)
}

// DownloadDef returns the companion definition document. The definition
// describes the tables, not the data, so an empty model produces it.
func (h *Handler) DownloadDef(w http.ResponseWriter, r *http.Request) {
	_, def, err := scia.NewModel().GenerateXML()
	if err != nil {
		writeError(w, err)
		return
	}
	writeDownload(w, "viktor.xml.def", "application/xml", def)
}

// Report returns the local design summary PDF.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	p, err := decodeParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p.Normalize(h.Design)
	model, err := GenerateModel(p, h.Design)
	if err != nil {
		writeError(w, err)
		return
	}
	pdf, err := report.Build(p, model)
	if err != nil {
		writeError(w, err)
		return
	}
	writeDownload(w, "design_summary.pdf", "application/pdf", pdf)
}

// ExportXLSX returns the bill-of-materials workbook.
func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	p, err := decodeParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	model, err := GenerateModel(p, h.Design)
	if err != nil {
		writeError(w, err)
		return
	}
	wb, err := export.Workbook(model)
	if err != nil {
		writeError(w, err)
		return
	}
	writeDownload(w, "bridge_model.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", wb)
}

// DownloadESA returns the fixed engine project template.
func (h *Handler) DownloadESA(w http.ResponseWriter, r *http.Request) {
	esa, err := scia.LoadTemplateESA(h.AssetsDir)
	if err != nil {
		writeError(w, err)
		return
	}
	writeDownload(w, "model.esa", "application/octet-stream", esa)
}
