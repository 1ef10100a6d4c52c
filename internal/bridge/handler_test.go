package bridge

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Trestle/internal/params"
	"Trestle/internal/scia"
)

func testHandler(t *testing.T, workerURL string) *Handler {
	t.Helper()
	assets := t.TempDir()
	if err := os.WriteFile(filepath.Join(assets, "model.esa"), []byte("esa-template"), 0o644); err != nil {
		t.Fatal(err)
	}
	return &Handler{
		Design:    params.DefaultDesign(),
		AssetsDir: assets,
		Analysis:  scia.NewAnalysis(workerURL),
	}
}

func TestLayoutHandler(t *testing.T) {
	h := testHandler(t, "")

	r := httptest.NewRequest(http.MethodPost, "/api/bridge/layout", strings.NewReader(`{"width_m":20,"length_m":100,"height_m":10,"deck_thickness_m":2,"support_amount":1,"pile_length_m":20,"pile_angle_deg":10,"pile_thickness_mm":500,"soil_stiffness_mn_m":400,"deck_load_kn_m2":100}`))
	w := httptest.NewRecorder()
	h.Layout(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type %q", ct)
	}
	if !strings.Contains(w.Body.String(), `"children"`) {
		t.Error("expected a scene document")
	}
}

func TestLayoutHandlerValidation(t *testing.T) {
	h := testHandler(t, "")

	r := httptest.NewRequest(http.MethodPost, "/api/bridge/layout", strings.NewReader(`{"width_m":-1}`))
	w := httptest.NewRecorder()
	h.Layout(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "width_m") {
		t.Errorf("error must name the field, got %q", w.Body.String())
	}
}

func TestFoundationsHandlerDefaults(t *testing.T) {
	h := testHandler(t, "")

	// Empty body falls back to the default parameter set.
	r := httptest.NewRequest(http.MethodPost, "/api/bridge/foundations", nil)
	w := httptest.NewRecorder()
	h.Foundations(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
}

func TestDownloadDefHandler(t *testing.T) {
	h := testHandler(t, "")

	r := httptest.NewRequest(http.MethodPost, "/api/bridge/download/def", nil)
	w := httptest.NewRecorder()
	h.DownloadDef(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "viktor.xml.def") {
		t.Errorf("content disposition %q", cd)
	}
}

func TestDownloadESAMissingAsset(t *testing.T) {
	h := &Handler{
		Design:    params.DefaultDesign(),
		AssetsDir: filepath.Join(t.TempDir(), "nope"),
		Analysis:  scia.NewAnalysis(""),
	}

	r := httptest.NewRequest(http.MethodGet, "/api/bridge/download/esa", nil)
	w := httptest.NewRecorder()
	h.DownloadESA(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", w.Code)
	}
}

func TestAnalyzeHandler(t *testing.T) {
	worker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Job-ID") == "" {
			t.Error("missing job id")
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		for _, field := range []string{"input_xml", "input_def", "scia_model"} {
			if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
				t.Errorf("missing part %q", field)
			}
		}
		w.Write([]byte("%PDF-1.4 report"))
	}))
	defer worker.Close()

	h := testHandler(t, worker.URL)
	r := httptest.NewRequest(http.MethodPost, "/api/bridge/analysis", nil)
	w := httptest.NewRecorder()
	h.Analyze(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Error("expected PDF bytes")
	}
}

func TestAnalyzeHandlerWorkerFailure(t *testing.T) {
	worker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "solver diverged", http.StatusInternalServerError)
	}))
	defer worker.Close()

	h := testHandler(t, worker.URL)
	r := httptest.NewRequest(http.MethodPost, "/api/bridge/analysis", nil)
	w := httptest.NewRecorder()
	h.Analyze(w, r)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "solver diverged") {
		t.Errorf("worker diagnostics must be passed through, got %q", w.Body.String())
	}
}
