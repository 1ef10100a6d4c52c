package scia

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// AnalysisTimeout bounds one engine run. Engine failures are never retried;
// whatever diagnostics the worker returns are passed through to the caller.
const AnalysisTimeout = 600 * time.Second

// AnalysisError wraps a failed external engine run with the worker's
// diagnostics.
type AnalysisError struct {
	JobID       string
	Diagnostics string
	Err         error
}

func (e *AnalysisError) Error() string {
	if e.Diagnostics != "" {
		return fmt.Sprintf("external analysis failed (job %s): %s", e.JobID, e.Diagnostics)
	}
	return fmt.Sprintf("external analysis failed (job %s): %v", e.JobID, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// AssetError marks a missing or unreadable deployment asset, a fatal
// configuration problem rather than a user-input one.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("deployment asset %s: %v", e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// LoadTemplateESA reads the fixed engine project template shipped with the
// deployment. The engine merges the exchange document into this file.
func LoadTemplateESA(assetsDir string) ([]byte, error) {
	path := filepath.Join(assetsDir, "model.esa")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	return b, nil
}

// Analysis submits structural models to the external engine worker and
// retrieves engineering reports.
type Analysis struct {
	WorkerURL string
	Client    *http.Client
}

func NewAnalysis(workerURL string) *Analysis {
	return &Analysis{
		WorkerURL: workerURL,
		Client:    &http.Client{Timeout: AnalysisTimeout},
	}
}

// Execute sends the exchange documents and the project template to the
// worker and returns the engineering report as PDF bytes together with the
// job id. The call blocks for at most AnalysisTimeout.
func (a *Analysis) Execute(ctx context.Context, m *Model, esaTemplate []byte) ([]byte, string, error) {
	jobID := uuid.NewString()

	data, def, err := m.GenerateXML()
	if err != nil {
		return nil, jobID, &AnalysisError{JobID: jobID, Err: err}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	parts := []struct {
		field, filename string
		content         []byte
	}{
		{"input_xml", "viktor.xml", data},
		{"input_def", defFileName, def},
		{"scia_model", "model.esa", esaTemplate},
	}
	for _, p := range parts {
		fw, err := mw.CreateFormFile(p.field, p.filename)
		if err != nil {
			return nil, jobID, &AnalysisError{JobID: jobID, Err: err}
		}
		if _, err := fw.Write(p.content); err != nil {
			return nil, jobID, &AnalysisError{JobID: jobID, Err: err}
		}
	}
	if err := mw.WriteField("result_type", "engineering_report"); err != nil {
		return nil, jobID, &AnalysisError{JobID: jobID, Err: err}
	}
	if err := mw.WriteField("output_document", "Report_1"); err != nil {
		return nil, jobID, &AnalysisError{JobID: jobID, Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, jobID, &AnalysisError{JobID: jobID, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, AnalysisTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.WorkerURL, &body)
	if err != nil {
		return nil, jobID, &AnalysisError{JobID: jobID, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Job-ID", jobID)

	resp, err := a.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, jobID, &AnalysisError{JobID: jobID, Diagnostics: "engine timed out", Err: err}
		}
		return nil, jobID, &AnalysisError{JobID: jobID, Err: err}
	}
	defer resp.Body.Close()

	report, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, jobID, &AnalysisError{JobID: jobID, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, jobID, &AnalysisError{
			JobID:       jobID,
			Diagnostics: string(report),
			Err:         fmt.Errorf("worker returned %s", resp.Status),
		}
	}
	return report, jobID, nil
}
