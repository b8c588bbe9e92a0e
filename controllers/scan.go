package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Chaukil/scanchi/extractor"
	"github.com/Chaukil/scanchi/jobs"
	"github.com/Chaukil/scanchi/logger"
	"github.com/Chaukil/scanchi/models"
	"github.com/Chaukil/scanchi/ocr"
)

// ScanController accepts document uploads and turns them into candidate
// records for human confirmation.
type ScanController struct {
	recognizers    map[string]ocr.Recognizer
	worker         *jobs.ScanWorker
	maxUploadBytes int64
}

// NewScanController wires the upload endpoints. Recognizers are keyed by the
// "source" form value; the "image" entry is the default.
func NewScanController(recognizers map[string]ocr.Recognizer, worker *jobs.ScanWorker, maxUploadMB int64) *ScanController {
	return &ScanController{
		recognizers:    recognizers,
		worker:         worker,
		maxUploadBytes: maxUploadMB << 20,
	}
}

// ScanResponse is the synchronous extraction result.
type ScanResponse struct {
	Candidates []models.CandidateRecord `json:"candidates"`
}

// CreateScan handles POST /scans: recognize the uploaded document and return
// the extracted candidate records. Extraction failures are terminal for this
// upload and reported as 422 with a machine-readable code so the client can
// prompt for a clearer capture.
func (c *ScanController) CreateScan(w http.ResponseWriter, r *http.Request) {
	path, source, ok := c.saveUpload(w, r)
	if !ok {
		return
	}
	defer os.Remove(path)

	recognizer, ok := c.recognizers[source]
	if !ok {
		http.Error(w, "Unknown source: "+source, http.StatusBadRequest)
		return
	}

	res, err := recognizer.Recognize(path)
	if err != nil {
		logger.Error("recognition failed", "source", source, "error", err)
		http.Error(w, "Failed to recognize document", http.StatusInternalServerError)
		return
	}

	candidates, err := extractor.Extract(res)
	if err != nil {
		logger.Warn("extraction failed", "source", source, "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"code":  jobs.ErrorCode(err),
			"error": err.Error(),
		})
		return
	}

	logger.Info("extraction completed", "source", source, "candidates", len(candidates))
	writeJSON(w, http.StatusOK, ScanResponse{Candidates: candidates})
}

// CreateScanAsync handles POST /scans/async: queue the upload on the scan
// worker and return its generation. The result arrives on the SSE stream.
func (c *ScanController) CreateScanAsync(w http.ResponseWriter, r *http.Request) {
	path, source, ok := c.saveUpload(w, r)
	if !ok {
		return
	}

	if source != "image" {
		os.Remove(path)
		http.Error(w, "Async scans support image uploads only", http.StatusBadRequest)
		return
	}

	generation, queued := c.worker.Enqueue(path)
	if !queued {
		http.Error(w, "Scan queue full, try again", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]uint64{"generation": generation})
}

// saveUpload copies the multipart "image" file to a temp path. On failure it
// writes the error response and returns ok=false.
func (c *ScanController) saveUpload(w http.ResponseWriter, r *http.Request) (path, source string, ok bool) {
	if err := r.ParseMultipartForm(c.maxUploadBytes); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return "", "", false
	}

	file, fh, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Error retrieving file", http.StatusBadRequest)
		return "", "", false
	}
	defer file.Close()

	source = r.FormValue("source")
	if source == "" {
		source = "image"
	}

	ext := filepath.Ext(fh.Filename)
	tempFile, err := os.CreateTemp(os.TempDir(), "upload-*"+ext)
	if err != nil {
		http.Error(w, "Failed to create temp file", http.StatusInternalServerError)
		return "", "", false
	}
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, file); err != nil {
		os.Remove(tempFile.Name())
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return "", "", false
	}

	logger.Debug("upload saved", "path", tempFile.Name(), "source", source)
	return tempFile.Name(), source, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

