package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealerworks/dealer-engine-api/config"
	"github.com/dealerworks/dealer-engine-api/ingest"
)

// maxImportMemory caps the in-memory portion of a multipart upload at 32MB;
// larger files spill to temp files.
const maxImportMemory = 32 << 20

// Import exported for testing purposes
type Import struct {
	Importer *ingest.Importer
}

// ImportHandler accepts a multipart upload of provider export files and
// processes them in order. The batch always returns 200; per-file failures
// are reported in the body so one bad export does not block the rest.
func (h Import) ImportHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportMemory); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		config.ErrorStatus("no files provided", http.StatusBadRequest, w, http.ErrMissingFile)
		return
	}

	batch := ingest.BatchResult{BatchID: uuid.New().String()}
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			batch.Files = append(batch.Files, ingest.FileResult{File: fh.Filename, Error: err.Error()})
			continue
		}
		result := h.Importer.ImportFile(fh.Filename, f)
		f.Close()
		if result.Error != "" {
			zap.S().Warnw("import file failed", "file", fh.Filename, "error", result.Error)
		}
		batch.Files = append(batch.Files, result)
	}

	b, err := json.Marshal(batch)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
