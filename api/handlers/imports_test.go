package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerworks/dealer-engine-api/api/handlers"
	"github.com/dealerworks/dealer-engine-api/ingest"
)

func multipartUpload(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImport_ImportHandler(t *testing.T) {
	registry, _ := newTestApp(t)
	addTestDealer(t, registry, "Smith Motors")
	h := handlers.Import{Importer: &ingest.Importer{Registry: registry}}

	csvData := strings.Join([]string{
		"Service Date,Dealer,Stock Number,Stock Type,Price,Description,Notes",
		"3/15/2024,Smith Motors,U1,Used,19.95,2019 Honda Civic,",
	}, "\n")

	body, contentType := multipartUpload(t, map[string]string{"march.csv": csvData})
	req := httptest.NewRequest("POST", "/api/v1/imports", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.ImportHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var batch ingest.BatchResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &batch))
	assert.NotEmpty(t, batch.BatchID)
	require.Len(t, batch.Files, 1)
	assert.Equal(t, 1, batch.Files[0].RowsImported)
	assert.Equal(t, "Custom Template", batch.Files[0].Provider)

	dealer, ok := registry.Lookup("Smith Motors")
	require.True(t, ok)
	assert.Equal(t, 1, dealer.VehicleCount())
}

func TestImport_ImportHandlerContinuesPastFailedFile(t *testing.T) {
	registry, _ := newTestApp(t)
	addTestDealer(t, registry, "Smith Motors")
	h := handlers.Import{Importer: &ingest.Importer{Registry: registry}}

	good := strings.Join([]string{
		"Service Date,Dealer,Stock Number,Stock Type,Price,Description,Notes",
		"3/15/2024,Smith Motors,U1,Used,19.95,,",
	}, "\n")

	body, contentType := multipartUpload(t, map[string]string{
		"bad.txt":   "not an export",
		"march.csv": good,
	})
	req := httptest.NewRequest("POST", "/api/v1/imports", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.ImportHandler(rr, req)

	// One bad file never fails the batch.
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var batch ingest.BatchResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &batch))
	require.Len(t, batch.Files, 2)

	results := map[string]ingest.FileResult{}
	for _, f := range batch.Files {
		results[f.File] = f
	}
	assert.NotEmpty(t, results["bad.txt"].Error)
	assert.Empty(t, results["march.csv"].Error)
	assert.Equal(t, 1, results["march.csv"].RowsImported)
}

func TestImport_ImportHandlerNoFiles(t *testing.T) {
	registry, _ := newTestApp(t)
	h := handlers.Import{Importer: &ingest.Importer{Registry: registry}}

	body, contentType := multipartUpload(t, nil)
	req := httptest.NewRequest("POST", "/api/v1/imports", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.ImportHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
