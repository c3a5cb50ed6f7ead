package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/homy/internal/domain/models"
	"github.com/mamadbah2/homy/internal/service/receipt"
)

type failingExtractor struct{}

func (failingExtractor) ExtractReceiptItems(context.Context, []byte, string) ([]models.InventoryItem, error) {
	return nil, errors.New("upstream unavailable")
}

func newReceiptEngine(extractor receipt.ItemExtractor, maxBytes int64) *gin.Engine {
	h := NewReceiptHandler(receipt.NewService(extractor, nil), maxBytes, nil)
	r := newEngine()
	r.POST("/api/scan-receipt", h.Scan)
	return r
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file here"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/scan-receipt", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestScanReceiptSample(t *testing.T) {
	r := newReceiptEngine(nil, 1<<20)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "receipt", "receipt.png", pngBytes))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	items := decode(t, w)["items"].([]any)
	require.Len(t, items, 5)
	milk := items[0].(map[string]any)
	assert.Equal(t, "Milk", milk["name"])
	assert.Equal(t, 3.99, milk["price"])
	assert.EqualValues(t, 7, milk["expiryDays"])
	assert.NotContains(t, items[3].(map[string]any), "expiryDays")
}

func TestScanReceiptText(t *testing.T) {
	r := newReceiptEngine(nil, 1<<20)

	text := "03/15/2024\nWhole Milk 3.49\nTOTAL 3.49\n"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "receipt", "receipt.txt", []byte(text)))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"items":[{"name":"Whole Milk","price":3.49,"category":"Dairy","expiryDays":7}],"total":3.49,"date":"03/15/2024"}`, w.Body.String())
}

func TestScanReceiptMissingField(t *testing.T) {
	r := newReceiptEngine(nil, 1<<20)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "", "", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No receipt image provided"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/scan-receipt", strings.NewReader("{}")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No receipt image provided"}`, w.Body.String())
}

func TestScanReceiptEmptyFilename(t *testing.T) {
	r := newReceiptEngine(nil, 1<<20)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "receipt", "", []byte("")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No receipt image selected"}`, w.Body.String())
}

func TestScanReceiptTooLarge(t *testing.T) {
	r := newReceiptEngine(nil, 64)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "receipt", "receipt.png", bytes.Repeat([]byte("x"), 4096)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestScanReceiptExtractorFailure(t *testing.T) {
	r := newReceiptEngine(failingExtractor{}, 1<<20)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "receipt", "receipt.png", pngBytes))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"Receipt extraction failed"}`, w.Body.String())
}
