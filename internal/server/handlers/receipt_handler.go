package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/domain/models"
	"github.com/mamadbah2/homy/internal/service/receipt"
)

const receiptField = "receipt"

// ReceiptScanner extracts items from an uploaded receipt.
type ReceiptScanner interface {
	Scan(ctx context.Context, upload *receipt.Upload) (models.ParsedReceipt, error)
}

// ReceiptHandler serves receipt uploads.
type ReceiptHandler struct {
	scanner  ReceiptScanner
	maxBytes int64
	logger   *zap.Logger
}

// NewReceiptHandler constructs the HTTP handler adapter. maxBytes caps the
// request body.
func NewReceiptHandler(scanner ReceiptScanner, maxBytes int64, logger *zap.Logger) *ReceiptHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptHandler{scanner: scanner, maxBytes: maxBytes, logger: logger}
}

// Scan reads the multipart "receipt" file and returns the extracted items.
func (h *ReceiptHandler) Scan(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}

	upload, err := h.readUpload(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("receipt upload too large", zap.Int64("limit", tooLarge.Limit))
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Receipt image too large"})
			return
		}
		respondError(c, h.logger, err)
		return
	}

	parsed, err := h.scanner.Scan(c.Request.Context(), upload)
	if err != nil {
		if errors.Is(err, receipt.ErrExtractionFailed) {
			h.logger.Error("receipt extraction failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Receipt extraction failed"})
			return
		}
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, parsed)
}

// readUpload returns nil when no receipt field was sent and an Upload with an
// empty filename when the field was sent without a file.
func (h *ReceiptHandler) readUpload(c *gin.Context) (*receipt.Upload, error) {
	fh, err := c.FormFile(receiptField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		// Parts without a filename are parsed as plain values.
		if form := c.Request.MultipartForm; form != nil && len(form.Value[receiptField]) > 0 {
			return &receipt.Upload{}, nil
		}
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open receipt upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read receipt upload: %w", err)
	}

	return &receipt.Upload{Filename: fh.Filename, Data: data}, nil
}
