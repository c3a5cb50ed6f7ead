package receipt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/domain/models"
)

var (
	// ErrNoReceipt is returned when the upload has no receipt field at all.
	ErrNoReceipt = fmt.Errorf("%w: no receipt image provided", models.ErrValidation)
	// ErrNoReceiptSelected is returned when the receipt field carries no file name.
	ErrNoReceiptSelected = fmt.Errorf("%w: no receipt image selected", models.ErrValidation)
	// ErrExtractionFailed wraps failures of the remote extractor.
	ErrExtractionFailed = errors.New("receipt extraction failed")
)

// Image formats the vision extractor accepts.
var visionMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ItemExtractor reads line items off a receipt photo.
type ItemExtractor interface {
	ExtractReceiptItems(ctx context.Context, image []byte, mediaType string) ([]models.InventoryItem, error)
}

// Upload is a received receipt file.
type Upload struct {
	Filename string
	Data     []byte
}

// Service turns receipt uploads into inventory-shaped items.
type Service struct {
	extractor ItemExtractor
	logger    *zap.Logger
}

// NewService builds the service. extractor may be nil, in which case photos
// get the sample receipt.
func NewService(extractor ItemExtractor, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{extractor: extractor, logger: logger}
}

// Scan picks an extraction strategy from the sniffed content type: plain text
// is parsed line by line, supported photos go to the vision extractor when
// one is configured, anything else yields the sample receipt.
func (s *Service) Scan(ctx context.Context, upload *Upload) (models.ParsedReceipt, error) {
	if upload == nil {
		return models.ParsedReceipt{}, ErrNoReceipt
	}
	if strings.TrimSpace(upload.Filename) == "" {
		return models.ParsedReceipt{}, ErrNoReceiptSelected
	}

	mt := mimetype.Detect(upload.Data)
	mediaType := strings.TrimSpace(strings.SplitN(mt.String(), ";", 2)[0])

	switch {
	case mt.Is("text/plain"):
		parsed := ParseText(string(upload.Data))
		s.logger.Info("receipt parsed from text",
			zap.String("filename", upload.Filename),
			zap.Int("items", len(parsed.Items)))
		return parsed, nil
	case s.extractor != nil && visionMediaTypes[mediaType]:
		items, err := s.extractor.ExtractReceiptItems(ctx, upload.Data, mediaType)
		if err != nil {
			s.logger.Error("receipt extraction failed", zap.String("filename", upload.Filename), zap.Error(err))
			return models.ParsedReceipt{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		for i := range items {
			if items[i].Category == "" {
				items[i].Category = Categorize(items[i].Name)
			}
		}
		s.logger.Info("receipt extracted from image",
			zap.String("filename", upload.Filename),
			zap.String("media_type", mediaType),
			zap.Int("items", len(items)))
		return models.ParsedReceipt{Items: nonNil(items)}, nil
	default:
		s.logger.Debug("no extractor for upload, returning sample receipt",
			zap.String("filename", upload.Filename),
			zap.String("media_type", mediaType))
		return models.ParsedReceipt{Items: SampleItems()}, nil
	}
}

func nonNil(items []models.InventoryItem) []models.InventoryItem {
	if items == nil {
		return []models.InventoryItem{}
	}
	return items
}
