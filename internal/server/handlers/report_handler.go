package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/domain/models"
)

const defaultHistoryLimit = 7

var errInvalidLimit = fmt.Errorf("%w: limit must be a positive integer", models.ErrValidation)

// ReportBuilder produces the household digest.
type ReportBuilder interface {
	BuildDailyReport(ctx context.Context, now time.Time) (models.DailyReport, error)
}

// ReportArchive lists archived digests.
type ReportArchive interface {
	LatestReports(ctx context.Context, limit int64) ([]models.DailyReport, error)
}

// ReportHandler serves the household digest.
type ReportHandler struct {
	builder ReportBuilder
	archive ReportArchive
	now     func() time.Time
	logger  *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter. archive may be nil.
func NewReportHandler(builder ReportBuilder, archive ReportArchive, clock func() time.Time, logger *zap.Logger) *ReportHandler {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{builder: builder, archive: archive, now: clock, logger: logger}
}

// Daily builds the digest for the current moment.
func (h *ReportHandler) Daily(c *gin.Context) {
	report, err := h.builder.BuildDailyReport(c.Request.Context(), h.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// History returns archived digests, newest first.
func (h *ReportHandler) History(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Report archive not configured"})
		return
	}

	limit := int64(defaultHistoryLimit)
	if raw, ok := c.GetQuery("limit"); ok {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			respondError(c, h.logger, errInvalidLimit)
			return
		}
		limit = v
	}

	reports, err := h.archive.LatestReports(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to load report history", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Report archive unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
