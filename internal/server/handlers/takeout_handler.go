package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/domain/models"
	"github.com/mamadbah2/homy/internal/service/takeout"
)

// TakeoutRecorder stores takeout records.
type TakeoutRecorder interface {
	Record(payload models.TakeoutRecord) (models.TakeoutRecord, error)
}

// TakeoutHandler serves the takeout log.
type TakeoutHandler struct {
	log    TakeoutRecorder
	logger *zap.Logger
}

// NewTakeoutHandler constructs the HTTP handler adapter.
func NewTakeoutHandler(log TakeoutRecorder, logger *zap.Logger) *TakeoutHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TakeoutHandler{log: log, logger: logger}
}

// Record stamps and stores an arbitrary JSON object.
func (h *TakeoutHandler) Record(c *gin.Context) {
	var payload models.TakeoutRecord
	if err := c.ShouldBindJSON(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			respondError(c, h.logger, takeout.ErrMissingPayload)
			return
		}
		respondInvalidBody(c, h.logger, err)
		return
	}

	stored, err := h.log.Record(payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "takeout": stored})
}
