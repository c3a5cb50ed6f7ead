package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/domain/models"
)

// Suggester maps a mode to a canned suggestion.
type Suggester interface {
	Suggest(mode string) (models.Suggestion, error)
}

// SuggestionHandler serves meal suggestions.
type SuggestionHandler struct {
	engine Suggester
	logger *zap.Logger
}

// NewSuggestionHandler constructs the HTTP handler adapter.
func NewSuggestionHandler(engine Suggester, logger *zap.Logger) *SuggestionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuggestionHandler{engine: engine, logger: logger}
}

// Get answers ?type=expiring|available|weekly. An absent type means available.
func (h *SuggestionHandler) Get(c *gin.Context) {
	mode := c.DefaultQuery("type", string(models.DefaultSuggestionMode))

	suggestion, err := h.engine.Suggest(mode)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
