package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/domain/models"
	"github.com/mamadbah2/homy/internal/service/shopping"
)

var errInvalidItemID = fmt.Errorf("%w: id must be an integer", models.ErrValidation)

// ShoppingList is the shopping list surface the HTTP layer needs.
type ShoppingList interface {
	List() []models.ShoppingEntry
	Add(entry models.ShoppingEntry) ([]models.ShoppingEntry, error)
	RemoveAt(index int) (models.ShoppingEntry, []models.ShoppingEntry, error)
	Clear() []models.ShoppingEntry
}

// ShoppingHandler serves the shopping list.
type ShoppingHandler struct {
	list   ShoppingList
	logger *zap.Logger
}

// NewShoppingHandler constructs the HTTP handler adapter.
func NewShoppingHandler(list ShoppingList, logger *zap.Logger) *ShoppingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShoppingHandler{list: list, logger: logger}
}

type addShoppingRequest struct {
	Item models.ShoppingEntry `json:"item"`
}

// List returns the current entries.
func (h *ShoppingHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.list.List()})
}

// Add appends {"item": ...} and returns the updated list.
func (h *ShoppingHandler) Add(c *gin.Context) {
	var req addShoppingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			respondError(c, h.logger, shopping.ErrMissingItem)
			return
		}
		respondInvalidBody(c, h.logger, err)
		return
	}

	items, err := h.list.Add(req.Item)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
}

// Delete removes the entry at ?id=N, or clears the whole list when id is absent.
func (h *ShoppingHandler) Delete(c *gin.Context) {
	raw, ok := c.GetQuery("id")
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "items": h.list.Clear()})
		return
	}

	index, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, h.logger, errInvalidItemID)
		return
	}

	removed, items, err := h.list.RemoveAt(index)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "removed": removed, "items": items})
}
