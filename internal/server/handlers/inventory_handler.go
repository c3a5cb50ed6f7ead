package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/domain/models"
	"github.com/mamadbah2/homy/internal/service/inventory"
	"github.com/mamadbah2/homy/internal/service/suggestions"
)

var errInvalidDays = fmt.Errorf("%w: days must be a non-negative integer", models.ErrValidation)

// InventoryStore is the inventory surface the HTTP layer needs.
type InventoryStore interface {
	Get() models.Inventory
	Add(bucket string, item *models.InventoryItem) (models.InventoryItem, error)
	Remove(bucket string, index int) (models.InventoryItem, error)
}

// InventoryHandler serves the pantry and household buckets.
type InventoryHandler struct {
	store          InventoryStore
	now            func() time.Time
	expiringWithin int
	logger         *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter. A nil clock means time.Now.
func NewInventoryHandler(store InventoryStore, clock func() time.Time, expiringWithin int, logger *zap.Logger) *InventoryHandler {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{store: store, now: clock, expiringWithin: expiringWithin, logger: logger}
}

type addInventoryRequest struct {
	Category string                `json:"category"`
	Item     *models.InventoryItem `json:"item"`
}

// List returns both buckets.
func (h *InventoryHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Get())
}

// Add appends an item to the requested bucket and returns the whole inventory.
func (h *InventoryHandler) Add(c *gin.Context) {
	var req addInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			respondError(c, h.logger, inventory.ErrMissingItem)
			return
		}
		respondInvalidBody(c, h.logger, err)
		return
	}

	if _, err := h.store.Add(req.Category, req.Item); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "inventory": h.store.Get()})
}

// Remove deletes the item at the given position. A non-numeric or negative
// index is reported like any other missing item.
func (h *InventoryHandler) Remove(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, h.logger, inventory.ErrItemNotFound)
		return
	}

	removed, err := h.store.Remove(c.Param("category"), index)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "removed": removed})
}

// Expiring lists items expiring within ?days=N (default from config).
func (h *InventoryHandler) Expiring(c *gin.Context) {
	within := h.expiringWithin
	if raw, ok := c.GetQuery("days"); ok {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			respondError(c, h.logger, errInvalidDays)
			return
		}
		within = days
	}

	items := suggestions.Expiring(h.store.Get(), h.now(), within)
	c.JSON(http.StatusOK, gin.H{"days": within, "items": items})
}
