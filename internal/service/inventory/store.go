package inventory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/domain/models"
)

// MaxExpiryDays bounds expiryDays so the stamped date stays a four-digit year.
const MaxExpiryDays = 36500

var (
	// ErrInvalidBucket is returned when the bucket key is not pantry or household.
	ErrInvalidBucket = fmt.Errorf("%w: unknown category", models.ErrValidation)
	// ErrMissingItem is returned when the item is absent or has no name.
	ErrMissingItem = fmt.Errorf("%w: item with a name is required", models.ErrValidation)
	// ErrNegativePrice is returned when a supplied price is below zero.
	ErrNegativePrice = fmt.Errorf("%w: price must not be negative", models.ErrValidation)
	// ErrNegativeExpiry is returned when expiryDays is below zero.
	ErrNegativeExpiry = fmt.Errorf("%w: expiryDays must not be negative", models.ErrValidation)
	// ErrExpiryTooFar is returned when expiryDays exceeds MaxExpiryDays.
	ErrExpiryTooFar = fmt.Errorf("%w: expiryDays must not exceed %d", models.ErrValidation, MaxExpiryDays)
	// ErrItemNotFound covers both an unknown bucket and an out-of-range index on removal.
	ErrItemNotFound = fmt.Errorf("item %w", models.ErrNotFound)
)

// Store owns the pantry and household buckets. Items are addressed by their
// current position, so removing one shifts every later item down by one.
type Store struct {
	mu      sync.RWMutex
	buckets map[models.Bucket][]models.InventoryItem
	now     func() time.Time
	newID   func() string
	logger  *zap.Logger
}

// NewStore creates a store with both buckets empty. A nil clock means time.Now.
func NewStore(clock func() time.Time, logger *zap.Logger) *Store {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	buckets := make(map[models.Bucket][]models.InventoryItem, len(models.Buckets))
	for _, b := range models.Buckets {
		buckets[b] = []models.InventoryItem{}
	}

	return &Store{
		buckets: buckets,
		now:     clock,
		newID:   uuid.NewString,
		logger:  logger,
	}
}

// Get returns a deep copy of every bucket.
func (s *Store) Get() models.Inventory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(models.Inventory, len(s.buckets))
	for bucket, items := range s.buckets {
		out[bucket] = cloneItems(items)
	}
	return out
}

// Add validates the item, stamps its expiry date and appends it to the bucket.
// expiryDays of zero is treated like an absent value and yields no stamp.
func (s *Store) Add(bucket string, item *models.InventoryItem) (models.InventoryItem, error) {
	b, ok := models.ParseBucket(bucket)
	if !ok {
		return models.InventoryItem{}, ErrInvalidBucket
	}
	if item == nil || strings.TrimSpace(item.Name) == "" {
		return models.InventoryItem{}, ErrMissingItem
	}
	if item.Price != nil && item.Price.IsNegative() {
		return models.InventoryItem{}, ErrNegativePrice
	}
	if item.ExpiryDays != nil && *item.ExpiryDays < 0 {
		return models.InventoryItem{}, ErrNegativeExpiry
	}
	if item.ExpiryDays != nil && *item.ExpiryDays > MaxExpiryDays {
		return models.InventoryItem{}, ErrExpiryTooFar
	}

	stored := item.Clone()
	stored.ID = s.newID()
	stored.ExpiryDate = ""
	if stored.ExpiryDays != nil && *stored.ExpiryDays != 0 {
		stored.ExpiryDate = s.now().AddDate(0, 0, *stored.ExpiryDays).Format(models.DateLayout)
	}

	s.mu.Lock()
	s.buckets[b] = append(s.buckets[b], stored)
	size := len(s.buckets[b])
	s.mu.Unlock()

	s.logger.Info("inventory item added",
		zap.String("bucket", string(b)),
		zap.String("name", stored.Name),
		zap.String("expiry_date", stored.ExpiryDate),
		zap.Int("bucket_size", size))

	return stored.Clone(), nil
}

// Remove deletes and returns the item at index.
func (s *Store) Remove(bucket string, index int) (models.InventoryItem, error) {
	b, ok := models.ParseBucket(bucket)
	if !ok {
		return models.InventoryItem{}, ErrItemNotFound
	}

	s.mu.Lock()
	items := s.buckets[b]
	if index < 0 || index >= len(items) {
		s.mu.Unlock()
		return models.InventoryItem{}, ErrItemNotFound
	}
	removed := items[index]
	s.buckets[b] = append(items[:index:index], items[index+1:]...)
	s.mu.Unlock()

	s.logger.Info("inventory item removed",
		zap.String("bucket", string(b)),
		zap.Int("index", index),
		zap.String("name", removed.Name))

	return removed, nil
}

func cloneItems(items []models.InventoryItem) []models.InventoryItem {
	out := make([]models.InventoryItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
