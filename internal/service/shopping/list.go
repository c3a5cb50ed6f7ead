package shopping

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/domain/models"
)

var (
	// ErrMissingItem is returned when the entry is null or empty.
	ErrMissingItem = fmt.Errorf("%w: no item provided", models.ErrValidation)
	// ErrItemNotFound is returned when the index is out of range.
	ErrItemNotFound = fmt.Errorf("item %w", models.ErrNotFound)
)

// List is an ordered shopping list addressed by position.
type List struct {
	mu      sync.RWMutex
	entries []models.ShoppingEntry
	logger  *zap.Logger
}

// NewList creates an empty list.
func NewList(logger *zap.Logger) *List {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &List{entries: []models.ShoppingEntry{}, logger: logger}
}

// List returns the current entries in insertion order.
func (l *List) List() []models.ShoppingEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot()
}

// Add appends an entry and returns the updated list.
func (l *List) Add(entry models.ShoppingEntry) ([]models.ShoppingEntry, error) {
	if isEmpty(entry) {
		return nil, ErrMissingItem
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	l.logger.Info("shopping list item added", zap.Int("size", len(l.entries)))
	return l.snapshot(), nil
}

// RemoveAt removes the entry at index and returns it with the updated list.
// The list is left untouched when index is out of range.
func (l *List) RemoveAt(index int) (models.ShoppingEntry, []models.ShoppingEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.entries) {
		return nil, nil, ErrItemNotFound
	}

	removed := l.entries[index]
	l.entries = append(l.entries[:index:index], l.entries[index+1:]...)
	l.logger.Info("shopping list item removed", zap.Int("index", index), zap.Int("size", len(l.entries)))
	return removed, l.snapshot(), nil
}

// Clear empties the list unconditionally.
func (l *List) Clear() []models.ShoppingEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	cleared := len(l.entries)
	l.entries = []models.ShoppingEntry{}
	l.logger.Info("shopping list cleared", zap.Int("removed", cleared))
	return l.snapshot()
}

// Len reports the number of entries.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// snapshot copies the slice; caller holds the lock. Entries decoded from
// JSON objects are copied one level deep.
func (l *List) snapshot() []models.ShoppingEntry {
	out := make([]models.ShoppingEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = copyEntry(e)
	}
	return out
}

func copyEntry(e models.ShoppingEntry) models.ShoppingEntry {
	switch v := e.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[k] = val
		}
		return m
	case []any:
		return append([]any(nil), v...)
	default:
		return e
	}
}

// isEmpty treats null, blank strings and empty arrays or objects as missing.
// Numbers and booleans count as present.
func isEmpty(entry models.ShoppingEntry) bool {
	switch v := entry.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}
