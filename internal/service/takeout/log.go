package takeout

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/domain/models"
)

// ErrMissingPayload is returned when the takeout body is absent or empty.
var ErrMissingPayload = fmt.Errorf("%w: no data provided", models.ErrValidation)

// Log is an append-only takeout history.
type Log struct {
	mu      sync.RWMutex
	records []models.TakeoutRecord
	now     func() time.Time
	logger  *zap.Logger

	mirror   Mirror
	inflight sync.WaitGroup
}

// NewLog creates an empty log. A nil clock means time.Now.
func NewLog(clock func() time.Time, logger *zap.Logger) *Log {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{now: clock, logger: logger}
}

// Record stamps the payload with the server time and appends it. Any
// caller-supplied timestamp is overwritten.
func (l *Log) Record(payload models.TakeoutRecord) (models.TakeoutRecord, error) {
	if len(payload) == 0 {
		return nil, ErrMissingPayload
	}

	stored := payload.Clone()
	stored[models.TimestampKey] = l.now().Format(models.TimestampLayout)

	l.mu.Lock()
	l.records = append(l.records, stored)
	total := len(l.records)
	mirror := l.mirror
	l.mu.Unlock()

	if mirror != nil {
		l.inflight.Add(1)
		go l.mirrorRecord(mirror, stored.Clone())
	}

	l.logger.Info("takeout recorded",
		zap.String("timestamp", stored.Timestamp()),
		zap.Int("history_size", total))

	return stored.Clone(), nil
}

// Since returns copies of the records stamped at or after start. Used by the
// daily digest; the HTTP surface never reads the history.
func (l *Log) Since(start time.Time) []models.TakeoutRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []models.TakeoutRecord
	for _, rec := range l.records {
		ts, err := time.ParseInLocation(models.TimestampLayout, rec.Timestamp(), start.Location())
		if err != nil || ts.Before(start) {
			continue
		}
		out = append(out, rec.Clone())
	}
	return out
}

// Len reports how many records were logged.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
