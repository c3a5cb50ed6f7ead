package takeout

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/domain/models"
)

const mirrorTimeout = 15 * time.Second

// Mirror receives a copy of every stored record, e.g. a spreadsheet export.
type Mirror interface {
	AppendTakeout(ctx context.Context, record models.TakeoutRecord) error
}

// SetMirror attaches m. Mirroring runs in the background and its failures
// are only logged.
func (l *Log) SetMirror(m Mirror) {
	l.mu.Lock()
	l.mirror = m
	l.mu.Unlock()
}

// Wait blocks until pending mirror writes finish.
func (l *Log) Wait() {
	l.inflight.Wait()
}

func (l *Log) mirrorRecord(m Mirror, record models.TakeoutRecord) {
	defer l.inflight.Done()

	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	if err := m.AppendTakeout(ctx, record); err != nil {
		l.logger.Error("failed to mirror takeout record",
			zap.String("timestamp", record.Timestamp()),
			zap.Error(err))
		return
	}
	l.logger.Debug("takeout record mirrored", zap.String("timestamp", record.Timestamp()))
}
