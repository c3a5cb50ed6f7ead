package takeout

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/homy/internal/domain/models"
)

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

func TestRecord_StampsTimestamp(t *testing.T) {
	now := time.Date(2024, time.May, 3, 19, 4, 5, 0, time.UTC)
	log := NewLog(func() time.Time { return now }, nil)

	stored, err := log.Record(models.TakeoutRecord{"restaurant": "Thai Garden", "cost": 24.5})
	require.NoError(t, err)

	assert.Equal(t, "2024-05-03 19:04:05", stored[models.TimestampKey])
	assert.Equal(t, "Thai Garden", stored["restaurant"])
	assert.Equal(t, 24.5, stored["cost"])
	assert.Equal(t, 1, log.Len())
}

func TestRecord_OverwritesCallerTimestamp(t *testing.T) {
	log := NewLog(nil, nil)
	payload := models.TakeoutRecord{"restaurant": "Pizza Place", "timestamp": "yesterday"}

	stored, err := log.Record(payload)
	require.NoError(t, err)

	assert.NotEqual(t, "yesterday", stored.Timestamp())
	assert.Regexp(t, timestampPattern, stored.Timestamp())
	assert.Equal(t, "yesterday", payload["timestamp"], "caller payload must stay untouched")
}

func TestRecord_RejectsEmptyPayload(t *testing.T) {
	log := NewLog(nil, nil)

	for _, payload := range []models.TakeoutRecord{nil, {}} {
		_, err := log.Record(payload)
		assert.ErrorIs(t, err, ErrMissingPayload)
		assert.ErrorIs(t, err, models.ErrValidation)
	}
	assert.Zero(t, log.Len())
}

func TestRecord_ReturnedRecordIsDetached(t *testing.T) {
	log := NewLog(nil, nil)

	stored, err := log.Record(models.TakeoutRecord{"restaurant": "Sushi Bar"})
	require.NoError(t, err)
	stored["restaurant"] = "Tampered"

	all := log.Since(time.Time{})
	require.Len(t, all, 1)
	assert.Equal(t, "Sushi Bar", all[0]["restaurant"])
}

func TestSince_FiltersByTimestamp(t *testing.T) {
	current := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	log := NewLog(func() time.Time { return current }, nil)

	_, err := log.Record(models.TakeoutRecord{"restaurant": "Old"})
	require.NoError(t, err)

	current = current.AddDate(0, 0, 8)
	_, err = log.Record(models.TakeoutRecord{"restaurant": "Recent"})
	require.NoError(t, err)

	recent := log.Since(current.AddDate(0, 0, -7))
	require.Len(t, recent, 1)
	assert.Equal(t, "Recent", recent[0]["restaurant"])
	assert.Len(t, log.Since(time.Time{}), 2)
}
