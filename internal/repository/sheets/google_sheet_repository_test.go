package sheets

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/homy/internal/domain/models"
)

func TestTakeoutRow(t *testing.T) {
	record := models.TakeoutRecord{
		"timestamp":  "2024-03-10 18:30:00",
		"restaurant": "Pizza Place",
		"cost":       24.5,
		"items":      []any{"margherita"},
	}

	row, err := TakeoutRow(record)
	require.NoError(t, err)
	require.Len(t, row, 4)

	assert.Equal(t, "2024-03-10 18:30:00", row[0])
	assert.Equal(t, "Pizza Place", row[1])
	assert.Equal(t, "24.5", row[2])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(row[3].(string)), &decoded))
	assert.Equal(t, "Pizza Place", decoded["restaurant"])
	assert.Equal(t, []any{"margherita"}, decoded["items"])
}

func TestTakeoutRowMissingFields(t *testing.T) {
	row, err := TakeoutRow(models.TakeoutRecord{"timestamp": "2024-03-10 18:30:00", "note": "leftovers"})
	require.NoError(t, err)
	assert.Equal(t, "", row[1])
	assert.Equal(t, "", row[2])
}

func TestTakeoutRowUnencodable(t *testing.T) {
	_, err := TakeoutRow(models.TakeoutRecord{"bad": make(chan int)})
	assert.Error(t, err)
}
