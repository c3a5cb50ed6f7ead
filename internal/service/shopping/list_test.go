package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/homy/internal/domain/models"
)

func TestAdd_AppendsAndReturnsFullList(t *testing.T) {
	list := NewList(nil)

	_, err := list.Add("Milk")
	require.NoError(t, err)
	items, err := list.Add(map[string]any{"name": "Eggs", "qty": 12.0})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Milk", items[0])
	assert.Equal(t, map[string]any{"name": "Eggs", "qty": 12.0}, items[1])
}

func TestAdd_RejectsMissingItem(t *testing.T) {
	list := NewList(nil)

	for _, entry := range []models.ShoppingEntry{nil, "", "   ", map[string]any{}, []any{}} {
		_, err := list.Add(entry)
		assert.ErrorIs(t, err, ErrMissingItem, "entry=%#v", entry)
		assert.ErrorIs(t, err, models.ErrValidation)
	}
	assert.Empty(t, list.List())
}

func TestAdd_AcceptsScalars(t *testing.T) {
	list := NewList(nil)

	_, err := list.Add(3.0)
	require.NoError(t, err)
	_, err = list.Add(false)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Len())
}

func TestAddThenRemoveAt_RestoresPreviousList(t *testing.T) {
	list := NewList(nil)
	_, err := list.Add("Bread")
	require.NoError(t, err)
	before := list.List()

	_, err = list.Add("Butter")
	require.NoError(t, err)

	removed, items, err := list.RemoveAt(1)
	require.NoError(t, err)
	assert.Equal(t, "Butter", removed)
	assert.Equal(t, before, items)

	_, err = list.Add("Jam")
	require.NoError(t, err)
	removed, _, err = list.RemoveAt(0)
	require.NoError(t, err)
	assert.Equal(t, "Bread", removed)
	assert.Equal(t, []models.ShoppingEntry{"Jam"}, list.List())
}

func TestRemoveAt_OutOfRangeLeavesListUnchanged(t *testing.T) {
	list := NewList(nil)
	_, err := list.Add("Apples")
	require.NoError(t, err)

	for _, idx := range []int{-1, 1, 42} {
		removed, items, err := list.RemoveAt(idx)
		assert.ErrorIs(t, err, ErrItemNotFound)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Nil(t, removed)
		assert.Nil(t, items)
	}
	assert.Equal(t, []models.ShoppingEntry{"Apples"}, list.List())
}

func TestClear(t *testing.T) {
	list := NewList(nil)

	assert.Empty(t, list.Clear(), "clearing an empty list is a no-op")

	_, _ = list.Add("Tea")
	_, _ = list.Add("Coffee")
	items := list.Clear()

	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Zero(t, list.Len())
}

func TestList_ReturnsDefensiveCopy(t *testing.T) {
	list := NewList(nil)
	_, err := list.Add(map[string]any{"name": "Rice"})
	require.NoError(t, err)

	snapshot := list.List()
	snapshot[0].(map[string]any)["name"] = "Tampered"
	snapshot[0] = "Replaced"

	assert.Equal(t, map[string]any{"name": "Rice"}, list.List()[0])
}
