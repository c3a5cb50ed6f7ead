package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/homy/internal/domain/models"
	"github.com/mamadbah2/homy/internal/service/inventory"
	"github.com/mamadbah2/homy/internal/service/shopping"
	"github.com/mamadbah2/homy/internal/service/takeout"
)

func intPtr(v int) *int { return &v }

func TestBuildDailyReport(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	clock := now
	tick := func() time.Time { return clock }

	inv := inventory.NewStore(tick, nil)
	_, err := inv.Add("pantry", &models.InventoryItem{Name: "Milk", ExpiryDays: intPtr(2)})
	require.NoError(t, err)
	_, err = inv.Add("pantry", &models.InventoryItem{Name: "Rice"})
	require.NoError(t, err)
	_, err = inv.Add("pantry", &models.InventoryItem{Name: "Cheese", ExpiryDays: intPtr(20)})
	require.NoError(t, err)
	_, err = inv.Add("household", &models.InventoryItem{Name: "Soap"})
	require.NoError(t, err)

	log := takeout.NewLog(tick, nil)
	clock = now.AddDate(0, 0, -9)
	_, err = log.Record(models.TakeoutRecord{"restaurant": "Old Place", "cost": 99.0})
	require.NoError(t, err)
	clock = now.AddDate(0, 0, -2)
	_, err = log.Record(models.TakeoutRecord{"restaurant": "Pizza", "cost": 20.25})
	require.NoError(t, err)
	_, err = log.Record(models.TakeoutRecord{"restaurant": "Sushi", "cost": "$14.50"})
	require.NoError(t, err)
	_, err = log.Record(models.TakeoutRecord{"restaurant": "Tacos"})
	require.NoError(t, err)
	_, err = log.Record(models.TakeoutRecord{"restaurant": "Free", "cost": "n/a"})
	require.NoError(t, err)
	clock = now

	list := shopping.NewList(nil)
	_, err = list.Add("eggs")
	require.NoError(t, err)
	_, err = list.Add(map[string]any{"name": "flour"})
	require.NoError(t, err)

	svc := NewService(inv, log, list, 3, nil)
	report, err := svc.BuildDailyReport(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), report.Date)
	assert.Equal(t, now, report.CreatedAt)
	assert.Equal(t, 3, report.PantryCount)
	assert.Equal(t, 1, report.HouseholdCount)
	require.Len(t, report.ExpiringItems, 1)
	assert.Equal(t, "Milk", report.ExpiringItems[0].Name)
	assert.Equal(t, 2, report.ExpiringItems[0].DaysLeft)
	assert.Equal(t, 4, report.TakeoutMeals)
	assert.InDelta(t, 34.75, report.TakeoutSpend, 0.001)
	assert.Equal(t, 2, report.ShoppingListLength)
}

func TestBuildDailyReport_TakeoutWindowIsSevenCalendarDays(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	clock := now
	log := takeout.NewLog(func() time.Time { return clock }, nil)

	// June 3 is the eighth calendar day back and falls outside.
	clock = time.Date(2024, time.June, 3, 23, 59, 0, 0, time.UTC)
	_, err := log.Record(models.TakeoutRecord{"restaurant": "Too Old", "cost": 50})
	require.NoError(t, err)
	clock = time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC)
	_, err = log.Record(models.TakeoutRecord{"restaurant": "Oldest Counted", "cost": 12})
	require.NoError(t, err)
	clock = now
	_, err = log.Record(models.TakeoutRecord{"restaurant": "Today", "cost": 8})
	require.NoError(t, err)

	svc := NewService(inventory.NewStore(nil, nil), log, shopping.NewList(nil), 3, nil)
	report, err := svc.BuildDailyReport(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TakeoutMeals)
	assert.InDelta(t, 20.0, report.TakeoutSpend, 0.001)
}

func TestBuildDailyReportCanceledContext(t *testing.T) {
	svc := NewService(inventory.NewStore(nil, nil), takeout.NewLog(nil, nil), shopping.NewList(nil), 3, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.BuildDailyReport(ctx, time.Now())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatDigest(t *testing.T) {
	report := models.DailyReport{
		Date:           time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		PantryCount:    3,
		HouseholdCount: 1,
		ExpiringItems: []models.ExpiringItem{
			{Bucket: models.BucketPantry, Name: "Yogurt", DaysLeft: -1},
			{Bucket: models.BucketPantry, Name: "Milk", DaysLeft: 2},
		},
		TakeoutMeals:       2,
		TakeoutSpend:       34.75,
		ShoppingListLength: 5,
	}

	want := "Household digest (2024-06-10)\n" +
		"Pantry: 3 items. Household: 1 items.\n" +
		"Expiring soon:\n" +
		"- Yogurt (pantry) expired yesterday\n" +
		"- Milk (pantry) expires in 2 days\n" +
		"Takeout (last 7 days): 2 meals, 34.75 spent.\n" +
		"Shopping list: 5 entries."
	assert.Equal(t, want, FormatDigest(report))
}

func TestFormatDigestQuietDay(t *testing.T) {
	out := FormatDigest(models.DailyReport{Date: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)})
	assert.Contains(t, out, "Nothing expiring soon.")
	assert.Contains(t, out, "Takeout (last 7 days): none.")
}

func TestDescribeDaysLeft(t *testing.T) {
	assert.Equal(t, "expired 3 days ago", describeDaysLeft(-3))
	assert.Equal(t, "expires today", describeDaysLeft(0))
	assert.Equal(t, "expires tomorrow", describeDaysLeft(1))
}
