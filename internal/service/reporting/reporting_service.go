package reporting

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/domain/models"
	"github.com/mamadbah2/homy/internal/service/suggestions"
)

const (
	dateLayout = "2006-01-02"
	// takeoutWindowDays is the number of calendar days, today included, whose
	// takeout meals are counted.
	takeoutWindowDays = 7
	costKey           = "cost"
)

// InventorySource exposes the inventory snapshot.
type InventorySource interface {
	Get() models.Inventory
}

// TakeoutSource exposes takeout records logged since a given instant.
type TakeoutSource interface {
	Since(start time.Time) []models.TakeoutRecord
}

// ShoppingSource exposes the shopping list size.
type ShoppingSource interface {
	Len() int
}

// Service builds the household digest from the in-memory stores.
type Service struct {
	inventory      InventorySource
	takeout        TakeoutSource
	shopping       ShoppingSource
	expiringWithin int
	logger         *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(inventory InventorySource, takeout TakeoutSource, shopping ShoppingSource, expiringWithin int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		inventory:      inventory,
		takeout:        takeout,
		shopping:       shopping,
		expiringWithin: expiringWithin,
		logger:         logger,
	}
}

// BuildDailyReport aggregates the stores as seen at now.
func (s *Service) BuildDailyReport(ctx context.Context, now time.Time) (models.DailyReport, error) {
	if err := ctx.Err(); err != nil {
		return models.DailyReport{}, err
	}

	inv := s.inventory.Get()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	report := models.DailyReport{
		Date:               day,
		PantryCount:        len(inv[models.BucketPantry]),
		HouseholdCount:     len(inv[models.BucketHousehold]),
		ExpiringItems:      suggestions.Expiring(inv, now, s.expiringWithin),
		ShoppingListLength: s.shopping.Len(),
		CreatedAt:          now,
	}

	var spend float64
	records := s.takeout.Since(day.AddDate(0, 0, -(takeoutWindowDays - 1)))
	for _, record := range records {
		raw, ok := record[costKey]
		if !ok || raw == nil {
			continue
		}
		cost, err := parseFloat(raw)
		if err != nil || cost < 0 {
			s.logger.Debug("skip takeout record with invalid cost", zap.Any("value", raw), zap.Error(err))
			continue
		}
		spend += cost
	}
	report.TakeoutMeals = len(records)
	report.TakeoutSpend = math.Round(spend*100) / 100

	return report, nil
}

// FormatDigest renders the report as a chat message.
func FormatDigest(report models.DailyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Household digest (%s)\n", report.Date.Format(dateLayout))
	fmt.Fprintf(&b, "Pantry: %d items. Household: %d items.\n", report.PantryCount, report.HouseholdCount)

	if len(report.ExpiringItems) == 0 {
		b.WriteString("Nothing expiring soon.\n")
	} else {
		b.WriteString("Expiring soon:\n")
		for _, item := range report.ExpiringItems {
			fmt.Fprintf(&b, "- %s (%s) %s\n", item.Name, item.Bucket, describeDaysLeft(item.DaysLeft))
		}
	}

	if report.TakeoutMeals == 0 {
		fmt.Fprintf(&b, "Takeout (last %d days): none.\n", takeoutWindowDays)
	} else {
		fmt.Fprintf(&b, "Takeout (last %d days): %d meals, %.2f spent.\n", takeoutWindowDays, report.TakeoutMeals, report.TakeoutSpend)
	}

	fmt.Fprintf(&b, "Shopping list: %d entries.", report.ShoppingListLength)
	return b.String()
}

func describeDaysLeft(days int) string {
	switch {
	case days < -1:
		return fmt.Sprintf("expired %d days ago", -days)
	case days == -1:
		return "expired yesterday"
	case days == 0:
		return "expires today"
	case days == 1:
		return "expires tomorrow"
	default:
		return fmt.Sprintf("expires in %d days", days)
	}
}

func parseFloat(value interface{}) (float64, error) {
	str := strings.TrimSpace(strings.TrimPrefix(fmt.Sprint(value), "$"))
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(str, 64)
}
