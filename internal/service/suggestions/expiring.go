package suggestions

import (
	"sort"
	"time"

	"github.com/mamadbah2/homy/internal/domain/models"
)

const (
	urgentWithinDays  = 3
	warningWithinDays = 7
)

// Expiring lists items whose expiry stamp falls within the given number of
// days from today, already expired items included, soonest first. Items
// without a stamp or with an unparsable stamp are skipped.
func Expiring(inv models.Inventory, today time.Time, within int) []models.ExpiringItem {
	day := startOfDay(today)

	out := []models.ExpiringItem{}
	for _, bucket := range models.Buckets {
		for idx, item := range inv[bucket] {
			if item.ExpiryDate == "" {
				continue
			}
			expiry, err := time.ParseInLocation(models.DateLayout, item.ExpiryDate, day.Location())
			if err != nil {
				continue
			}
			left := daysBetween(day, expiry)
			if left > within {
				continue
			}
			out = append(out, models.ExpiringItem{
				Bucket:     bucket,
				Index:      idx,
				Name:       item.Name,
				ExpiryDate: item.ExpiryDate,
				DaysLeft:   left,
				Urgency:    Classify(left),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysLeft < out[j].DaysLeft
	})
	return out
}

// Classify maps days left to the dashboard urgency levels.
func Classify(daysLeft int) models.Urgency {
	switch {
	case daysLeft <= urgentWithinDays:
		return models.UrgencyUrgent
	case daysLeft <= warningWithinDays:
		return models.UrgencyWarning
	default:
		return models.UrgencyNormal
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days so DST shifts do not skew the result.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
