package models

import (
	"github.com/shopspring/decimal"
)

const (
	// DateLayout formats expiry stamps.
	DateLayout = "2006-01-02"
	// TimestampLayout formats takeout timestamps.
	TimestampLayout = "2006-01-02 15:04:05"
)

func init() {
	// Prices travel as JSON numbers, the way the dashboard sends them.
	decimal.MarshalJSONWithoutQuotes = true
}

// Bucket names one of the fixed inventory partitions.
type Bucket string

const (
	BucketPantry    Bucket = "pantry"
	BucketHousehold Bucket = "household"
)

// Buckets lists every valid bucket in display order.
var Buckets = []Bucket{BucketPantry, BucketHousehold}

// ParseBucket validates a raw bucket key. Matching is exact.
func ParseBucket(raw string) (Bucket, bool) {
	for _, b := range Buckets {
		if string(b) == raw {
			return b, true
		}
	}
	return "", false
}

// InventoryItem is a single pantry or household good.
type InventoryItem struct {
	ID         string           `json:"id,omitempty"`
	Name       string           `json:"name"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Category   string           `json:"category"`
	ExpiryDays *int             `json:"expiryDays,omitempty"`
	ExpiryDate string           `json:"expiryDate,omitempty"`
}

// Clone returns a copy that shares no pointers with the receiver.
func (i InventoryItem) Clone() InventoryItem {
	out := i
	if i.Price != nil {
		p := *i.Price
		out.Price = &p
	}
	if i.ExpiryDays != nil {
		d := *i.ExpiryDays
		out.ExpiryDays = &d
	}
	return out
}

// Inventory is the full state of every bucket keyed by bucket name.
type Inventory map[Bucket][]InventoryItem
