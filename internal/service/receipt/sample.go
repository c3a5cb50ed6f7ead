package receipt

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/homy/internal/domain/models"
)

// SampleItems is the illustrative receipt returned when no real extractor
// can handle an upload.
func SampleItems() []models.InventoryItem {
	return []models.InventoryItem{
		sampleItem("Milk", "3.99", "Pantry", 7),
		sampleItem("Bread", "2.49", "Pantry", 5),
		sampleItem("Eggs", "4.99", "Pantry", 14),
		sampleItem("Paper Towels", "8.99", "Household", 0),
		sampleItem("Dish Soap", "3.49", "Household", 0),
	}
}

func sampleItem(name, price, category string, expiryDays int) models.InventoryItem {
	p := decimal.RequireFromString(price)
	item := models.InventoryItem{Name: name, Price: &p, Category: category}
	if expiryDays > 0 {
		item.ExpiryDays = &expiryDays
	}
	return item
}
