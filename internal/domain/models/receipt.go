package models

import "github.com/shopspring/decimal"

// ParsedReceipt is what the extraction collaborator hands back to the API.
// Items share the InventoryItem shape so the dashboard can add them as-is.
type ParsedReceipt struct {
	Items []InventoryItem  `json:"items"`
	Total *decimal.Decimal `json:"total,omitempty"`
	Date  string           `json:"date,omitempty"`
}
