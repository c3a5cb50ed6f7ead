package models

// SuggestionMode selects which canned suggestion is returned.
type SuggestionMode string

const (
	ModeExpiring  SuggestionMode = "expiring"
	ModeAvailable SuggestionMode = "available"
	ModeWeekly    SuggestionMode = "weekly"

	DefaultSuggestionMode = ModeAvailable
)

// Meal is a single meal suggestion.
type Meal struct {
	Name            string   `json:"name"`
	ExpiringItems   []string `json:"expiring_items,omitempty"`
	AvailableItems  []string `json:"available_items,omitempty"`
	AdditionalItems []string `json:"additional_items"`
	Description     string   `json:"description"`
}

// PlanEntry is one slot of the weekly plan.
type PlanEntry struct {
	Day  string `json:"day"`
	Meal string `json:"meal"`
}

// Suggestion carries either a meal or a weekly plan, never both.
type Suggestion struct {
	Meal *Meal       `json:"meal,omitempty"`
	Plan []PlanEntry `json:"plan,omitempty"`
}

// Urgency buckets the time left before an item expires.
type Urgency string

const (
	UrgencyUrgent  Urgency = "urgent"
	UrgencyWarning Urgency = "warning"
	UrgencyNormal  Urgency = "normal"
)

// ExpiringItem points at an inventory item that expires soon.
type ExpiringItem struct {
	Bucket     Bucket  `bson:"bucket" json:"bucket"`
	Index      int     `bson:"index" json:"index"`
	Name       string  `bson:"name" json:"name"`
	ExpiryDate string  `bson:"expiry_date" json:"expiryDate"`
	DaysLeft   int     `bson:"days_left" json:"daysLeft"`
	Urgency    Urgency `bson:"urgency" json:"urgency"`
}
