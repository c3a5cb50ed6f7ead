package suggestions

import (
	"fmt"

	"github.com/mamadbah2/homy/internal/domain/models"
)

// ErrInvalidSuggestionType is returned for any mode outside expiring, available and weekly.
var ErrInvalidSuggestionType = fmt.Errorf("%w: invalid suggestion type", models.ErrValidation)

// Engine maps a suggestion mode to a canned payload. It does not read
// inventory; see Expiring for the inventory-aware query.
type Engine struct{}

// NewEngine returns a ready engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Suggest returns the payload for mode. An empty mode is rejected; callers
// apply DefaultSuggestionMode when the parameter is omitted.
func (e *Engine) Suggest(mode string) (models.Suggestion, error) {
	switch models.SuggestionMode(mode) {
	case models.ModeExpiring:
		return models.Suggestion{Meal: &models.Meal{
			Name:            "Quick Pasta with Expiring Ingredients",
			ExpiringItems:   []string{"Tomatoes", "Spinach", "Cheese"},
			AdditionalItems: []string{"Pasta", "Olive Oil", "Garlic"},
			Description:     "This simple pasta dish uses your expiring ingredients and can be prepared in under 30 minutes.",
		}}, nil
	case models.ModeAvailable:
		return models.Suggestion{Meal: &models.Meal{
			Name:            "Pantry Staple Stir Fry",
			AvailableItems:  []string{"Rice", "Frozen Vegetables", "Soy Sauce"},
			AdditionalItems: []string{},
			Description:     "A quick and easy stir fry using items you already have in your pantry.",
		}}, nil
	case models.ModeWeekly:
		return models.Suggestion{Plan: []models.PlanEntry{
			{Day: "Monday", Meal: "Pasta with Tomato Sauce"},
			{Day: "Tuesday", Meal: "Rice and Bean Bowl"},
			{Day: "Wednesday", Meal: "Vegetable Stir Fry"},
			{Day: "Thursday", Meal: "Leftover Remix"},
			{Day: "Friday", Meal: "Homemade Pizza Night"},
			{Day: "Weekend", Meal: "Flexible Options"},
		}}, nil
	default:
		return models.Suggestion{}, ErrInvalidSuggestionType
	}
}
