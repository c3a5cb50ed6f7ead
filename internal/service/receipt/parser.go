package receipt

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/homy/internal/domain/models"
)

var (
	dateRe      = regexp.MustCompile(`(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`)
	totalRe     = regexp.MustCompile(`(?i)^\s*total:?\s*\$?\s*(\d+(?:\.\d+)?)`)
	skipRe      = regexp.MustCompile(`(?i)\b(sub\s*-?total|tax|change|cash|balance)\b`)
	linePriceRe = regexp.MustCompile(`\$?\s*(\d+\.\d{2})\s*$`)
)

type categoryRule struct {
	name     string
	keywords []string
}

// Order matters: the first matching rule wins.
var categoryRules = []categoryRule{
	{name: "Produce", keywords: []string{"apple", "banana", "tomato", "lettuce", "carrot", "onion", "potato", "fruit", "vegetable"}},
	{name: "Dairy", keywords: []string{"milk", "cheese", "yogurt", "cream", "butter", "egg"}},
	{name: "Meat", keywords: []string{"chicken", "beef", "pork", "fish", "turkey", "meat"}},
	{name: "Cleaning", keywords: []string{"soap", "detergent", "cleaner", "wipes", "bleach", "sponge"}},
	{name: "Pantry", keywords: []string{"bread", "rice", "pasta", "cereal", "flour", "sugar", "oil"}},
}

const otherCategory = "Other"

// shelfLifeDays is the default expiryDays per category. Categories missing
// here are treated as non-perishable.
var shelfLifeDays = map[string]int{
	"Produce": 5,
	"Dairy":   7,
	"Meat":    3,
}

// ParseText extracts items, total and date from OCR-style receipt text, one
// item per line with its price at the end of the line.
func ParseText(text string) models.ParsedReceipt {
	out := models.ParsedReceipt{Items: []models.InventoryItem{}}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if out.Date == "" {
			if m := dateRe.FindStringSubmatch(line); m != nil {
				out.Date = m[1]
				continue
			}
		}

		if m := totalRe.FindStringSubmatch(line); m != nil {
			if total, err := decimal.NewFromString(m[1]); err == nil {
				out.Total = &total
			}
			continue
		}

		if skipRe.MatchString(line) {
			continue
		}

		loc := linePriceRe.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		price, err := decimal.NewFromString(line[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		name := strings.TrimSpace(line[:loc[0]])
		if name == "" {
			continue
		}

		category := Categorize(name)
		item := models.InventoryItem{Name: name, Price: &price, Category: category}
		if days, ok := shelfLifeDays[category]; ok {
			item.ExpiryDays = &days
		}
		out.Items = append(out.Items, item)
	}

	return out
}

// Categorize picks a category from keywords in the item name.
func Categorize(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.name
			}
		}
	}
	return otherCategory
}
