package models

import "time"

// DailyReport is the household digest archived to MongoDB and sent to the
// household chat.
type DailyReport struct {
	Date               time.Time      `bson:"date" json:"date"`
	PantryCount        int            `bson:"pantry_count" json:"pantry_count"`
	HouseholdCount     int            `bson:"household_count" json:"household_count"`
	ExpiringItems      []ExpiringItem `bson:"expiring_items" json:"expiring_items"`
	TakeoutMeals       int            `bson:"takeout_meals" json:"takeout_meals"`
	TakeoutSpend       float64        `bson:"takeout_spend" json:"takeout_spend"`
	ShoppingListLength int            `bson:"shopping_list_length" json:"shopping_list_length"`
	CreatedAt          time.Time      `bson:"created_at" json:"created_at"`
}
