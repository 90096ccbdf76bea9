package model

import "time"

// Ingredient is a single food item extracted from a scanned image or receipt.
type Ingredient struct {
	Name           string `json:"name"`
	Quantity       string `json:"quantity,omitempty"`
	Category       string `json:"category,omitempty"`
	ExpiryEstimate string `json:"expiry_estimate,omitempty"` // e.g. "3 days", "2 weeks"
}

// Recipe is a generated recipe suggestion.
type Recipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Time         string   `json:"time"`
	Difficulty   string   `json:"difficulty"` // Easy, Medium, Hard
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Calories     int      `json:"calories,omitempty"`
}

// SavedRecipe is a recipe a user bookmarked, as stored in the database.
type SavedRecipe struct {
	DocID   string    `json:"doc_id"`
	UserID  string    `json:"user_id"`
	Recipe  Recipe    `json:"recipe"`
	SavedAt time.Time `json:"saved_at"`
}
