package model

import "time"

// PantryItem represents a single tracked food item in a user's pantry.
//
// Expiration is kept in the form the client supplied: either a bare date
// ("2026-01-05") or a full RFC3339 timestamp. ExpiresDay is the canonical
// "YYYY-MM-DD" calendar-day key derived from it at write time, used for
// day-granularity queries and cleanup.
type PantryItem struct {
	ID         string    `json:"id" bson:"id"`
	UserID     string    `json:"user_id" bson:"user_id"`
	Name       string    `json:"name" bson:"name"`
	Category   string    `json:"category,omitempty" bson:"category,omitempty"`
	Quantity   string    `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Unit       string    `json:"unit,omitempty" bson:"unit,omitempty"`
	Storage    string    `json:"storage,omitempty" bson:"storage,omitempty"`
	Notes      string    `json:"notes,omitempty" bson:"notes,omitempty"`
	Expiration string    `json:"expiration" bson:"expiration"`
	ExpiresDay string    `json:"expires_day,omitempty" bson:"expires_day,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}
