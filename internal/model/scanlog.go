package model

import "time"

// ScanLog records one call to the AI assistant (image scan, recipe
// suggestion, or expiration estimate) for the admin activity view.
type ScanLog struct {
	ID              string    `json:"id,omitempty" bson:"id,omitempty"`
	UserID          string    `json:"user_id,omitempty" bson:"user_id,omitempty"`
	IPAddress       string    `json:"ip_address" bson:"ip_address"`
	Kind            string    `json:"kind" bson:"kind"` // 'scan', 'recipes' or 'estimate'
	Model           string    `json:"model" bson:"model"`
	ItemCount       int       `json:"item_count" bson:"item_count"`
	Status          string    `json:"status" bson:"status"` // 'success' or 'failed'
	ErrorMessage    string    `json:"error_message,omitempty" bson:"error_message,omitempty"`
	ExecutionTimeMs int64     `json:"execution_time_ms" bson:"execution_time_ms"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}
