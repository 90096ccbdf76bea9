package repository

import (
	"context"
	"time"

	"pantrypal-api/internal/model"
)

// PantryRepository defines pantry item data access methods. Implementations
// exist for SQLite (default), PostgreSQL and MongoDB.
type PantryRepository interface {
	// CreateItem stores a new pantry item.
	CreateItem(ctx context.Context, item model.PantryItem) error

	// GetItem retrieves one item by id, scoped to the user. Returns nil
	// (no error) when not found.
	GetItem(ctx context.Context, userID, itemID string) (*model.PantryItem, error)

	// ListItems retrieves a user's full pantry snapshot.
	ListItems(ctx context.Context, userID string) ([]model.PantryItem, error)

	// UpdateItem replaces a stored item's mutable fields.
	UpdateItem(ctx context.Context, item model.PantryItem) error

	// DeleteItem removes an item, scoped to the user.
	DeleteItem(ctx context.Context, userID, itemID string) error

	// PurgeExpired deletes items whose expiration day is before the cutoff.
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)

	// Stats returns statistics about the pantry database.
	Stats(ctx context.Context) (map[string]interface{}, error)

	// Close closes the repository connection.
	Close() error
}

// RecipeRepository defines saved-recipe data access methods.
type RecipeRepository interface {
	// SaveRecipe bookmarks a recipe for a user and returns the stored doc id.
	SaveRecipe(ctx context.Context, userID string, recipe model.Recipe) (string, error)

	// ListSavedRecipes returns a user's bookmarked recipes, newest first.
	ListSavedRecipes(ctx context.Context, userID string) ([]model.SavedRecipe, error)

	// DeleteSavedRecipe removes the bookmark matching userID + recipeID.
	DeleteSavedRecipe(ctx context.Context, userID, recipeID string) error
}

// PreferenceRepository defines user dietary-preference data access methods.
type PreferenceRepository interface {
	// GetPreferences returns a user's preferences, or nil if never saved.
	GetPreferences(ctx context.Context, userID string) (*model.UserPreferences, error)

	// PutPreferences creates or replaces a user's preferences.
	PutPreferences(ctx context.Context, userID string, prefs model.UserPreferences) error
}

// AccountRepository defines user account data access methods.
type AccountRepository interface {
	// ValidateCredentials checks an email + API key pair for token generation.
	ValidateCredentials(ctx context.Context, email, apiKey string) (*model.AccountValidation, error)
}

// ScanLogRepository defines AI activity log storage.
type ScanLogRepository interface {
	InsertScanLog(ctx context.Context, entry *model.ScanLog) error
	GetScanLogs(ctx context.Context, limit, offset int) ([]model.ScanLog, int64, error)
	Close() error
}
