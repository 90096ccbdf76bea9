package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"pantrypal-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteStore is the default application store. It implements
// PantryRepository plus the RecipeRepository and PreferenceRepository
// interfaces over a single database file.
// Thread-safe with WAL mode for high-concurrency reads.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (or creates) the SQLite database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite connection pool settings
	db.SetMaxOpenConns(1) // SQLite only supports 1 writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createSQLiteTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteStore] Initialized with database: %s", dbPath)
	return &SQLiteStore{db: db}, nil
}

func createSQLiteTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS pantry_items (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT DEFAULT '',
		quantity TEXT DEFAULT '',
		unit TEXT DEFAULT '',
		storage TEXT DEFAULT '',
		notes TEXT DEFAULT '',
		expiration TEXT NOT NULL,
		expires_day TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pantry_user ON pantry_items(user_id);
	CREATE INDEX IF NOT EXISTS idx_pantry_expires_day ON pantry_items(expires_day);

	CREATE TABLE IF NOT EXISTS saved_recipes (
		doc_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		recipe_id TEXT NOT NULL,
		recipe_json TEXT NOT NULL,
		saved_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_saved_recipes_user ON saved_recipes(user_id);

	CREATE TABLE IF NOT EXISTS user_preferences (
		user_id TEXT PRIMARY KEY,
		prefs_json TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	_, err := db.Exec(query)
	return err
}

// CreateItem stores a new pantry item.
func (s *SQLiteStore) CreateItem(ctx context.Context, item model.PantryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO pantry_items (id, user_id, name, category, quantity, unit, storage, notes, expiration, expires_day, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		item.ID, item.UserID, item.Name, item.Category, item.Quantity, item.Unit,
		item.Storage, item.Notes, item.Expiration, item.ExpiresDay, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create pantry item: %w", err)
	}
	return nil
}

// GetItem retrieves one item by id, scoped to the user.
func (s *SQLiteStore) GetItem(ctx context.Context, userID, itemID string) (*model.PantryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, user_id, name, category, quantity, unit, storage, notes, expiration, expires_day, created_at, updated_at
		FROM pantry_items WHERE user_id = ? AND id = ?`

	var item model.PantryItem
	err := s.db.QueryRowContext(ctx, query, userID, itemID).Scan(
		&item.ID, &item.UserID, &item.Name, &item.Category, &item.Quantity, &item.Unit,
		&item.Storage, &item.Notes, &item.Expiration, &item.ExpiresDay, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pantry item: %w", err)
	}
	return &item, nil
}

// ListItems retrieves a user's full pantry snapshot, soonest expiration first.
func (s *SQLiteStore) ListItems(ctx context.Context, userID string) ([]model.PantryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, user_id, name, category, quantity, unit, storage, notes, expiration, expires_day, created_at, updated_at
		FROM pantry_items WHERE user_id = ? ORDER BY expires_day ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry items: %w", err)
	}
	defer rows.Close()

	items := []model.PantryItem{}
	for rows.Next() {
		var item model.PantryItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Name, &item.Category, &item.Quantity, &item.Unit,
			&item.Storage, &item.Notes, &item.Expiration, &item.ExpiresDay, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pantry item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem replaces a stored item's mutable fields.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item model.PantryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE pantry_items
		SET name = ?, category = ?, quantity = ?, unit = ?, storage = ?, notes = ?,
			expiration = ?, expires_day = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`

	result, err := s.db.ExecContext(ctx, query,
		item.Name, item.Category, item.Quantity, item.Unit, item.Storage, item.Notes,
		item.Expiration, item.ExpiresDay, item.UpdatedAt, item.UserID, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update pantry item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteItem removes an item, scoped to the user.
func (s *SQLiteStore) DeleteItem(ctx context.Context, userID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM pantry_items WHERE user_id = ? AND id = ?`, userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete pantry item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// PurgeExpired deletes items whose expiration day is before the cutoff.
func (s *SQLiteStore) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := before.Format("2006-01-02")
	result, err := s.db.ExecContext(ctx, `DELETE FROM pantry_items WHERE expires_day < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired items: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.Printf("[SQLiteStore] Purged %d long-expired pantry items (cutoff: %s)", deleted, cutoff)
	}
	return deleted, nil
}

// Stats returns statistics about the pantry database.
func (s *SQLiteStore) Stats(ctx context.Context) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]interface{})

	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pantry_items").Scan(&count); err != nil {
		return nil, err
	}
	stats["total_items"] = count

	var savedRecipes int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM saved_recipes").Scan(&savedRecipes); err == nil {
		stats["saved_recipes"] = savedRecipes
	}

	// Database file size (approximate from page count)
	var pageCount, pageSize int64
	s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
	stats["db_size_bytes"] = pageCount * pageSize

	return stats, nil
}

// SaveRecipe bookmarks a recipe for a user.
func (s *SQLiteStore) SaveRecipe(ctx context.Context, userID string, recipe model.Recipe) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipeJSON, err := json.Marshal(recipe)
	if err != nil {
		return "", fmt.Errorf("failed to serialize recipe: %w", err)
	}

	docID := fmt.Sprintf("%s:%s", userID, recipe.ID)
	query := `
		INSERT INTO saved_recipes (doc_id, user_id, recipe_id, recipe_json, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(doc_id) DO UPDATE SET
			recipe_json = excluded.recipe_json,
			saved_at = excluded.saved_at`

	_, err = s.db.ExecContext(ctx, query, docID, userID, recipe.ID, string(recipeJSON), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to save recipe: %w", err)
	}
	return docID, nil
}

// ListSavedRecipes returns a user's bookmarked recipes, newest first.
func (s *SQLiteStore) ListSavedRecipes(ctx context.Context, userID string) ([]model.SavedRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT doc_id, user_id, recipe_json, saved_at FROM saved_recipes WHERE user_id = ? ORDER BY saved_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	defer rows.Close()

	recipes := []model.SavedRecipe{}
	for rows.Next() {
		var saved model.SavedRecipe
		var recipeJSON string
		if err := rows.Scan(&saved.DocID, &saved.UserID, &recipeJSON, &saved.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved recipe: %w", err)
		}
		if err := json.Unmarshal([]byte(recipeJSON), &saved.Recipe); err != nil {
			log.Printf("[SQLiteStore] Skipping corrupt saved recipe %s: %v", saved.DocID, err)
			continue
		}
		recipes = append(recipes, saved)
	}
	return recipes, rows.Err()
}

// DeleteSavedRecipe removes the bookmark matching userID + recipeID.
func (s *SQLiteStore) DeleteSavedRecipe(ctx context.Context, userID, recipeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM saved_recipes WHERE user_id = ? AND recipe_id = ?`, userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to delete saved recipe: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetPreferences returns a user's preferences, or nil if never saved.
func (s *SQLiteStore) GetPreferences(ctx context.Context, userID string) (*model.UserPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var prefsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT prefs_json FROM user_preferences WHERE user_id = ?`, userID).Scan(&prefsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	var prefs model.UserPreferences
	if err := json.Unmarshal([]byte(prefsJSON), &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	return &prefs, nil
}

// PutPreferences creates or replaces a user's preferences.
func (s *SQLiteStore) PutPreferences(ctx context.Context, userID string, prefs model.UserPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to serialize preferences: %w", err)
	}

	query := `
		INSERT INTO user_preferences (user_id, prefs_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			prefs_json = excluded.prefs_json,
			updated_at = excluded.updated_at`

	_, err = s.db.ExecContext(ctx, query, userID, string(prefsJSON), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store preferences: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ensure SQLiteStore implements the store interfaces
var (
	_ PantryRepository     = (*SQLiteStore)(nil)
	_ RecipeRepository     = (*SQLiteStore)(nil)
	_ PreferenceRepository = (*SQLiteStore)(nil)
)
