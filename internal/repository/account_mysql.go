package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"pantrypal-api/internal/model"
)

// MySQLAccountRepository implements AccountRepository using MySQL. Accounts
// live in a shared users database managed outside this service; this
// repository only validates credentials for token generation.
type MySQLAccountRepository struct {
	db *sql.DB
}

// NewMySQLAccountRepository creates a new MySQL account repository.
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}

// ValidateCredentials checks an email + API key pair for token generation.
// Returns account details if valid, error otherwise.
func (r *MySQLAccountRepository) ValidateCredentials(ctx context.Context, email, apiKey string) (*model.AccountValidation, error) {
	log.Printf("[AccountRepository] Validating credentials for email=%s", email)

	query := `
		SELECT
			u.id as user_id,
			u.email,
			u.name,
			k.status as key_status
		FROM users u
		JOIN api_keys k ON k.user_id = u.id
		WHERE u.email = ?
		  AND k.api_key = ?
		  AND u.is_active = 1
		  AND LOWER(k.status) = 'active'
		LIMIT 1`

	var result model.AccountValidation
	err := r.db.QueryRowContext(ctx, query, email, apiKey).Scan(
		&result.UserID,
		&result.Email,
		&result.Name,
		&result.KeyStatus,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("invalid credentials or account not found")
		}
		return nil, fmt.Errorf("failed to validate credentials: %w", err)
	}

	return &result, nil
}

// Ensure MySQLAccountRepository implements AccountRepository
var _ AccountRepository = (*MySQLAccountRepository)(nil)
