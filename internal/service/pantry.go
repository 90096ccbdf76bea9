package service

import (
	"context"
	"time"

	"pantrypal-api/internal/expiration"
	"pantrypal-api/internal/model"
	"pantrypal-api/internal/repository"
	"pantrypal-api/pkg/apierror"
	"pantrypal-api/pkg/uid"
)

// PantryService handles pantry item business logic: CRUD over the item
// store plus the read-side reminder and calendar projections.
type PantryService struct {
	repo        repository.PantryRepository
	horizonDays int
	shelfLife   time.Duration
}

// NewPantryService creates a new pantry service. shelfLifeDays sizes the
// progress window assumed for items with no recorded creation time;
// values <= 0 fall back to the stock default.
// Returns nil if repo is nil (required dependency).
func NewPantryService(repo repository.PantryRepository, horizonDays, shelfLifeDays int) *PantryService {
	if repo == nil {
		return nil
	}
	if horizonDays <= 0 {
		horizonDays = expiration.DefaultSoonHorizonDays
	}
	return &PantryService{
		repo:        repo,
		horizonDays: horizonDays,
		shelfLife:   time.Duration(shelfLifeDays) * 24 * time.Hour,
	}
}

// ItemInput carries the client-supplied fields of a pantry item.
type ItemInput struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Quantity   string `json:"quantity"`
	Unit       string `json:"unit"`
	Storage    string `json:"storage"`
	Notes      string `json:"notes"`
	Expiration string `json:"expiration"`
}

// validate checks the input and returns the canonical expiration day key.
// An expiration that does not parse is rejected here, at the ingestion
// boundary, so downstream views never meet an unplaceable date.
func (in *ItemInput) validate() (string, error) {
	if in.Name == "" {
		return "", apierror.ValidationError("invalid pantry item",
			apierror.FieldError{Field: "name", Message: "name is required"})
	}
	if in.Expiration == "" {
		return "", apierror.ValidationError("invalid pantry item",
			apierror.FieldError{Field: "expiration", Message: "expiration is required"})
	}
	day, ok := expiration.DayKey(in.Expiration)
	if !ok {
		return "", apierror.ValidationError("invalid pantry item",
			apierror.FieldError{Field: "expiration", Message: "expiration must be a YYYY-MM-DD date or RFC3339 timestamp"})
	}
	return day, nil
}

// AddItem validates and stores a new pantry item.
func (s *PantryService) AddItem(ctx context.Context, userID string, in ItemInput, now time.Time) (*model.PantryItem, error) {
	day, err := in.validate()
	if err != nil {
		return nil, err
	}

	item := model.PantryItem{
		ID:         uid.New(),
		UserID:     userID,
		Name:       in.Name,
		Category:   in.Category,
		Quantity:   in.Quantity,
		Unit:       in.Unit,
		Storage:    in.Storage,
		Notes:      in.Notes,
		Expiration: in.Expiration,
		ExpiresDay: day,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItem fetches one of the user's items.
func (s *PantryService) GetItem(ctx context.Context, userID, itemID string) (*model.PantryItem, error) {
	item, err := s.repo.GetItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apierror.NotFound("pantry item not found")
	}
	return item, nil
}

// ListItems fetches the user's full pantry snapshot.
func (s *PantryService) ListItems(ctx context.Context, userID string) ([]model.PantryItem, error) {
	return s.repo.ListItems(ctx, userID)
}

// UpdateItem validates and replaces an existing item's fields.
func (s *PantryService) UpdateItem(ctx context.Context, userID, itemID string, in ItemInput, now time.Time) (*model.PantryItem, error) {
	day, err := in.validate()
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apierror.NotFound("pantry item not found")
	}

	existing.Name = in.Name
	existing.Category = in.Category
	existing.Quantity = in.Quantity
	existing.Unit = in.Unit
	existing.Storage = in.Storage
	existing.Notes = in.Notes
	existing.Expiration = in.Expiration
	existing.ExpiresDay = day
	existing.UpdatedAt = now

	if err := s.repo.UpdateItem(ctx, *existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteItem removes one of the user's items.
func (s *PantryService) DeleteItem(ctx context.Context, userID, itemID string) error {
	item, err := s.repo.GetItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return apierror.NotFound("pantry item not found")
	}
	return s.repo.DeleteItem(ctx, userID, itemID)
}

// Reminders builds the urgency-ordered reminder list over the user's
// current snapshot. horizonDays <= 0 falls back to the configured default.
func (s *PantryService) Reminders(ctx context.Context, userID string, horizonDays int, now time.Time) (expiration.ReminderList, error) {
	if horizonDays <= 0 {
		horizonDays = s.horizonDays
	}

	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return expiration.ReminderList{}, err
	}
	return expiration.BuildReminders(items, now, horizonDays, s.shelfLife), nil
}

// Calendar builds the month view over the user's current snapshot.
func (s *PantryService) Calendar(ctx context.Context, userID string, year int, month time.Month, now time.Time) (expiration.Calendar, error) {
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return expiration.Calendar{}, err
	}
	return expiration.BuildCalendar(items, year, month, now), nil
}
