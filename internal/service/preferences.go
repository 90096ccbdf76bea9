package service

import (
	"context"
	"strings"

	"pantrypal-api/internal/model"
	"pantrypal-api/internal/repository"
	"pantrypal-api/pkg/apierror"
)

var validDietTypes = map[string]bool{
	"":            true,
	"omnivore":    true,
	"vegetarian":  true,
	"vegan":       true,
	"pescatarian": true,
	"keto":        true,
	"paleo":       true,
}

var validSkillLevels = map[string]bool{
	"":             true,
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
}

// PreferenceService manages per-user dietary and cooking preferences.
type PreferenceService struct {
	repo repository.PreferenceRepository
}

// NewPreferenceService creates a new preference service.
func NewPreferenceService(repo repository.PreferenceRepository) *PreferenceService {
	return &PreferenceService{repo: repo}
}

// GetPreferences returns the user's saved preferences, or sensible zero
// values when the user has never saved any.
func (s *PreferenceService) GetPreferences(ctx context.Context, userID string) (*model.UserPreferences, error) {
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		return &model.UserPreferences{Allergies: []string{}}, nil
	}
	if prefs.Allergies == nil {
		prefs.Allergies = []string{}
	}
	return prefs, nil
}

// PutPreferences validates and stores the user's preferences.
func (s *PreferenceService) PutPreferences(ctx context.Context, userID string, prefs model.UserPreferences) error {
	prefs.DietType = strings.ToLower(strings.TrimSpace(prefs.DietType))
	prefs.CookingSkillLevel = strings.ToLower(strings.TrimSpace(prefs.CookingSkillLevel))

	if !validDietTypes[prefs.DietType] {
		return apierror.ValidationError("invalid preferences",
			apierror.FieldError{Field: "diet_type", Message: "unknown diet type " + prefs.DietType})
	}
	if !validSkillLevels[prefs.CookingSkillLevel] {
		return apierror.ValidationError("invalid preferences",
			apierror.FieldError{Field: "cooking_skill_level", Message: "unknown skill level " + prefs.CookingSkillLevel})
	}
	if prefs.Allergies == nil {
		prefs.Allergies = []string{}
	}

	return s.repo.PutPreferences(ctx, userID, prefs)
}
