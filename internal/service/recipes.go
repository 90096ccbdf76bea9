package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"pantrypal-api/internal/cache"
	"pantrypal-api/internal/expiration"
	"pantrypal-api/internal/genai"
	"pantrypal-api/internal/model"
	"pantrypal-api/internal/repository"
)

const (
	scanPrompt = "Identify all food items visible in this image. The image may be a photo of food, a fridge, " +
		"a grocery receipt, or a shopping list. For each food item, return its name, estimated quantity, " +
		"category, and shelf-life estimate (e.g. '3 days', '2 weeks'). Ignore non-food entries such as " +
		"taxes, totals, and store info. Respond with a JSON object: " +
		`{"ingredients": [{"name": "...", "quantity": "...", "category": "...", "expiry_estimate": "..."}]}`

	estimatePromptTemplate = `You are a food safety expert. Given the following information, estimate when this food item will expire:

Food Item: %s
Category: %s
Storage Location: %s
Purchase Date: %s

Consider typical shelf life, storage conditions, and food safety guidelines.

Respond ONLY with a JSON object (no markdown formatting) in this exact format:
{
  "estimated_expiration_date": "YYYY-MM-DD",
  "days_until_expiration": number,
  "confidence": "high|medium|low",
  "storage_tips": "brief storage tip",
  "reasoning": "one sentence explanation"
}`
)

// RecipeService handles the AI-backed features (image scan, recipe
// suggestions, expiration estimates) and saved-recipe bookmarks.
type RecipeService struct {
	ai          *genai.Client
	scanModel   string
	recipeModel string
	responses   cache.Cache
	cacheTTL    time.Duration
	recipeRepo  repository.RecipeRepository
	scanLogRepo repository.ScanLogRepository
}

// RecipeServiceConfig holds RecipeService dependencies. AI client is
// required; cache and scan log repo are optional.
type RecipeServiceConfig struct {
	AI          *genai.Client
	ScanModel   string
	RecipeModel string
	Responses   cache.Cache
	CacheTTL    time.Duration
	RecipeRepo  repository.RecipeRepository
	ScanLogRepo repository.ScanLogRepository
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(cfg RecipeServiceConfig) *RecipeService {
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = 30 * time.Minute
	}
	return &RecipeService{
		ai:          cfg.AI,
		scanModel:   cfg.ScanModel,
		recipeModel: cfg.RecipeModel,
		responses:   cfg.Responses,
		cacheTTL:    ttl,
		recipeRepo:  cfg.RecipeRepo,
		scanLogRepo: cfg.ScanLogRepo,
	}
}

// ScanImage sends a photographed pantry, receipt or meal to the AI backend
// and returns the extracted ingredients. Each ingredient whose shelf-life
// estimate parses also gets a concrete suggested expiration date.
func (s *RecipeService) ScanImage(ctx context.Context, userID, ip, base64Image string) ([]model.Ingredient, error) {
	start := time.Now()

	mimeType, data := genai.SplitDataURI(base64Image)
	parts := []genai.Part{
		{InlineData: &genai.InlineData{MIMEType: mimeType, Data: data}},
		{Text: scanPrompt},
	}

	raw, err := s.ai.GenerateJSON(ctx, s.scanModel, parts)
	if err != nil {
		s.logActivity(userID, ip, "scan", s.scanModel, 0, err, time.Since(start))
		return nil, err
	}

	var parsed struct {
		Ingredients []model.Ingredient `json:"ingredients"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		wrapped := fmt.Errorf("failed to parse scan response: %w", err)
		s.logActivity(userID, ip, "scan", s.scanModel, 0, wrapped, time.Since(start))
		return nil, wrapped
	}

	s.logActivity(userID, ip, "scan", s.scanModel, len(parsed.Ingredients), nil, time.Since(start))
	if parsed.Ingredients == nil {
		return []model.Ingredient{}, nil
	}
	return parsed.Ingredients, nil
}

// SuggestedExpiration turns a scanned ingredient's shelf-life estimate
// into a concrete expiration date string, or "" when the estimate is not
// parseable ("Unknown" and friends).
func SuggestedExpiration(ing model.Ingredient, now time.Time) string {
	expires, ok := expiration.ParseEstimate(ing.ExpiryEstimate, now)
	if !ok {
		return ""
	}
	return expires.Format("2006-01-02")
}

// SuggestRecipes asks the AI backend for 3 recipes using the given
// ingredients, steering toward the ones expiring soon. Identical requests
// within the cache TTL are served from cache.
func (s *RecipeService) SuggestRecipes(ctx context.Context, userID, ip string, ingredients []model.Ingredient, prefs *model.UserPreferences) ([]model.Recipe, error) {
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("no ingredients supplied")
	}

	prompt := buildRecipePrompt(ingredients, prefs)

	fetch := func() ([]byte, error) {
		start := time.Now()
		raw, err := s.ai.GenerateJSON(ctx, s.recipeModel, []genai.Part{{Text: prompt}})
		s.logActivity(userID, ip, "recipes", s.recipeModel, len(ingredients), err, time.Since(start))
		return raw, err
	}

	var raw []byte
	var err error
	if s.responses != nil {
		raw, err = s.responses.GetOrSet(ctx, "recipes:"+hashPrompt(prompt), s.cacheTTL, fetch)
	} else {
		raw, err = fetch()
	}
	if err != nil {
		return nil, err
	}

	var recipes []model.Recipe
	if err := json.Unmarshal(raw, &recipes); err != nil {
		// Some responses arrive wrapped in an object instead of a bare array.
		var wrapped struct {
			Recipes []model.Recipe `json:"recipes"`
		}
		if err2 := json.Unmarshal(raw, &wrapped); err2 != nil {
			return nil, fmt.Errorf("failed to parse recipe response: %w", err)
		}
		recipes = wrapped.Recipes
	}
	return recipes, nil
}

// EstimateResult is the AI's expiration estimate for a single food item.
type EstimateResult struct {
	EstimatedExpirationDate string `json:"estimated_expiration_date"`
	DaysUntilExpiration     int    `json:"days_until_expiration"`
	Confidence              string `json:"confidence"`
	StorageTips             string `json:"storage_tips,omitempty"`
	Reasoning               string `json:"reasoning,omitempty"`
}

// EstimateExpiration asks the AI backend to estimate an expiration date
// for a named food item. The returned date is validated before being
// handed back to the caller.
func (s *RecipeService) EstimateExpiration(ctx context.Context, userID, ip, foodName, category, storage, purchaseDate string, now time.Time) (*EstimateResult, error) {
	if foodName == "" {
		return nil, fmt.Errorf("food name is required")
	}
	if purchaseDate == "" {
		purchaseDate = now.Format("2006-01-02")
	}
	if category == "" {
		category = "not specified"
	}
	if storage == "" {
		storage = "not specified"
	}

	prompt := fmt.Sprintf(estimatePromptTemplate, foodName, category, storage, purchaseDate)

	start := time.Now()
	raw, err := s.ai.GenerateJSON(ctx, s.recipeModel, []genai.Part{{Text: prompt}})
	s.logActivity(userID, ip, "estimate", s.recipeModel, 1, err, time.Since(start))
	if err != nil {
		return nil, err
	}

	var result EstimateResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to parse estimate response: %w", err)
	}
	if !expiration.IsValidDate(result.EstimatedExpirationDate) {
		return nil, fmt.Errorf("AI returned an invalid expiration date %q", result.EstimatedExpirationDate)
	}
	return &result, nil
}

// SaveRecipe bookmarks a recipe for the user.
func (s *RecipeService) SaveRecipe(ctx context.Context, userID string, recipe model.Recipe) (string, error) {
	if recipe.ID == "" {
		return "", fmt.Errorf("recipe must have an id")
	}
	if recipe.Title == "" {
		return "", fmt.Errorf("recipe must have a title")
	}
	return s.recipeRepo.SaveRecipe(ctx, userID, recipe)
}

// ListSavedRecipes returns the user's bookmarked recipes.
func (s *RecipeService) ListSavedRecipes(ctx context.Context, userID string) ([]model.SavedRecipe, error) {
	return s.recipeRepo.ListSavedRecipes(ctx, userID)
}

// UnsaveRecipe removes a bookmark.
func (s *RecipeService) UnsaveRecipe(ctx context.Context, userID, recipeID string) error {
	return s.recipeRepo.DeleteSavedRecipe(ctx, userID, recipeID)
}

// buildRecipePrompt assembles the suggestion prompt, listing each
// ingredient with its shelf-life estimate so the model can prioritize the
// short-lived ones.
func buildRecipePrompt(ingredients []model.Ingredient, prefs *model.UserPreferences) string {
	entries := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		estimate := ing.ExpiryEstimate
		if estimate == "" {
			estimate = "N/A"
		}
		entries = append(entries, fmt.Sprintf("%s (%s)", ing.Name, estimate))
	}

	constraints := []string{}
	if prefs != nil {
		if prefs.Cuisine != "" {
			constraints = append(constraints, "Cuisine: "+prefs.Cuisine)
		}
		if prefs.Restrictions != "" {
			constraints = append(constraints, "Restrictions: "+prefs.Restrictions)
		}
		if len(prefs.Allergies) > 0 {
			constraints = append(constraints, "Allergies to avoid: "+strings.Join(prefs.Allergies, ", "))
		}
	}
	constraints = append(constraints, "Prioritize ingredients expiring soon (short shelf life).")

	return fmt.Sprintf(
		"Ingredients available: %s.\nConstraints: %s.\nSuggest 3 practical, delicious recipes. "+
			"Respond with a JSON array of objects with fields: id, title, description, time, "+
			"difficulty (Easy|Medium|Hard), ingredients (array of strings), instructions (array of strings), calories (number).",
		strings.Join(entries, ", "),
		strings.Join(constraints, ". "),
	)
}

func hashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// logActivity records the AI call asynchronously; failures only warn.
func (s *RecipeService) logActivity(userID, ip, kind, aiModel string, itemCount int, callErr error, took time.Duration) {
	if s.scanLogRepo == nil {
		return
	}

	entry := &model.ScanLog{
		UserID:          userID,
		IPAddress:       ip,
		Kind:            kind,
		Model:           aiModel,
		ItemCount:       itemCount,
		Status:          "success",
		ExecutionTimeMs: took.Milliseconds(),
	}
	if callErr != nil {
		entry.Status = "failed"
		entry.ErrorMessage = callErr.Error()
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.scanLogRepo.InsertScanLog(ctx, entry); err != nil {
			log.Printf("[RecipeService] Failed to record %s activity: %v", kind, err)
		}
	}()
}
