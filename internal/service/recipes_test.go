package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"pantrypal-api/internal/cache"
	"pantrypal-api/internal/genai"
	"pantrypal-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRecipeRepo is an in-memory RecipeRepository.
type fakeRecipeRepo struct {
	saved map[string]model.SavedRecipe
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{saved: make(map[string]model.SavedRecipe)}
}

func (f *fakeRecipeRepo) SaveRecipe(ctx context.Context, userID string, recipe model.Recipe) (string, error) {
	docID := userID + ":" + recipe.ID
	f.saved[docID] = model.SavedRecipe{DocID: docID, UserID: userID, Recipe: recipe, SavedAt: time.Now()}
	return docID, nil
}

func (f *fakeRecipeRepo) ListSavedRecipes(ctx context.Context, userID string) ([]model.SavedRecipe, error) {
	var out []model.SavedRecipe
	for _, s := range f.saved {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) DeleteSavedRecipe(ctx context.Context, userID, recipeID string) error {
	delete(f.saved, userID+":"+recipeID)
	return nil
}

// aiStub returns a genai client wired to a test server that responds
// with the given JSON payload, and a counter of calls received.
func aiStub(t *testing.T, payload string) (*genai.Client, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": payload}},
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	client, err := genai.NewClient(genai.Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)
	return client, &calls
}

func newTestRecipeService(t *testing.T, payload string) (*RecipeService, *atomic.Int64, *fakeRecipeRepo) {
	t.Helper()
	client, calls := aiStub(t, payload)
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(RecipeServiceConfig{
		AI:          client,
		ScanModel:   "test-model",
		RecipeModel: "test-model",
		Responses:   cache.NewMemoryCache(),
		RecipeRepo:  repo,
	})
	return svc, calls, repo
}

func TestScanImage(t *testing.T) {
	svc, _, _ := newTestRecipeService(t, `{"ingredients": [
		{"name": "Milk", "quantity": "1L", "category": "Dairy", "expiry_estimate": "5 days"},
		{"name": "Spinach", "quantity": "1 bag", "category": "Produce", "expiry_estimate": "Unknown"}
	]}`)

	ingredients, err := svc.ScanImage(context.Background(), "user-1", "1.2.3.4",
		"data:image/jpeg;base64,Zm9v")
	require.NoError(t, err)
	require.Len(t, ingredients, 2)
	assert.Equal(t, "Milk", ingredients[0].Name)
	assert.Equal(t, "5 days", ingredients[0].ExpiryEstimate)
}

func TestScanImageEmptyResult(t *testing.T) {
	svc, _, _ := newTestRecipeService(t, `{"ingredients": []}`)

	ingredients, err := svc.ScanImage(context.Background(), "user-1", "", "Zm9v")
	require.NoError(t, err)
	assert.NotNil(t, ingredients)
	assert.Empty(t, ingredients)
}

func TestScanImageMalformedResponse(t *testing.T) {
	svc, _, _ := newTestRecipeService(t, `not json at all`)

	_, err := svc.ScanImage(context.Background(), "user-1", "", "Zm9v")
	assert.ErrorContains(t, err, "failed to parse scan response")
}

func TestSuggestedExpiration(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	got := SuggestedExpiration(model.Ingredient{Name: "Milk", ExpiryEstimate: "5 days"}, now)
	assert.Equal(t, "2026-03-15", got)

	got = SuggestedExpiration(model.Ingredient{Name: "Flour", ExpiryEstimate: "Unknown"}, now)
	assert.Empty(t, got)
}

func TestSuggestRecipes(t *testing.T) {
	svc, calls, _ := newTestRecipeService(t, `[
		{"id": "r1", "title": "Spinach Omelette", "difficulty": "Easy",
		 "ingredients": ["spinach", "eggs"], "instructions": ["whisk", "fry"], "calories": 320}
	]`)

	ingredients := []model.Ingredient{{Name: "Spinach", ExpiryEstimate: "2 days"}, {Name: "Eggs"}}
	prefs := &model.UserPreferences{Cuisine: "Italian", Allergies: []string{"peanuts"}}

	recipes, err := svc.SuggestRecipes(context.Background(), "user-1", "", ingredients, prefs)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Spinach Omelette", recipes[0].Title)
	assert.Equal(t, int64(1), calls.Load())

	// Identical request is served from cache without another AI call.
	_, err = svc.SuggestRecipes(context.Background(), "user-1", "", ingredients, prefs)
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestSuggestRecipesWrappedResponse(t *testing.T) {
	svc, _, _ := newTestRecipeService(t, `{"recipes": [{"id": "r1", "title": "Soup"}]}`)

	recipes, err := svc.SuggestRecipes(context.Background(), "user-1", "",
		[]model.Ingredient{{Name: "Carrot"}}, nil)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Soup", recipes[0].Title)
}

func TestSuggestRecipesRequiresIngredients(t *testing.T) {
	svc, calls, _ := newTestRecipeService(t, `[]`)

	_, err := svc.SuggestRecipes(context.Background(), "user-1", "", nil, nil)
	assert.Error(t, err)
	assert.Zero(t, calls.Load())
}

func TestEstimateExpiration(t *testing.T) {
	svc, _, _ := newTestRecipeService(t, `{
		"estimated_expiration_date": "2026-03-17",
		"days_until_expiration": 7,
		"confidence": "high",
		"storage_tips": "keep refrigerated",
		"reasoning": "opened milk lasts about a week"
	}`)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	result, err := svc.EstimateExpiration(context.Background(), "user-1", "", "Milk", "Dairy", "fridge", "", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-17", result.EstimatedExpirationDate)
	assert.Equal(t, 7, result.DaysUntilExpiration)
	assert.Equal(t, "high", result.Confidence)
}

func TestEstimateExpirationRejectsBadDate(t *testing.T) {
	svc, _, _ := newTestRecipeService(t, `{"estimated_expiration_date": "soonish", "days_until_expiration": 3, "confidence": "low"}`)

	_, err := svc.EstimateExpiration(context.Background(), "user-1", "", "Milk", "", "", "", time.Now())
	assert.ErrorContains(t, err, "invalid expiration date")
}

func TestEstimateExpirationRequiresFoodName(t *testing.T) {
	svc, calls, _ := newTestRecipeService(t, `{}`)

	_, err := svc.EstimateExpiration(context.Background(), "user-1", "", "", "", "", "", time.Now())
	assert.Error(t, err)
	assert.Zero(t, calls.Load())
}

func TestSavedRecipes(t *testing.T) {
	svc, _, _ := newTestRecipeService(t, `[]`)

	recipe := model.Recipe{ID: "r1", Title: "Soup"}
	docID, err := svc.SaveRecipe(context.Background(), "user-1", recipe)
	require.NoError(t, err)
	assert.Equal(t, "user-1:r1", docID)

	saved, err := svc.ListSavedRecipes(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Soup", saved[0].Recipe.Title)

	require.NoError(t, svc.UnsaveRecipe(context.Background(), "user-1", "r1"))
	saved, err = svc.ListSavedRecipes(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestSaveRecipeValidation(t *testing.T) {
	svc, _, _ := newTestRecipeService(t, `[]`)

	_, err := svc.SaveRecipe(context.Background(), "user-1", model.Recipe{Title: "No ID"})
	assert.Error(t, err)

	_, err = svc.SaveRecipe(context.Background(), "user-1", model.Recipe{ID: "r2"})
	assert.Error(t, err)
}
