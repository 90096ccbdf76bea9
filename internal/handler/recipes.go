package handler

import (
	"encoding/json"
	"net/http"

	"pantrypal-api/internal/model"
	"pantrypal-api/internal/service"
	"pantrypal-api/pkg/apierror"
	"pantrypal-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// RecipeHandler handles AI scan, recipe suggestion and saved-recipe requests.
type RecipeHandler struct {
	recipeService     *service.RecipeService
	preferenceService *service.PreferenceService
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipeService *service.RecipeService, preferenceService *service.PreferenceService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:     recipeService,
		preferenceService: preferenceService,
	}
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// ScanImage handles POST /api/v1/scan
//
// Accepts a base64 image (optionally a data URI) and returns the food
// items the AI identified in it, each with a suggested expiration date
// when the shelf-life estimate is parseable.
func (h *RecipeHandler) ScanImage(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		response.Error(w, apierror.BadRequest("user identity is required"))
		return
	}

	var req struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	if req.Image == "" {
		response.Error(w, apierror.BadRequest("image is required"))
		return
	}

	now := requestNow(r)
	ingredients, err := h.recipeService.ScanImage(r.Context(), userID, clientIP(r), req.Image)
	if err != nil {
		response.Error(w, apierror.BadGateway("AI scan failed: "+err.Error()))
		return
	}

	type scannedItem struct {
		model.Ingredient
		SuggestedExpiration string `json:"suggested_expiration,omitempty"`
	}
	out := make([]scannedItem, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, scannedItem{
			Ingredient:          ing,
			SuggestedExpiration: service.SuggestedExpiration(ing, now),
		})
	}

	response.OK(w, map[string]interface{}{
		"ingredients": out,
		"total":       len(out),
	})
}

// SuggestRecipes handles POST /api/v1/recipes/suggest
func (h *RecipeHandler) SuggestRecipes(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		response.Error(w, apierror.BadRequest("user identity is required"))
		return
	}

	var req struct {
		Ingredients []model.Ingredient `json:"ingredients"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	if len(req.Ingredients) == 0 {
		response.Error(w, apierror.BadRequest("at least one ingredient is required"))
		return
	}

	var prefs *model.UserPreferences
	if h.preferenceService != nil {
		if p, err := h.preferenceService.GetPreferences(r.Context(), userID); err == nil {
			prefs = p
		}
	}

	recipes, err := h.recipeService.SuggestRecipes(r.Context(), userID, clientIP(r), req.Ingredients, prefs)
	if err != nil {
		response.Error(w, apierror.BadGateway("recipe generation failed: "+err.Error()))
		return
	}

	response.OK(w, map[string]interface{}{
		"recipes": recipes,
		"total":   len(recipes),
	})
}

// EstimateExpiration handles POST /api/v1/estimate
func (h *RecipeHandler) EstimateExpiration(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		response.Error(w, apierror.BadRequest("user identity is required"))
		return
	}

	var req struct {
		FoodName     string `json:"food_name"`
		Category     string `json:"category"`
		Storage      string `json:"storage"`
		PurchaseDate string `json:"purchase_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	if req.FoodName == "" {
		response.Error(w, apierror.BadRequest("food_name is required"))
		return
	}

	result, err := h.recipeService.EstimateExpiration(
		r.Context(), userID, clientIP(r),
		req.FoodName, req.Category, req.Storage, req.PurchaseDate,
		requestNow(r),
	)
	if err != nil {
		response.Error(w, apierror.BadGateway("expiration estimate failed: "+err.Error()))
		return
	}

	response.OK(w, result)
}

// SaveRecipe handles POST /api/v1/recipes/saved
func (h *RecipeHandler) SaveRecipe(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		response.Error(w, apierror.BadRequest("user identity is required"))
		return
	}

	var recipe model.Recipe
	if err := json.NewDecoder(r.Body).Decode(&recipe); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	docID, err := h.recipeService.SaveRecipe(r.Context(), userID, recipe)
	if err != nil {
		response.Error(w, apierror.BadRequest(err.Error()))
		return
	}

	response.Created(w, map[string]string{
		"doc_id":    docID,
		"recipe_id": recipe.ID,
	})
}

// ListSavedRecipes handles GET /api/v1/recipes/saved
func (h *RecipeHandler) ListSavedRecipes(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		response.Error(w, apierror.BadRequest("user identity is required"))
		return
	}

	saved, err := h.recipeService.ListSavedRecipes(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"recipes": saved,
		"total":   len(saved),
	})
}

// UnsaveRecipe handles DELETE /api/v1/recipes/saved/{recipe_id}
func (h *RecipeHandler) UnsaveRecipe(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		response.Error(w, apierror.BadRequest("user identity is required"))
		return
	}

	recipeID := chi.URLParam(r, "recipe_id")
	if err := h.recipeService.UnsaveRecipe(r.Context(), userID, recipeID); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}
