package handler

import (
	"encoding/json"
	"net/http"

	"pantrypal-api/internal/model"
	"pantrypal-api/internal/service"
	"pantrypal-api/pkg/apierror"
	"pantrypal-api/pkg/response"
)

// PreferenceHandler handles user preference HTTP requests.
type PreferenceHandler struct {
	preferenceService *service.PreferenceService
}

// NewPreferenceHandler creates a new preference handler.
func NewPreferenceHandler(preferenceService *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
	}
}

// GetPreferences handles GET /api/v1/preferences
func (h *PreferenceHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		response.Error(w, apierror.BadRequest("user identity is required"))
		return
	}

	prefs, err := h.preferenceService.GetPreferences(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, prefs)
}

// PutPreferences handles PUT /api/v1/preferences
func (h *PreferenceHandler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		response.Error(w, apierror.BadRequest("user identity is required"))
		return
	}

	var prefs model.UserPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	if err := h.preferenceService.PutPreferences(r.Context(), userID, prefs); err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "saved"})
}
