package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"pantrypal-api/internal/middleware"
	"pantrypal-api/internal/service"
	"pantrypal-api/pkg/apierror"
	"pantrypal-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// PantryHandler handles pantry item HTTP requests.
type PantryHandler struct {
	pantryService *service.PantryService
}

// NewPantryHandler creates a new pantry handler.
func NewPantryHandler(pantryService *service.PantryService) *PantryHandler {
	return &PantryHandler{
		pantryService: pantryService,
	}
}

// requestUserID resolves the caller's identity: session token data when
// present, otherwise the X-User-ID header (API-key clients).
func requestUserID(r *http.Request) string {
	if data := middleware.GetTokenDataFromContext(r.Context()); data != nil {
		return data.UserID
	}
	return r.Header.Get("X-User-ID")
}

// requestNow honors a test override via the X-Now header (RFC3339),
// falling back to the wall clock. Status calculations all flow from this
// single instant.
func requestNow(r *http.Request) time.Time {
	if raw := r.Header.Get("X-Now"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t
		}
	}
	return time.Now()
}

// CreateItem handles POST /api/v1/pantry/items
func (h *PantryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		response.Error(w, apierror.BadRequest("user identity is required"))
		return
	}

	var in service.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	item, err := h.pantryService.AddItem(r.Context(), userID, in, requestNow(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, item)
}

// GetItem handles GET /api/v1/pantry/items/{item_id}
func (h *PantryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		response.Error(w, apierror.BadRequest("user identity is required"))
		return
	}

	itemID := chi.URLParam(r, "item_id")
	item, err := h.pantryService.GetItem(r.Context(), userID, itemID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, item)
}

// ListItems handles GET /api/v1/pantry/items
func (h *PantryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		response.Error(w, apierror.BadRequest("user identity is required"))
		return
	}

	items, err := h.pantryService.ListItems(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"items": items,
		"total": len(items),
	})
}

// UpdateItem handles PUT /api/v1/pantry/items/{item_id}
func (h *PantryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		response.Error(w, apierror.BadRequest("user identity is required"))
		return
	}

	itemID := chi.URLParam(r, "item_id")

	var in service.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	item, err := h.pantryService.UpdateItem(r.Context(), userID, itemID, in, requestNow(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, item)
}

// DeleteItem handles DELETE /api/v1/pantry/items/{item_id}
func (h *PantryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		response.Error(w, apierror.BadRequest("user identity is required"))
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if err := h.pantryService.DeleteItem(r.Context(), userID, itemID); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}

// Reminders handles GET /api/v1/pantry/reminders
//
// Optional query param horizon_days overrides the configured attention
// window for this request.
func (h *PantryHandler) Reminders(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		response.Error(w, apierror.BadRequest("user identity is required"))
		return
	}

	horizonDays := 0
	if raw := r.URL.Query().Get("horizon_days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.Error(w, apierror.BadRequest("horizon_days must be a non-negative integer"))
			return
		}
		horizonDays = n
	}

	list, err := h.pantryService.Reminders(r.Context(), userID, horizonDays, requestNow(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, list)
}

// Calendar handles GET /api/v1/pantry/calendar?year=2026&month=3
//
// Defaults to the current month when year/month are omitted.
func (h *PantryHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		response.Error(w, apierror.BadRequest("user identity is required"))
		return
	}

	now := requestNow(r)
	year := now.Year()
	month := now.Month()

	if raw := r.URL.Query().Get("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.Error(w, apierror.BadRequest("year must be a positive integer"))
			return
		}
		year = n
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 12 {
			response.Error(w, apierror.BadRequest("month must be between 1 and 12"))
			return
		}
		month = time.Month(n)
	}

	cal, err := h.pantryService.Calendar(r.Context(), userID, year, month, now)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, cal)
}
