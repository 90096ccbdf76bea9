package handler

import (
	"encoding/json"
	"net/http"

	"pantrypal-api/internal/middleware"
	"pantrypal-api/internal/model"
	"pantrypal-api/internal/repository"
	"pantrypal-api/internal/service"
	"pantrypal-api/pkg/apierror"
	"pantrypal-api/pkg/response"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	tokenService *service.TokenService
	accountRepo  repository.AccountRepository // Interface, not concrete type
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(tokenService *service.TokenService, accountRepo repository.AccountRepository) *AuthHandler {
	return &AuthHandler{
		tokenService: tokenService,
		accountRepo:  accountRepo,
	}
}

// TokenRequest represents the request body for token generation.
type TokenRequest struct {
	Email  string `json:"email"`
	APIKey string `json:"api_key"`
}

// TokenResponse represents the response for token generation.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// GenerateToken handles POST /api/v1/auth/token
func (h *AuthHandler) GenerateToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if req.Email == "" {
		response.Error(w, apierror.BadRequest("email is required"))
		return
	}
	if req.APIKey == "" {
		response.Error(w, apierror.BadRequest("api_key is required"))
		return
	}

	validation, err := h.accountRepo.ValidateCredentials(r.Context(), req.Email, req.APIKey)
	if err != nil {
		response.Error(w, apierror.Unauthorized(err.Error()))
		return
	}

	tokenData := model.TokenData{
		UserID: validation.UserID,
		Email:  validation.Email,
		Name:   validation.Name,
	}

	token, err := h.tokenService.GenerateToken(r.Context(), tokenData)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to generate token"))
		return
	}

	response.OK(w, TokenResponse{
		Token:     token,
		ExpiresIn: 3600,
	})
}

// RevokeToken handles POST /api/v1/auth/revoke
func (h *AuthHandler) RevokeToken(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Token")
	if token == "" {
		response.Error(w, apierror.BadRequest("X-Token header required"))
		return
	}

	if err := h.tokenService.RevokeToken(r.Context(), token); err != nil {
		response.Error(w, apierror.InternalError("failed to revoke token"))
		return
	}

	response.OK(w, map[string]string{"status": "revoked"})
}

// RevokeAll handles POST /api/v1/auth/revoke-all, logging the caller out
// of every active session.
func (h *AuthHandler) RevokeAll(w http.ResponseWriter, r *http.Request) {
	data := middleware.GetTokenDataFromContext(r.Context())
	if data == nil {
		response.Error(w, apierror.Unauthorized("a valid session token is required"))
		return
	}

	revoked, err := h.tokenService.RevokeUserTokens(r.Context(), data.UserID)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to revoke sessions"))
		return
	}

	response.OK(w, map[string]interface{}{
		"status":  "revoked",
		"revoked": revoked,
	})
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Token")
	if token == "" {
		response.Error(w, apierror.BadRequest("X-Token header required"))
		return
	}

	if err := h.tokenService.RefreshToken(r.Context(), token); err != nil {
		response.Error(w, apierror.Unauthorized(err.Error()))
		return
	}

	response.OK(w, map[string]interface{}{
		"status":     "refreshed",
		"expires_in": 3600,
	})
}
