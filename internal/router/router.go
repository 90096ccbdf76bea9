package router

import (
	"net/http"

	"pantrypal-api/internal/handler"
	"pantrypal-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler           *handler.Handler
	PantryHandler     *handler.PantryHandler
	RecipeHandler     *handler.RecipeHandler
	PreferenceHandler *handler.PreferenceHandler
	AdminHandler      *handler.AdminHandler
	AuthHandler       *handler.AuthHandler
	AuthMiddleware    func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-API-Key", "X-Token", "X-User-ID", "X-Now"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// PUBLIC routes (no auth required)
	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	// AUTHENTICATED routes (use Group to apply auth middleware only to these)
	r.Group(func(r chi.Router) {
		// Apply auth middleware only to this group
		if cfg.AuthMiddleware != nil {
			r.Use(cfg.AuthMiddleware)
		}

		// API v1 routes
		r.Route("/api/v1", func(r chi.Router) {
			// Health check endpoints
			if cfg.Handler != nil {
				r.Get("/health", cfg.Handler.Health)
				r.Get("/ready", cfg.Handler.Ready)
			}

			// Auth endpoints
			if cfg.AuthHandler != nil {
				r.Route("/auth", func(r chi.Router) {
					r.Post("/token", cfg.AuthHandler.GenerateToken)
					r.Post("/revoke", cfg.AuthHandler.RevokeToken)
					r.Post("/revoke-all", cfg.AuthHandler.RevokeAll)
					r.Post("/refresh", cfg.AuthHandler.RefreshToken)
				})
			}

			// Pantry endpoints
			if cfg.PantryHandler != nil {
				r.Route("/pantry", func(r chi.Router) {
					r.Route("/items", func(r chi.Router) {
						r.Post("/", cfg.PantryHandler.CreateItem)
						r.Get("/", cfg.PantryHandler.ListItems)
						r.Get("/{item_id}", cfg.PantryHandler.GetItem)
						r.Put("/{item_id}", cfg.PantryHandler.UpdateItem)
						r.Delete("/{item_id}", cfg.PantryHandler.DeleteItem)
					})
					r.Get("/reminders", cfg.PantryHandler.Reminders)
					r.Get("/calendar", cfg.PantryHandler.Calendar)
				})
			}

			// AI endpoints
			if cfg.RecipeHandler != nil {
				r.Post("/scan", cfg.RecipeHandler.ScanImage)
				r.Post("/estimate", cfg.RecipeHandler.EstimateExpiration)
				r.Route("/recipes", func(r chi.Router) {
					r.Post("/suggest", cfg.RecipeHandler.SuggestRecipes)
					r.Route("/saved", func(r chi.Router) {
						r.Post("/", cfg.RecipeHandler.SaveRecipe)
						r.Get("/", cfg.RecipeHandler.ListSavedRecipes)
						r.Delete("/{recipe_id}", cfg.RecipeHandler.UnsaveRecipe)
					})
				})
			}

			// Preference endpoints
			if cfg.PreferenceHandler != nil {
				r.Route("/preferences", func(r chi.Router) {
					r.Get("/", cfg.PreferenceHandler.GetPreferences)
					r.Put("/", cfg.PreferenceHandler.PutPreferences)
				})
			}

			// Admin endpoints
			if cfg.AdminHandler != nil {
				r.Route("/admin", func(r chi.Router) {
					r.Get("/stats", cfg.AdminHandler.GetStats)
					r.Get("/scan-logs", cfg.AdminHandler.GetScanLogs)
					r.Post("/purge", cfg.AdminHandler.RunPurge)
				})
			}
		})
	})

	return r
}
