package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	r.Handle("/metrics", promhttp.Handler())

	// All API routes will be under /api
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth", apiHandler.AuthHandler)
		r.Post("/start", apiHandler.StartHandler)
		r.Get("/state", apiHandler.StateHandler)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		// User-authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(apiHandler.JWTAuthMiddleware)

			r.Post("/onboarding", apiHandler.OnboardingHandler)
			r.Post("/onboarding/cancel", apiHandler.OnboardingCancelHandler)
			r.Post("/preferences", apiHandler.PreferencesHandler)
			r.Patch("/profile", apiHandler.UpdateProfileHandler)
			r.Post("/signout", apiHandler.SignOutHandler)

			// Persona catalog
			r.Get("/personas", apiHandler.ListPersonasHandler)
			r.Post("/personas/{personaID}/select", apiHandler.SelectPersonaHandler)
			r.Patch("/personas/{personaID}", apiHandler.CustomizePersonaHandler)

			// Chat routes
			r.Post("/chat/back", apiHandler.ChatBackHandler)
			r.Get("/chats/{personaID}", apiHandler.GetChatHandler)
			r.Delete("/chats/{personaID}", apiHandler.ClearChatHandler)
			r.Get("/chats/{personaID}/ws", apiHandler.ChatStreamHandler)

			// Preferences
			r.Get("/settings", apiHandler.GetSettingsHandler)
			r.Put("/settings", apiHandler.UpdateSettingsHandler)
			r.Put("/theme", apiHandler.UpdateThemeHandler)

			// Admin routes: invisible to non-admins
			r.Post("/admin/open", apiHandler.OpenAdminHandler)
			r.Group(func(r chi.Router) {
				r.Use(apiHandler.AdminOnlyMiddleware)

				r.Post("/admin/close", apiHandler.CloseAdminHandler)
				r.Get("/admin/personas", apiHandler.ListBasePersonasHandler)
				r.Put("/admin/personas/{language}/{personaID}", apiHandler.UpdateBasePersonaHandler)
			})
		})
	})

	return r
}
