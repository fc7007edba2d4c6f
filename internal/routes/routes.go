package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/vibelink/feedback-service/internal/handlers"
)

// SetupRoutes registers every endpoint on the router. The /stats routes are
// registered alongside /{id}; chi matches static segments before wildcards so
// "stats" never parses as an id.
func SetupRoutes(r chi.Router, profile *handlers.ProfileFeedbackHandler, app *handlers.AppFeedbackHandler) {
	// Health routes
	r.Get("/health", handlers.GetHealth)
	r.Get("/health/{path_echo}", handlers.GetHealthWithPath)

	// Profile-to-profile feedback routes
	r.Post("/feedback/profile", profile.Create)
	r.Get("/feedback/profile", profile.List)
	r.Get("/feedback/profile/stats", profile.Stats)
	r.Get("/feedback/profile/{id}", profile.Get)
	r.Patch("/feedback/profile/{id}", profile.Update)
	r.Delete("/feedback/profile/{id}", profile.Delete)

	// App-level feedback routes
	r.Post("/feedback/app", app.Create)
	r.Get("/feedback/app", app.List)
	r.Get("/feedback/app/stats", app.Stats)
	r.Get("/feedback/app/{id}", app.Get)
	r.Patch("/feedback/app/{id}", app.Update)
	r.Delete("/feedback/app/{id}", app.Delete)
}
