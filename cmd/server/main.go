package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/vibelink/feedback-service/internal/config"
	"github.com/vibelink/feedback-service/internal/database"
	"github.com/vibelink/feedback-service/internal/handlers"
	"github.com/vibelink/feedback-service/internal/middleware"
	"github.com/vibelink/feedback-service/internal/routes"
	"github.com/vibelink/feedback-service/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Pick the store backend. Postgres is fatal when selected and unreachable:
	// a feedback service that can only 500 should not come up at all.
	var profileStore store.ProfileFeedbackStore
	var appStore store.AppFeedbackStore

	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		log.Printf("Connecting to PostgreSQL...")
		if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
			log.Fatal("Failed to connect to PostgreSQL:", err)
		}
		defer database.DisconnectPostgres()
		profileStore = store.NewPostgresProfileFeedbackStore(database.PostgresDB)
		appStore = store.NewPostgresAppFeedbackStore(database.PostgresDB)
	default:
		log.Println("Using in-memory feedback stores (no persistence)")
		profileStore = store.NewMemoryProfileFeedbackStore()
		appStore = store.NewMemoryAppFeedbackStore()
	}

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Redis-backed rate limiting; skipped entirely when Redis is unavailable
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		log.Println("Rate limiting will not be available")
	} else {
		defer database.DisconnectRedis()
		r.Use(middleware.RateLimit(database.RedisClient))
		log.Println("✅ Per-IP rate limiting enabled")
	}

	// Setup handlers and routes
	profileHandler := handlers.NewProfileFeedbackHandler(profileStore)
	appHandler := handlers.NewAppFeedbackHandler(appStore)
	routes.SetupRoutes(r, profileHandler, appHandler)

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET    /health")
	log.Println("  GET    /health/{path_echo}")
	log.Println("  POST   /feedback/profile")
	log.Println("  GET    /feedback/profile")
	log.Println("  GET    /feedback/profile/stats")
	log.Println("  GET    /feedback/profile/{id}")
	log.Println("  PATCH  /feedback/profile/{id}")
	log.Println("  DELETE /feedback/profile/{id}")
	log.Println("  POST   /feedback/app")
	log.Println("  GET    /feedback/app")
	log.Println("  GET    /feedback/app/stats")
	log.Println("  GET    /feedback/app/{id}")
	log.Println("  PATCH  /feedback/app/{id}")
	log.Println("  DELETE /feedback/app/{id}")

	log.Printf("🚀 Feedback service running on :%s (store: %s)", cfg.Port, cfg.StoreBackend)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
