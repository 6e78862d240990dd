package rest

import (
	"log/slog"
	"net/http"

	"admin-dashboard/internal/auth"
	"admin-dashboard/internal/record"
	"admin-dashboard/internal/store"
	"admin-dashboard/internal/transport/middleware"
	"admin-dashboard/internal/transport/swagger"
	"admin-dashboard/internal/user"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// RegisterAllRoutes mounts the auth gateway, the user management
// endpoints and the generic record API. Every management route sits
// behind token validation followed by the admin role check; data is never
// touched before both pass.
func RegisterAllRoutes(router *chi.Mux, docStore *store.DocumentStore, authHandler *auth.Handler, userHandler *user.Handler, recordHandler *record.Handler, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(docStore)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Health check routes
	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	// Serve OpenAPI spec at root plus the Swagger UI
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/auth", func(r chi.Router) {
		// Public routes
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)

		// Admin-gated user management
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)
			pr.Use(authHandler.RequireAdmin)

			pr.Post("/add-user", userHandler.AddUser)
			pr.Get("/users", userHandler.ListUsers)
			pr.Get("/users/{id}", userHandler.GetUser)
			pr.Put("/edituser/{id}", userHandler.EditUser)
			pr.Delete("/deleteuser/{id}", userHandler.DeleteUser)
			pr.Get("/user-statistics", userHandler.Statistics)
		})
	})

	// Generic collection CRUD, behind the same role gate as the curated
	// endpoints.
	router.Route("/api", func(r chi.Router) {
		r.Use(authHandler.AuthMiddleware)
		r.Use(authHandler.RequireAdmin)

		r.Get("/{collection}", recordHandler.List)
		r.Post("/{collection}", recordHandler.Create)
		r.Get("/{collection}/{id}", recordHandler.Get)
		r.Put("/{collection}/{id}", recordHandler.Update)
		r.Patch("/{collection}/{id}", recordHandler.Update)
		r.Delete("/{collection}/{id}", recordHandler.Delete)
	})
}
