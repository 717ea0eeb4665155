package api

import (
	"github.com/gorilla/mux"

	"github.com/garnizeh/skilltrack/internal/config"
	"github.com/garnizeh/skilltrack/internal/db"
	"github.com/garnizeh/skilltrack/internal/repository/sqlite"
	"github.com/garnizeh/skilltrack/pkg/access"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(db, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, repo, cfg.JWTSecret, cfg.TokenDuration, cfg.ResetConfig.CodeTTL, cfg.ResetConfig.CodeLength)
	entriesHandler := NewEntriesHandler(repo)
	usersHandler := NewUsersHandler(repo)
	optionsHandler := NewOptionsHandler(repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Register).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Login).Methods("POST")
	r.HandleFunc("/v1/auth/forgot-password", authHandler.ForgotPassword).Methods("POST")
	r.HandleFunc("/v1/auth/reset-password", authHandler.ResetPassword).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Logout).Methods("POST")

	// Entry endpoints
	apiV1.HandleFunc("/entries", entriesHandler.CreateEntry).Methods("POST")
	apiV1.HandleFunc("/entries", entriesHandler.ListEntries).Methods("GET")
	apiV1.HandleFunc("/entries/{userId}", entriesHandler.ListUserEntries).Methods("GET")
	apiV1.HandleFunc("/reports/summary", entriesHandler.Summary).Methods("GET")

	// Options are read by every entry form, managed by admins only
	apiV1.HandleFunc("/options", optionsHandler.ListOptions).Methods("GET")

	adminV1 := apiV1.NewRoute().Subrouter()
	adminV1.Use(RequireCapability(func(c access.Capabilities) bool { return c.CanManageUsers }))
	adminV1.HandleFunc("/users", usersHandler.ListUsers).Methods("GET")
	adminV1.HandleFunc("/users", usersHandler.CreateUser).Methods("POST")
	adminV1.HandleFunc("/users/{id}", usersHandler.UpdateUser).Methods("PUT")
	adminV1.HandleFunc("/users/{id}", usersHandler.DeleteUser).Methods("DELETE")

	optAdminV1 := apiV1.NewRoute().Subrouter()
	optAdminV1.Use(RequireCapability(func(c access.Capabilities) bool { return c.CanManageOptions }))
	optAdminV1.HandleFunc("/options", optionsHandler.CreateOption).Methods("POST")
	optAdminV1.HandleFunc("/options/{id}", optionsHandler.UpdateOption).Methods("PUT")
	optAdminV1.HandleFunc("/options/{id}", optionsHandler.DeleteOption).Methods("DELETE")

	return r
}
