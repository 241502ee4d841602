package api

import (
	"net/http"

	"github.com/garnizeh/skillbridge/internal/config"
	"github.com/garnizeh/skillbridge/pkg/repository"
	"github.com/gorilla/mux"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, store repository.Store) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{Database: cfg.Storage.Driver}
	authHandler := NewAuthHandler(store, cfg.JWTSecret, cfg.TokenDuration)
	userHandler := NewUserHandler(store)
	courseHandler := NewCourseHandler(store)
	gapHandler := NewGapReportHandler(store, store)
	roadmapHandler := NewRoadmapHandler(store, store)

	// Preflight for every path; CORSMiddleware writes the response
	r.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Open endpoints
	r.HandleFunc("/", systemHandler.RootHandler(version)).Methods("GET")
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(OptionalJWTMiddleware(cfg.JWTSecret))

	// Auth endpoints
	apiRouter.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	apiRouter.HandleFunc("/auth/register", authHandler.Register).Methods("POST")

	protected := apiRouter.PathPrefix("/auth").Subrouter()
	protected.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))
	protected.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	apiRouter.HandleFunc("/users/me", userHandler.Me).Methods("GET")

	apiRouter.HandleFunc("/courses", courseHandler.ListCourses).Methods("GET")
	apiRouter.HandleFunc("/courses", courseHandler.CreateCourse).Methods("POST")
	apiRouter.HandleFunc("/courses/{id}", courseHandler.GetCourse).Methods("GET")

	apiRouter.HandleFunc("/gap-reports/{user_id}", gapHandler.GetCurrent).Methods("GET")

	apiRouter.HandleFunc("/roadmaps/generate", roadmapHandler.Generate).Methods("POST")
	apiRouter.HandleFunc("/roadmaps/{id}", roadmapHandler.GetRoadmap).Methods("GET")
	apiRouter.HandleFunc("/roadmaps/{roadmap_id}/steps/{step_id}", roadmapHandler.UpdateStep).Methods("PUT")

	return r
}
