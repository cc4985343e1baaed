package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/learnprofile/internal/auth"
	"github.com/garnizeh/learnprofile/internal/config"
	"github.com/garnizeh/learnprofile/internal/db"
	"github.com/garnizeh/learnprofile/internal/repository/sqlite"
)

// SetupRoutes wires every endpoint onto a router backed by d and gen. The
// returned handler includes CORS handling around the router.
func SetupRoutes(cfg *config.Config, version, buildTime string, d *db.DB, gen ContentGenerator) http.Handler {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(d, logger)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenDuration)
	authn := auth.NewAuthenticator(issuer, repo)

	// Create handlers
	systemHandler := NewSystemHandler(d)
	authHandler := NewAuthHandler(repo, authn)
	resultsHandler := NewResultsHandler(repo, repo)
	profileHandler := NewProfileHandler(repo, repo, repo)
	contentHandler := NewContentHandler(gen)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods(http.MethodGet)
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/token", authHandler.Token).Methods(http.MethodPost)
	r.HandleFunc("/create-sample-user", authHandler.CreateSampleUser).Methods(http.MethodPost)

	// Protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(AuthMiddleware(authn))

	protected.HandleFunc("/generate-content", contentHandler.GenerateContent).Methods(http.MethodPost)
	protected.HandleFunc("/learning-style", resultsHandler.GetLearningStyle).Methods(http.MethodGet)
	protected.HandleFunc("/personality-analysis", resultsHandler.GetPersonalityAnalysis).Methods(http.MethodGet)
	protected.HandleFunc("/save-learning-style", resultsHandler.SaveLearningStyle).Methods(http.MethodPost)
	protected.HandleFunc("/save-personality-analysis", resultsHandler.SavePersonalityAnalysis).Methods(http.MethodPost)
	protected.HandleFunc("/user-info", UserInfo).Methods(http.MethodGet)

	protected.HandleFunc("/learning-style-scores", profileHandler.SaveScores).Methods(http.MethodPost)
	protected.HandleFunc("/learning-style-scores", profileHandler.GetScores).Methods(http.MethodGet)
	protected.HandleFunc("/learning-tests", profileHandler.CreateTest).Methods(http.MethodPost)
	protected.HandleFunc("/learning-tests", profileHandler.ListTests).Methods(http.MethodGet)
	protected.HandleFunc("/recommendations", profileHandler.CreateRecommendation).Methods(http.MethodPost)
	protected.HandleFunc("/recommendations", profileHandler.ListRecommendations).Methods(http.MethodGet)

	return NewCORS(cfg.CORS.AllowedOrigins)(r)
}
