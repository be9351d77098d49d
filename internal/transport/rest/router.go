package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/godilite/program-recommender/internal/transport/rest/handler"
	"github.com/godilite/program-recommender/pkg/cache"
)

const defaultCacheTTL = 10 * time.Minute

// Container holds all dependencies for the router
type Container struct {
	Surveys  handler.SurveyService
	Scoring  handler.ScoringService
	Catalog  handler.CatalogService
	Cache    cache.Cacher
	CacheTTL time.Duration
	Logger   *zap.Logger

	// CORSAllowedOrigins defaults to "*".
	CORSAllowedOrigins string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")
	store := c.Cache
	if store == nil {
		store = cache.Noop{}
	}
	ttl := c.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	sf := &singleflight.Group{}

	surveyHandler := handler.NewSurveyHandler(c.Surveys, logger)
	scoringHandler := handler.NewScoringHandler(c.Scoring, store, sf, ttl, logger)
	catalogHandler := handler.NewCatalogHandler(c.Catalog, store, sf, ttl, logger)

	r := mux.NewRouter()
	r.Use(recoveryMiddleware(logger), corsMiddleware(c.CORSAllowedOrigins), loggingMiddleware(logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/responses", surveyHandler.AddResponse).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/complete", surveyHandler.Complete).Methods("POST", "OPTIONS")

	v1.HandleFunc("/scoring", scoringHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/scoring/batch", scoringHandler.Batch).Methods("POST", "OPTIONS")
	v1.HandleFunc("/scoring/{answerId}/{programId}", scoringHandler.Upsert).Methods("PUT", "OPTIONS")

	v1.HandleFunc("/programs", catalogHandler.Programs).Methods("GET", "OPTIONS")
	v1.HandleFunc("/programs", catalogHandler.CreateProgram).Methods("POST", "OPTIONS")
	v1.HandleFunc("/programs/{programId}", catalogHandler.GetProgram).Methods("GET", "OPTIONS")
	v1.HandleFunc("/programs/{programId}", catalogHandler.UpdateProgram).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/programs/{programId}", catalogHandler.DeleteProgram).Methods("DELETE", "OPTIONS")

	v1.HandleFunc("/sections", catalogHandler.Sections).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sections", catalogHandler.CreateSection).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sections/{sectionId}", catalogHandler.UpdateSection).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/sections/{sectionId}", catalogHandler.DeleteSection).Methods("DELETE", "OPTIONS")

	v1.HandleFunc("/questions", catalogHandler.Questions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/questions", catalogHandler.CreateQuestion).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questions", catalogHandler.UpsertQuestion).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/questions/{questionId}", catalogHandler.GetQuestion).Methods("GET", "OPTIONS")
	v1.HandleFunc("/questions/{questionId}", catalogHandler.UpdateQuestion).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/questions/{questionId}", catalogHandler.DeleteQuestion).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/questions/{questionId}/answers", catalogHandler.UpsertAnswer).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/questions/{questionId}/answers/{answerId}", catalogHandler.DeleteAnswer).Methods("DELETE", "OPTIONS")

	return r
}
