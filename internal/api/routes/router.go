package routes

import (
	"net/http"

	"github.com/pickwise/pickwise-backend/internal/api/handlers"
	"github.com/pickwise/pickwise-backend/internal/api/middleware"
	"github.com/pickwise/pickwise-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	sessionHandler *handlers.SessionHandler
	historyHandler *handlers.HistoryHandler
	profileHandler *handlers.ProfileHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	sessionHandler *handlers.SessionHandler,
	historyHandler *handlers.HistoryHandler,
	profileHandler *handlers.ProfileHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		sessionHandler: sessionHandler,
		historyHandler: historyHandler,
		profileHandler: profileHandler,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Question generation
	r.mux.HandleFunc("POST /api/questions/generate", r.sessionHandler.GenerateQuestions)

	// Session endpoints
	r.mux.HandleFunc("GET /api/sessions/{id}", r.sessionHandler.GetSession)
	r.mux.HandleFunc("POST /api/sessions/{id}/answers", r.sessionHandler.SubmitAnswers)
	r.mux.HandleFunc("POST /api/sessions/{id}/search", r.sessionHandler.DispatchSearch)

	// History endpoints
	r.mux.HandleFunc("GET /api/history", r.historyHandler.GetHistory)

	// Profile endpoints
	r.mux.HandleFunc("GET /api/profile", r.profileHandler.GetProfile)
	r.mux.HandleFunc("PUT /api/profile", r.profileHandler.SaveProfile)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
