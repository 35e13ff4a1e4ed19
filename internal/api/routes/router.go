package routes

import (
	"net/http"

	"github.com/Timothy0727/ModeMap/internal/api/handlers"
	"github.com/Timothy0727/ModeMap/internal/api/middleware"
	"github.com/Timothy0727/ModeMap/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	venueHandler     *handlers.VenueHandler
	discoveryHandler *handlers.DiscoveryHandler
	profileHandler   *handlers.ProfileHandler
	eventHandler     *handlers.EventHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	venueHandler *handlers.VenueHandler,
	discoveryHandler *handlers.DiscoveryHandler,
	profileHandler *handlers.ProfileHandler,
	eventHandler *handlers.EventHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		venueHandler:     venueHandler,
		discoveryHandler: discoveryHandler,
		profileHandler:   profileHandler,
		eventHandler:     eventHandler,
		cacheMiddleware:  cacheMiddleware,
		metrics:          metrics,
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

	// Venue endpoints
	r.mux.HandleFunc("GET /api/venues", r.venueHandler.ListVenues)
	r.mux.HandleFunc("POST /api/venues", r.venueHandler.CreateVenue)
	r.mux.HandleFunc("GET /api/venues/search", r.venueHandler.SearchVenues)
	r.mux.HandleFunc("GET /api/venues/{id}", r.venueHandler.GetVenue)
	r.mux.HandleFunc("PATCH /api/venues/{id}", r.venueHandler.UpdateVenue)

	// Discovery endpoint (runs a provider nearby search and persists results)
	r.mux.HandleFunc("POST /api/venues/discover", r.discoveryHandler.DiscoverVenues)

	// Profile endpoints
	r.mux.HandleFunc("GET /api/venues/{id}/profile", r.profileHandler.GetProfile)
	r.mux.HandleFunc("PUT /api/venues/{id}/profile", r.profileHandler.PutProfile)
	r.mux.HandleFunc("POST /api/venues/{id}/profile/enrich", r.profileHandler.EnrichProfile)

	// Interaction event endpoints
	r.mux.HandleFunc("POST /api/events", r.eventHandler.CreateEvent)
	r.mux.HandleFunc("GET /api/events", r.eventHandler.ListEvents)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
