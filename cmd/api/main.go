package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Timothy0727/ModeMap/internal/adapters/cache"
	"github.com/Timothy0727/ModeMap/internal/adapters/database"
	"github.com/Timothy0727/ModeMap/internal/adapters/events"
	"github.com/Timothy0727/ModeMap/internal/adapters/providers/places"
	"github.com/Timothy0727/ModeMap/internal/adapters/search"
	"github.com/Timothy0727/ModeMap/internal/api/handlers"
	"github.com/Timothy0727/ModeMap/internal/api/middleware"
	"github.com/Timothy0727/ModeMap/internal/api/routes"
	"github.com/Timothy0727/ModeMap/internal/application/services"
	"github.com/Timothy0727/ModeMap/internal/domain/providers"
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
	"github.com/Timothy0727/ModeMap/internal/infrastructure/clients/openai"
	"github.com/Timothy0727/ModeMap/internal/infrastructure/clients/postgres"
	"github.com/Timothy0727/ModeMap/internal/infrastructure/clients/redis"
	"github.com/Timothy0727/ModeMap/internal/infrastructure/clients/typesense"
	"github.com/Timothy0727/ModeMap/internal/infrastructure/observability"
	"github.com/Timothy0727/ModeMap/pkg/config"
	"github.com/Timothy0727/ModeMap/pkg/secrets"
)

func main() {
	// Pull runtime secrets from Vault before reading configuration
	vaultCtx, vaultCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if result, err := secrets.ApplyVaultSecrets(vaultCtx, secrets.LoadVaultConfigFromEnv()); err != nil {
		log.Printf("Warning: Failed to load Vault secrets: %v", err)
	} else if result.Enabled {
		log.Printf("Loaded %d secrets from Vault path %s", result.Loaded, result.Path)
	}
	vaultCancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
		typesenseClient = nil
	} else {
		log.Println("Typesense client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize adapters
	baseVenueAdapter := database.NewVenueAdapter(pgClient)

	// Wrap with caching if Redis is available
	var venueRepo repositories.VenueRepository
	if cacheProvider != nil {
		venueRepo = database.NewCachedVenueAdapter(baseVenueAdapter, cacheProvider)
		log.Println("Venue adapter wrapped with caching layer")
	} else {
		venueRepo = baseVenueAdapter
		log.Println("Venue adapter running without cache (Redis unavailable)")
	}

	profileRepo := database.NewVenueProfileAdapter(pgClient)
	eventRepo := database.NewUserEventAdapter(pgClient)

	var searchRepo repositories.VenueSearchRepository
	if typesenseClient != nil {
		if err := typesenseClient.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}
		searchRepo = search.NewTypesenseAdapter(typesenseClient)
	}

	// Initialize event bus for venue lifecycle updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	var placeProvider providers.PlaceSearchProvider
	switch cfg.Places.Provider {
	case "google":
		if cfg.Places.APIKey == "" {
			log.Println("Warning: GOOGLE_PLACES_API_KEY is not set; using mock place search provider")
			placeProvider = places.NewMockPlaceSearchProvider()
		} else {
			provider, err := places.NewGooglePlacesProvider(cfg.Places.APIKey, &cfg.Places)
			if err != nil {
				log.Fatalf("Failed to initialize Google Places provider: %v", err)
			}
			placeProvider = provider
		}
	default:
		placeProvider = places.NewMockPlaceSearchProvider()
	}

	var enrichmentProvider providers.ProfileEnrichmentProvider
	if cfg.OpenAI.APIKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set; profile enrichment disabled")
	} else {
		openaiClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			log.Printf("Warning: Failed to initialize OpenAI client: %v", err)
		} else {
			enrichmentProvider = openaiClient
		}
	}

	// Initialize services
	discoveryService := services.NewDiscoveryService(placeProvider, venueRepo, searchRepo, eventBus, metrics)
	venueService := services.NewVenueService(venueRepo, searchRepo)
	profileService := services.NewVenueProfileService(profileRepo, venueRepo, enrichmentProvider, eventBus)
	eventService := services.NewUserEventService(eventRepo)

	// Initialize handlers
	venueHandler := handlers.NewVenueHandler(venueService)
	discoveryHandler := handlers.NewDiscoveryHandler(discoveryService)
	profileHandler := handlers.NewProfileHandler(profileService)
	eventHandler := handlers.NewEventHandler(eventService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		venueHandler,
		discoveryHandler,
		profileHandler,
		eventHandler,
		cacheMiddleware,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
