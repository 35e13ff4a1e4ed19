package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Timothy0727/ModeMap/internal/adapters/database"
	"github.com/Timothy0727/ModeMap/internal/adapters/search"
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
	"github.com/Timothy0727/ModeMap/internal/infrastructure/clients/postgres"
	"github.com/Timothy0727/ModeMap/internal/infrastructure/clients/typesense"
	"github.com/Timothy0727/ModeMap/pkg/config"
)

// Rebuilds the Typesense venues collection from the database, in batches.
func main() {
	var batchSize int
	var venueID string

	flag.IntVar(&batchSize, "batch-size", 200, "Venues per database page")
	flag.StringVar(&venueID, "venue", "", "Single venue ID to reindex")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Fatalf("Failed to connect to Typesense: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := tsClient.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to init Typesense schema: %v", err)
	}

	venueRepo := database.NewVenueAdapter(pgClient)
	searchRepo := search.NewTypesenseAdapter(tsClient)

	start := time.Now()

	if venueID != "" {
		log.Printf("Reindexing single venue: %s", venueID)
		venue, err := venueRepo.GetByID(ctx, venueID)
		if err != nil {
			log.Fatalf("Failed to load venue %s: %v", venueID, err)
		}
		if err := searchRepo.Index(ctx, venue); err != nil {
			log.Fatalf("Failed to index venue %s: %v", venueID, err)
		}
		log.Printf("Successfully reindexed %s", venueID)
		return
	}

	log.Printf("Starting full reindex (batch size %d)...", batchSize)

	indexed := 0
	failed := 0
	offset := 0
	for {
		venues, err := venueRepo.List(ctx, repositories.VenueFilter{Limit: batchSize, Offset: offset})
		if err != nil {
			log.Fatalf("Failed to list venues at offset %d: %v", offset, err)
		}
		if len(venues) == 0 {
			break
		}

		for _, venue := range venues {
			if err := searchRepo.Index(ctx, venue); err != nil {
				log.Printf("Warning: failed to index venue %s: %v", venue.ID, err)
				failed++
				continue
			}
			indexed++
		}

		offset += len(venues)
	}

	log.Printf("Reindex complete in %s", time.Since(start))
	log.Printf("Indexed: %d", indexed)
	log.Printf("Failed: %d", failed)
}
