package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	"github.com/Timothy0727/ModeMap/internal/domain/repositories"
	tsclient "github.com/Timothy0727/ModeMap/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements venue search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements VenueSearchRepository
var _ repositories.VenueSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// Index upserts a venue document into the search index
func (a *TypesenseAdapter) Index(ctx context.Context, venue *entities.Venue) error {
	document, err := venueDocument(venue)
	if err != nil {
		return err
	}

	if err := a.client.IndexVenue(ctx, document); err != nil {
		return fmt.Errorf("failed to index venue: %w", err)
	}

	return nil
}

// Remove deletes a venue from the index
func (a *TypesenseAdapter) Remove(ctx context.Context, venueID string) error {
	_, err := a.client.Client().Collection(tsclient.VenuesCollection).Document(venueID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove venue from index: %w", err)
	}
	return nil
}

// Search searches venues by text, optionally restricted to a geo radius
func (a *TypesenseAdapter) Search(ctx context.Context, query repositories.VenueSearchQuery) ([]*entities.Venue, error) {
	q := query.Text
	if q == "" {
		q = "*"
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(q),
		QueryBy: pointer.String("name,categories"),
		PerPage: pointer.Int(limit),
	}

	if query.Lat != nil && query.Lng != nil {
		radius := query.RadiusKm
		if radius <= 0 {
			radius = 5
		}
		searchParams.FilterBy = pointer.String(fmt.Sprintf("location:(%f, %f, %f km)", *query.Lat, *query.Lng, radius))
		searchParams.SortBy = pointer.String(fmt.Sprintf("location(%f, %f):asc", *query.Lat, *query.Lng))
	}

	result, err := a.client.Client().Collection(tsclient.VenuesCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search venues: %w", err)
	}

	venues := []*entities.Venue{}
	if result.Hits == nil {
		return venues, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document
		venue := venueFromDocument(doc)
		if venue != nil {
			venues = append(venues, venue)
		}
	}

	return venues, nil
}

// venueDocument converts a venue into a Typesense document.
func venueDocument(venue *entities.Venue) (map[string]interface{}, error) {
	if venue == nil {
		return nil, fmt.Errorf("venue is nil")
	}

	categories := venue.Categories
	if categories == nil {
		categories = []string{}
	}

	document := map[string]interface{}{
		"id":            venue.ID,
		"name":          venue.Name,
		"provider_name": venue.ProviderName,
		"categories":    categories,
		"location":      []float64{venue.Lat, venue.Lng},
		"created_at":    venue.CreatedAt.Unix(),
	}

	if venue.Rating != nil {
		document["rating"] = *venue.Rating
	}
	if venue.PriceLevel != nil {
		document["price_level"] = *venue.PriceLevel
	}

	return document, nil
}

// venueFromDocument reconstructs a partial venue from a search hit.
// Callers wanting the full record should re-fetch from the database by ID.
func venueFromDocument(doc map[string]interface{}) *entities.Venue {
	id, ok := doc["id"].(string)
	if !ok {
		return nil
	}
	name, _ := doc["name"].(string)
	providerName, _ := doc["provider_name"].(string)

	venue := &entities.Venue{
		ID:           id,
		Name:         name,
		ProviderName: providerName,
	}

	if locInterface, ok := doc["location"].([]interface{}); ok && len(locInterface) == 2 {
		if lat, ok := locInterface[0].(float64); ok {
			venue.Lat = lat
		}
		if lng, ok := locInterface[1].(float64); ok {
			venue.Lng = lng
		}
	}

	if catsInterface, ok := doc["categories"].([]interface{}); ok {
		categories := make([]string, 0, len(catsInterface))
		for _, c := range catsInterface {
			if s, ok := c.(string); ok {
				categories = append(categories, s)
			}
		}
		venue.Categories = categories
	}

	if val, ok := doc["rating"].(float64); ok {
		venue.Rating = &val
	}
	if val, ok := doc["price_level"].(float64); ok {
		level := int(val)
		venue.PriceLevel = &level
	}

	return venue
}
