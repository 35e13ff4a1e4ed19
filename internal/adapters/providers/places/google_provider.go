package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Timothy0727/ModeMap/internal/domain/entities"
	"github.com/Timothy0727/ModeMap/internal/domain/providers"
	"github.com/Timothy0727/ModeMap/pkg/config"
	apperrors "github.com/Timothy0727/ModeMap/pkg/errors"
)

const (
	googleNearbySearchURL = "https://places.googleapis.com/v1/places:searchNearby"
	defaultHTTPTimeout    = 10 * time.Second

	// Remote contract limits.
	maxRadiusMeters   = 50000
	maxResultCountCap = 20

	providerName = "google"
)

// Included place categories for every nearby search. Not configurable per call.
var includedTypes = []string{
	"restaurant",
	"cafe",
	"bar",
	"meal_takeaway",
	"meal_delivery",
	"bakery",
}

// nearbyFieldMask restricts the response to the fields the normalizer reads.
var nearbyFieldMask = strings.Join([]string{
	"places.id",
	"places.displayName",
	"places.location",
	"places.rating",
	"places.priceLevel",
	"places.types",
	"places.formattedAddress",
	"places.currentOpeningHours",
	"places.regularOpeningHours",
}, ",")

// Generic type tokens that carry no category signal.
var excludedTypes = map[string]struct{}{
	"establishment":     {},
	"point_of_interest": {},
	"food":              {},
	"store":             {},
}

var priceLevelFromLabel = map[string]int{
	"PRICE_LEVEL_FREE":           0,
	"PRICE_LEVEL_INEXPENSIVE":    1,
	"PRICE_LEVEL_MODERATE":       2,
	"PRICE_LEVEL_EXPENSIVE":      3,
	"PRICE_LEVEL_VERY_EXPENSIVE": 4,
}

var priceLabelFromLevel = map[int]string{
	0: "PRICE_LEVEL_FREE",
	1: "PRICE_LEVEL_INEXPENSIVE",
	2: "PRICE_LEVEL_MODERATE",
	3: "PRICE_LEVEL_EXPENSIVE",
	4: "PRICE_LEVEL_VERY_EXPENSIVE",
}

// GooglePlacesProvider implements PlaceSearchProvider against the
// Google Places API (New) searchNearby endpoint.
type GooglePlacesProvider struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *providerMetrics
}

// NewGooglePlacesProvider creates a provider using the explicit apiKey when
// given, falling back to the process-wide configuration.
func NewGooglePlacesProvider(apiKey string, cfg *config.PlacesConfig) (providers.PlaceSearchProvider, error) {
	if apiKey == "" && cfg != nil {
		apiKey = cfg.APIKey
	}
	return NewGooglePlacesProviderWithOptions(apiKey, googleNearbySearchURL, nil)
}

// NewGooglePlacesProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGooglePlacesProviderWithOptions(apiKey, baseURL string, httpClient *http.Client) (providers.PlaceSearchProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, apperrors.NewMissingCredentialError("google places api key is required (set GOOGLE_PLACES_API_KEY)")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleNearbySearchURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GooglePlacesProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    baseURL,
		metrics:    newProviderMetrics(),
	}, nil
}

// SearchNearby issues one searchNearby request and normalizes each returned
// place into a venue-creation record. Records that cannot be normalized are
// skipped; response order is preserved.
func (g *GooglePlacesProvider) SearchNearby(ctx context.Context, query providers.NearbySearchQuery) ([]*entities.VenueCreate, error) {
	body, err := g.buildRequestBody(query)
	if err != nil {
		return nil, err
	}

	payload, err := g.doNearbyRequest(ctx, body)
	if err != nil {
		return nil, err
	}

	venues := make([]*entities.VenueCreate, 0, len(payload.Places))
	for i := range payload.Places {
		if venue := g.normalizePlace(&payload.Places[i]); venue != nil {
			venues = append(venues, venue)
		}
	}

	log.Info().
		Int("returned", len(payload.Places)).
		Int("normalized", len(venues)).
		Msg("nearby search completed")

	return venues, nil
}

// buildRequestBody validates the query against the remote contract. All
// validation happens here, before any network traffic.
func (g *GooglePlacesProvider) buildRequestBody(query providers.NearbySearchQuery) (*nearbyRequest, error) {
	if query.RadiusM <= 0 {
		return nil, apperrors.NewValidationError("radius must be a positive number of meters")
	}
	if query.RadiusM > maxRadiusMeters {
		return nil, apperrors.NewValidationError(fmt.Sprintf("radius cannot exceed %d meters", maxRadiusMeters))
	}

	maxResults := query.MaxResults
	if maxResults <= 0 || maxResults > maxResultCountCap {
		// The remote service caps a page at 20 results; larger requests are
		// clamped, not rejected.
		maxResults = maxResultCountCap
	}

	body := &nearbyRequest{
		IncludedTypes:  includedTypes,
		MaxResultCount: maxResults,
	}
	body.LocationRestriction.Circle.Center.Latitude = query.Lat
	body.LocationRestriction.Circle.Center.Longitude = query.Lng
	body.LocationRestriction.Circle.Radius = float64(query.RadiusM)

	if query.OpenNow {
		body.OpenNow = true
	}

	if query.PriceLevel != nil {
		label, ok := priceLabelFromLevel[*query.PriceLevel]
		if !ok {
			return nil, apperrors.NewValidationError("price level must be between 0 and 4")
		}
		body.PriceLevel = label
	}

	if query.RankPreference != "" {
		if query.RankPreference != providers.RankByDistance && query.RankPreference != providers.RankByPopularity {
			return nil, apperrors.NewValidationError("rank preference must be DISTANCE or POPULARITY")
		}
		body.RankPreference = query.RankPreference
	}

	return body, nil
}

func (g *GooglePlacesProvider) doNearbyRequest(ctx context.Context, body *nearbyRequest) (*nearbyResponse, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode nearby search request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build nearby search request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", g.apiKey)
	req.Header.Set("X-Goog-FieldMask", nearbyFieldMask)

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.metrics.recordRequest(ctx, time.Since(start), 0)
		return nil, apperrors.NewExternalError("nearby search request failed", err)
	}
	defer resp.Body.Close()

	g.metrics.recordRequest(ctx, time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", strings.TrimSpace(string(detail))).
			Msg("nearby search returned non-success status")
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("nearby search returned status %d", resp.StatusCode), nil)
	}

	var payload nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewExternalError("failed to decode nearby search response", err)
	}

	return &payload, nil
}

// normalizePlace maps one raw place record onto a venue-creation record.
// It is a pure mapping step: a record it cannot use yields nil, never an
// error, and a panic while reading one record is contained to that record.
func (g *GooglePlacesProvider) normalizePlace(place *googlePlace) (venue *entities.VenueCreate) {
	defer func() {
		if r := recover(); r != nil {
			g.metrics.recordSkip(context.Background(), "panic")
			log.Error().
				Str("place_id", place.ID).
				Interface("panic", r).
				Msg("unexpected error normalizing place, skipping record")
			venue = nil
		}
	}()

	// A place reporting (0, 0) is treated as missing location. Venues at the
	// exact equator/prime-meridian intersection are not in our footprint.
	if place.Location == nil || place.Location.Latitude == 0 || place.Location.Longitude == 0 {
		g.metrics.recordSkip(context.Background(), "missing_location")
		log.Warn().Str("place_id", place.ID).Msg("place missing location, skipping")
		return nil
	}

	var name string
	if place.DisplayName != nil {
		name = place.DisplayName.Text
	}
	if name == "" {
		g.metrics.recordSkip(context.Background(), "missing_name")
		log.Warn().Str("place_id", place.ID).Msg("place missing display name, skipping")
		return nil
	}

	categories := make([]string, 0, len(place.Types))
	for _, t := range place.Types {
		if _, excluded := excludedTypes[t]; excluded {
			continue
		}
		categories = append(categories, humanizeType(t))
		if len(categories) == 5 {
			break
		}
	}

	var priceLevel *int
	if level, ok := priceLevelFromLabel[place.PriceLevel]; ok {
		priceLevel = &level
	}

	var hours *entities.VenueHours
	var rawHours *string
	openingHours := place.CurrentOpeningHours
	if openingHours == nil {
		openingHours = place.RegularOpeningHours
	}
	if openingHours != nil && len(openingHours.WeekdayText) > 0 {
		joined := strings.Join(openingHours.WeekdayText, "\n")
		rawHours = &joined
		hours = &entities.VenueHours{
			WeekdayText: openingHours.WeekdayText,
			OpenNow:     openingHours.OpenNow,
			Periods:     openingHours.Periods,
		}
	}

	var address *string
	if place.FormattedAddress != "" {
		address = &place.FormattedAddress
	}

	return &entities.VenueCreate{
		ProviderID:   place.ID,
		ProviderName: providerName,
		Name:         name,
		Categories:   categories,
		Lat:          place.Location.Latitude,
		Lng:          place.Location.Longitude,
		Address:      address,
		Rating:       place.Rating,
		PriceLevel:   priceLevel,
		Hours:        hours,
		RawHours:     rawHours,
	}
}

// humanizeType turns a provider type token like "meal_takeaway" into "Meal Takeaway".
func humanizeType(token string) string {
	words := strings.Split(token, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

type providerMetrics struct {
	requestDuration metric.Float64Histogram
	skippedRecords  metric.Int64Counter
}

func newProviderMetrics() *providerMetrics {
	meter := otel.Meter("github.com/Timothy0727/ModeMap/places")

	requestDuration, err := meter.Float64Histogram(
		"places.request.duration",
		metric.WithDescription("Nearby search request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return &providerMetrics{}
	}

	skippedRecords, err := meter.Int64Counter(
		"places.normalize.skipped",
		metric.WithDescription("Raw place records skipped during normalization"),
	)
	if err != nil {
		return &providerMetrics{requestDuration: requestDuration}
	}

	return &providerMetrics{
		requestDuration: requestDuration,
		skippedRecords:  skippedRecords,
	}
}

func (m *providerMetrics) recordRequest(ctx context.Context, d time.Duration, statusCode int) {
	if m.requestDuration == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("places.provider", providerName),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}
	m.requestDuration.Record(ctx, float64(d.Milliseconds()), metric.WithAttributes(attrs...))
}

func (m *providerMetrics) recordSkip(ctx context.Context, reason string) {
	if m.skippedRecords == nil {
		return
	}
	m.skippedRecords.Add(ctx, 1, metric.WithAttributes(
		attribute.String("places.provider", providerName),
		attribute.String("skip.reason", reason),
	))
}

type nearbyRequest struct {
	IncludedTypes       []string `json:"includedTypes"`
	MaxResultCount      int      `json:"maxResultCount"`
	LocationRestriction struct {
		Circle struct {
			Center struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"center"`
			Radius float64 `json:"radius"`
		} `json:"circle"`
	} `json:"locationRestriction"`
	OpenNow        bool   `json:"openNow,omitempty"`
	PriceLevel     string `json:"priceLevel,omitempty"`
	RankPreference string `json:"rankPreference,omitempty"`
}

type nearbyResponse struct {
	Places []googlePlace `json:"places"`
}

type googlePlace struct {
	ID                  string               `json:"id"`
	DisplayName         *googleLocalizedText `json:"displayName"`
	Location            *googleLatLng        `json:"location"`
	Rating              *float64             `json:"rating"`
	PriceLevel          string               `json:"priceLevel"`
	Types               []string             `json:"types"`
	FormattedAddress    string               `json:"formattedAddress"`
	CurrentOpeningHours *googleOpeningHours  `json:"currentOpeningHours"`
	RegularOpeningHours *googleOpeningHours  `json:"regularOpeningHours"`
}

type googleLocalizedText struct {
	Text string `json:"text"`
}

type googleLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type googleOpeningHours struct {
	OpenNow     bool            `json:"openNow"`
	WeekdayText []string        `json:"weekdayText"`
	Periods     json.RawMessage `json:"periods"`
}
