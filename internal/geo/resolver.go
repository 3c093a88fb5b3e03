// Package geo resolves free-text addresses to coordinates through a
// Nominatim-compatible geocoding endpoint.
package geo

import (
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
)

// Resolver looks up coordinates for an address. Resolution is best-effort:
// every failure mode collapses to a nil result.
type Resolver interface {
	Resolve(ctx context.Context, address string) *domain.Coordinates
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NominatimResolver queries a public Nominatim search endpoint. The query is
// qualified with a fixed locality to bias results toward the municipality.
type NominatimResolver struct {
	client   *resty.Client
	locality string
	logger   *zap.Logger
}

// NewNominatimResolver builds a resolver against the given base URL. The
// timeout is deliberately short: geocoding must never stall ticket intake,
// and there are no retries because each submission geocodes exactly once.
func NewNominatimResolver(baseURL, locality string, timeout time.Duration, logger *zap.Logger) *NominatimResolver {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "citypulse-intake/1.0")

	return &NominatimResolver{
		client:   client,
		locality: locality,
		logger:   logger,
	}
}

// Resolve returns coordinates for the address, or nil when the lookup fails,
// returns nothing, or produces an unparseable payload. Callers treat nil as
// "no coordinates", never as an error.
func (r *NominatimResolver) Resolve(ctx context.Context, address string) *domain.Coordinates {
	if address == "" {
		return nil
	}

	query := address
	if r.locality != "" {
		query = address + ", " + r.locality
	}

	var results []nominatimResult
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format": "json",
			"q":      query,
			"limit":  "1",
		}).
		SetResult(&results).
		Get("/search")
	if err != nil {
		r.logger.Warn("geocoding request failed", zap.String("address", address), zap.Error(err))
		return nil
	}
	if resp.IsError() {
		r.logger.Warn("geocoding returned error status",
			zap.String("address", address),
			zap.Int("status", resp.StatusCode()))
		return nil
	}
	if len(results) == 0 {
		return nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		r.logger.Warn("geocoding returned unparseable coordinates", zap.String("address", address))
		return nil
	}

	return &domain.Coordinates{Lat: lat, Lng: lng}
}
