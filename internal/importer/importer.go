// Package importer fetches trail geometry and elevations from third-party
// services and attaches the resulting profiles to catalog trails. It is I/O
// glue with retry loops: every numeric judgement about profiles lives in
// the plan engine, not here.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hikesim/internal/trail"
)

const (
	profileTargetPoints = 80
	elevationBatchSize  = 50
)

// Importer backfills elevation profiles for trails that lack one.
type Importer struct {
	trails      *trail.Repository
	client      *http.Client
	overpassURL string
	openTopoURL string

	// sleep is swapped out in tests; production uses time.Sleep for the
	// polite pauses both public APIs ask for.
	sleep func(time.Duration)
}

// New creates an Importer talking to the given service endpoints.
func New(trails *trail.Repository, overpassURL, openTopoURL string) *Importer {
	return &Importer{
		trails:      trails,
		client:      &http.Client{Timeout: 60 * time.Second},
		overpassURL: overpassURL,
		openTopoURL: openTopoURL,
		sleep:       time.Sleep,
	}
}

// Result summarizes an import run.
type Result struct {
	Updated int
	Skipped int
}

// Run imports profiles for up to limit trails (0 = no limit) in a country.
// Individual trail failures are logged and skipped; the run keeps going.
func (im *Importer) Run(ctx context.Context, countryCode string, limit int) (Result, error) {
	var result Result
	trails, err := im.trails.ListWithoutProfile(ctx, countryCode)
	if err != nil {
		return result, err
	}

	for _, t := range trails {
		if limit > 0 && result.Updated >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		name := strings.ReplaceAll(t.Name, `"`, "")
		log.Printf("Fetching profile for %s...", name)

		points, err := im.fetchGeometry(ctx, name, countryCode, t.StateCode)
		if err != nil {
			log.Printf("  Overpass failed for %s: %v", name, err)
			result.Skipped++
			im.sleep(2 * time.Second)
			continue
		}
		if len(points) < 2 {
			log.Printf("  No geometry found for %s.", name)
			result.Skipped++
			continue
		}
		points = downsample(points, profileTargetPoints)

		elevations, err := im.fetchElevations(ctx, points)
		if err != nil {
			log.Printf("  Elevation lookup failed for %s: %v", name, err)
			result.Skipped++
			im.sleep(2 * time.Second)
			continue
		}
		if len(elevations) != len(points) {
			log.Printf("  Elevation lookup failed for %s.", name)
			result.Skipped++
			continue
		}

		if err := im.trails.SaveProfile(ctx, t.ID, buildProfile(points, elevations)); err != nil {
			return result, err
		}
		result.Updated++
		im.sleep(2 * time.Second)
	}

	log.Printf("Profiles updated: %d, skipped: %d", result.Updated, result.Skipped)
	return result, nil
}

func (im *Importer) fetchGeometry(ctx context.Context, name, countryCode, stateCode string) ([]LatLon, error) {
	query := buildOverpassQuery(name, countryCode, stateCode)
	var response overpassResponse
	if err := im.fetchJSON(ctx, im.overpassURL, query, 4, 3*time.Second, &response); err != nil {
		return nil, err
	}
	return extractGeometry(response.Elements), nil
}

type openTopoResponse struct {
	Results []struct {
		Elevation *float64 `json:"elevation"`
	} `json:"results"`
}

// fetchElevations looks up elevations in batches, pausing between batches.
func (im *Importer) fetchElevations(ctx context.Context, points []LatLon) ([]*float64, error) {
	var elevations []*float64
	for i := 0; i < len(points); i += elevationBatchSize {
		end := i + elevationBatchSize
		if end > len(points) {
			end = len(points)
		}
		locations := make([]string, 0, end-i)
		for _, p := range points[i:end] {
			locations = append(locations, fmt.Sprintf("%g,%g", p.Lat, p.Lon))
		}
		requestURL := fmt.Sprintf("%s?locations=%s", im.openTopoURL, url.QueryEscape(strings.Join(locations, "|")))

		var response openTopoResponse
		if err := im.fetchJSON(ctx, requestURL, "", 3, 2*time.Second, &response); err != nil {
			return nil, err
		}
		for _, item := range response.Results {
			elevations = append(elevations, item.Elevation)
		}
		im.sleep(1 * time.Second)
	}
	return elevations, nil
}

// fetchJSON GETs (or POSTs, when body is non-empty) a JSON endpoint with
// bounded retries and a growing backoff.
func (im *Importer) fetchJSON(ctx context.Context, requestURL, body string, retries int, backoff time.Duration, out any) error {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			im.sleep(backoff + time.Duration(attempt)*2*time.Second)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		method := http.MethodGet
		var reader io.Reader
		if body != "" {
			method = http.MethodPost
			reader = bytes.NewReader([]byte(body))
		}
		req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
		if err != nil {
			return err
		}

		resp, err := im.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status %d from %s", resp.StatusCode, requestURL)
			continue
		}
		if err := json.Unmarshal(data, out); err != nil {
			lastErr = fmt.Errorf("failed to decode response from %s: %w", requestURL, err)
			continue
		}
		return nil
	}
	return lastErr
}
