package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"hikesim/internal/database"
	"hikesim/internal/trail"
)

func newTestTrailRepository(t *testing.T) *trail.Repository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return trail.NewRepository(db.SQL)
}

func TestImporterRun(t *testing.T) {
	overpass := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST to Overpass, got %s", r.Method)
		}
		w.Write([]byte(`{"elements":[{"type":"way","geometry":[
			{"lat":47.48,"lon":-121.72},
			{"lat":47.49,"lon":-121.73},
			{"lat":47.50,"lon":-121.74}
		]}]}`))
	}))
	defer overpass.Close()

	openTopo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"elevation":200.0},{"elevation":350.0},{"elevation":500.0}]}`))
	}))
	defer openTopo.Close()

	repo := newTestTrailRepository(t)
	ctx := context.Background()
	id, err := repo.Upsert(ctx, trail.Trail{Name: "Mount Si Trail", CountryCode: "US", StateCode: "WA", DistanceMiles: 7.5})
	if err != nil {
		t.Fatalf("Failed to seed trail: %v", err)
	}

	im := New(repo, overpass.URL, openTopo.URL)
	im.sleep = func(time.Duration) {}

	result, err := im.Run(ctx, "US", 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Updated != 1 || result.Skipped != 0 {
		t.Errorf("Expected 1 update and 0 skips, got %+v", result)
	}

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.ProfilePoints) != 3 {
		t.Fatalf("Expected 3 profile points, got %d", len(got.ProfilePoints))
	}
	if got.ProfilePoints[0].ElevationFt != 656 {
		t.Errorf("Expected 200 m converted to 656 ft, got %g", got.ProfilePoints[0].ElevationFt)
	}
}

func TestImporterRunSkipsEmptyGeometry(t *testing.T) {
	overpass := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements":[]}`))
	}))
	defer overpass.Close()

	repo := newTestTrailRepository(t)
	ctx := context.Background()
	if _, err := repo.Upsert(ctx, trail.Trail{Name: "Ghost Trail", CountryCode: "US"}); err != nil {
		t.Fatalf("Failed to seed trail: %v", err)
	}

	im := New(repo, overpass.URL, "http://unused.test")
	im.sleep = func(time.Duration) {}

	result, err := im.Run(ctx, "US", 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Updated != 0 || result.Skipped != 1 {
		t.Errorf("Expected 0 updates and 1 skip, got %+v", result)
	}
}

func TestImporterRunHonorsLimit(t *testing.T) {
	overpass := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements":[{"type":"way","geometry":[
			{"lat":40.0,"lon":-105.0},
			{"lat":40.01,"lon":-105.01}
		]}]}`))
	}))
	defer overpass.Close()

	openTopo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"elevation":100.0},{"elevation":120.0}]}`))
	}))
	defer openTopo.Close()

	repo := newTestTrailRepository(t)
	ctx := context.Background()
	for _, name := range []string{"First Trail", "Second Trail"} {
		if _, err := repo.Upsert(ctx, trail.Trail{Name: name, CountryCode: "US"}); err != nil {
			t.Fatalf("Failed to seed trail: %v", err)
		}
	}

	im := New(repo, overpass.URL, openTopo.URL)
	im.sleep = func(time.Duration) {}

	result, err := im.Run(ctx, "US", 1)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Updated != 1 {
		t.Errorf("Expected the limit to stop after 1 update, got %+v", result)
	}

	remaining, err := repo.ListWithoutProfile(ctx, "US")
	if err != nil {
		t.Fatalf("ListWithoutProfile failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("Expected 1 trail left without profile, got %d", len(remaining))
	}
}

func TestFetchJSONRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	im := New(nil, "", "")
	im.sleep = func(time.Duration) {}

	var out openTopoResponse
	if err := im.fetchJSON(context.Background(), server.URL, "", 4, 0, &out); err != nil {
		t.Fatalf("Expected retries to succeed, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}
