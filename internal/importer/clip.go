package importer

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"hikesim/internal/trail"
)

// Clipper adds catalog entries by scraping trail pages for headline stats.
type Clipper struct {
	trails *trail.Repository
	client *http.Client
}

// NewClipper creates a Clipper saving into the given catalog.
func NewClipper(trails *trail.Repository) *Clipper {
	return &Clipper{
		trails: trails,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the page, extracts name and stats, and upserts the trail.
func (c *Clipper) ClipURL(ctx context.Context, pageURL, countryCode, stateCode string) (*trail.Trail, error) {
	doc, err := c.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	name := extractTrailName(doc)
	if name == "" {
		return nil, fmt.Errorf("no trail name found at %s", pageURL)
	}
	distance, gain := extractTrailStats(doc)
	if distance <= 0 {
		return nil, fmt.Errorf("no distance found at %s", pageURL)
	}

	t := trail.Trail{
		Name:            name,
		CountryCode:     countryCode,
		StateCode:       stateCode,
		DistanceMiles:   distance,
		ElevationGainFt: gain,
	}
	id, err := c.trails.Upsert(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to save trail: %w", err)
	}
	t.ID = id
	return &t, nil
}

func (c *Clipper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	// Remove noise before text extraction
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})
	return doc, nil
}

func extractTrailName(doc *goquery.Document) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	// Strip common "Trail Name | Site" and "Trail Name - Site" suffixes
	for _, sep := range []string{" | ", " - ", " – "} {
		if idx := strings.Index(title, sep); idx > 0 {
			return strings.TrimSpace(title[:idx])
		}
	}
	return title
}

var (
	distancePattern   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:mi|mile|miles)\b`)
	distanceKmPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:km|kilometers?)\b`)
	gainPattern       = regexp.MustCompile(`(?i)(\d[\d,]*)\s*(?:ft|feet)\b`)
	gainMPattern      = regexp.MustCompile(`(?i)(?:gain|ascent)[^\d]{0,20}(\d[\d,]*)\s*m\b`)
)

// extractTrailStats scans the page text for distance and elevation gain,
// preferring imperial units and converting metric when that is all there is.
func extractTrailStats(doc *goquery.Document) (distanceMiles float64, elevationGainFt int) {
	text := doc.Find("body").Text()

	if m := distancePattern.FindStringSubmatch(text); m != nil {
		distanceMiles, _ = strconv.ParseFloat(m[1], 64)
	} else if m := distanceKmPattern.FindStringSubmatch(text); m != nil {
		km, _ := strconv.ParseFloat(m[1], 64)
		distanceMiles = km * 0.621371
	}

	if m := gainPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		elevationGainFt = n
	} else if m := gainMPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		elevationGainFt = int(float64(n) * 3.28084)
	}

	distanceMiles = math.Round(distanceMiles*100) / 100
	return distanceMiles, elevationGainFt
}
