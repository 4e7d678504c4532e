package importer

import (
	"fmt"
	"math"
	"strings"
)

// overpassResponse is the subset of the Overpass API answer we read.
type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type     string          `json:"type"`
	Geometry []overpassPoint `json:"geometry"`
}

type overpassPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// buildOverpassQuery matches hiking route relations by exact (case
// insensitive) name inside a country, narrowed to a state region when one
// is given.
func buildOverpassQuery(name, countryCode, stateCode string) string {
	countryCode = strings.ToUpper(countryCode)
	areaSelector := fmt.Sprintf(`area["ISO3166-1"="%s"][admin_level=2]->.country;`, countryCode)
	scope := "area.country"
	if stateCode != "" {
		isoRegion := fmt.Sprintf("%s-%s", countryCode, strings.ToUpper(stateCode))
		areaSelector = fmt.Sprintf(`area["ISO3166-2"="%s"]->.region;`, isoRegion) + "\n" + areaSelector
		scope = "area.region"
	}
	return fmt.Sprintf(`
[out:json][timeout:60];
%s
(
  relation["route"="hiking"]["name"~"^%s$",i](%s);
);
out body;
>;
out geom;
`, areaSelector, name, scope)
}

// extractGeometry flattens the way geometries in an Overpass answer into a
// coordinate sequence, dropping consecutive near-duplicate points.
func extractGeometry(elements []overpassElement) []LatLon {
	var points []LatLon
	for _, element := range elements {
		if element.Type != "way" || len(element.Geometry) == 0 {
			continue
		}
		for _, p := range element.Geometry {
			points = append(points, LatLon{Lat: p.Lat, Lon: p.Lon})
		}
	}
	var deduped []LatLon
	for _, p := range points {
		if len(deduped) > 0 {
			last := deduped[len(deduped)-1]
			if math.Abs(last.Lat-p.Lat) < 1e-6 && math.Abs(last.Lon-p.Lon) < 1e-6 {
				continue
			}
		}
		deduped = append(deduped, p)
	}
	return deduped
}
