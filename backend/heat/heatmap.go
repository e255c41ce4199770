package heat

import (
	"civicmap/backend/report"

	geojson "github.com/paulmach/go.geojson"
)

// Severity weights for heat intensity. Canonical values: the resolved
// weight is 0.2.
const (
	WeightOpen       = 0.95
	WeightInProgress = 0.65
	WeightResolved   = 0.2
	weightUnknown    = 0.5
)

// Weight maps a status to its heat intensity. Strictly decreasing from
// open through resolved.
func Weight(s report.Status) float64 {
	switch s {
	case report.StatusOpen:
		return WeightOpen
	case report.StatusInProgress:
		return WeightInProgress
	case report.StatusResolved:
		return WeightResolved
	}
	return weightUnknown
}

// MarkerRadius maps a status to a marker size in pixels, non-increasing
// across the lifecycle.
func MarkerRadius(s report.Status) int {
	switch s {
	case report.StatusOpen:
		return 8
	case report.StatusInProgress:
		return 6
	case report.StatusResolved:
		return 4
	}
	return 5
}

// Point is one weighted heatmap sample.
type Point struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Weight float64 `json:"weight"`
}

// Points converts a report snapshot into weighted heatmap samples.
func Points(reports []report.Report) []Point {
	out := make([]Point, 0, len(reports))
	for _, r := range reports {
		out = append(out, Point{Lat: r.Lat, Lng: r.Lng, Weight: Weight(r.Status)})
	}
	return out
}

// GeoJSON renders a report snapshot as a point FeatureCollection with
// weight, category and status properties.
func GeoJSON(reports []report.Report) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range reports {
		f := geojson.NewPointFeature([]float64{r.Lng, r.Lat})
		f.ID = r.ID
		f.SetProperty("weight", Weight(r.Status))
		f.SetProperty("category", string(r.Category))
		f.SetProperty("status", string(r.Status))
		fc.AddFeature(f)
	}
	return fc
}
