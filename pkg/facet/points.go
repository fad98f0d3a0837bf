package facet

import (
	"math"

	"github.com/matst80/energy-explorer/pkg/catalog"
)

type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type PointProperties struct {
	Category     string  `json:"category"`
	Color        string  `json:"color"`
	Radius       float64 `json:"radius"`
	PowerKW      float64 `json:"power"`
	Municipality string  `json:"municipality"`
	Canton       string  `json:"canton"`
	Start        string  `json:"start,omitempty"`
}

type Feature struct {
	Type       string          `json:"type"`
	Geometry   Geometry        `json:"geometry"`
	Properties PointProperties `json:"properties"`
}

const (
	minRadius   = 2.0
	radiusScale = 2.0
)

// Radius grows with the decimal log of the capacity so large plants stay readable.
func Radius(powerKW float64) float64 {
	if powerKW <= 0 {
		return minRadius
	}
	return minRadius + radiusScale*math.Log10(1+powerKW)
}

// MapPoints builds point features for entries with coordinates. Geometry uses
// lon, lat order.
func MapPoints(items []catalog.Entry, colors *Palette) []Feature {
	ret := make([]Feature, 0, len(items))
	for _, e := range items {
		if !e.HasLocation() {
			continue
		}
		ret = append(ret, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: [2]float64{e.Coordinates.Lon, e.Coordinates.Lat},
			},
			Properties: PointProperties{
				Category:     e.Category,
				Color:        colors.Color(e.Category),
				Radius:       Radius(e.TotalPowerKW),
				PowerKW:      e.TotalPowerKW,
				Municipality: e.Municipality,
				Canton:       e.Canton,
				Start:        e.OperationStart,
			},
		})
	}
	return ret
}
