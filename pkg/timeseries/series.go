package timeseries

import (
	"math"

	"github.com/matst80/energy-explorer/pkg/types"
)

// Component is one vector index drawn as a series. Sign lets exports plot
// below the axis.
type Component struct {
	Label string
	Index int
	Sign  float64
}

// SeriesSpec describes how a dataset turns into chart series: its
// categories, their colors and which vector components belong to each.
type SeriesSpec struct {
	Dataset    types.Dataset
	Arity      int
	Unit       string
	Categories []string
	Colors     map[string]string
	Components func(category int) []Component
}

func (s SeriesSpec) CategoryIndex(name string) int {
	for i, c := range s.Categories {
		if c == name {
			return i
		}
	}
	return -1
}

// Value is the signed sum of the category's components in values.
func (s SeriesSpec) Value(values []float64, category int) float64 {
	sum := 0.0
	for _, c := range s.Components(category) {
		if c.Index < len(values) {
			sum += c.Sign * values[c.Index]
		}
	}
	return sum
}

func ProductionSpec() SeriesSpec {
	return SeriesSpec{
		Dataset:    types.DatasetProduction,
		Arity:      types.ProductionArity,
		Unit:       "GWh",
		Categories: types.ProductionSources,
		Colors: map[string]string{
			"Hydro (pumped)": "#1f4e79",
			"Hydro (river)":  "#5b9bd5",
			"Nuclear":        "#ffc000",
			"Photovoltaic":   "#ed7d31",
			"Thermal":        "#a5a5a5",
			"Wind":           "#70ad47",
		},
		Components: func(category int) []Component {
			return []Component{{Label: types.ProductionSources[category], Index: category, Sign: 1}}
		},
	}
}

func TradeSpec() SeriesSpec {
	return SeriesSpec{
		Dataset:    types.DatasetTrade,
		Arity:      types.TradeArity,
		Unit:       "MWh",
		Categories: types.TradeCountries,
		Colors: map[string]string{
			"Austria": "#c00000",
			"Germany": "#404040",
			"France":  "#2f5597",
			"Italy":   "#00b050",
		},
		Components: func(category int) []Component {
			country := types.TradeCountries[category]
			return []Component{
				{Label: country + " import", Index: types.ImportIndex(category), Sign: 1},
				{Label: country + " export", Index: types.ExportIndex(category), Sign: -1},
			}
		},
	}
}

// WindowAverage is the per-category mean over records inside window, plus
// the sum of those means under Total. An empty window yields NaN everywhere
// so callers can tell no data from zero.
func WindowAverage(records []types.Record, window Window, spec SeriesSpec) map[string]float64 {
	sums := make([]float64, len(spec.Categories))
	n := 0
	for _, r := range records {
		if !window.Contains(r.Instant) {
			continue
		}
		n++
		for i := range spec.Categories {
			sums[i] += spec.Value(r.Values, i)
		}
	}
	ret := make(map[string]float64, len(spec.Categories)+1)
	total := 0.0
	for i, c := range spec.Categories {
		avg := math.NaN()
		if n > 0 {
			avg = sums[i] / float64(n)
		}
		ret[c] = avg
		total += avg
	}
	ret[types.TotalCategory] = total
	return ret
}
