package facet

import (
	"github.com/matst80/energy-explorer/pkg/catalog"
	"github.com/matst80/energy-explorer/pkg/search"
	"github.com/matst80/energy-explorer/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filterPasses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "explorer_filter_passes_total",
		Help: "The total number of facility filter passes",
	})
	filteredItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "explorer_filtered_facilities",
		Help: "Facilities passing the last filter pass",
	})
)

type CategorySet map[string]struct{}

// NewCategorySet returns nil for a nil selection, which matches every category.
func NewCategorySet(selected []string) CategorySet {
	if selected == nil {
		return nil
	}
	set := make(CategorySet, len(selected))
	for _, c := range selected {
		set[c] = struct{}{}
	}
	return set
}

func (s CategorySet) Contains(category string) bool {
	if s == nil {
		return true
	}
	_, ok := s[category]
	return ok
}

type Criteria struct {
	MinPower   float64
	MaxPower   float64
	Tokens     []string
	Categories CategorySet
	// Known seeds the stats so unmatched categories report zero.
	Known []string
}

type Result struct {
	Items []catalog.Entry
	Stats types.CategoryStats
}

func (c *Criteria) inRange(powerKW float64) bool {
	return powerKW >= c.MinPower && powerKW <= c.MaxPower
}

// Filter keeps entries passing power, search and category predicates in input
// order. Stats cover power and search only so deselected categories still
// report what they would contribute.
func Filter(entries []catalog.Entry, c Criteria) Result {
	res := Result{
		Items: make([]catalog.Entry, 0, len(entries)),
		Stats: types.NewCategoryStats(c.Known...),
	}
	for _, e := range entries {
		if !c.inRange(e.TotalPowerKW) {
			continue
		}
		if !search.Matches(e.Haystack, c.Tokens) {
			continue
		}
		res.Stats.Add(e.Category, e.TotalPowerKW)
		if c.Categories.Contains(e.Category) {
			res.Items = append(res.Items, e)
		}
	}
	filterPasses.Inc()
	filteredItems.Set(float64(len(res.Items)))
	return res
}

// OnMap returns the entries that have coordinates.
func OnMap(items []catalog.Entry) []catalog.Entry {
	ret := make([]catalog.Entry, 0, len(items))
	for _, e := range items {
		if e.HasLocation() {
			ret = append(ret, e)
		}
	}
	return ret
}
