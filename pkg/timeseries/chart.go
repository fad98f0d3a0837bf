package timeseries

import (
	"log"

	"github.com/matst80/energy-explorer/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var unitChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "explorer_unit_changes_total",
	Help: "The total number of granularity changes by dataset",
}, []string{"dataset"})

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Series struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Color    string  `json:"color"`
	Points   []Point `json:"points"`
}

// Chart owns one dataset's records and the buckets for its current unit.
// Buckets are only recomputed when the unit changes.
type Chart struct {
	spec     SeriesSpec
	calendar Calendar
	records  []types.Record
	extent   Window
	hasData  bool
	unit     types.Unit
	buckets  []types.Bucket
}

func NewChart(spec SeriesSpec, calendar Calendar, records []types.Record) *Chart {
	c := &Chart{
		spec:     spec,
		calendar: calendar,
		records:  records,
	}
	c.extent, c.hasData = Extent(records)
	c.unit = SelectUnit(types.Millis(c.extent.From), types.Millis(c.extent.To))
	c.rebucket()
	return c
}

func (c *Chart) rebucket() {
	c.buckets = c.calendar.Aggregate(c.records, c.unit, nil)
}

func (c *Chart) Spec() SeriesSpec {
	return c.spec
}

func (c *Chart) Unit() types.Unit {
	return c.unit
}

func (c *Chart) Buckets() []types.Bucket {
	return c.buckets
}

// Extent is the full data range in milliseconds, used as the default viewport.
func (c *Chart) Extent() (float64, float64, bool) {
	return types.Millis(c.extent.From), types.Millis(c.extent.To), c.hasData
}

// SetViewport picks the unit for the visible range and reports whether it
// changed. An unchanged unit leaves the buckets alone.
func (c *Chart) SetViewport(xmin, xmax float64) bool {
	unit := SelectUnit(xmin, xmax)
	if unit == c.unit {
		return false
	}
	log.Printf("%s chart granularity %s -> %s", c.spec.Dataset, c.unit, unit)
	c.unit = unit
	c.rebucket()
	unitChanges.WithLabelValues(string(c.spec.Dataset)).Inc()
	return true
}

// Series builds one series per component of every selected category, in
// category order. A nil selection means all categories.
func (c *Chart) Series(selected []string) []Series {
	var wanted map[string]struct{}
	if selected != nil {
		wanted = make(map[string]struct{}, len(selected))
		for _, s := range selected {
			wanted[s] = struct{}{}
		}
	}
	ret := make([]Series, 0, len(c.spec.Categories))
	for i, category := range c.spec.Categories {
		if wanted != nil {
			if _, ok := wanted[category]; !ok {
				continue
			}
		}
		for _, comp := range c.spec.Components(i) {
			s := Series{
				Name:     comp.Label,
				Category: category,
				Color:    c.spec.Colors[category],
				Points:   make([]Point, 0, len(c.buckets)),
			}
			for _, b := range c.buckets {
				y := 0.0
				if comp.Index < len(b.Values) {
					y = comp.Sign * b.Values[comp.Index]
				}
				s.Points = append(s.Points, Point{X: types.Millis(b.Start), Y: y})
			}
			ret = append(ret, s)
		}
	}
	return ret
}

func (c *Chart) Average(window Window) map[string]float64 {
	return WindowAverage(c.records, window, c.spec)
}
