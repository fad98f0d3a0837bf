package timeseries

import (
	"slices"
	"time"

	"github.com/matst80/energy-explorer/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var noAggregations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "explorer_aggregations_total",
	Help: "The total number of bucket aggregations by unit",
}, []string{"unit"})

// Window is an inclusive time range.
type Window struct {
	From time.Time
	To   time.Time
}

const DayMillis = 86400000

func WindowFromMillis(xmin, xmax float64) Window {
	return Window{From: types.FromMillis(xmin), To: types.FromMillis(xmax)}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

func (w Window) Days() float64 {
	return float64(w.To.Sub(w.From).Milliseconds()) / DayMillis
}

// Aggregate sums record vectors per bucket of unit. When window is set only
// records inside it take part. Buckets come back sorted by start; input
// records are never modified.
func (c Calendar) Aggregate(records []types.Record, unit types.Unit, window *Window) []types.Bucket {
	index := map[int64]int{}
	buckets := make([]types.Bucket, 0)
	for _, r := range records {
		if window != nil && !window.Contains(r.Instant) {
			continue
		}
		start := c.BucketStart(r.Instant, unit)
		key := start.UnixNano()
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, types.Bucket{Start: start, Values: make([]float64, len(r.Values))})
		}
		b := &buckets[i]
		if len(r.Values) > len(b.Values) {
			b.Values = append(b.Values, make([]float64, len(r.Values)-len(b.Values))...)
		}
		for j, v := range r.Values {
			b.Values[j] += v
		}
	}
	slices.SortFunc(buckets, func(a, b types.Bucket) int {
		return a.Start.Compare(b.Start)
	})
	noAggregations.WithLabelValues(string(unit)).Inc()
	return buckets
}

// Extent returns the first and last instant of records, false when empty.
func Extent(records []types.Record) (Window, bool) {
	if len(records) == 0 {
		return Window{}, false
	}
	w := Window{From: records[0].Instant, To: records[0].Instant}
	for _, r := range records[1:] {
		if r.Instant.Before(w.From) {
			w.From = r.Instant
		}
		if r.Instant.After(w.To) {
			w.To = r.Instant
		}
	}
	return w, true
}
