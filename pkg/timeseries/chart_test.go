package timeseries

import (
	"testing"
	"time"

	"github.com/matst80/energy-explorer/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daily(from time.Time, days int) []types.Record {
	ret := make([]types.Record, days)
	for i := range ret {
		ret[i] = types.Record{
			Instant: from.AddDate(0, 0, i),
			Values:  []float64{1, 2, 3, 4, 5, 6},
		}
	}
	return ret
}

func TestChartInitialUnitFromExtent(t *testing.T) {
	c := NewChart(ProductionSpec(), utc, daily(day(2018, 1, 1), 2000))
	assert.Equal(t, types.UnitQuarter, c.Unit())

	xmin, xmax, ok := c.Extent()
	require.True(t, ok)
	assert.Equal(t, types.Millis(day(2018, 1, 1)), xmin)
	assert.Equal(t, types.Millis(day(2018, 1, 1).AddDate(0, 0, 1999)), xmax)
}

func TestChartViewportNoopWhenUnitUnchanged(t *testing.T) {
	c := NewChart(ProductionSpec(), utc, daily(day(2021, 1, 1), 60))
	require.Equal(t, types.UnitDay, c.Unit())
	before := c.Buckets()

	changed := c.SetViewport(types.Millis(day(2021, 1, 10)), types.Millis(day(2021, 1, 20)))
	assert.False(t, changed)
	assert.Same(t, &before[0], &c.Buckets()[0], "buckets not recomputed")

	changed = c.SetViewport(types.Millis(day(2020, 1, 1)), types.Millis(day(2021, 3, 1)))
	assert.True(t, changed)
	assert.Equal(t, types.UnitMonth, c.Unit())
	assert.Len(t, c.Buckets(), 3)
	assert.Equal(t, []float64{31, 62, 93, 124, 155, 186}, c.Buckets()[0].Values)
}

func TestChartSeries(t *testing.T) {
	c := NewChart(ProductionSpec(), utc, daily(day(2021, 1, 1), 3))
	all := c.Series(nil)
	assert.Len(t, all, 6)

	some := c.Series([]string{"Wind", "Nuclear", "Nope"})
	require.Len(t, some, 2)
	assert.Equal(t, "Nuclear", some[0].Category)
	assert.Equal(t, "Wind", some[1].Category)
	assert.Equal(t, "#70ad47", some[1].Color)
	assert.Len(t, some[1].Points, 3)
	assert.Equal(t, 6.0, some[1].Points[0].Y)

	assert.Len(t, c.Series([]string{}), 0)
}

func TestTradeChartSeries(t *testing.T) {
	records := []types.Record{
		{Instant: time.Date(2021, 1, 1, 1, 0, 0, 0, time.UTC), Values: []float64{1, 2, 3, 4, 5, 6, 7, 8}},
		{Instant: time.Date(2021, 1, 1, 2, 0, 0, 0, time.UTC), Values: []float64{1, 2, 3, 4, 5, 6, 7, 8}},
	}
	c := NewChart(TradeSpec(), utc, records)
	series := c.Series([]string{"Italy"})
	require.Len(t, series, 2)
	assert.Equal(t, "Italy import", series[0].Name)
	assert.Equal(t, 8.0, series[0].Points[0].Y)
	assert.Equal(t, "Italy export", series[1].Name)
	assert.Equal(t, -16.0, series[1].Points[0].Y)

	avg := c.Average(Window{From: records[0].Instant, To: records[1].Instant})
	assert.Equal(t, -4.0, avg["Italy"])
}

func TestEmptyChart(t *testing.T) {
	c := NewChart(TradeSpec(), utc, nil)
	_, _, ok := c.Extent()
	assert.False(t, ok)
	assert.Len(t, c.Buckets(), 0)
	assert.Len(t, c.Series(nil)[0].Points, 0)
}
