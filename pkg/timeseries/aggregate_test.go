package timeseries

import (
	"math"
	"testing"
	"time"

	"github.com/matst80/energy-explorer/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var utc = Calendar{Location: time.UTC, WeekStart: time.Sunday}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBucketStart(t *testing.T) {
	at := time.Date(2021, 8, 18, 15, 30, 0, 0, time.UTC) // Wednesday
	cases := []struct {
		unit     types.Unit
		expected time.Time
	}{
		{types.UnitDay, day(2021, 8, 18)},
		{types.UnitWeek, day(2021, 8, 15)},
		{types.UnitMonth, day(2021, 8, 1)},
		{types.UnitQuarter, day(2021, 7, 1)},
		{types.UnitYear, day(2021, 1, 1)},
		{types.Unit("fortnight"), day(2021, 8, 18)},
	}
	for _, c := range cases {
		got := utc.BucketStart(at, c.unit)
		if !got.Equal(c.expected) {
			t.Errorf("%s: expected %v but got %v", c.unit, c.expected, got)
		}
	}
}

func TestBucketStartWeekStartAndQuarters(t *testing.T) {
	monday := Calendar{Location: time.UTC, WeekStart: time.Monday}
	assert.Equal(t, day(2021, 8, 16), monday.BucketStart(day(2021, 8, 22), types.UnitWeek))
	assert.Equal(t, day(2021, 8, 16), monday.BucketStart(day(2021, 8, 16), types.UnitWeek))
	// week crossing a year boundary
	assert.Equal(t, day(2020, 12, 27), utc.BucketStart(day(2021, 1, 2), types.UnitWeek))

	for m := time.January; m <= time.December; m++ {
		q := utc.BucketStart(day(2022, m, 15), types.UnitQuarter)
		assert.Equal(t, time.Month((int(m)-1)/3*3+1), q.Month())
		assert.Equal(t, 1, q.Day())
	}
}

func TestBucketStartLocalTime(t *testing.T) {
	zurich, err := time.LoadLocation("Europe/Zurich")
	require.NoError(t, err)
	cal := Calendar{Location: zurich, WeekStart: time.Sunday}

	// 23:30 UTC on March 1st is already March 2nd in Zurich
	got := cal.BucketStart(time.Date(2021, 3, 1, 23, 30, 0, 0, time.UTC), types.UnitDay)
	assert.Equal(t, time.Date(2021, 3, 2, 0, 0, 0, 0, zurich), got)

	// DST switch keeps midnight
	got = cal.BucketStart(time.Date(2021, 3, 30, 12, 0, 0, 0, zurich), types.UnitWeek)
	assert.Equal(t, time.Date(2021, 3, 28, 0, 0, 0, 0, zurich), got)
}

func TestAggregateWeekExample(t *testing.T) {
	records := []types.Record{
		{Instant: day(2021, 3, 4), Values: []float64{1, 2, 3, 4, 5, 6}},
		{Instant: day(2021, 3, 2), Values: []float64{10, 20, 30, 40, 50, 60}},
		{Instant: day(2021, 3, 7), Values: []float64{1, 1, 1, 1, 1, 1}},
	}
	buckets := utc.Aggregate(records, types.UnitWeek, nil)
	require.Len(t, buckets, 2)
	assert.Equal(t, day(2021, 2, 28), buckets[0].Start)
	assert.Equal(t, []float64{11, 22, 33, 44, 55, 66}, buckets[0].Values)
	assert.Equal(t, day(2021, 3, 7), buckets[1].Start)

	// input untouched
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, records[0].Values)
}

func sumBuckets(buckets []types.Bucket) []float64 {
	var ret []float64
	for _, b := range buckets {
		for len(ret) < len(b.Values) {
			ret = append(ret, 0)
		}
		for i, v := range b.Values {
			ret[i] += v
		}
	}
	return ret
}

func hourly(from time.Time, hours int) []types.Record {
	ret := make([]types.Record, hours)
	for i := range ret {
		ret[i] = types.Record{
			Instant: from.Add(time.Duration(i) * time.Hour),
			Values:  []float64{float64(i % 7), 1, float64(i % 3), 0.5, 2, 0, 1, float64(i % 5)},
		}
	}
	return ret
}

func TestAggregateSumPreserving(t *testing.T) {
	records := hourly(day(2020, 11, 20), 24*200)
	window := Window{From: day(2021, 1, 1), To: day(2021, 2, 15)}
	for _, unit := range types.Units {
		all := utc.Aggregate(records, unit, nil)
		expected := make([]float64, 8)
		for _, r := range records {
			for i, v := range r.Values {
				expected[i] += v
			}
		}
		assert.InDeltaSlice(t, expected, sumBuckets(all), 1e-6, string(unit))

		windowed := utc.Aggregate(records, unit, &window)
		expected = make([]float64, 8)
		for _, r := range records {
			if window.Contains(r.Instant) {
				for i, v := range r.Values {
					expected[i] += v
				}
			}
		}
		assert.InDeltaSlice(t, expected, sumBuckets(windowed), 1e-6, string(unit))

		for i := 1; i < len(all); i++ {
			assert.True(t, all[i-1].Start.Before(all[i].Start), "buckets sorted and distinct")
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	buckets := utc.Aggregate(nil, types.UnitDay, nil)
	assert.NotNil(t, buckets)
	assert.Len(t, buckets, 0)
}

func TestSelectUnit(t *testing.T) {
	cases := []struct {
		days float64
		unit types.Unit
	}{
		{1, types.UnitDay},
		{90, types.UnitDay},
		{90.5, types.UnitWeek},
		{365, types.UnitWeek},
		{366, types.UnitMonth},
		{1095, types.UnitMonth},
		{1096, types.UnitQuarter},
		{20000, types.UnitQuarter},
	}
	for _, c := range cases {
		if got := SelectUnit(0, c.days*DayMillis); got != c.unit {
			t.Errorf("%v days: expected %s but got %s", c.days, c.unit, got)
		}
	}
}

func TestSelectUnitMonotonic(t *testing.T) {
	rank := map[types.Unit]int{types.UnitDay: 0, types.UnitWeek: 1, types.UnitMonth: 2, types.UnitQuarter: 3}
	prev := 0
	for d := 0.0; d < 3000; d += 7.5 {
		r := rank[SelectUnit(1e12, 1e12+d*DayMillis)]
		if r < prev {
			t.Fatalf("unit went down at %v days", d)
		}
		prev = r
	}
}

func TestWindowAverage(t *testing.T) {
	records := []types.Record{
		{Instant: day(2021, 1, 1), Values: []float64{2, 0, 0, 0, 0, 4}},
		{Instant: day(2021, 1, 2), Values: []float64{4, 0, 0, 0, 0, 0}},
		{Instant: day(2021, 2, 1), Values: []float64{100, 0, 0, 0, 0, 0}},
	}
	avg := WindowAverage(records, Window{From: day(2021, 1, 1), To: day(2021, 1, 31)}, ProductionSpec())
	assert.Equal(t, 3.0, avg["Hydro (pumped)"])
	assert.Equal(t, 2.0, avg["Wind"])
	assert.Equal(t, 5.0, avg[types.TotalCategory])

	empty := WindowAverage(records, Window{From: day(2022, 1, 1), To: day(2022, 1, 2)}, ProductionSpec())
	assert.True(t, math.IsNaN(empty["Wind"]))
	assert.True(t, math.IsNaN(empty[types.TotalCategory]))
}

func TestTradeSpecNetsExports(t *testing.T) {
	spec := TradeSpec()
	values := []float64{10, 0, 0, 0, 4, 0, 0, 0}
	assert.Equal(t, 6.0, spec.Value(values, spec.CategoryIndex("Austria")))
	assert.Equal(t, -1, spec.CategoryIndex("Spain"))
	assert.Len(t, spec.Components(0), 2)
}
