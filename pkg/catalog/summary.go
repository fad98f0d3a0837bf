package catalog

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/matst80/energy-explorer/pkg/types"
)

type SeriesSummary struct {
	Name       string
	Records    int
	First      time.Time
	Last       time.Time
	Components []string
	Totals     []float64
}

type Summary struct {
	Facilities     int
	WithLocation   int
	CapacityMW     float64
	PerCategory    map[string]int
	Production     SeriesSummary
	Trade          SeriesSummary
	LastUpdate     string
	HasLastUpdated bool
}

func summarizeSeries(name string, components []string, records []types.Record) SeriesSummary {
	s := SeriesSummary{
		Name:       name,
		Records:    len(records),
		Components: components,
		Totals:     make([]float64, len(components)),
	}
	for i, r := range records {
		if i == 0 || r.Instant.Before(s.First) {
			s.First = r.Instant
		}
		if i == 0 || r.Instant.After(s.Last) {
			s.Last = r.Instant
		}
		for j, v := range r.Values {
			if j < len(s.Totals) {
				s.Totals[j] += v
			}
		}
	}
	return s
}

func tradeComponents() []string {
	ret := make([]string, 0, types.TradeArity)
	for _, c := range types.TradeCountries {
		ret = append(ret, c+" import")
	}
	for _, c := range types.TradeCountries {
		ret = append(ret, c+" export")
	}
	return ret
}

func Summarize(store *Store, production, trade []types.Record) Summary {
	s := Summary{
		Facilities:  store.Len(),
		PerCategory: map[string]int{},
	}
	s.LastUpdate, s.HasLastUpdated = store.LastUpdate()
	for _, e := range store.All() {
		if e.HasLocation() {
			s.WithLocation++
		}
		s.CapacityMW += e.TotalPowerKW / 1000
		s.PerCategory[e.Category]++
	}
	s.Production = summarizeSeries("Production", types.ProductionSources, production)
	s.Trade = summarizeSeries("Trade", tradeComponents(), trade)
	return s
}

func (s Summary) Write(w io.Writer) {
	fmt.Fprintln(w, "Data Summary:")
	if s.HasLastUpdated {
		fmt.Fprintf(w, "  Last update: %s\n", s.LastUpdate)
	}
	fmt.Fprintln(w, "Facilities:")
	fmt.Fprintf(w, "  Total facilities: %d\n", s.Facilities)
	fmt.Fprintf(w, "  With GPS coordinates: %d\n", s.WithLocation)
	fmt.Fprintf(w, "  Total capacity: %.1f MW\n", s.CapacityMW)
	fmt.Fprintln(w, "  Number of facilities by energy source:")
	keys := make([]string, 0, len(s.PerCategory))
	for k := range s.PerCategory {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "    %s: %d\n", k, s.PerCategory[k])
	}
	for _, series := range []SeriesSummary{s.Production, s.Trade} {
		fmt.Fprintf(w, "\n%s Data:\n", series.Name)
		if series.Records == 0 {
			fmt.Fprintln(w, "  No records")
			continue
		}
		fmt.Fprintf(w, "  Date range: %s to %s\n", series.First.Format(time.DateOnly), series.Last.Format(time.DateOnly))
		fmt.Fprintf(w, "  Records: %d\n", series.Records)
		for i, name := range series.Components {
			fmt.Fprintf(w, "    %s: %.1f\n", name, series.Totals[i])
		}
	}
}
