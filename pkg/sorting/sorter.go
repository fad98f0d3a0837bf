package sorting

import (
	"cmp"
	"slices"
	"time"

	"github.com/matst80/energy-explorer/pkg/catalog"
	"github.com/matst80/energy-explorer/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var noSorts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "explorer_sorts_total",
	Help: "The total number of facility sorts by column",
}, []string{"column"})

// Sort is a column and direction. Clicking the active column toggles the
// direction, any other column starts ascending.
type Sort struct {
	Column    types.SortColumn
	Ascending bool
}

func (s Sort) Click(column types.SortColumn) Sort {
	if column == s.Column {
		return Sort{Column: column, Ascending: !s.Ascending}
	}
	return Sort{Column: column, Ascending: true}
}

// Sorter is not safe for concurrent use since the collator keeps buffers.
type Sorter struct {
	collator *collate.Collator
}

func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{
		collator: collate.New(tag, collate.IgnoreCase),
	}
}

func DefaultSorter() *Sorter {
	return NewSorter(language.German)
}

var farPast = time.Time{}

func startDate(f *types.Facility) time.Time {
	if f.OperationStart == "" {
		return farPast
	}
	t, err := time.Parse(time.DateOnly, f.OperationStart)
	if err != nil {
		return farPast
	}
	return t
}

func locationRank(f *types.Facility) int {
	if f.HasLocation() {
		return 0
	}
	return 1
}

// Compare orders two facilities ascending by column.
func (s *Sorter) Compare(column types.SortColumn, a, b *types.Facility) int {
	switch column {
	case types.SortPower:
		return cmp.Compare(a.TotalPowerKW, b.TotalPowerKW)
	case types.SortStart:
		return startDate(a).Compare(startDate(b))
	case types.SortLocation:
		return cmp.Compare(locationRank(a), locationRank(b))
	case types.SortMunicipality:
		return s.collator.CompareString(a.Municipality, b.Municipality)
	case types.SortCanton:
		return s.collator.CompareString(a.Canton, b.Canton)
	default:
		return s.collator.CompareString(a.Category, b.Category)
	}
}

// Sort returns a new ordering of entries. Ties keep the load order in both
// directions, so the result depends only on the column and direction.
func (s *Sorter) Sort(entries []catalog.Entry, by Sort) []catalog.Entry {
	sign := 1
	if !by.Ascending {
		sign = -1
	}
	ret := slices.Clone(entries)
	slices.SortStableFunc(ret, func(a, b catalog.Entry) int {
		if c := sign * s.Compare(by.Column, a.Facility, b.Facility); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	noSorts.WithLabelValues(string(by.Column)).Inc()
	return ret
}
