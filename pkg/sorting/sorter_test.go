package sorting

import (
	"reflect"
	"testing"

	"github.com/matst80/energy-explorer/pkg/catalog"
	"github.com/matst80/energy-explorer/pkg/types"
)

func testStore() *catalog.Store {
	return catalog.NewStore([]types.Facility{
		{Category: "wind", TotalPowerKW: 50, Municipality: "Zürich", Canton: "ZH", OperationStart: "2010-01-01"},
		{Category: "Solar", TotalPowerKW: 5000, Municipality: "aarau", Canton: "AG", Coordinates: &types.Coordinates{Lat: 47.4, Lon: 8.0}},
		{Category: "Hydro", TotalPowerKW: 200, Municipality: "Ölten", Canton: "SO", OperationStart: "1999-12-31", Coordinates: &types.Coordinates{Lat: 47.3, Lon: 7.9}},
		{Category: "Solar", TotalPowerKW: 200, Municipality: "Bern", Canton: "BE", OperationStart: "not a date"},
	}, "")
}

func order(entries []catalog.Entry) []int {
	ret := make([]int, len(entries))
	for i, e := range entries {
		ret[i] = e.Index
	}
	return ret
}

func TestSortColumns(t *testing.T) {
	store := testStore()
	sorter := DefaultSorter()
	cases := []struct {
		by       Sort
		expected []int
	}{
		{Sort{types.SortPower, true}, []int{0, 2, 3, 1}},
		{Sort{types.SortPower, false}, []int{1, 2, 3, 0}},
		{Sort{types.SortCategory, true}, []int{2, 1, 3, 0}},
		{Sort{types.SortMunicipality, true}, []int{1, 3, 2, 0}},
		{Sort{types.SortCanton, true}, []int{1, 3, 2, 0}},
		{Sort{types.SortStart, true}, []int{1, 3, 2, 0}},
		{Sort{types.SortStart, false}, []int{0, 2, 1, 3}},
		{Sort{types.SortLocation, true}, []int{1, 2, 0, 3}},
		{Sort{types.SortLocation, false}, []int{0, 3, 1, 2}},
	}
	for _, c := range cases {
		got := order(sorter.Sort(store.All(), c.by))
		if !reflect.DeepEqual(got, c.expected) {
			t.Errorf("%v: expected %v but got %v", c.by, c.expected, got)
		}
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	store := testStore()
	DefaultSorter().Sort(store.All(), Sort{types.SortPower, false})
	if !reflect.DeepEqual(order(store.All()), []int{0, 1, 2, 3}) {
		t.Errorf("Expected load order to be untouched")
	}
}

func TestClickToggles(t *testing.T) {
	s := Sort{Column: types.SortPower, Ascending: false}
	s = s.Click(types.SortPower)
	if !s.Ascending {
		t.Errorf("Expected same column to toggle direction")
	}
	s = s.Click(types.SortCanton)
	if s.Column != types.SortCanton || !s.Ascending {
		t.Errorf("Expected new column to start ascending, got %v", s)
	}
	s = Sort{Column: types.SortCanton, Ascending: false}.Click(types.SortPower)
	if !s.Ascending {
		t.Errorf("Expected new column to reset to ascending")
	}
}

func TestClickTwiceRestoresOrder(t *testing.T) {
	store := testStore()
	sorter := DefaultSorter()
	for _, column := range types.SortColumns {
		for _, asc := range []bool{true, false} {
			start := Sort{Column: column, Ascending: asc}
			before := order(sorter.Sort(store.All(), start))
			after := order(sorter.Sort(store.All(), start.Click(column).Click(column)))
			if !reflect.DeepEqual(before, after) {
				t.Errorf("%v: expected %v after two clicks, got %v", start, before, after)
			}
		}
	}
}
