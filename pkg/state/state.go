package state

import (
	"slices"

	"github.com/matst80/energy-explorer/pkg/types"
)

type MapViewport struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zoom float64 `json:"zoom"`
}

// TimeRange is a chart viewport in milliseconds since the epoch.
type TimeRange struct {
	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
}

// ViewState is everything needed to reproduce the current view. Category
// selections stay nil until data has loaded, meaning all categories.
type ViewState struct {
	Mode                 types.Mode       `json:"mode"`
	ShowMap              bool             `json:"showMap"`
	SortColumn           types.SortColumn `json:"sortColumn"`
	SortAscending        bool             `json:"sortAscending"`
	CurrentPage          int              `json:"currentPage"`
	MinPower             float64          `json:"minPower"`
	MaxPower             float64          `json:"maxPower"`
	SearchTokens         []string         `json:"searchTokens"`
	FacilityCategories   []string         `json:"facilityCategories"`
	ProductionCategories []string         `json:"productionCategories"`
	TradeCategories      []string         `json:"tradeCategories"`
	Map                  MapViewport      `json:"map"`
	ProductionRange      *TimeRange       `json:"productionRange,omitempty"`
	TradeRange           *TimeRange       `json:"tradeRange,omitempty"`
}

var DefaultMap = MapViewport{Lat: 46.8, Lon: 8.23, Zoom: 8}

// Defaults builds the startup state. maxPower is the largest capacity in the
// catalog so the power range starts fully open.
func Defaults(maxPower float64) *ViewState {
	return &ViewState{
		Mode:          types.ModeFacilities,
		SortColumn:    types.SortPower,
		SortAscending: false,
		CurrentPage:   1,
		MinPower:      0,
		MaxPower:      maxPower,
		SearchTokens:  []string{},
		Map:           DefaultMap,
	}
}

func (s *ViewState) Selected(dataset types.Dataset) []string {
	switch dataset {
	case types.DatasetFacilities:
		return s.FacilityCategories
	case types.DatasetProduction:
		return s.ProductionCategories
	case types.DatasetTrade:
		return s.TradeCategories
	}
	return nil
}

func (s *ViewState) SetSelected(dataset types.Dataset, categories []string) {
	switch dataset {
	case types.DatasetFacilities:
		s.FacilityCategories = categories
	case types.DatasetProduction:
		s.ProductionCategories = categories
	case types.DatasetTrade:
		s.TradeCategories = categories
	}
}

func (s *ViewState) Range(dataset types.Dataset) *TimeRange {
	switch dataset {
	case types.DatasetProduction:
		return s.ProductionRange
	case types.DatasetTrade:
		return s.TradeRange
	}
	return nil
}

func (s *ViewState) SetRange(dataset types.Dataset, r *TimeRange) {
	switch dataset {
	case types.DatasetProduction:
		s.ProductionRange = r
	case types.DatasetTrade:
		s.TradeRange = r
	}
}

// InitSelections replaces nil selections with every known category.
func (s *ViewState) InitSelections(known Known) {
	for _, d := range types.Datasets {
		if s.Selected(d) == nil {
			s.SetSelected(d, slices.Clone(known[d]))
		}
	}
}

func (s *ViewState) Clone() *ViewState {
	c := *s
	c.SearchTokens = slices.Clone(s.SearchTokens)
	c.FacilityCategories = slices.Clone(s.FacilityCategories)
	c.ProductionCategories = slices.Clone(s.ProductionCategories)
	c.TradeCategories = slices.Clone(s.TradeCategories)
	if s.ProductionRange != nil {
		r := *s.ProductionRange
		c.ProductionRange = &r
	}
	if s.TradeRange != nil {
		r := *s.TradeRange
		c.TradeRange = &r
	}
	return &c
}

// Known lists the valid category names per dataset.
type Known map[types.Dataset][]string

func (k Known) Contains(dataset types.Dataset, name string) bool {
	return slices.Contains(k[dataset], name)
}
