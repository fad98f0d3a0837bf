package types

import "slices"

type Mode string

const (
	ModeFacilities Mode = "facilities"
	ModeProduction Mode = "production"
	ModeTrade      Mode = "trade"
	ModeAbout      Mode = "about"
)

var Modes = []Mode{ModeFacilities, ModeProduction, ModeTrade, ModeAbout}

func (m Mode) Valid() bool {
	return slices.Contains(Modes, m)
}

type Dataset string

const (
	DatasetFacilities Dataset = "facilities"
	DatasetProduction Dataset = "production"
	DatasetTrade      Dataset = "trade"
)

var Datasets = []Dataset{DatasetFacilities, DatasetProduction, DatasetTrade}

func (d Dataset) Valid() bool {
	return slices.Contains(Datasets, d)
}

type SortColumn string

const (
	SortCategory     SortColumn = "category"
	SortPower        SortColumn = "power"
	SortMunicipality SortColumn = "municipality"
	SortCanton       SortColumn = "canton"
	SortStart        SortColumn = "start"
	SortLocation     SortColumn = "location"
)

var SortColumns = []SortColumn{SortCategory, SortPower, SortMunicipality, SortCanton, SortStart, SortLocation}

func (c SortColumn) Valid() bool {
	return slices.Contains(SortColumns, c)
}

// Unit is the calendar resolution used for bucketing.
type Unit string

const (
	UnitDay     Unit = "day"
	UnitWeek    Unit = "week"
	UnitMonth   Unit = "month"
	UnitQuarter Unit = "quarter"
	UnitYear    Unit = "year"
)

var Units = []Unit{UnitDay, UnitWeek, UnitMonth, UnitQuarter, UnitYear}

func (u Unit) Valid() bool {
	return slices.Contains(Units, u)
}
