package types

// Component order of the production vector, GWh per day.
var ProductionSources = []string{
	"Hydro (pumped)",
	"Hydro (river)",
	"Nuclear",
	"Photovoltaic",
	"Thermal",
	"Wind",
}

// Trade vectors hold imports from these countries followed by exports to them, MWh per hour.
var TradeCountries = []string{
	"Austria",
	"Germany",
	"France",
	"Italy",
}

const (
	ProductionArity = 6
	TradeArity      = 8
)

func ImportIndex(country int) int {
	return country
}

func ExportIndex(country int) int {
	return country + len(TradeCountries)
}
