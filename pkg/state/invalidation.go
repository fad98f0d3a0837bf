package state

type View int

const (
	TableView View = iota
	MapView
	ProductionChart
	TradeChart
)

var Views = []View{TableView, MapView, ProductionChart, TradeChart}

func (v View) String() string {
	switch v {
	case TableView:
		return "table"
	case MapView:
		return "map"
	case ProductionChart:
		return "production"
	case TradeChart:
		return "trade"
	}
	return "unknown"
}

// Invalidation tracks which derived views need recomputing. Writers set
// flags, the producing recompute clears its own.
type Invalidation map[View]bool

func NewInvalidation() Invalidation {
	inv := make(Invalidation, len(Views))
	for _, v := range Views {
		inv[v] = true
	}
	return inv
}

func (i Invalidation) Invalidate(views ...View) {
	for _, v := range views {
		i[v] = true
	}
}

func (i Invalidation) Dirty(v View) bool {
	return i[v]
}

func (i Invalidation) Clear(v View) {
	i[v] = false
}
