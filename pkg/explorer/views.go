package explorer

import (
	"fmt"
	"math"
	"net/url"

	"github.com/matst80/energy-explorer/pkg/catalog"
	"github.com/matst80/energy-explorer/pkg/facet"
	"github.com/matst80/energy-explorer/pkg/sorting"
	"github.com/matst80/energy-explorer/pkg/state"
	"github.com/matst80/energy-explorer/pkg/timeseries"
	"github.com/matst80/energy-explorer/pkg/types"
)

// Renderer draws derived views. Implementations must not keep the slices
// they are handed past the call.
type Renderer interface {
	RenderTable(TableView)
	RenderMap(MapView)
	RenderChart(ChartView)
	RenderAverages(AveragesView)
	RenderAbout(AboutView)
}

// URLWriter replaces the current location without navigating.
type URLWriter interface {
	ReplaceURL(u *url.URL)
}

type Row struct {
	Category       string  `json:"category"`
	PowerKW        float64 `json:"powerKW"`
	Municipality   string  `json:"municipality"`
	Canton         string  `json:"canton"`
	OperationStart string  `json:"operationStart,omitempty"`
	HasLocation    bool    `json:"hasLocation"`
	Color          string  `json:"color"`
}

type TableView struct {
	Page       facet.Page          `json:"page"`
	Rows       []Row               `json:"rows"`
	Stats      types.CategoryStats `json:"stats"`
	Sort       sorting.Sort        `json:"sort"`
	Categories []string            `json:"categories"`
	Selected   []string            `json:"selected"`
}

type MapView struct {
	Features []facet.Feature   `json:"features"`
	Viewport state.MapViewport `json:"viewport"`
}

type ChartView struct {
	Dataset    types.Dataset       `json:"dataset"`
	Unit       types.Unit          `json:"unit"`
	Series     []timeseries.Series `json:"series"`
	Range      state.TimeRange     `json:"range"`
	Categories []string            `json:"categories"`
	Selected   []string            `json:"selected"`
}

// AveragesView holds the mean per category over the visible range. NaN
// marks a window without records.
type AveragesView struct {
	Dataset types.Dataset      `json:"dataset"`
	Range   state.TimeRange    `json:"range"`
	Values  map[string]float64 `json:"-"`
	Unit    string             `json:"unit"`
}

// Display formats every value, empty windows show as n/a.
func (a AveragesView) Display() map[string]string {
	ret := make(map[string]string, len(a.Values))
	for k, v := range a.Values {
		ret[k] = FormatAverage(v)
	}
	return ret
}

func FormatAverage(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", v)
}

type AboutView struct {
	LastUpdate string `json:"lastUpdate,omitempty"`
	Facilities int    `json:"facilities"`
	Production int    `json:"production"`
	Trade      int    `json:"trade"`
}

func toRows(items []catalog.Entry, palette *facet.Palette) []Row {
	rows := make([]Row, len(items))
	for i, e := range items {
		rows[i] = Row{
			Category:       e.Category,
			PowerKW:        e.TotalPowerKW,
			Municipality:   e.Municipality,
			Canton:         e.Canton,
			OperationStart: e.OperationStart,
			HasLocation:    e.HasLocation(),
			Color:          palette.Color(e.Category),
		}
	}
	return rows
}
