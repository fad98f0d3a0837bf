package explorer

import (
	"log"
	"net/url"

	"github.com/google/uuid"
	"github.com/matst80/energy-explorer/pkg/catalog"
	"github.com/matst80/energy-explorer/pkg/facet"
	"github.com/matst80/energy-explorer/pkg/state"
	"github.com/matst80/energy-explorer/pkg/storage"
	"github.com/matst80/energy-explorer/pkg/timeseries"
	"github.com/matst80/energy-explorer/pkg/types"
)

// Context is everything one explorer session owns. It is only touched from
// the loop goroutine.
type Context struct {
	SessionId string
	Store     *catalog.Store
	State     *state.ViewState
	Dirty     state.Invalidation
	Known     state.Known
	Charts    map[types.Dataset]*timeseries.Chart
	Palette   *facet.Palette
	Location  *url.URL
	counts    datasetCounts
}

type datasetCounts struct {
	production int
	trade      int
}

// NewContext builds the session from loaded data and applies the state
// token found in location, if any.
func NewContext(data *storage.Datasets, calendar timeseries.Calendar, location *url.URL) *Context {
	store := catalog.NewStore(data.Facilities, data.LastUpdate)
	production := timeseries.ProductionSpec()
	trade := timeseries.TradeSpec()

	if location == nil {
		location = &url.URL{Path: "/"}
	}
	ctx := &Context{
		SessionId: uuid.NewString(),
		Store:     store,
		State:     state.Defaults(store.MaxPower()),
		Dirty:     state.NewInvalidation(),
		Known: state.Known{
			types.DatasetFacilities: store.Categories(),
			types.DatasetProduction: production.Categories,
			types.DatasetTrade:      trade.Categories,
		},
		Charts: map[types.Dataset]*timeseries.Chart{
			types.DatasetProduction: timeseries.NewChart(production, calendar, data.Production),
			types.DatasetTrade:      timeseries.NewChart(trade, calendar, data.Trade),
		},
		Palette:  facet.NewPalette(store.Categories()),
		Location: location,
		counts:   datasetCounts{production: len(data.Production), trade: len(data.Trade)},
	}

	token, err := state.FromURL(location)
	if err != nil {
		log.Printf("[%s] could not read state from url: %v", ctx.SessionId, err)
	}
	if token != "" {
		if warnings := state.Decode(token, ctx.Known, ctx.State); len(warnings) > 0 {
			log.Printf("[%s] restored state with %d rejected fields", ctx.SessionId, len(warnings))
		}
	}
	ctx.State.InitSelections(ctx.Known)

	for dataset, chart := range ctx.Charts {
		if r := ctx.State.Range(dataset); r != nil {
			chart.SetViewport(r.XMin, r.XMax)
		}
	}
	log.Printf("[%s] session ready, %d facilities in %d categories", ctx.SessionId, store.Len(), len(store.Categories()))
	return ctx
}

// VisibleRange is the stored chart range or the full data extent.
func (c *Context) VisibleRange(dataset types.Dataset) state.TimeRange {
	if r := c.State.Range(dataset); r != nil {
		return *r
	}
	if chart, ok := c.Charts[dataset]; ok {
		if xmin, xmax, ok := chart.Extent(); ok {
			return state.TimeRange{XMin: xmin, XMax: xmax}
		}
	}
	return state.TimeRange{}
}
