package explorer

import (
	"log"
	"net/url"
	"time"

	"github.com/matst80/energy-explorer/pkg/common"
	"github.com/matst80/energy-explorer/pkg/facet"
	"github.com/matst80/energy-explorer/pkg/search"
	"github.com/matst80/energy-explorer/pkg/sorting"
	"github.com/matst80/energy-explorer/pkg/state"
	"github.com/matst80/energy-explorer/pkg/storage"
	"github.com/matst80/energy-explorer/pkg/timeseries"
	"github.com/matst80/energy-explorer/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SearchDelay  = 250 * time.Millisecond
	PersistDelay = 500 * time.Millisecond
)

var (
	recomputes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "explorer_recomputes_total",
		Help: "The total number of derived view recomputes",
	}, []string{"view"})
	handled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "explorer_events_total",
		Help: "The total number of handled events by kind",
	}, []string{"event"})
	persisted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "explorer_url_writes_total",
		Help: "The total number of url state writes",
	})
)

type Options struct {
	Scheduler common.Scheduler
	Renderer  Renderer
	URLWriter URLWriter
	Calendar  timeseries.Calendar
	Location  *url.URL
	PageSize  int
	Sorter    *sorting.Sorter
}

// Controller reacts to user events by mutating view state and recomputing
// the derived views that depend on it. All methods must run on one goroutine.
type Controller struct {
	ctx       *Context
	renderer  Renderer
	urls      URLWriter
	sorter    *sorting.Sorter
	tokenizer *search.Tokenizer
	pageSize  int

	search  *common.Debouncer
	persist *common.Debouncer

	pendingSearch string
	filterStale   bool
	filtered      facet.Result
	visible       map[state.View]bool
	counts        map[state.View]int
}

func New(data *storage.Datasets, opts Options) *Controller {
	if opts.Sorter == nil {
		opts.Sorter = sorting.DefaultSorter()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = facet.DefaultPageSize
	}
	c := &Controller{
		ctx:         NewContext(data, opts.Calendar, opts.Location),
		renderer:    opts.Renderer,
		urls:        opts.URLWriter,
		sorter:      opts.Sorter,
		tokenizer:   &search.Tokenizer{MaxTokens: search.MaxSearchTokens},
		pageSize:    opts.PageSize,
		filterStale: true,
		visible:     map[state.View]bool{},
		counts:      map[state.View]int{},
	}
	c.search = common.NewDebouncer(opts.Scheduler, SearchDelay, c.applySearch)
	c.persist = common.NewDebouncer(opts.Scheduler, PersistDelay, c.writeURL)
	c.resort()
	return c
}

func (c *Controller) Context() *Context {
	return c.ctx
}

func (c *Controller) State() *state.ViewState {
	return c.ctx.State
}

func (c *Controller) URL() *url.URL {
	return c.ctx.Location
}

// Recomputes reports how often a view was rebuilt.
func (c *Controller) Recomputes(v state.View) int {
	return c.counts[v]
}

// Start renders the initial views.
func (c *Controller) Start() {
	c.refresh()
}

func (c *Controller) visibleViews() []state.View {
	s := c.ctx.State
	switch s.Mode {
	case types.ModeFacilities:
		if s.ShowMap {
			return []state.View{state.TableView, state.MapView}
		}
		return []state.View{state.TableView}
	case types.ModeProduction:
		return []state.View{state.ProductionChart}
	case types.ModeTrade:
		return []state.View{state.TradeChart}
	}
	return nil
}

// refresh recomputes the visible views that are dirty and renders those, or
// the ones that just became visible. Hidden views stay dirty.
func (c *Controller) refresh() {
	shown := map[state.View]bool{}
	for _, v := range c.visibleViews() {
		shown[v] = true
		wasVisible := c.visible[v]
		if c.ctx.Dirty.Dirty(v) {
			c.recompute(v)
		} else if !wasVisible {
			c.render(v)
		}
	}
	if c.ctx.State.Mode == types.ModeAbout {
		if !c.visible[aboutView] {
			c.renderAbout()
		}
		shown[aboutView] = true
	}
	c.visible = shown
}

// aboutView is not derived from state, so it has no invalidation flag.
const aboutView state.View = -1

func (c *Controller) recompute(v state.View) {
	c.counts[v]++
	recomputes.WithLabelValues(v.String()).Inc()
	c.ctx.Dirty.Clear(v)
	c.render(v)
}

func (c *Controller) render(v state.View) {
	switch v {
	case state.TableView:
		c.renderTable()
	case state.MapView:
		c.renderMap()
	case state.ProductionChart:
		c.renderChart(types.DatasetProduction)
	case state.TradeChart:
		c.renderChart(types.DatasetTrade)
	}
}

func (c *Controller) resort() {
	s := c.ctx.State
	sorted := c.sorter.Sort(c.ctx.Store.All(), sorting.Sort{Column: s.SortColumn, Ascending: s.SortAscending})
	c.ctx.Store.SetOrder(sorted)
	c.filterStale = true
}

func (c *Controller) filter() facet.Result {
	if !c.filterStale {
		return c.filtered
	}
	s := c.ctx.State
	c.filtered = facet.Filter(c.ctx.Store.Sorted(), facet.Criteria{
		MinPower:   s.MinPower,
		MaxPower:   s.MaxPower,
		Tokens:     s.SearchTokens,
		Categories: facet.NewCategorySet(s.FacilityCategories),
		Known:      c.ctx.Store.Categories(),
	})
	c.filterStale = false
	return c.filtered
}

func (c *Controller) renderTable() {
	s := c.ctx.State
	res := c.filter()
	page := facet.Paginate(res.Items, s.CurrentPage, c.pageSize)
	s.CurrentPage = page.Number
	if c.renderer == nil {
		return
	}
	c.renderer.RenderTable(TableView{
		Page:       page,
		Rows:       toRows(page.Items, c.ctx.Palette),
		Stats:      res.Stats,
		Sort:       sorting.Sort{Column: s.SortColumn, Ascending: s.SortAscending},
		Categories: c.ctx.Store.Categories(),
		Selected:   s.FacilityCategories,
	})
}

func (c *Controller) renderMap() {
	res := c.filter()
	if c.renderer == nil {
		return
	}
	c.renderer.RenderMap(MapView{
		Features: facet.MapPoints(facet.OnMap(res.Items), c.ctx.Palette),
		Viewport: c.ctx.State.Map,
	})
}

func (c *Controller) renderChart(dataset types.Dataset) {
	chart := c.ctx.Charts[dataset]
	if c.renderer == nil || chart == nil {
		return
	}
	c.renderer.RenderChart(ChartView{
		Dataset:    dataset,
		Unit:       chart.Unit(),
		Series:     chart.Series(c.ctx.State.Selected(dataset)),
		Range:      c.ctx.VisibleRange(dataset),
		Categories: chart.Spec().Categories,
		Selected:   c.ctx.State.Selected(dataset),
	})
	c.renderAverages(dataset)
}

func (c *Controller) renderAverages(dataset types.Dataset) {
	chart := c.ctx.Charts[dataset]
	if c.renderer == nil || chart == nil {
		return
	}
	r := c.ctx.VisibleRange(dataset)
	c.renderer.RenderAverages(AveragesView{
		Dataset: dataset,
		Range:   r,
		Values:  chart.Average(timeseries.WindowFromMillis(r.XMin, r.XMax)),
		Unit:    chart.Spec().Unit,
	})
}

func (c *Controller) renderAbout() {
	if c.renderer == nil {
		return
	}
	lastUpdate, _ := c.ctx.Store.LastUpdate()
	c.renderer.RenderAbout(AboutView{
		LastUpdate: lastUpdate,
		Facilities: c.ctx.Store.Len(),
		Production: c.ctx.counts.production,
		Trade:      c.ctx.counts.trade,
	})
}

// changed finishes every handler: render what became dirty and schedule a
// url write.
func (c *Controller) changed(event string) {
	handled.WithLabelValues(event).Inc()
	c.refresh()
	c.persist.Trigger()
}

func (c *Controller) writeURL() {
	token, err := state.Encode(c.ctx.State)
	if err != nil {
		log.Printf("[%s] could not encode state: %v", c.ctx.SessionId, err)
		return
	}
	c.ctx.Location = state.Apply(c.ctx.Location, token)
	persisted.Inc()
	if c.urls != nil {
		c.urls.ReplaceURL(c.ctx.Location)
	}
}

// Flush runs pending debounced work right away, the search first so the
// written url includes it.
func (c *Controller) Flush() {
	c.search.Flush()
	c.persist.Flush()
}
