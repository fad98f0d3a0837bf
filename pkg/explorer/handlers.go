package explorer

import (
	"log"
	"math"
	"slices"

	"github.com/matst80/energy-explorer/pkg/sorting"
	"github.com/matst80/energy-explorer/pkg/state"
	"github.com/matst80/energy-explorer/pkg/types"
)

func chartView(dataset types.Dataset) state.View {
	if dataset == types.DatasetTrade {
		return state.TradeChart
	}
	return state.ProductionChart
}

func (c *Controller) invalidateFacilities() {
	c.filterStale = true
	c.ctx.Dirty.Invalidate(state.TableView, state.MapView)
}

func (c *Controller) SetMode(mode types.Mode) {
	if !mode.Valid() {
		log.Printf("[%s] ignoring unknown mode %q", c.ctx.SessionId, mode)
		return
	}
	if mode == c.ctx.State.Mode {
		return
	}
	c.ctx.State.Mode = mode
	c.changed("mode")
}

func (c *Controller) ToggleMap() {
	c.ctx.State.ShowMap = !c.ctx.State.ShowMap
	c.changed("map")
}

func (c *Controller) ClickSort(column types.SortColumn) {
	if !column.Valid() {
		log.Printf("[%s] ignoring unknown sort column %q", c.ctx.SessionId, column)
		return
	}
	s := c.ctx.State
	next := sorting.Sort{Column: s.SortColumn, Ascending: s.SortAscending}.Click(column)
	s.SortColumn = next.Column
	s.SortAscending = next.Ascending
	c.resort()
	// map points do not depend on order
	c.ctx.Dirty.Invalidate(state.TableView)
	c.changed("sort")
}

func (c *Controller) SetPage(page int) {
	if page < 1 || page == c.ctx.State.CurrentPage {
		return
	}
	c.ctx.State.CurrentPage = page
	c.ctx.Dirty.Invalidate(state.TableView)
	c.changed("page")
}

func (c *Controller) SetPowerRange(minPower, maxPower float64) {
	if math.IsNaN(minPower) || math.IsNaN(maxPower) || minPower < 0 || maxPower < minPower {
		log.Printf("[%s] ignoring power range [%v, %v]", c.ctx.SessionId, minPower, maxPower)
		return
	}
	s := c.ctx.State
	if s.MinPower == minPower && s.MaxPower == maxPower {
		return
	}
	s.MinPower = minPower
	s.MaxPower = maxPower
	s.CurrentPage = 1
	c.invalidateFacilities()
	c.changed("power")
}

// Search records the raw input; tokens are applied after the input settles.
func (c *Controller) Search(text string) {
	c.pendingSearch = text
	c.search.Trigger()
}

func (c *Controller) applySearch() {
	tokens := c.tokenizer.Tokenize(c.pendingSearch).Strings()
	s := c.ctx.State
	if slices.Equal(tokens, s.SearchTokens) {
		return
	}
	s.SearchTokens = tokens
	s.CurrentPage = 1
	c.invalidateFacilities()
	c.changed("search")
}

func (c *Controller) invalidateSelection(dataset types.Dataset) {
	if dataset == types.DatasetFacilities {
		c.ctx.State.CurrentPage = 1
		c.invalidateFacilities()
		return
	}
	c.ctx.Dirty.Invalidate(chartView(dataset))
}

// ToggleCategory flips one category of a dataset. The selection keeps the
// order of the known category list.
func (c *Controller) ToggleCategory(dataset types.Dataset, name string) {
	if !c.ctx.Known.Contains(dataset, name) {
		log.Printf("[%s] ignoring unknown %s category %q", c.ctx.SessionId, dataset, name)
		return
	}
	current := c.ctx.State.Selected(dataset)
	selected := make([]string, 0, len(c.ctx.Known[dataset]))
	for _, k := range c.ctx.Known[dataset] {
		if (k == name) != slices.Contains(current, k) {
			selected = append(selected, k)
		}
	}
	c.ctx.State.SetSelected(dataset, selected)
	c.invalidateSelection(dataset)
	c.changed("category")
}

// SetCategories replaces a selection, dropping unknown names.
func (c *Controller) SetCategories(dataset types.Dataset, names []string) {
	if !dataset.Valid() {
		return
	}
	selected := make([]string, 0, len(names))
	for _, k := range c.ctx.Known[dataset] {
		if slices.Contains(names, k) {
			selected = append(selected, k)
		}
	}
	if slices.Equal(selected, c.ctx.State.Selected(dataset)) {
		return
	}
	c.ctx.State.SetSelected(dataset, selected)
	c.invalidateSelection(dataset)
	c.changed("categories")
}

func (c *Controller) SelectAll(dataset types.Dataset) {
	c.SetCategories(dataset, c.ctx.Known[dataset])
}

func (c *Controller) SelectNone(dataset types.Dataset) {
	c.SetCategories(dataset, []string{})
}

// SetMapViewport only stores the viewport, points are unaffected.
func (c *Controller) SetMapViewport(lat, lon, zoom float64) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 || zoom < 0 || math.IsNaN(lat+lon+zoom) {
		log.Printf("[%s] ignoring map viewport %v,%v@%v", c.ctx.SessionId, lat, lon, zoom)
		return
	}
	c.ctx.State.Map = state.MapViewport{Lat: lat, Lon: lon, Zoom: zoom}
	c.changed("viewport")
}

// SetChartViewport follows a pan or zoom gesture. Series are only rebuilt
// when the granularity changes; the averages follow every move.
func (c *Controller) SetChartViewport(dataset types.Dataset, xmin, xmax float64) {
	chart, ok := c.ctx.Charts[dataset]
	if !ok || math.IsNaN(xmin) || math.IsNaN(xmax) || math.IsInf(xmin, 0) || math.IsInf(xmax, 0) || xmin >= xmax {
		log.Printf("[%s] ignoring %s viewport [%v, %v]", c.ctx.SessionId, dataset, xmin, xmax)
		return
	}
	c.ctx.State.SetRange(dataset, &state.TimeRange{XMin: xmin, XMax: xmax})
	if chart.SetViewport(xmin, xmax) {
		c.ctx.Dirty.Invalidate(chartView(dataset))
	} else if c.visible[chartView(dataset)] {
		c.renderAverages(dataset)
	}
	c.changed("chart")
}

// ResetChartViewport returns to the full data extent.
func (c *Controller) ResetChartViewport(dataset types.Dataset) {
	chart, ok := c.ctx.Charts[dataset]
	if !ok || c.ctx.State.Range(dataset) == nil {
		return
	}
	c.ctx.State.SetRange(dataset, nil)
	if xmin, xmax, ok := chart.Extent(); ok && chart.SetViewport(xmin, xmax) {
		c.ctx.Dirty.Invalidate(chartView(dataset))
	} else if c.visible[chartView(dataset)] {
		c.renderAverages(dataset)
	}
	c.changed("chart")
}
