package facet

import "github.com/matst80/energy-explorer/pkg/catalog"

const DefaultPageSize = 50

type Page struct {
	Items  []catalog.Entry `json:"-"`
	Number int             `json:"page"`
	Pages  int             `json:"pages"`
	Size   int             `json:"size"`
	Total  int             `json:"total"`
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Paginate slices out a 1-based page, clamping the page number into range.
func Paginate(items []catalog.Entry, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := max(1, (len(items)+size-1)/size)
	page = clamp(page, 1, pages)
	start := min((page-1)*size, len(items))
	end := min(start+size, len(items))
	return Page{
		Items:  items[start:end],
		Number: page,
		Pages:  pages,
		Size:   size,
		Total:  len(items),
	}
}
