package facet

const fallbackColor = "#999999"

var defaultColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	"#393b79", "#637939", "#8c6d31", "#843c39", "#7b4173",
}

type Palette struct {
	colors map[string]string
}

// NewPalette assigns colors to categories in the given order, cycling when
// there are more categories than colors.
func NewPalette(categories []string) *Palette {
	p := &Palette{colors: make(map[string]string, len(categories))}
	for i, c := range categories {
		p.colors[c] = defaultColors[i%len(defaultColors)]
	}
	return p
}

func (p *Palette) Color(category string) string {
	if p == nil {
		return fallbackColor
	}
	if c, ok := p.colors[category]; ok {
		return c
	}
	return fallbackColor
}
