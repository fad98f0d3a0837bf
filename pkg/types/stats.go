package types

const TotalCategory = "Total"

type CategoryStat struct {
	Count      int     `json:"count"`
	CapacityMW float64 `json:"capacityMW"`
}

// CategoryStats maps category to count and capacity, with a synthetic Total entry.
type CategoryStats map[string]CategoryStat

func NewCategoryStats(categories ...string) CategoryStats {
	stats := make(CategoryStats, len(categories)+1)
	for _, c := range categories {
		stats[c] = CategoryStat{}
	}
	stats[TotalCategory] = CategoryStat{}
	return stats
}

// Add counts a facility in its category and in Total. The Total name is
// reserved, so a facility carrying it only counts once.
func (s CategoryStats) Add(category string, powerKW float64) {
	mw := powerKW / 1000
	if category != TotalCategory {
		c := s[category]
		c.Count++
		c.CapacityMW += mw
		s[category] = c
	}

	t := s[TotalCategory]
	t.Count++
	t.CapacityMW += mw
	s[TotalCategory] = t
}

func (s CategoryStats) Total() CategoryStat {
	return s[TotalCategory]
}
