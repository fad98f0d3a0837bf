package catalog

import (
	"regexp"
	"slices"
	"strings"

	"github.com/matst80/energy-explorer/pkg/search"
	"github.com/matst80/energy-explorer/pkg/types"
)

// Entry is a loaded facility with its precomputed search haystack.
// Index is the load position and breaks ties when sorting.
type Entry struct {
	*types.Facility
	Index    int
	Haystack string
}

// Store owns the facility collection. The current sort order is kept next to
// the load order so filtering can walk it directly.
type Store struct {
	entries    []Entry
	sorted     []Entry
	categories []string
	lastUpdate string
	maxPower   float64
}

var lastUpdatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidLastUpdate trims the marker and reports it as absent unless it is a YYYY-MM-DD date.
func ValidLastUpdate(marker string) (string, bool) {
	marker = strings.TrimSpace(marker)
	if !lastUpdatePattern.MatchString(marker) {
		return "", false
	}
	return marker, true
}

func NewStore(facilities []types.Facility, lastUpdate string) *Store {
	s := &Store{
		entries: make([]Entry, len(facilities)),
	}
	s.lastUpdate, _ = ValidLastUpdate(lastUpdate)
	seen := map[string]struct{}{}
	for i := range facilities {
		f := facilities[i]
		if f.Category == "" || f.Category == types.TotalCategory {
			f.Category = types.UnknownCategory
		}
		if f.TotalPowerKW > s.maxPower {
			s.maxPower = f.TotalPowerKW
		}
		if _, ok := seen[f.Category]; !ok {
			seen[f.Category] = struct{}{}
			s.categories = append(s.categories, f.Category)
		}
		s.entries[i] = Entry{
			Facility: &f,
			Index:    i,
			Haystack: search.Haystack(&f),
		}
	}
	slices.Sort(s.categories)
	s.sorted = s.entries
	return s
}

// All returns entries in load order.
func (s *Store) All() []Entry {
	return s.entries
}

// Sorted returns entries in the current sort order.
func (s *Store) Sorted() []Entry {
	return s.sorted
}

func (s *Store) SetOrder(order []Entry) {
	if len(order) != len(s.entries) {
		return
	}
	s.sorted = order
}

func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) Categories() []string {
	return s.categories
}

func (s *Store) HasCategory(name string) bool {
	_, found := slices.BinarySearch(s.categories, name)
	return found
}

func (s *Store) MaxPower() float64 {
	return s.maxPower
}

func (s *Store) LastUpdate() (string, bool) {
	return s.lastUpdate, s.lastUpdate != ""
}
