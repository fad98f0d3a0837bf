package search

import (
	"strconv"
	"strings"

	"github.com/matst80/energy-explorer/pkg/types"
)

const (
	CityPrefix   = "city:"
	CantonPrefix = "canton:"
	YearPrefix   = "year:"
)

// Haystack is the lower-cased text a facility is searched in.
func Haystack(f *types.Facility) string {
	var b strings.Builder
	parts := []string{
		f.Category,
		strconv.FormatFloat(f.TotalPowerKW, 'f', -1, 64),
		f.OperationStart,
		CityPrefix + f.Municipality,
		CantonPrefix + f.Canton,
		YearPrefix + f.Year(),
	}
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	return strings.ToLower(b.String())
}

// Matches is true when every token is a substring of the haystack.
func Matches(haystack string, tokens []string) bool {
	for _, token := range tokens {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return true
}
