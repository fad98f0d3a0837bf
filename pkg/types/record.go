package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrBadInstant = errors.New("record: unparseable date")

// Record is one dated measurement vector of a time-series dataset.
type Record struct {
	Instant time.Time
	Values  []float64
}

// Bucket is the component-wise sum of the records starting in one calendar unit.
type Bucket struct {
	Start  time.Time `json:"start"`
	Values []float64 `json:"values"`
}

// RawRecord is the stored form. Older exports name the vector prod or trade.
type RawRecord struct {
	Date   string    `json:"date"`
	Values []float64 `json:"values,omitempty"`
	Prod   []float64 `json:"prod,omitempty"`
	Trade  []float64 `json:"trade,omitempty"`
}

func (r *RawRecord) vector() []float64 {
	switch {
	case r.Values != nil:
		return r.Values
	case r.Prod != nil:
		return r.Prod
	}
	return r.Trade
}

// ToRecord parses the date in loc and fits the vector to arity, padding with zeros.
func (r *RawRecord) ToRecord(loc *time.Location, arity int) (Record, error) {
	instant, err := ParseInstant(r.Date, loc)
	if err != nil {
		return Record{}, err
	}
	values := make([]float64, arity)
	copy(values, r.vector())
	return Record{Instant: instant, Values: values}, nil
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseInstant accepts RFC 3339 datetimes and zone-less dates or datetimes,
// the latter interpreted in loc.
func ParseInstant(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadInstant, value)
}

// Millis is the instant as milliseconds since the epoch, the unit used by chart viewports.
func Millis(t time.Time) float64 {
	return float64(t.UnixMilli())
}

func FromMillis(ms float64) time.Time {
	return time.UnixMilli(int64(ms))
}
