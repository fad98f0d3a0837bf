package state

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/matst80/energy-explorer/pkg/search"
	"github.com/matst80/energy-explorer/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decodeWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "explorer_decode_warnings_total",
		Help: "The total number of rejected state fields",
	}, []string{"field"})
	encodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "explorer_state_encodes_total",
		Help: "The total number of encoded view states",
	})
)

var tokenizer = &search.Tokenizer{MaxTokens: search.MaxSearchTokens}

var ErrMalformedToken = errors.New("malformed state token")

// TokenField is the whole token when the blob itself can not be read.
const TokenField = "token"

type Warning struct {
	Field  string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Reason)
}

func Encode(s *ViewState) (string, error) {
	data, err := sonic.Marshal(s)
	if err != nil {
		return "", err
	}
	encodes.Inc()
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// decodeToken accepts url-safe and standard alphabets, with or without
// padding. A '+' that went through query unescaping arrives as a space.
func decodeToken(token string) ([]byte, error) {
	token = strings.TrimSpace(token)
	token = strings.TrimRight(token, "=")
	token = strings.NewReplacer("+", "-", "/", "_", " ", "-").Replace(token)
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return data, nil
}

type decoder struct {
	fields   map[string]json.RawMessage
	warnings []Warning
}

func (d *decoder) warn(field, reason string) {
	d.warnings = append(d.warnings, Warning{Field: field, Reason: reason})
}

func (d *decoder) raw(field string) (json.RawMessage, bool) {
	raw, ok := d.fields[field]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func (d *decoder) str(field string) (string, bool) {
	raw, ok := d.raw(field)
	if !ok {
		return "", false
	}
	var v string
	if err := sonic.Unmarshal(raw, &v); err != nil {
		d.warn(field, "not a string")
		return "", false
	}
	return v, true
}

func (d *decoder) boolean(field string) (bool, bool) {
	raw, ok := d.raw(field)
	if !ok {
		return false, false
	}
	var v any
	if err := sonic.Unmarshal(raw, &v); err != nil {
		d.warn(field, "not a boolean")
		return false, false
	}
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed, true
		}
	}
	d.warn(field, "not a boolean")
	return false, false
}

func parseNumber(raw json.RawMessage) (float64, bool) {
	var v any
	if err := sonic.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (d *decoder) number(field string, raw json.RawMessage) (float64, bool) {
	f, ok := parseNumber(raw)
	if !ok {
		d.warn(field, "not a number")
	}
	return f, ok
}

func (d *decoder) integer(field string) (int, bool) {
	raw, ok := d.raw(field)
	if !ok {
		return 0, false
	}
	f, ok := d.number(field, raw)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		d.warn(field, "not an integer")
		return 0, false
	}
	return int(f), true
}

func (d *decoder) bounded(field string, raw json.RawMessage, min, max float64) (float64, bool) {
	f, ok := d.number(field, raw)
	if !ok {
		return 0, false
	}
	if f < min || f > max {
		d.warn(field, fmt.Sprintf("%v outside [%v, %v]", f, min, max))
		return 0, false
	}
	return f, true
}

func (d *decoder) list(field string) ([]string, bool) {
	raw, ok := d.raw(field)
	if !ok {
		return nil, false
	}
	var items []any
	if err := sonic.Unmarshal(raw, &items); err != nil {
		d.warn(field, "not an array")
		return nil, false
	}
	ret := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			ret = append(ret, s)
		}
	}
	return ret, true
}

func (d *decoder) object(field string) (map[string]json.RawMessage, bool) {
	raw, ok := d.raw(field)
	if !ok {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := sonic.Unmarshal(raw, &obj); err != nil {
		d.warn(field, "not an object")
		return nil, false
	}
	return obj, true
}

// Decode applies every valid field of the token to s. Invalid fields are
// skipped with a warning and keep their current value; a token that can not
// be parsed at all leaves s untouched.
func Decode(token string, known Known, s *ViewState) []Warning {
	d := &decoder{}
	d.apply(token, known, s)
	for _, w := range d.warnings {
		log.Printf("state decode warning, %s", w)
		decodeWarnings.WithLabelValues(w.Field).Inc()
	}
	return d.warnings
}

func (d *decoder) apply(token string, known Known, s *ViewState) {
	data, err := decodeToken(token)
	if err != nil {
		d.warn(TokenField, err.Error())
		return
	}
	if err = sonic.Unmarshal(data, &d.fields); err != nil {
		d.warn(TokenField, fmt.Sprintf("%v: %v", ErrMalformedToken, err))
		return
	}

	if v, ok := d.str("mode"); ok {
		if mode := types.Mode(v); mode.Valid() {
			s.Mode = mode
		} else {
			d.warn("mode", "unknown mode "+v)
		}
	}
	if v, ok := d.boolean("showMap"); ok {
		s.ShowMap = v
	}
	if v, ok := d.str("sortColumn"); ok {
		if col := types.SortColumn(v); col.Valid() {
			s.SortColumn = col
		} else {
			d.warn("sortColumn", "unknown column "+v)
		}
	}
	if v, ok := d.boolean("sortAscending"); ok {
		s.SortAscending = v
	}
	if v, ok := d.integer("currentPage"); ok {
		if v >= 1 {
			s.CurrentPage = v
		} else {
			d.warn("currentPage", "must be at least 1")
		}
	}
	minPower, maxPower := s.MinPower, s.MaxPower
	if raw, ok := d.raw("minPower"); ok {
		if v, ok := d.bounded("minPower", raw, 0, math.MaxFloat64); ok {
			minPower = v
		}
	}
	if raw, ok := d.raw("maxPower"); ok {
		if v, ok := d.bounded("maxPower", raw, 0, math.MaxFloat64); ok {
			maxPower = v
		}
	}
	if minPower > maxPower {
		d.warn("minPower", fmt.Sprintf("%v above maxPower %v", minPower, maxPower))
	} else {
		s.MinPower, s.MaxPower = minPower, maxPower
	}
	if v, ok := d.list("searchTokens"); ok {
		s.SearchTokens = tokenizer.Tokenize(strings.Join(v, " ")).Strings()
	}

	d.categories("facilityCategories", types.DatasetFacilities, known, s)
	d.categories("productionCategories", types.DatasetProduction, known, s)
	d.categories("tradeCategories", types.DatasetTrade, known, s)

	if obj, ok := d.object("map"); ok {
		if raw, ok := obj["lat"]; ok {
			if v, ok := d.bounded("map.lat", raw, -90, 90); ok {
				s.Map.Lat = v
			}
		}
		if raw, ok := obj["lon"]; ok {
			if v, ok := d.bounded("map.lon", raw, -180, 180); ok {
				s.Map.Lon = v
			}
		}
		if raw, ok := obj["zoom"]; ok {
			if v, ok := d.bounded("map.zoom", raw, 0, math.MaxFloat64); ok {
				s.Map.Zoom = v
			}
		}
	}

	d.timeRange("productionRange", types.DatasetProduction, s)
	d.timeRange("tradeRange", types.DatasetTrade, s)
}

// categories keeps the known names only; unknown ones are dropped silently.
func (d *decoder) categories(field string, dataset types.Dataset, known Known, s *ViewState) {
	v, ok := d.list(field)
	if !ok {
		return
	}
	selected := make([]string, 0, len(v))
	for _, name := range v {
		if known.Contains(dataset, name) && !slices.Contains(selected, name) {
			selected = append(selected, name)
		}
	}
	s.SetSelected(dataset, selected)
}

func (d *decoder) timeRange(field string, dataset types.Dataset, s *ViewState) {
	obj, ok := d.object(field)
	if !ok {
		return
	}
	xminRaw, hasMin := obj["xmin"]
	xmaxRaw, hasMax := obj["xmax"]
	if !hasMin || !hasMax {
		d.warn(field, "missing bound")
		return
	}
	xmin, ok := d.number(field+".xmin", xminRaw)
	if !ok {
		return
	}
	xmax, ok := d.number(field+".xmax", xmaxRaw)
	if !ok {
		return
	}
	if xmin >= xmax {
		d.warn(field, "empty range")
		return
	}
	s.SetRange(dataset, &TimeRange{XMin: xmin, XMax: xmax})
}
