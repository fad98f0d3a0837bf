package types

import (
	"github.com/bytedance/sonic"
)

const UnknownCategory = "Unknown"

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Facility is a single power-generation installation. Json keys follow the
// output of the import pipeline.
type Facility struct {
	Category       string
	TotalPowerKW   float64
	Municipality   string
	Canton         string
	OperationStart string
	Coordinates    *Coordinates
}

type rawFacility struct {
	Category       any `json:"SubCategory"`
	TotalPower     any `json:"TotalPower"`
	Municipality   any `json:"Municipality"`
	Canton         any `json:"Canton"`
	OperationStart any `json:"BeginningOfOperation"`
	Lat            any `json:"lat"`
	Lon            any `json:"lon"`
}

type storedFacility struct {
	Category       string   `json:"SubCategory"`
	TotalPower     float64  `json:"TotalPower"`
	Municipality   string   `json:"Municipality"`
	Canton         string   `json:"Canton"`
	OperationStart string   `json:"BeginningOfOperation,omitempty"`
	Lat            *float64 `json:"lat,omitempty"`
	Lon            *float64 `json:"lon,omitempty"`
}

func (f *Facility) UnmarshalJSON(data []byte) error {
	raw := rawFacility{}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Category = AsString(raw.Category)
	f.TotalPowerKW, _ = AsFloat(raw.TotalPower)
	f.Municipality = AsString(raw.Municipality)
	f.Canton = AsString(raw.Canton)
	f.OperationStart = AsString(raw.OperationStart)
	f.Coordinates = nil
	lat, hasLat := AsFloat(raw.Lat)
	lon, hasLon := AsFloat(raw.Lon)
	if hasLat && hasLon {
		f.Coordinates = &Coordinates{Lat: lat, Lon: lon}
	}
	return nil
}

func (f Facility) MarshalJSON() ([]byte, error) {
	out := storedFacility{
		Category:       f.Category,
		TotalPower:     f.TotalPowerKW,
		Municipality:   f.Municipality,
		Canton:         f.Canton,
		OperationStart: f.OperationStart,
	}
	if f.Coordinates != nil {
		out.Lat = &f.Coordinates.Lat
		out.Lon = &f.Coordinates.Lon
	}
	return sonic.Marshal(out)
}

func (f *Facility) HasLocation() bool {
	return f.Coordinates != nil
}

// Year is the first four characters of the operation start date.
func (f *Facility) Year() string {
	if len(f.OperationStart) < 4 {
		return f.OperationStart
	}
	return f.OperationStart[:4]
}
