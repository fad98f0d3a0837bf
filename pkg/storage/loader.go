package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/matst80/energy-explorer/pkg/catalog"
	"github.com/matst80/energy-explorer/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadedRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "explorer_loaded_records",
		Help: "Records loaded per dataset",
	}, []string{"dataset"})
	skippedRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "explorer_skipped_records_total",
		Help: "Records dropped while loading because of an unreadable date",
	}, []string{"dataset"})
)

type Datasets struct {
	Facilities []types.Facility
	Production []types.Record
	Trade      []types.Record
	LastUpdate string
}

type Loader struct {
	Source   Source
	Location *time.Location
}

func NewLoader(source Source, location *time.Location) *Loader {
	if location == nil {
		location = time.Local
	}
	return &Loader{Source: source, Location: location}
}

func isGzip(data []byte) bool {
	return len(data) > 2 && data[0] == 0x1f && data[1] == 0x8b
}

// DecodeJson unmarshals data into out, gunzipping it first when needed.
func DecodeJson(data []byte, out any) error {
	if isGzip(data) {
		zipReader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return err
		}
		defer zipReader.Close()
		if data, err = io.ReadAll(zipReader); err != nil {
			return err
		}
	}
	return sonic.Unmarshal(data, out)
}

func (l *Loader) fetchJson(ctx context.Context, name string, out any) error {
	data, err := l.Source.Fetch(ctx, name)
	if err != nil {
		return err
	}
	if err = DecodeJson(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDatasetUnavailable, name, err)
	}
	return nil
}

func (l *Loader) LoadFacilities(ctx context.Context) ([]types.Facility, error) {
	ret := make([]types.Facility, 0)
	if err := l.fetchJson(ctx, FacilitiesFile, &ret); err != nil {
		return nil, err
	}
	loadedRecords.WithLabelValues(string(types.DatasetFacilities)).Set(float64(len(ret)))
	return ret, nil
}

// LoadSeries reads a time series file. Records with an unreadable date are
// skipped, vectors are fitted to arity.
func (l *Loader) LoadSeries(ctx context.Context, dataset types.Dataset, name string, arity int) ([]types.Record, error) {
	raw := make([]types.RawRecord, 0)
	if err := l.fetchJson(ctx, name, &raw); err != nil {
		return nil, err
	}
	ret := make([]types.Record, 0, len(raw))
	for i := range raw {
		r, err := raw[i].ToRecord(l.Location, arity)
		if err != nil {
			log.Printf("skipping %s record %d: %v", dataset, i, err)
			skippedRecords.WithLabelValues(string(dataset)).Inc()
			continue
		}
		ret = append(ret, r)
	}
	loadedRecords.WithLabelValues(string(dataset)).Set(float64(len(ret)))
	return ret, nil
}

// LoadLastUpdate returns the marker, empty when missing or not a date.
func (l *Loader) LoadLastUpdate(ctx context.Context) string {
	data, err := l.Source.Fetch(ctx, LastUpdateFile)
	if err != nil {
		log.Printf("no last update marker: %v", err)
		return ""
	}
	marker, ok := catalog.ValidLastUpdate(string(data))
	if !ok {
		log.Printf("ignoring last update marker %q", strings.TrimSpace(string(data)))
	}
	return marker
}

// LoadAll fetches every dataset in parallel. Any failing dataset fails the
// whole load; the last update marker is optional.
func (l *Loader) LoadAll(ctx context.Context) (*Datasets, error) {
	ret := &Datasets{}
	var wg sync.WaitGroup
	errs := make([]error, 3)

	wg.Add(4)
	go func() {
		defer wg.Done()
		ret.Facilities, errs[0] = l.LoadFacilities(ctx)
	}()
	go func() {
		defer wg.Done()
		ret.Production, errs[1] = l.LoadSeries(ctx, types.DatasetProduction, ProductionFile, types.ProductionArity)
	}()
	go func() {
		defer wg.Done()
		ret.Trade, errs[2] = l.LoadSeries(ctx, types.DatasetTrade, TradeFile, types.TradeArity)
	}()
	go func() {
		defer wg.Done()
		ret.LastUpdate = l.LoadLastUpdate(ctx)
	}()
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	log.Printf("loaded %d facilities, %d production and %d trade records", len(ret.Facilities), len(ret.Production), len(ret.Trade))
	return ret, nil
}
