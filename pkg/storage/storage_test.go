package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/matst80/energy-explorer/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttl     map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	c.ttl[key] = expiration
	return nil
}

type countingSource struct {
	mu    sync.Mutex
	calls int
	files map[string][]byte
}

func (s *countingSource) Fetch(_ context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	data, ok := s.files[name]
	if !ok {
		return nil, ErrDatasetUnavailable
	}
	return data, nil
}

func gz(t *testing.T, data string) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

const facilitiesJson = `[
	{"SubCategory":"Wind","TotalPower":5000,"Municipality":"Sainte-Croix","Canton":"VD","BeginningOfOperation":"2013-11-01","lat":46.82,"lon":6.5},
	{"SubCategory":"Photovoltaic","TotalPower":"12.5","Municipality":"Bern","Canton":"BE"}
]`

const productionJson = `[
	{"date":"2021-03-02","prod":[1,2,3,4,5,6]},
	{"date":"not a date","prod":[1,1,1,1,1,1]},
	{"date":"2021-03-04","values":[1,2,3]}
]`

const tradeJson = `[{"date":"2021-03-02T01:00:00+01:00","trade":[1,2,3,4,5,6,7,8]}]`

func seed(t *testing.T, lastUpdate string) *DiskStorage {
	ds := NewDiskStorage(t.TempDir())
	require.NoError(t, ds.Save(FacilitiesFile, gz(t, facilitiesJson)))
	require.NoError(t, ds.Save("production.json", []byte(productionJson)))
	require.NoError(t, ds.Save(TradeFile, gz(t, tradeJson)))
	if lastUpdate != "" {
		require.NoError(t, ds.Save(LastUpdateFile, []byte(lastUpdate)))
	}
	return ds
}

func TestLoadAll(t *testing.T) {
	ds := seed(t, "2024-05-01\n")
	loader := NewLoader(ds, time.UTC)

	data, err := loader.LoadAll(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Facilities, 2)
	assert.Equal(t, "Wind", data.Facilities[0].Category)
	assert.True(t, data.Facilities[0].HasLocation())
	assert.Equal(t, 12.5, data.Facilities[1].TotalPowerKW)
	assert.False(t, data.Facilities[1].HasLocation())

	require.Len(t, data.Production, 2, "bad date skipped")
	assert.Equal(t, time.Date(2021, 3, 2, 0, 0, 0, 0, time.UTC), data.Production[0].Instant)
	assert.Equal(t, []float64{1, 2, 3, 0, 0, 0}, data.Production[1].Values)

	require.Len(t, data.Trade, 1)
	assert.Len(t, data.Trade[0].Values, types.TradeArity)
	assert.True(t, data.Trade[0].Instant.Equal(time.Date(2021, 3, 2, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, "2024-05-01", data.LastUpdate)
}

func TestLoadAllOptionalMarker(t *testing.T) {
	for _, marker := range []string{"", "yesterday"} {
		data, err := NewLoader(seed(t, marker), time.UTC).LoadAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "", data.LastUpdate)
	}
}

func TestLoadAllFailsOnMissingDataset(t *testing.T) {
	ds := NewDiskStorage(t.TempDir())
	require.NoError(t, ds.Save(FacilitiesFile, []byte(facilitiesJson)))
	_, err := NewLoader(ds, time.UTC).LoadAll(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatasetUnavailable))
}

func TestLoadAllFailsOnBrokenJson(t *testing.T) {
	ds := seed(t, "")
	require.NoError(t, ds.Save(TradeFile, []byte("{")))
	_, err := NewLoader(ds, time.UTC).LoadAll(context.Background())
	assert.ErrorIs(t, err, ErrDatasetUnavailable)
}

func TestHTTPSource(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("d")
		if r.URL.Path != "/data/"+FacilitiesFile {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(gz(t, facilitiesJson))
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL + "/data/")
	source.Now = func() time.Time { return time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC) }

	data, err := source.Fetch(context.Background(), FacilitiesFile)
	require.NoError(t, err)
	assert.Equal(t, "20240229", query)

	facilities := make([]types.Facility, 0)
	require.NoError(t, DecodeJson(data, &facilities))
	assert.Len(t, facilities, 2)

	_, err = source.Fetch(context.Background(), TradeFile)
	assert.ErrorIs(t, err, ErrDatasetUnavailable)
}

func TestCachedSource(t *testing.T) {
	source := &countingSource{files: map[string][]byte{"a.json": []byte("[]")}}
	cache := newMemCache()
	cached := NewCachedSource(source, cache)
	cached.Now = func() time.Time { return time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC) }

	for range 3 {
		data, err := cached.Fetch(context.Background(), "a.json")
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	}
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 6*time.Hour, cache.ttl["energy:20240101:a.json"])

	cached.Now = func() time.Time { return time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC) }
	_, err := cached.Fetch(context.Background(), "a.json")
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls, "new day refetches")

	_, err = cached.Fetch(context.Background(), "missing.json")
	assert.ErrorIs(t, err, ErrDatasetUnavailable)
}

func TestUntilEndOfDay(t *testing.T) {
	zurich, err := time.LoadLocation("Europe/Zurich")
	require.NoError(t, err)
	// spring forward, the day has 23 hours
	assert.Equal(t, 23*time.Hour, UntilEndOfDay(time.Date(2021, 3, 28, 0, 0, 0, 0, zurich)))
	assert.Equal(t, time.Minute, UntilEndOfDay(time.Date(2021, 3, 28, 23, 59, 0, 0, zurich)))
}
