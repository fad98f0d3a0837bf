package storage

import (
	"context"
	"errors"
	"time"
)

const (
	FacilitiesFile = "facilities.json.gz"
	ProductionFile = "production.json.gz"
	TradeFile      = "trade.json.gz"
	LastUpdateFile = "last-update.txt"
)

var (
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	ErrCacheMiss          = errors.New("cache miss")
)

// Source returns the raw bytes of a named dataset file, gzipped or not.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, expiration time.Duration) error
}

// DateStamp keys fetched data to one calendar day.
func DateStamp(t time.Time) string {
	return t.Format("20060102")
}

// UntilEndOfDay is the time left until the next local midnight of now.
func UntilEndOfDay(now time.Time) time.Duration {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return midnight.Sub(now)
}
