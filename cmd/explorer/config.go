package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DataRoot       string
	DataURL        string
	RedisURL       string
	RedisPassword  string
	RedisDB        int
	MetricsAddress string
	WeekStart      time.Weekday
	Location       *time.Location
	StartURL       string
	LoadTimeout    time.Duration
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

// LoadConfig reads the environment (optionally .env) and then the flags,
// flags win.
func LoadConfig(args []string) (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		DataRoot:       env("DATA_ROOT", "data"),
		DataURL:        env("DATA_URL", ""),
		RedisURL:       env("REDIS_URL", ""),
		RedisPassword:  env("REDIS_PASSWORD", ""),
		MetricsAddress: env("METRICS_ADDRESS", ""),
		LoadTimeout:    2 * time.Minute,
	}
	if v := env("REDIS_DB", ""); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	weekStart := env("WEEK_START", "sunday")
	tzName := env("TZ_NAME", "Local")

	fs := flag.NewFlagSet("explorer", flag.ContinueOnError)
	fs.StringVar(&cfg.DataRoot, "data", cfg.DataRoot, "folder with the dataset files")
	fs.StringVar(&cfg.DataURL, "data-url", cfg.DataURL, "base url to fetch the datasets from, overrides -data")
	fs.StringVar(&cfg.MetricsAddress, "metrics", cfg.MetricsAddress, "address to serve /metrics on")
	fs.StringVar(&cfg.StartURL, "url", "", "url to restore the view state from")
	fs.StringVar(&weekStart, "week-start", weekStart, "first day of a week bucket")
	fs.StringVar(&tzName, "tz", tzName, "time zone for calendar buckets")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	day, ok := weekdays[strings.ToLower(weekStart)]
	if !ok {
		return cfg, fmt.Errorf("invalid week start %q", weekStart)
	}
	cfg.WeekStart = day

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return cfg, fmt.Errorf("invalid time zone: %w", err)
	}
	cfg.Location = loc
	return cfg, nil
}
