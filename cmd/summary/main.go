package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/matst80/energy-explorer/pkg/catalog"
	"github.com/matst80/energy-explorer/pkg/storage"
)

var dataRoot = "data"
var dataURL = ""

func init() {
	_ = godotenv.Load(".env")
	if v, ok := os.LookupEnv("DATA_ROOT"); ok {
		dataRoot = v
	}
	if v, ok := os.LookupEnv("DATA_URL"); ok {
		dataURL = v
	}
}

func main() {
	flag.StringVar(&dataRoot, "data", dataRoot, "folder with the dataset files")
	flag.StringVar(&dataURL, "data-url", dataURL, "base url to fetch the datasets from")
	flag.Parse()

	var src storage.Source = storage.NewDiskStorage(dataRoot)
	if dataURL != "" {
		src = storage.NewHTTPSource(dataURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	data, err := storage.NewLoader(src, time.Local).LoadAll(ctx)
	if err != nil {
		log.Fatalf("could not load datasets: %v", err)
	}

	store := catalog.NewStore(data.Facilities, data.LastUpdate)
	catalog.Summarize(store, data.Production, data.Trade).Write(os.Stdout)
}
