package main

import (
	"bufio"
	"context"
	"errors"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matst80/energy-explorer/pkg/common"
	"github.com/matst80/energy-explorer/pkg/explorer"
	"github.com/matst80/energy-explorer/pkg/storage"
	"github.com/matst80/energy-explorer/pkg/timeseries"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func source(cfg Config) (storage.Source, []common.ShutdownHook) {
	var src storage.Source
	if cfg.DataURL != "" {
		log.Printf("fetching datasets from %s", cfg.DataURL)
		src = storage.NewHTTPSource(cfg.DataURL)
	} else {
		log.Printf("reading datasets from %s", cfg.DataRoot)
		src = storage.NewDiskStorage(cfg.DataRoot)
	}
	if cfg.RedisURL == "" {
		return src, nil
	}
	cache := storage.NewRedisCache(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	return storage.NewCachedSource(src, cache), []common.ShutdownHook{
		func(ctx context.Context) error {
			return cache.Close()
		},
	}
}

// readCommands feeds stdin to the loop until eof or quit.
func readCommands(loop *common.Loop, sess *session) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd, err := parseCommand(scanner.Text())
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			loop.Post(func() { sess.out.Error(err) })
			continue
		}
		if cmd != nil && !loop.Post(func() { cmd(sess) }) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("reading commands: %v", err)
	}
	loop.Close()
}

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, hooks := source(cfg)
	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.LoadTimeout)
	data, err := storage.NewLoader(src, cfg.Location).LoadAll(loadCtx)
	cancelLoad()
	if err != nil {
		common.RunHooks(context.Background(), hooks...)
		log.Fatalf("could not load datasets, check the source and run again: %v", err)
	}

	location := &url.URL{Path: "/"}
	if cfg.StartURL != "" {
		if location, err = url.Parse(cfg.StartURL); err != nil {
			log.Fatalf("invalid -url: %v", err)
		}
	}

	if cfg.MetricsAddress != "" {
		go common.ServeUntilDone(ctx, common.MetricsServer(cfg.MetricsAddress, promhttp.Handler()), "metrics", 5*time.Second)
	}

	loop := common.NewLoop()
	out := &jsonOutput{w: os.Stdout}
	ctrl := explorer.New(data, explorer.Options{
		Scheduler: loop,
		Renderer:  out,
		URLWriter: out,
		Calendar:  timeseries.Calendar{Location: cfg.Location, WeekStart: cfg.WeekStart},
		Location:  location,
	})
	sess := &session{ctrl: ctrl, out: out}

	loop.Post(ctrl.Start)
	go readCommands(loop, sess)

	if err = loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("event loop stopped: %v", err)
	}
	// the loop has returned, nothing else touches the controller now
	ctrl.Flush()
	stop()
	common.RunHooks(context.Background(), hooks...)
}
