package common

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"
)

// ShutdownHook runs after the context is done but before the server shuts
// down. Errors are logged and shutdown continues.
type ShutdownHook func(ctx context.Context) error

const defaultHookTimeout = 5 * time.Second

// ServeUntilDone starts server in the background and blocks until ctx is done.
// Hooks then run in order, each with its own timeout inside the overall
// shutdown deadline, before the server is shut down.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	common.ServeUntilDone(ctx, server, "metrics", 10*time.Second, flushHook)
func ServeUntilDone(ctx context.Context, server *http.Server, name string, shutdownTimeout time.Duration, hooks ...ShutdownHook) {
	go func() {
		log.Printf("starting %s on %s", name, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("%s listen error: %v", name, err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down %s", name)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	RunHooks(shutdownCtx, hooks...)

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	} else {
		log.Printf("%s shutdown complete", name)
	}
}

func RunHooks(ctx context.Context, hooks ...ShutdownHook) {
	for i, h := range hooks {
		if h == nil {
			continue
		}
		hCtx, hCancel := context.WithTimeout(ctx, defaultHookTimeout)
		if err := h(hCtx); err != nil {
			log.Printf("shutdown hook %d failed: %v", i, err)
		}
		if errors.Is(hCtx.Err(), context.DeadlineExceeded) {
			log.Printf("shutdown hook %d timed out", i)
		}
		hCancel()
	}
}

// MetricsServer builds the server for the /metrics endpoint with the
// timeouts used for every listener here.
func MetricsServer(addr string, handler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
