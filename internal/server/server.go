// Package server is the keep-alive stub: hosting platforms that idle out
// processes get pinged on /, humans get /healthz, Prometheus gets /metrics.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"barkeep/internal/version"
)

func newRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("I'm alive"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","app":"` + version.AppName + `"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Run serves until ctx is done. Returns nil on clean shutdown.
func Run(ctx context.Context, addr string) error {
	r := newRouter()

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Println("[WARN] Keep-alive server shutdown:", err)
		}
	}()

	log.Printf("[INFO] Keep-alive server listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
