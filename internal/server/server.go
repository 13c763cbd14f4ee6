package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"steamdeals/scanner/internal/config"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// New builds the HTTP server exposing the scan trigger. A scan pass can run
// for minutes in the worst case (retry backoff times window count), so the
// write timeout is generous.
func New(cfg config.ServerConfig, deals *DealsHandler) *http.Server {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/deals", deals.GetDeals).Methods("GET")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	handler := cors.Default().Handler(r)

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Minute,
	}
}

// Shutdown stops the server, waiting for in-flight scans to finish.
func Shutdown(ctx context.Context, srv *http.Server) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
