package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tickerpulse/backend/internal/api/handlers"
	"github.com/tickerpulse/backend/pkg/logger"
)

// Handlers bundles the route handlers the router wires up. Watchlist
// and Stream may be nil when their backing services are not configured.
type Handlers struct {
	Report    *handlers.ReportHandler
	Scan      *handlers.ScanHandler
	Watchlist *handlers.WatchlistHandler
	Stream    *handlers.StreamHandler
}

// NewRouter creates and configures the HTTP router.
func NewRouter(h Handlers, log *logger.Logger, metricsEnabled bool) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthCheckHandler).Methods("GET")
	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/report/{ticker}", h.Report.GetReport).Methods("GET")

	api.HandleFunc("/scan/movers", h.Scan.GetTopMovers).Methods("GET")
	api.HandleFunc("/scan/squeeze", h.Scan.GetSqueezeCandidates).Methods("GET")

	if h.Watchlist != nil {
		api.HandleFunc("/watchlist", h.Watchlist.List).Methods("GET")
		api.HandleFunc("/watchlist", h.Watchlist.Add).Methods("POST")
		api.HandleFunc("/watchlist/{ticker}", h.Watchlist.Remove).Methods("DELETE")
	}

	if h.Stream != nil {
		api.HandleFunc("/stream/{ticker}", h.Stream.StreamQuotes).Methods("GET")
	}

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	if metricsEnabled {
		r.Use(metricsMiddleware())
	}

	return r
}

// healthCheckHandler returns server health status.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "tickerpulse-api",
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics.
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
