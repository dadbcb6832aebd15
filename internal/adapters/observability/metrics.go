package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aurora", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aurora", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aurora", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	Bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aurora", Name: "bookings_total", Help: "Booking create outcomes."},
		[]string{"result"}, // result: ok|unavailable|invalid|error
	)
	MediaUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aurora", Name: "media_uploads_total", Help: "Room photo upload outcomes."},
		[]string{"backend", "result"}, // backend: s3|local, result: ok|error
	)
	MediaUploadLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aurora", Name: "media_upload_duration_seconds",
			Help:    "Room photo upload duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)
)

// Serve starts a standalone metrics listener when METRICS_ADDR is set,
// scraping the same registry the API mux exposes. The API also mounts
// /metrics on its own mux; this one exists so ops can scrape even when
// the API port is behind an LB.
func Serve(reg *prometheus.Registry) {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := metricsMux(reg)

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, CacheEvents, Bookings, MediaUploads, MediaUploadLatency)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func metricsMux(reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))
	return mux
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveBooking(result string) {
	Bookings.WithLabelValues(result).Inc()
}

func ObserveMediaUpload(backend, result string, dur time.Duration) {
	MediaUploads.WithLabelValues(backend, result).Inc()
	MediaUploadLatency.WithLabelValues(backend).Observe(dur.Seconds())
}
