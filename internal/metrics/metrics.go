package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the viewer's Prometheus metrics on its own registry.
type Collector struct {
	registry      *prometheus.Registry
	frameDuration prometheus.Histogram
	framesTotal   prometheus.Counter
	textureLoads  *prometheus.CounterVec
	viewport      *prometheus.GaugeVec
}

// NewCollector creates and registers all metrics.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "solarsystem_frame_duration_seconds",
			Help:    "Time spent updating controls and rendering one frame",
			Buckets: []float64{0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.1, 0.25},
		}),
		framesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solarsystem_frames_total",
			Help: "Total frames rendered",
		}),
		textureLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solarsystem_texture_loads_total",
				Help: "Texture loads by body and result",
			},
			[]string{"body", "result"},
		),
		viewport: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "solarsystem_viewport_pixels",
				Help: "Current viewport size",
			},
			[]string{"dimension"},
		),
	}
	c.registry.MustRegister(c.frameDuration, c.framesTotal, c.textureLoads, c.viewport)
	return c
}

// Registry exposes the underlying registry (tests, extra collectors).
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordFrame observes one frame's duration.
func (c *Collector) RecordFrame(d time.Duration) {
	c.frameDuration.Observe(d.Seconds())
	c.framesTotal.Inc()
}

// RecordTexture counts a finished texture load.
func (c *Collector) RecordTexture(body string, err error) {
	result := "ok"
	if err != nil {
		result = "placeholder"
	}
	c.textureLoads.WithLabelValues(body, result).Inc()
}

// SetViewport records the current viewport size.
func (c *Collector) SetViewport(w, h int) {
	c.viewport.WithLabelValues("width").Set(float64(w))
	c.viewport.WithLabelValues("height").Set(float64(h))
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
