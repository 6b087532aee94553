package commands

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ovasyliv/disksim/simulator"
)

var (
	// Prometheus metrics (gauges)
	promMetrics = struct {
		virtualTime     prometheus.Gauge
		cacheHitRate    prometheus.Gauge
		cacheHits       prometheus.Gauge
		cacheMisses     prometheus.Gauge
		totalRequests   prometheus.Gauge
		pendingRequests prometheus.Gauge
		seekCount       prometheus.Gauge
		seekDistance    prometheus.Gauge
		headTrack       prometheus.Gauge
		avgWaitTime     prometheus.Gauge
	}{
		virtualTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "disksim_virtual_time_ms",
			Help: "Current virtual time in milliseconds",
		}),
		cacheHitRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "disksim_cache_hit_rate",
			Help: "Buffer cache hit rate (0-1)",
		}),
		cacheHits: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "disksim_cache_hits",
			Help: "Buffer cache hits",
		}),
		cacheMisses: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "disksim_cache_misses",
			Help: "Buffer cache misses",
		}),
		totalRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "disksim_requests_completed",
			Help: "Disk requests completed",
		}),
		pendingRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "disksim_requests_pending",
			Help: "Requests queued at the I/O scheduler",
		}),
		seekCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "disksim_seek_count",
			Help: "Head seeks performed",
		}),
		seekDistance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "disksim_seek_distance_tracks",
			Help: "Total head travel in tracks",
		}),
		headTrack: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "disksim_head_track",
			Help: "Current disk head track",
		}),
		avgWaitTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "disksim_avg_wait_time_ms",
			Help: "Average request wait time in milliseconds",
		}),
	}
)

func initPrometheusMetrics() {
	prometheus.MustRegister(
		promMetrics.virtualTime,
		promMetrics.cacheHitRate,
		promMetrics.cacheHits,
		promMetrics.cacheMisses,
		promMetrics.totalRequests,
		promMetrics.pendingRequests,
		promMetrics.seekCount,
		promMetrics.seekDistance,
		promMetrics.headTrack,
		promMetrics.avgWaitTime,
	)
}

func updatePrometheusMetrics(stats *simulator.Statistics, state map[string]interface{}) {
	hitRate := 0.0
	if lookups := stats.CacheHits + stats.CacheMisses; lookups > 0 {
		hitRate = float64(stats.CacheHits) / float64(lookups)
	}

	promMetrics.cacheHitRate.Set(hitRate)
	promMetrics.cacheHits.Set(float64(stats.CacheHits))
	promMetrics.cacheMisses.Set(float64(stats.CacheMisses))
	promMetrics.totalRequests.Set(float64(stats.TotalRequests))
	promMetrics.seekCount.Set(float64(stats.SeekCount))
	promMetrics.seekDistance.Set(float64(stats.TotalSeekDistance))
	promMetrics.avgWaitTime.Set(stats.AvgWaitTime)

	if vt, ok := state["virtualTime"].(float64); ok {
		promMetrics.virtualTime.Set(vt)
	}
	if track, ok := state["headTrack"].(int); ok {
		promMetrics.headTrack.Set(float64(track))
	}
	if pending, ok := state["pendingRequests"].(int); ok {
		promMetrics.pendingRequests.Set(float64(pending))
	}
}
