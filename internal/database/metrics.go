package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "learnhub",
		Subsystem: "db",
		Name:      "query_duration_seconds",
		Help:      "Duration of database calls by kind.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"kind"})

	queryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "learnhub",
		Subsystem: "db",
		Name:      "query_errors_total",
		Help:      "Database calls that returned an error, by kind.",
	}, []string{"kind"})
)

func recordQuery(kind string, duration time.Duration, err error) {
	queryDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		queryErrors.WithLabelValues(kind).Inc()
	}
}

// PoolCollector exposes sql.DBStats as gauges
type PoolCollector struct {
	manager *Manager

	open    *prometheus.Desc
	inUse   *prometheus.Desc
	idle    *prometheus.Desc
	waits   *prometheus.Desc
	waitDur *prometheus.Desc
}

// NewPoolCollector creates a collector for m's pool statistics
func NewPoolCollector(m *Manager) *PoolCollector {
	return &PoolCollector{
		manager: m,
		open:    prometheus.NewDesc("learnhub_db_open_connections", "Open connections.", nil, nil),
		inUse:   prometheus.NewDesc("learnhub_db_in_use_connections", "Connections in use.", nil, nil),
		idle:    prometheus.NewDesc("learnhub_db_idle_connections", "Idle connections.", nil, nil),
		waits:   prometheus.NewDesc("learnhub_db_wait_count_total", "Connections waited for.", nil, nil),
		waitDur: prometheus.NewDesc("learnhub_db_wait_duration_seconds_total", "Time blocked waiting for a connection.", nil, nil),
	}
}

// Describe implements prometheus.Collector
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.open
	ch <- c.inUse
	ch <- c.idle
	ch <- c.waits
	ch <- c.waitDur
}

// Collect implements prometheus.Collector
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.manager.Stats()
	ch <- prometheus.MustNewConstMetric(c.open, prometheus.GaugeValue, float64(stats.OpenConnections))
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(stats.InUse))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(stats.Idle))
	ch <- prometheus.MustNewConstMetric(c.waits, prometheus.CounterValue, float64(stats.WaitCount))
	ch <- prometheus.MustNewConstMetric(c.waitDur, prometheus.CounterValue, stats.WaitDuration.Seconds())
}
