// Package metrics records storefront operation counters and host samples
// into an embedded time-series store under the workdir.
package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
	"go.uber.org/zap"
)

const (
	CatalogQuery    = "storefront_catalog_query"
	CatalogMutation = "storefront_catalog_mutation"
	ReviewFetch     = "storefront_review_fetch"
	ReviewSynth     = "storefront_review_synth"
	SystemCpuuse    = "storefront_system_cpuuse"
	SystemMemuse    = "storefront_system_memuse"
)

var (
	mu      sync.Mutex
	storage tstorage.Storage
)

// InitMetrics opens the time-series store below workdir. Safe to call once
// at startup; recording before init is a no-op.
func InitMetrics(workdir string) error {
	mu.Lock()
	defer mu.Unlock()
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(7*24*time.Hour),
	)
	if err != nil {
		return err
	}
	storage = s
	return nil
}

// Record writes one sample for metric at the current timestamp.
func Record(metric string, value float64) {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return
	}
	err := s.InsertRows([]tstorage.Row{
		{Metric: metric, DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: value}},
	})
	if err != nil {
		zap.L().Debug("metrics insert failed", zap.String("metric", metric), zap.Error(err))
	}
}

// Incr records a unit sample, the counter convention used by the stores.
func Incr(metric string) {
	Record(metric, 1)
}

// Range returns the raw datapoints for metric within [start, end].
func Range(metric string, start, end int64) ([]*tstorage.DataPoint, error) {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return nil, nil
	}
	points, err := s.Select(metric, nil, start, end)
	if err != nil {
		if err == tstorage.ErrNoDataPoints {
			return nil, nil
		}
		return nil, err
	}
	return points, nil
}

// Close flushes and closes the underlying store.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if storage != nil {
		if err := storage.Close(); err != nil {
			zap.L().Warn("metrics close failed", zap.Error(err))
		}
		storage = nil
	}
}
