package app

import (
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"go.uber.org/zap"

	"github.com/team2shop/storefront/pkg/metrics"
)

// initJob registers the recurring maintenance jobs.
func (a *Application) initJob() {
	// stale carts are the server-side stand-in for browser sessions
	// that ended without cleanup
	_, err := a.sched.AddFunc("@every 1h", func() {
		ttl := time.Duration(a.appConfig.Session.CartTTLHours) * time.Hour
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		if purged := a.carts.PurgeStale(ttl); purged > 0 {
			zap.S().Infof("purged %d stale carts", purged)
		}
	})
	if err != nil {
		zap.S().Errorf("register cart purge job: %v", err)
	}

	_, err = a.sched.AddFunc("@every 60s", a.collectSystemMetrics)
	if err != nil {
		zap.S().Errorf("register system metrics job: %v", err)
	}
}

// collectSystemMetrics samples host load into the metrics store.
func (a *Application) collectSystemMetrics() {
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		metrics.Record(metrics.SystemCpuuse, percents[0])
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		metrics.Record(metrics.SystemMemuse, vm.UsedPercent)
	}
}
