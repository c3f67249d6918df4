// Package health gathers the console's health widgets: local host stats and
// the platform's own health endpoints. Probes run concurrently and a failing
// probe degrades its widget only; the page always renders.
package health

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sync/errgroup"

	"github.com/cognigraph/console/pkg/api"
	"github.com/cognigraph/console/pkg/logger"
)

// Widget is one tile on the health view.
type Widget struct {
	ID       string
	Title    string
	Value    string
	Detail   string
	Degraded bool
}

// Report is the collected health page data.
type Report struct {
	Widgets        []Widget
	MonitorEnabled bool
}

// Upstream is the subset of the platform API the collector probes.
type Upstream interface {
	HealthMonitorStatus(ctx context.Context) (api.HealthMonitorStatus, error)
	ConvertHealth(ctx context.Context) (api.ConvertHealth, error)
}

// HostStats is a point-in-time sample of the console host.
type HostStats struct {
	CPUPercent    float64
	MemoryPercent float64
	MemoryUsed    uint64
	MemoryTotal   uint64
	Uptime        time.Duration
}

// Collector assembles the health report. The host sampler is injectable for
// tests; production uses gopsutil.
type Collector struct {
	upstream Upstream
	sample   func(ctx context.Context) (HostStats, error)
	timeout  time.Duration
}

type CollectorParams struct {
	Upstream Upstream
	// Sample overrides the host sampler. Defaults to gopsutil.
	Sample  func(ctx context.Context) (HostStats, error)
	Timeout time.Duration
}

func NewCollector(params CollectorParams) *Collector {
	sample := params.Sample
	if sample == nil {
		sample = sampleHost
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Collector{
		upstream: params.Upstream,
		sample:   sample,
		timeout:  timeout,
	}
}

func sampleHost(ctx context.Context) (HostStats, error) {
	var stats HostStats

	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return stats, fmt.Errorf("cpu sample: %w", err)
	}
	if len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return stats, fmt.Errorf("memory sample: %w", err)
	}
	stats.MemoryPercent = vm.UsedPercent
	stats.MemoryUsed = vm.Used
	stats.MemoryTotal = vm.Total

	uptime, err := host.UptimeWithContext(ctx)
	if err != nil {
		return stats, fmt.Errorf("uptime sample: %w", err)
	}
	stats.Uptime = time.Duration(uptime) * time.Second

	return stats, nil
}

// Collect gathers all widgets. Each probe has its own slot, so the widget
// order is stable regardless of which probe finishes first.
func (c *Collector) Collect(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		hostWidgets    []Widget
		monitorWidget  Widget
		convertWidget  Widget
		monitorEnabled bool
	)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		stats, err := c.sample(ctx)
		if err != nil {
			logger.Warn("host stats unavailable", "error", err)
			hostWidgets = []Widget{{
				ID: "host", Title: "Console Host",
				Value: "unavailable", Degraded: true,
			}}
			return nil
		}
		hostWidgets = []Widget{
			{
				ID: "cpu", Title: "CPU",
				Value: fmt.Sprintf("%.1f%%", stats.CPUPercent),
			},
			{
				ID: "memory", Title: "Memory",
				Value:  fmt.Sprintf("%.1f%%", stats.MemoryPercent),
				Detail: fmt.Sprintf("%d / %d MB", stats.MemoryUsed/1024/1024, stats.MemoryTotal/1024/1024),
			},
			{
				ID: "uptime", Title: "Host Uptime",
				Value: stats.Uptime.Truncate(time.Minute).String(),
			},
		}
		return nil
	})

	group.Go(func() error {
		status, err := c.upstream.HealthMonitorStatus(ctx)
		if err != nil {
			logger.Warn("health monitor probe failed", "error", err)
			monitorWidget = Widget{
				ID: "monitor", Title: "Platform Monitor",
				Value: "unreachable", Degraded: true,
			}
			return nil
		}
		monitorEnabled = status.Enabled
		value := "disabled"
		if status.Enabled {
			value = "enabled"
		}
		monitorWidget = Widget{
			ID: "monitor", Title: "Platform Monitor",
			Value: value, Detail: status.Message,
		}
		return nil
	})

	group.Go(func() error {
		convert, err := c.upstream.ConvertHealth(ctx)
		if err != nil {
			logger.Warn("convert service probe failed", "error", err)
			convertWidget = Widget{
				ID: "convert", Title: "Convert Service",
				Value: "unreachable", Degraded: true,
			}
			return nil
		}
		convertWidget = Widget{
			ID: "convert", Title: "Convert Service",
			Value:  convert.Status,
			Detail: fmt.Sprintf("%d formatters, %d loaders", len(convert.Formatters), len(convert.Loaders)),
		}
		return nil
	})

	// Probes never return errors, they degrade their widget instead.
	_ = group.Wait()

	widgets := make([]Widget, 0, len(hostWidgets)+2)
	widgets = append(widgets, hostWidgets...)
	widgets = append(widgets, monitorWidget, convertWidget)
	return Report{Widgets: widgets, MonitorEnabled: monitorEnabled}
}
