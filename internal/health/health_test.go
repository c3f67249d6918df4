package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cognigraph/console/pkg/api"
)

type fakeUpstream struct {
	monitor    api.HealthMonitorStatus
	monitorErr error
	convert    api.ConvertHealth
	convertErr error
}

func (f *fakeUpstream) HealthMonitorStatus(ctx context.Context) (api.HealthMonitorStatus, error) {
	return f.monitor, f.monitorErr
}

func (f *fakeUpstream) ConvertHealth(ctx context.Context) (api.ConvertHealth, error) {
	return f.convert, f.convertErr
}

func fixedSample(stats HostStats, err error) func(ctx context.Context) (HostStats, error) {
	return func(ctx context.Context) (HostStats, error) {
		return stats, err
	}
}

func widgetByID(t *testing.T, widgets []Widget, id string) Widget {
	t.Helper()
	for _, w := range widgets {
		if w.ID == id {
			return w
		}
	}
	t.Fatalf("widget %q not found in %+v", id, widgets)
	return Widget{}
}

func TestCollect_AllProbesHealthy(t *testing.T) {
	t.Parallel()

	c := NewCollector(CollectorParams{
		Upstream: &fakeUpstream{
			monitor: api.HealthMonitorStatus{Enabled: true},
			convert: api.ConvertHealth{Status: "ok", Formatters: []string{"alpaca", "sharegpt"}},
		},
		Sample: fixedSample(HostStats{
			CPUPercent:    12.5,
			MemoryPercent: 40.0,
			MemoryUsed:    2 * 1024 * 1024 * 1024,
			MemoryTotal:   8 * 1024 * 1024 * 1024,
			Uptime:        90 * time.Minute,
		}, nil),
	})

	report := c.Collect(context.Background())

	if !report.MonitorEnabled {
		t.Fatal("expected monitor to be reported enabled")
	}
	for _, w := range report.Widgets {
		if w.Degraded {
			t.Fatalf("unexpected degraded widget %+v", w)
		}
	}
	if got := widgetByID(t, report.Widgets, "cpu").Value; got != "12.5%" {
		t.Fatalf("got cpu %q, want %q", got, "12.5%")
	}
	if got := widgetByID(t, report.Widgets, "convert").Value; got != "ok" {
		t.Fatalf("got convert status %q, want %q", got, "ok")
	}
}

func TestCollect_UpstreamFailureDegradesOnlyItsWidget(t *testing.T) {
	t.Parallel()

	c := NewCollector(CollectorParams{
		Upstream: &fakeUpstream{
			monitorErr: errors.New("connection refused"),
			convert:    api.ConvertHealth{Status: "ok"},
		},
		Sample: fixedSample(HostStats{CPUPercent: 5}, nil),
	})

	report := c.Collect(context.Background())

	monitor := widgetByID(t, report.Widgets, "monitor")
	if !monitor.Degraded || monitor.Value != "unreachable" {
		t.Fatalf("expected degraded monitor widget, got %+v", monitor)
	}
	if w := widgetByID(t, report.Widgets, "convert"); w.Degraded {
		t.Fatalf("convert widget must not degrade with the monitor: %+v", w)
	}
	if w := widgetByID(t, report.Widgets, "cpu"); w.Degraded {
		t.Fatalf("host widgets must not degrade with the monitor: %+v", w)
	}
	if report.MonitorEnabled {
		t.Fatal("unreachable monitor must report disabled")
	}
}

func TestCollect_HostSampleFailureDegradesHostWidget(t *testing.T) {
	t.Parallel()

	c := NewCollector(CollectorParams{
		Upstream: &fakeUpstream{convert: api.ConvertHealth{Status: "ok"}},
		Sample:   fixedSample(HostStats{}, errors.New("proc not mounted")),
	})

	report := c.Collect(context.Background())

	hostWidget := widgetByID(t, report.Widgets, "host")
	if !hostWidget.Degraded {
		t.Fatalf("expected degraded host widget, got %+v", hostWidget)
	}
	if w := widgetByID(t, report.Widgets, "convert"); w.Degraded {
		t.Fatalf("convert widget must not degrade with the host sampler: %+v", w)
	}
}

func TestCollect_StableWidgetOrder(t *testing.T) {
	t.Parallel()

	c := NewCollector(CollectorParams{
		Upstream: &fakeUpstream{convert: api.ConvertHealth{Status: "ok"}},
		Sample:   fixedSample(HostStats{}, nil),
	})

	report := c.Collect(context.Background())
	want := []string{"cpu", "memory", "uptime", "monitor", "convert"}
	if len(report.Widgets) != len(want) {
		t.Fatalf("got %d widgets, want %d", len(report.Widgets), len(want))
	}
	for i, id := range want {
		if report.Widgets[i].ID != id {
			t.Fatalf("widget %d: got %q, want %q", i, report.Widgets[i].ID, id)
		}
	}
}
