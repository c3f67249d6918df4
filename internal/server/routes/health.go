package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/pkg/logger"
)

// ToggleMonitorHandler flips the platform's health monitor.
func ToggleMonitorHandler(c echo.Context) error {
	a := app(c)
	ctx := c.Request().Context()

	status, err := a.API.HealthMonitorStatus(ctx)
	if err != nil {
		logger.Error("health monitor status failed", "err", err)
		failNotice(a.Store, err, "Health monitor is unreachable")
		return c.Redirect(http.StatusSeeOther, "/health")
	}

	toggled, err := a.API.ToggleHealthMonitor(ctx, !status.Enabled)
	if err != nil {
		logger.Error("health monitor toggle failed", "err", err)
		failNotice(a.Store, err, "Failed to toggle the health monitor")
		return c.Redirect(http.StatusSeeOther, "/health")
	}

	if toggled.Enabled {
		a.Store.PushNotice(state.NoticeSuccess, "Health monitor enabled")
	} else {
		a.Store.PushNotice(state.NoticeInfo, "Health monitor disabled")
	}
	return c.Redirect(http.StatusSeeOther, "/health")
}
