package api

import "context"

// HealthMonitorStatus reads the platform's health-monitor toggle.
func (c *Client) HealthMonitorStatus(ctx context.Context) (HealthMonitorStatus, error) {
	var result HealthMonitorStatus
	if err := c.get(ctx, "/system/health-monitor/status", nil, &result); err != nil {
		return HealthMonitorStatus{}, err
	}
	return result, nil
}

// ToggleHealthMonitor enables or disables the platform's health monitoring.
func (c *Client) ToggleHealthMonitor(ctx context.Context, enabled bool) (HealthMonitorStatus, error) {
	var result HealthMonitorStatus
	body := map[string]bool{"enabled": enabled}
	if err := c.post(ctx, "/system/health-monitor/toggle", body, &result); err != nil {
		return HealthMonitorStatus{}, err
	}
	return result, nil
}
