package checks

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/hostmedic/hostmedic/result"
)

// Uptime reports how long the host has been up. It is informational and
// never warns.
type Uptime struct {
	uptime func(ctx context.Context) (uint64, error)
}

// NewUptime creates the uptime check.
func NewUptime() *Uptime {
	return &Uptime{uptime: host.UptimeWithContext}
}

// Name returns the unique identifier for this check.
func (c *Uptime) Name() string { return "uptime" }

// Title returns the section heading for this check.
func (c *Uptime) Title() string { return "Uptime" }

// Run reads the host uptime and renders it.
func (c *Uptime) Run(ctx context.Context) result.CheckResult {
	seconds, err := c.uptime(ctx)
	if err != nil {
		return result.Unknown(c.Name(), c.Title(),
			"could not read host uptime", err.Error())
	}
	return result.OK(c.Name(), c.Title(), "up "+formatUptime(seconds))
}

// formatUptime renders an uptime in seconds as "Nd Nh Nm".
func formatUptime(seconds uint64) string {
	days := seconds / 86400
	hours := seconds % 86400 / 3600
	minutes := seconds % 3600 / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
