package checks

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"

	"github.com/hostmedic/hostmedic/result"
	"github.com/hostmedic/hostmedic/threshold"
)

// Load checks the 1-minute load average against a per-core bound.
// The bound is computed at run time as core_count x factor, so a 4-core
// host with the default factor warns above 3.2.
type Load struct {
	counts func(ctx context.Context, logical bool) (int, error)
	avg    func(ctx context.Context) (*load.AvgStat, error)
	factor float64
}

// NewLoad creates the load check with the given per-core factor.
func NewLoad(factor float64) *Load {
	return &Load{
		counts: cpu.CountsWithContext,
		avg:    load.AvgWithContext,
		factor: factor,
	}
}

// Name returns the unique identifier for this check.
func (c *Load) Name() string { return "load" }

// Title returns the section heading for this check.
func (c *Load) Title() string { return "Load average" }

// Run reads the core count and 1/5/15-minute load averages and classifies
// the 1-minute value.
func (c *Load) Run(ctx context.Context) result.CheckResult {
	cores, err := c.counts(ctx, true)
	if err != nil || cores <= 0 {
		return result.Unknown(c.Name(), c.Title(),
			"could not determine CPU core count",
			errDetail(err))
	}

	avg, err := c.avg(ctx)
	if err != nil {
		return result.Unknown(c.Name(), c.Title(),
			"could not read load averages",
			errDetail(err))
	}

	t := threshold.Threshold{
		Metric:     "load_1min",
		Bound:      float64(cores) * c.factor,
		Comparator: threshold.GreaterThan,
	}

	summary := fmt.Sprintf("load averages %.2f %.2f %.2f on %d cores (threshold %.2f)",
		avg.Load1, avg.Load5, avg.Load15, cores, t.Bound)
	if cores == 1 {
		summary = fmt.Sprintf("load averages %.2f %.2f %.2f on 1 core (threshold %.2f)",
			avg.Load1, avg.Load5, avg.Load15, t.Bound)
	}

	if t.Breached(avg.Load1) {
		return result.Warning(c.Name(), c.Title(), summary,
			fmt.Sprintf("1-minute load %.2f exceeds %.2f", avg.Load1, t.Bound))
	}
	return result.OK(c.Name(), c.Title(), summary)
}

// errDetail renders an optional error as a detail line, empty-safe.
func errDetail(err error) string {
	if err == nil {
		return "value unavailable"
	}
	return err.Error()
}
