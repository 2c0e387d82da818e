package checks

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/hostmedic/hostmedic/result"
	"github.com/hostmedic/hostmedic/threshold"
)

// Memory checks used physical memory against a percentage bound.
//
// The percentage is computed as usedMB*100/totalMB in integer arithmetic,
// truncating instead of rounding. The truncation is kept deliberately so
// classifications match earlier releases exactly.
type Memory struct {
	virtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	limit         threshold.Threshold
}

// NewMemory creates the memory check with the given used-percent bound.
func NewMemory(percent float64) *Memory {
	return &Memory{
		virtualMemory: mem.VirtualMemoryWithContext,
		limit: threshold.Threshold{
			Metric:     "mem_percent",
			Bound:      percent,
			Comparator: threshold.GreaterThan,
		},
	}
}

// Name returns the unique identifier for this check.
func (c *Memory) Name() string { return "memory" }

// Title returns the section heading for this check.
func (c *Memory) Title() string { return "Memory usage" }

// Run reads memory usage and classifies the truncated used percentage.
func (c *Memory) Run(ctx context.Context) result.CheckResult {
	vm, err := c.virtualMemory(ctx)
	if err != nil {
		return result.Unknown(c.Name(), c.Title(),
			"could not read memory usage",
			errDetail(err))
	}

	usedMB := vm.Used / 1024 / 1024
	totalMB := vm.Total / 1024 / 1024
	if totalMB == 0 {
		return result.Unknown(c.Name(), c.Title(),
			"total memory reported as zero")
	}

	percent := usedMB * 100 / totalMB

	summary := fmt.Sprintf("%d MB of %d MB used (%d%%, threshold %g%%)",
		usedMB, totalMB, percent, c.limit.Bound)

	if c.limit.Breached(float64(percent)) {
		return result.Warning(c.Name(), c.Title(), summary,
			fmt.Sprintf("memory usage %d%% exceeds %g%%", percent, c.limit.Bound))
	}
	return result.OK(c.Name(), c.Title(), summary)
}
