package checks

import (
	"context"

	"github.com/hostmedic/hostmedic/probe"
	"github.com/hostmedic/hostmedic/result"
)

// Check is the interface every host diagnostic implements.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Title returns the human-readable section heading for this check.
	Title() string

	// Run executes the diagnostic and returns its classification.
	// Implementations honor ctx cancellation and never panic; conditions
	// that prevent a classification yield an unknown result.
	Run(ctx context.Context) result.CheckResult
}

// Default threshold values. They reproduce the classification bounds the
// sweep has always used; override them through the individual constructors.
const (
	// DefaultDiskUsedPercent is the space-usage bound per filesystem.
	DefaultDiskUsedPercent = 90.0

	// DefaultDiskInodePercent is the inode-usage bound per filesystem.
	DefaultDiskInodePercent = 90.0

	// DefaultMemoryPercent is the used-memory bound.
	DefaultMemoryPercent = 80.0

	// DefaultLoadFactor is multiplied by the core count to produce the
	// 1-minute load bound.
	DefaultLoadFactor = 0.8
)

// Defaults returns the fixed, ordered set of checks a sweep runs, built
// with default thresholds and the given host runner.
func Defaults(r probe.Runner) []Check {
	return []Check{
		NewFilesystem(DefaultDiskUsedPercent, DefaultDiskInodePercent),
		NewLoad(DefaultLoadFactor),
		NewMemory(DefaultMemoryPercent),
		NewDState(r),
		NewSELinux(r),
		NewFirewall(r),
		NewUpdates(r),
		NewReboot(r),
		NewUptime(),
	}
}
