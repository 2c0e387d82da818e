package checks

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/hostmedic/hostmedic/result"
	"github.com/hostmedic/hostmedic/threshold"
)

// pseudoFilesystems are mounted filesystem types with no meaningful
// capacity: memory-backed, device, kernel, and snapshot-overlay types.
var pseudoFilesystems = map[string]bool{
	"tmpfs":       true,
	"devtmpfs":    true,
	"devfs":       true,
	"devpts":      true,
	"squashfs":    true,
	"overlay":     true,
	"proc":        true,
	"sysfs":       true,
	"cgroup":      true,
	"cgroup2":     true,
	"autofs":      true,
	"mqueue":      true,
	"tracefs":     true,
	"fusectl":     true,
	"configfs":    true,
	"securityfs":  true,
	"pstore":      true,
	"debugfs":     true,
	"hugetlbfs":   true,
	"ramfs":       true,
	"binfmt_misc": true,
	"bpf":         true,
	"efivarfs":    true,
	"nsfs":        true,
	"rpc_pipefs":  true,
}

// Filesystem checks space and inode usage on every real mounted filesystem.
// Space and inode breaches are tracked independently: a filesystem can
// appear in one, both, or neither detail set.
type Filesystem struct {
	partitions func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	usage      func(ctx context.Context, path string) (*disk.UsageStat, error)
	space      threshold.Threshold
	inodes     threshold.Threshold
}

// NewFilesystem creates the filesystem check with the given space and inode
// usage bounds in percent.
func NewFilesystem(spacePercent, inodePercent float64) *Filesystem {
	return &Filesystem{
		partitions: disk.PartitionsWithContext,
		usage:      disk.UsageWithContext,
		space: threshold.Threshold{
			Metric:     "used_percent",
			Bound:      spacePercent,
			Comparator: threshold.GreaterThan,
		},
		inodes: threshold.Threshold{
			Metric:     "inode_percent",
			Bound:      inodePercent,
			Comparator: threshold.GreaterThan,
		},
	}
}

// Name returns the unique identifier for this check.
func (c *Filesystem) Name() string { return "filesystem" }

// Title returns the section heading for this check.
func (c *Filesystem) Title() string { return "Filesystem usage" }

// Run enumerates mounted filesystems, excludes pseudo types, and classifies
// space and inode usage per mountpoint.
func (c *Filesystem) Run(ctx context.Context) result.CheckResult {
	parts, err := c.partitions(ctx, false)
	if err != nil {
		return result.Unknown(c.Name(), c.Title(),
			"could not enumerate mounted filesystems",
			err.Error())
	}

	var spaceSamples, inodeSamples []threshold.Sample
	seen := map[string]bool{}
	for _, p := range parts {
		if pseudoFilesystems[p.Fstype] || seen[p.Mountpoint] {
			continue
		}
		seen[p.Mountpoint] = true

		u, err := c.usage(ctx, p.Mountpoint)
		if err != nil {
			// A single unreadable mount must not hide the rest.
			continue
		}
		spaceSamples = append(spaceSamples, threshold.Sample{
			Entity: p.Mountpoint,
			Value:  u.UsedPercent,
		})
		if u.InodesTotal > 0 {
			inodeSamples = append(inodeSamples, threshold.Sample{
				Entity: p.Mountpoint,
				Value:  u.InodesUsedPercent,
			})
		}
	}

	if len(spaceSamples) == 0 {
		return result.Unknown(c.Name(), c.Title(),
			"no real filesystems found among mounted entries")
	}

	var details []string
	for _, b := range c.space.Breaches(spaceSamples) {
		details = append(details, fmt.Sprintf(
			"%s is %.0f%% full (threshold %g%%)", b.Entity, b.Value, c.space.Bound))
	}
	for _, b := range c.inodes.Breaches(inodeSamples) {
		details = append(details, fmt.Sprintf(
			"%s has %.0f%% of inodes used (threshold %g%%)", b.Entity, b.Value, c.inodes.Bound))
	}

	if len(details) > 0 {
		return result.Warning(c.Name(), c.Title(),
			fmt.Sprintf("%d threshold breaches across %d filesystems", len(details), len(spaceSamples)),
			details...)
	}
	return result.OK(c.Name(), c.Title(),
		fmt.Sprintf("%d filesystems below space and inode thresholds", len(spaceSamples)))
}
