package detect

import (
	"context"
	"strings"

	"github.com/hostmedic/hostmedic/probe"
)

// Well-known host paths probed by the built-in chains.
const (
	// SELinuxConfigPath is the persistent SELinux mode configuration file.
	SELinuxConfigPath = "/etc/selinux/config"

	// RebootMarkerPath is the marker file Debian-family hosts create when
	// a restart is required.
	RebootMarkerPath = "/var/run/reboot-required"

	// RebootPackagesPath lists the packages that triggered the restart
	// requirement, one per line.
	RebootPackagesPath = "/var/run/reboot-required.pkgs"

	// KernelImageGlob matches installed kernel images on disk.
	KernelImageGlob = "/boot/vmlinuz-*"
)

// Firewall returns the firewall front-end chain:
// firewalld, then ufw, then nftables (only when its service unit is
// registered), then raw iptables.
func Firewall(r probe.Runner) Chain {
	return Chain{
		Subsystem: "firewall",
		Candidates: []Candidate{
			{Name: "firewalld", Present: binaryPresent(r, "firewall-cmd")},
			{Name: "ufw", Present: binaryPresent(r, "ufw")},
			{Name: "nftables", Present: func(ctx context.Context) bool {
				return UnitRegistered(ctx, r, "nftables.service")
			}},
			{Name: "iptables", Present: binaryPresent(r, "iptables")},
		},
	}
}

// PackageManager returns the package-manager chain: apt, then yum, then dnf.
func PackageManager(r probe.Runner) Chain {
	return Chain{
		Subsystem: "updates",
		Candidates: []Candidate{
			{Name: "apt", Present: binaryPresent(r, "apt-get")},
			{Name: "yum", Present: binaryPresent(r, "yum")},
			{Name: "dnf", Present: binaryPresent(r, "dnf")},
		},
	}
}

// SELinux returns the SELinux mode-resolution chain: the live enforcement
// query tool, then the persistent config file.
func SELinux(r probe.Runner) Chain {
	return Chain{
		Subsystem: "selinux",
		Candidates: []Candidate{
			{Name: "getenforce", Present: binaryPresent(r, "getenforce")},
			{Name: "config", Present: filePresent(r, SELinuxConfigPath)},
		},
	}
}

// RebootSignal returns the reboot-required signal chain. The first present
// signal is authoritative: once a marker file exists, neither the advisory
// tool nor the kernel-version comparison is consulted.
func RebootSignal(r probe.Runner) Chain {
	return Chain{
		Subsystem: "reboot",
		Candidates: []Candidate{
			{Name: "marker", Present: filePresent(r, RebootMarkerPath)},
			{Name: "marker-pkgs", Present: filePresent(r, RebootPackagesPath)},
			{Name: "needs-restarting", Present: binaryPresent(r, "needs-restarting")},
			{Name: "kernel-compare", Present: func(ctx context.Context) bool {
				matches, err := r.Glob(KernelImageGlob)
				return err == nil && len(matches) > 0
			}},
		},
	}
}

// UnitRegistered reports whether a systemd unit is registered on the host,
// regardless of its active state.
func UnitRegistered(ctx context.Context, r probe.Runner, unit string) bool {
	res, err := r.Run(ctx, probe.Config{
		Command: "systemctl",
		Args:    []string{"list-unit-files", unit, "--no-legend"},
	})
	if err != nil || res.ExitCode != 0 {
		return false
	}
	return strings.Contains(res.Text(), unit)
}

func binaryPresent(r probe.Runner, name string) func(ctx context.Context) bool {
	return func(context.Context) bool {
		return probe.BinaryExists(r, name)
	}
}

func filePresent(r probe.Runner, path string) func(ctx context.Context) bool {
	return func(context.Context) bool {
		return r.FileExists(path)
	}
}
