package checks

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hostmedic/hostmedic/detect"
	"github.com/hostmedic/hostmedic/probe"
	"github.com/hostmedic/hostmedic/result"
)

// Reboot checks whether the host needs a restart. Signals are consulted in
// a fixed priority order and the first present signal is authoritative:
// distro marker file, marker file with package list, restart-advisory tool,
// and finally a comparison of the running kernel against the newest
// installed kernel image. A host exposing none of the signals is treated
// as not needing a reboot.
type Reboot struct {
	runner probe.Runner
	chain  detect.Chain
}

// NewReboot creates the reboot-required check.
func NewReboot(r probe.Runner) *Reboot {
	return &Reboot{
		runner: r,
		chain:  detect.RebootSignal(r),
	}
}

// Name returns the unique identifier for this check.
func (c *Reboot) Name() string { return "reboot" }

// Title returns the section heading for this check.
func (c *Reboot) Title() string { return "Reboot required" }

// Run resolves the first present reboot signal and evaluates it.
func (c *Reboot) Run(ctx context.Context) result.CheckResult {
	cand, ok := c.chain.Detect(ctx)
	if !ok {
		return result.OK(c.Name(), c.Title(), "no reboot signals present")
	}

	switch cand.Name {
	case "marker":
		return result.Warning(c.Name(), c.Title(),
			"system restart required",
			fmt.Sprintf("marker file %s present", detect.RebootMarkerPath))
	case "marker-pkgs":
		return c.markerPackages()
	case "needs-restarting":
		return c.advisory(ctx)
	case "kernel-compare":
		return c.kernelCompare(ctx)
	default:
		return result.Unknown(c.Name(), c.Title(),
			fmt.Sprintf("unhandled reboot signal %q", cand.Name))
	}
}

func (c *Reboot) markerPackages() result.CheckResult {
	data, err := c.runner.ReadFile(detect.RebootPackagesPath)
	if err != nil {
		return result.Warning(c.Name(), c.Title(),
			"system restart required",
			fmt.Sprintf("marker file %s present", detect.RebootPackagesPath))
	}

	count := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return result.Warning(c.Name(), c.Title(),
		"system restart required",
		fmt.Sprintf("%d packages require a restart", count))
}

func (c *Reboot) advisory(ctx context.Context) result.CheckResult {
	res, err := c.runner.Run(ctx, probe.Config{
		Command: "needs-restarting",
		Args:    []string{"-r"},
	})
	if err != nil {
		return result.Unknown(c.Name(), c.Title(),
			"restart advisory query failed", err.Error())
	}

	// needs-restarting -r exits 1 when a reboot is advised, 0 otherwise.
	switch res.ExitCode {
	case 0:
		return result.OK(c.Name(), c.Title(), "no restart required")
	case 1:
		return result.Warning(c.Name(), c.Title(),
			"system restart advised",
			"needs-restarting reports a reboot is needed")
	default:
		return result.Unknown(c.Name(), c.Title(),
			"restart advisory query failed",
			fmt.Sprintf("exit code %d", res.ExitCode))
	}
}

func (c *Reboot) kernelCompare(ctx context.Context) result.CheckResult {
	res, err := c.runner.Run(ctx, probe.Config{
		Command: "uname",
		Args:    []string{"-r"},
	})
	if err != nil || res.ExitCode != 0 {
		return result.Unknown(c.Name(), c.Title(),
			"could not determine running kernel version",
			errDetail(err))
	}
	running := res.Text()
	if running == "" {
		return result.Unknown(c.Name(), c.Title(),
			"running kernel version reported empty")
	}

	images, err := c.runner.Glob(detect.KernelImageGlob)
	if err != nil || len(images) == 0 {
		return result.Unknown(c.Name(), c.Title(),
			"could not enumerate installed kernel images",
			errDetail(err))
	}

	newest := ""
	for _, image := range images {
		version := strings.TrimPrefix(filepath.Base(image), "vmlinuz-")
		if newest == "" || versionLess(newest, version) {
			newest = version
		}
	}

	if newest != running {
		return result.Warning(c.Name(), c.Title(),
			"running kernel is not the newest installed",
			fmt.Sprintf("running %s, newest installed %s", running, newest))
	}
	return result.OK(c.Name(), c.Title(),
		fmt.Sprintf("running the newest installed kernel (%s)", running))
}

// versionLess reports whether kernel version a orders before b. Versions
// are compared segment-wise on digit runs with numeric ordering, falling
// back to lexical ordering for non-numeric segments.
func versionLess(a, b string) bool {
	as := splitVersion(a)
	bs := splitVersion(b)

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		var sa, sb string
		if i < len(as) {
			sa = as[i]
		}
		if i < len(bs) {
			sb = bs[i]
		}
		if sa == sb {
			continue
		}

		na, errA := strconv.Atoi(sa)
		nb, errB := strconv.Atoi(sb)
		if errA == nil && errB == nil {
			return na < nb
		}
		return sa < sb
	}
	return false
}

// splitVersion breaks a kernel version string into comparable segments at
// dots and dashes, e.g. "6.1.0-18-amd64" -> [6 1 0 18 amd64].
func splitVersion(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == '-'
	})
}
