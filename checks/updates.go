package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/hostmedic/hostmedic/detect"
	"github.com/hostmedic/hostmedic/probe"
	"github.com/hostmedic/hostmedic/result"
)

// checkUpdateAvailable is the exit code yum and dnf use to signal that
// updates are pending.
const checkUpdateAvailable = 100

// Updates checks for pending package updates through the detected package
// manager. Any pending update warns; on apt-family hosts the subset tagged
// as security updates is counted separately.
type Updates struct {
	runner probe.Runner
	chain  detect.Chain
}

// NewUpdates creates the pending-updates check.
func NewUpdates(r probe.Runner) *Updates {
	return &Updates{
		runner: r,
		chain:  detect.PackageManager(r),
	}
}

// Name returns the unique identifier for this check.
func (c *Updates) Name() string { return "updates" }

// Title returns the section heading for this check.
func (c *Updates) Title() string { return "Pending updates" }

// Run resolves the installed package manager and counts pending updates
// from its list simulation.
func (c *Updates) Run(ctx context.Context) result.CheckResult {
	cand, ok := c.chain.Detect(ctx)
	if !ok {
		return result.Unknown(c.Name(), c.Title(),
			"no supported package manager present")
	}

	switch cand.Name {
	case "apt":
		return c.apt(ctx)
	case "yum":
		return c.checkUpdate(ctx, "yum")
	case "dnf":
		return c.checkUpdate(ctx, "dnf")
	default:
		return result.Unknown(c.Name(), c.Title(),
			fmt.Sprintf("unhandled package manager %q", cand.Name))
	}
}

func (c *Updates) apt(ctx context.Context) result.CheckResult {
	res, err := c.runner.Run(ctx, probe.Config{
		Command: "apt-get",
		Args:    []string{"-s", "upgrade"},
	})
	if err != nil {
		return result.Unknown(c.Name(), c.Title(),
			"apt upgrade simulation failed", err.Error())
	}
	if res.ExitCode != 0 {
		return result.Unknown(c.Name(), c.Title(),
			"apt upgrade simulation failed",
			fmt.Sprintf("exit code %d", res.ExitCode))
	}

	pending, security := 0, 0
	for _, line := range strings.Split(string(res.Stdout), "\n") {
		if !strings.HasPrefix(line, "Inst ") {
			continue
		}
		pending++
		if strings.Contains(line, "-security") {
			security++
		}
	}

	if pending > 0 {
		details := []string{fmt.Sprintf("%d packages can be upgraded", pending)}
		if security > 0 {
			details = append(details, fmt.Sprintf("%d security updates pending", security))
		}
		return result.Warning(c.Name(), c.Title(),
			fmt.Sprintf("%d updates pending (%d security)", pending, security),
			details...)
	}
	return result.OK(c.Name(), c.Title(), "system is up to date")
}

func (c *Updates) checkUpdate(ctx context.Context, manager string) result.CheckResult {
	res, err := c.runner.Run(ctx, probe.Config{
		Command: manager,
		Args:    []string{"check-update"},
	})
	if err != nil {
		return result.Unknown(c.Name(), c.Title(),
			manager+" check-update failed", err.Error())
	}

	switch res.ExitCode {
	case 0:
		return result.OK(c.Name(), c.Title(), "system is up to date")
	case checkUpdateAvailable:
		pending := 0
		for _, line := range strings.Split(res.Text(), "\n") {
			if strings.TrimSpace(line) != "" {
				pending++
			}
		}
		// check-update prefixes its listing with a header row.
		if pending > 0 {
			pending--
		}
		if pending == 0 {
			return result.OK(c.Name(), c.Title(), "system is up to date")
		}
		return result.Warning(c.Name(), c.Title(),
			fmt.Sprintf("%d updates pending", pending),
			fmt.Sprintf("%d packages can be upgraded via %s", pending, manager))
	default:
		return result.Unknown(c.Name(), c.Title(),
			manager+" check-update failed",
			fmt.Sprintf("exit code %d: %s", res.ExitCode, strings.TrimSpace(string(res.Stderr))))
	}
}
