package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/hostmedic/hostmedic/detect"
	"github.com/hostmedic/hostmedic/probe"
	"github.com/hostmedic/hostmedic/result"
)

// Firewall checks that the host's packet filter is actually enforcing.
// The front end is resolved through the firewall capability chain and each
// tool carries its own breach rule:
//
//   - firewalld: anything other than a successful "running" answer warns,
//     because a failing firewall-cmd means the daemon is down.
//   - ufw: a status text containing "inactive" warns.
//   - nftables: a registered but not active service unit warns.
//   - iptables: an empty rule set warns.
type Firewall struct {
	runner probe.Runner
	chain  detect.Chain
}

// NewFirewall creates the firewall state check.
func NewFirewall(r probe.Runner) *Firewall {
	return &Firewall{
		runner: r,
		chain:  detect.Firewall(r),
	}
}

// Name returns the unique identifier for this check.
func (c *Firewall) Name() string { return "firewall" }

// Title returns the section heading for this check.
func (c *Firewall) Title() string { return "Firewall" }

// Run resolves the installed firewall front end and applies its breach rule.
func (c *Firewall) Run(ctx context.Context) result.CheckResult {
	cand, ok := c.chain.Detect(ctx)
	if !ok {
		return result.Unknown(c.Name(), c.Title(),
			"no supported firewall tooling present")
	}

	switch cand.Name {
	case "firewalld":
		return c.firewalld(ctx)
	case "ufw":
		return c.ufw(ctx)
	case "nftables":
		return c.nftables(ctx)
	case "iptables":
		return c.iptables(ctx)
	default:
		return result.Unknown(c.Name(), c.Title(),
			fmt.Sprintf("unhandled firewall capability %q", cand.Name))
	}
}

func (c *Firewall) firewalld(ctx context.Context) result.CheckResult {
	res, err := c.runner.Run(ctx, probe.Config{
		Command: "firewall-cmd",
		Args:    []string{"--state"},
	})
	// A failing state query means the daemon is not serving; that is the
	// breach signal itself, not an indeterminate answer.
	if err != nil || res.ExitCode != 0 || res.Text() != "running" {
		return result.Warning(c.Name(), c.Title(),
			"firewalld is installed but not running",
			"firewall-cmd --state did not report running")
	}
	return result.OK(c.Name(), c.Title(), "firewalld is running")
}

func (c *Firewall) ufw(ctx context.Context) result.CheckResult {
	res, err := c.runner.Run(ctx, probe.Config{
		Command: "ufw",
		Args:    []string{"status"},
	})
	if err != nil {
		return result.Unknown(c.Name(), c.Title(),
			"could not query ufw status", err.Error())
	}
	if strings.Contains(strings.ToLower(res.Text()), "inactive") {
		return result.Warning(c.Name(), c.Title(),
			"ufw is installed but inactive",
			"ufw status reports inactive")
	}
	return result.OK(c.Name(), c.Title(), "ufw is active")
}

func (c *Firewall) nftables(ctx context.Context) result.CheckResult {
	res, err := c.runner.Run(ctx, probe.Config{
		Command: "systemctl",
		Args:    []string{"is-active", "nftables"},
	})
	if err != nil {
		return result.Unknown(c.Name(), c.Title(),
			"could not query nftables service state", err.Error())
	}
	if res.Text() != "active" {
		return result.Warning(c.Name(), c.Title(),
			"nftables service is registered but not active",
			fmt.Sprintf("nftables service state is %q", res.Text()))
	}
	return result.OK(c.Name(), c.Title(), "nftables service is active")
}

func (c *Firewall) iptables(ctx context.Context) result.CheckResult {
	res, err := c.runner.Run(ctx, probe.Config{
		Command: "iptables",
		Args:    []string{"-S"},
	})
	if err != nil {
		return result.Unknown(c.Name(), c.Title(),
			"could not list iptables rules", err.Error())
	}
	if res.ExitCode != 0 {
		return result.Unknown(c.Name(), c.Title(),
			"iptables rule listing failed",
			fmt.Sprintf("exit code %d: %s", res.ExitCode, strings.TrimSpace(string(res.Stderr))))
	}

	rules := 0
	for _, line := range strings.Split(res.Text(), "\n") {
		// -P lines are chain policies, -N user chains; only -A entries
		// are actual rules.
		if strings.HasPrefix(strings.TrimSpace(line), "-A ") {
			rules++
		}
	}

	if rules == 0 {
		return result.Warning(c.Name(), c.Title(),
			"iptables is the only firewall tooling and has no active rules",
			"no active rules in any chain")
	}
	return result.OK(c.Name(), c.Title(),
		fmt.Sprintf("iptables has %d active rules", rules))
}
