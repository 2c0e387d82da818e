package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/hostmedic/hostmedic/detect"
	"github.com/hostmedic/hostmedic/probe"
	"github.com/hostmedic/hostmedic/result"
)

// enforcingMode is the expected SELinux mode after normalization.
const enforcingMode = "enforcing"

// SELinux checks that mandatory access control is in enforcing mode.
// The effective mode comes from the live query tool when installed, falling
// back to the persistent config file. Both sources are normalized to
// lowercase before comparison; the detail text names which source answered.
type SELinux struct {
	runner probe.Runner
	chain  detect.Chain
}

// NewSELinux creates the SELinux posture check.
func NewSELinux(r probe.Runner) *SELinux {
	return &SELinux{
		runner: r,
		chain:  detect.SELinux(r),
	}
}

// Name returns the unique identifier for this check.
func (c *SELinux) Name() string { return "selinux" }

// Title returns the section heading for this check.
func (c *SELinux) Title() string { return "SELinux" }

// Run resolves the effective SELinux mode through the detected capability
// and classifies it against the enforcing expectation.
func (c *SELinux) Run(ctx context.Context) result.CheckResult {
	cand, ok := c.chain.Detect(ctx)
	if !ok {
		return result.Unknown(c.Name(), c.Title(),
			"selinux tooling not present on this host")
	}

	switch cand.Name {
	case "getenforce":
		return c.fromLiveQuery(ctx)
	case "config":
		return c.fromConfigFile()
	default:
		return result.Unknown(c.Name(), c.Title(),
			fmt.Sprintf("unhandled selinux capability %q", cand.Name))
	}
}

func (c *SELinux) fromLiveQuery(ctx context.Context) result.CheckResult {
	res, err := c.runner.Run(ctx, probe.Config{Command: "getenforce"})
	if err != nil {
		return result.Unknown(c.Name(), c.Title(),
			"selinux enforcement query failed", err.Error())
	}
	if res.ExitCode != 0 {
		return result.Unknown(c.Name(), c.Title(),
			"selinux enforcement query failed",
			fmt.Sprintf("exit code %d", res.ExitCode))
	}

	mode := strings.ToLower(res.Text())
	if mode == "" {
		return result.Unknown(c.Name(), c.Title(),
			"selinux enforcement query returned no output")
	}
	return c.classify(mode, "live query")
}

func (c *SELinux) fromConfigFile() result.CheckResult {
	data, err := c.runner.ReadFile(detect.SELinuxConfigPath)
	if err != nil {
		return result.Unknown(c.Name(), c.Title(),
			"could not read selinux config", err.Error())
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		value, found := strings.CutPrefix(line, "SELINUX=")
		if !found {
			continue
		}
		mode := strings.ToLower(strings.TrimSpace(value))
		if mode == "" {
			break
		}
		return c.classify(mode, "config file")
	}

	return result.Unknown(c.Name(), c.Title(),
		"selinux config present but no SELINUX= entry found")
}

func (c *SELinux) classify(mode, source string) result.CheckResult {
	summary := fmt.Sprintf("selinux mode is %s (%s)", mode, source)
	if mode != enforcingMode {
		return result.Warning(c.Name(), c.Title(), summary,
			fmt.Sprintf("selinux is %s, expected %s", mode, enforcingMode))
	}
	return result.OK(c.Name(), c.Title(), summary)
}
