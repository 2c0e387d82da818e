package checks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hostmedic/hostmedic/probe"
	"github.com/hostmedic/hostmedic/result"
)

// DState counts processes blocked in uninterruptible sleep. Such processes
// usually point at stuck I/O and cannot be killed, so any count above zero
// is a warning, with one detail line per matching process.
type DState struct {
	runner probe.Runner
}

// NewDState creates the uninterruptible-process check.
func NewDState(r probe.Runner) *DState {
	return &DState{runner: r}
}

// Name returns the unique identifier for this check.
func (c *DState) Name() string { return "dstate" }

// Title returns the section heading for this check.
func (c *DState) Title() string { return "Uninterruptible processes" }

// Run lists the process table and matches entries whose state field is
// exactly "D".
func (c *DState) Run(ctx context.Context) result.CheckResult {
	res, err := c.runner.Run(ctx, probe.Config{
		Command: "ps",
		Args:    []string{"-eo", "state=,pid=,comm="},
	})
	if err != nil {
		if errors.Is(err, probe.ErrToolAbsent) {
			return result.Unknown(c.Name(), c.Title(),
				"process lister not present on host")
		}
		return result.Unknown(c.Name(), c.Title(),
			"could not list processes", err.Error())
	}
	if res.ExitCode != 0 {
		return result.Unknown(c.Name(), c.Title(),
			"process lister failed",
			fmt.Sprintf("exit code %d: %s", res.ExitCode, strings.TrimSpace(string(res.Stderr))))
	}

	var details []string
	for _, line := range strings.Split(res.Text(), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		if fields[0] != "D" {
			continue
		}
		details = append(details, fmt.Sprintf(
			"%s (pid %s) in uninterruptible sleep", fields[2], fields[1]))
	}

	if len(details) > 0 {
		return result.Warning(c.Name(), c.Title(),
			fmt.Sprintf("%d processes in uninterruptible sleep", len(details)),
			details...)
	}
	return result.OK(c.Name(), c.Title(),
		"no processes in uninterruptible sleep")
}
