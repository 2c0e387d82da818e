package result

import (
	"time"
)

// CheckResult is the outcome of one diagnostic check.
type CheckResult struct {
	// Name is the unique identifier of the check (e.g. "filesystem").
	Name string `json:"name"`

	// Title is the human-readable section heading for the check.
	Title string `json:"title"`

	// Status is the classification of the check outcome.
	Status Status `json:"status"`

	// Summary is a one-line description of what was measured or why the
	// check could not determine an answer.
	Summary string `json:"summary"`

	// Details lists individual breaches or diagnostics, one line per
	// affected entity (e.g. one line per filesystem over threshold).
	Details []string `json:"details,omitempty"`

	// Duration is how long the check took to run.
	Duration time.Duration `json:"duration_ns"`
}

// OK creates a passing result with a summary and no details.
func OK(name, title, summary string) CheckResult {
	return CheckResult{
		Name:    name,
		Title:   title,
		Status:  StatusOK,
		Summary: summary,
	}
}

// Warning creates a breaching result. Each detail line should name exactly
// one breaching entity.
func Warning(name, title, summary string, details ...string) CheckResult {
	return CheckResult{
		Name:    name,
		Title:   title,
		Status:  StatusWarning,
		Summary: summary,
		Details: details,
	}
}

// Unknown creates a result for a check that could not determine an answer.
// The summary should say why (tool absent, timeout, unparseable output).
func Unknown(name, title, summary string, details ...string) CheckResult {
	return CheckResult{
		Name:    name,
		Title:   title,
		Status:  StatusUnknown,
		Summary: summary,
		Details: details,
	}
}

// Summary holds per-status counts for a completed sweep.
type Summary struct {
	OK       int `json:"ok"`
	Warnings int `json:"warnings"`
	Unknowns int `json:"unknowns"`
}

// Report aggregates the ordered results of a full diagnostic sweep.
type Report struct {
	// RunID uniquely identifies this sweep invocation.
	RunID string `json:"run_id"`

	// Hostname is the name of the inspected host.
	Hostname string `json:"hostname"`

	// Kernel is the running kernel version, when obtainable.
	Kernel string `json:"kernel,omitempty"`

	// StartedAt is when the sweep began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the wall-clock time of the whole sweep.
	Duration time.Duration `json:"duration_ns"`

	// Partial is true when the sweep was cancelled before every check
	// finished; Results still contains one entry per scheduled check.
	Partial bool `json:"partial,omitempty"`

	// Results holds one entry per check, in the fixed sweep order.
	Results []CheckResult `json:"results"`

	// Summary contains counts by status.
	Summary Summary `json:"summary"`
}

// Summarize computes per-status counts for a result list.
func Summarize(results []CheckResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusOK:
			s.OK++
		case StatusWarning:
			s.Warnings++
		case StatusUnknown:
			s.Unknowns++
		}
	}
	return s
}

// HasWarnings returns true if any check classified as a warning.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// HasUnknowns returns true if any check could not determine an answer.
func (r *Report) HasUnknowns() bool {
	return r.Summary.Unknowns > 0
}
