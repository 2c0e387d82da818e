// Package result defines the outcome types produced by a diagnostic sweep.
//
// Each check yields exactly one CheckResult carrying a status classification,
// a one-line summary, and zero or more detail lines (one per breaching
// entity). A completed sweep aggregates its results into a Report together
// with host identity, timing, and per-status counts.
//
// Results are immutable once created: checks build them through the OK,
// Warning, and Unknown constructors and the orchestrator owns the final
// ordered list.
package result
