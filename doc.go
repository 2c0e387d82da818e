// Package hostmedic runs a single-shot health-diagnostic sweep of the local
// host: filesystem capacity and inodes, load, memory, uninterruptible
// processes, SELinux posture, firewall state, pending package updates,
// reboot requirement, and uptime.
//
// # Core Concepts
//
// The engine is organized around a small set of collaborators:
//
//   - Checks: independent diagnostics implementing the checks.Check
//     interface, one per subsystem
//   - Capability detection: per-subsystem priority chains that pick the
//     first tool or interface present on the host (package detect)
//   - Probing: context-aware execution of external tools and reads of
//     system interfaces (package probe)
//   - Thresholds: pure classification of collected metrics against fixed
//     or computed bounds (package threshold)
//   - Results: one immutable CheckResult per check, aggregated into a
//     Report (package result)
//
// # Running a Sweep
//
// Checks are mutually independent, so the sweep runs them on a bounded
// worker pool with a per-check timeout. A check that fails, times out, or
// has no usable tooling resolves to an unknown result; it never aborts the
// rest of the sweep. Cancelling the context returns the partial report.
//
//	sweep := hostmedic.NewSweep(
//		checks.Defaults(probe.System{}),
//		hostmedic.WithTimeout(10*time.Second),
//	)
//	report, err := sweep.Run(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Package report renders the aggregated results as colorized terminal
// sections or JSON. The cmd/hostmedic binary wraps all of this into a
// no-argument CLI that prints one titled section per check between a start
// and a completion banner.
package hostmedic
