// Package checks implements the individual host diagnostics run by a sweep:
// filesystem capacity and inodes, load average, memory, uninterruptible
// processes, SELinux posture, firewall state, pending package updates,
// reboot requirement, and uptime.
//
// Each check implements the Check interface and is self-contained: it
// detects which tool or interface it can use on this host, collects the
// metric, classifies it, and returns exactly one result. Checks never
// return errors; anything that prevents a classification becomes an
// unknown result with a diagnostic detail.
//
// Kernel-interface metrics (disks, load, memory, uptime) are collected
// through gopsutil. Tool-gated metrics go through probe.Runner so every
// check can be exercised against a fake host in tests.
package checks
