// Package probe provides the low-level system access used by diagnostic
// checks: context-aware execution of external tools, binary lookup, and
// reads of files and proc-style interfaces.
//
// All access goes through the Runner interface so checks can be exercised
// against fake hosts in tests. System is the production implementation.
//
// A non-zero exit code is not an error: many diagnostic tools signal their
// answer through the exit status (e.g. a package manager reporting pending
// updates), so Run returns the populated Result and lets the caller decide.
// Only genuine execution failures (binary missing, permission denied,
// timeout) surface as errors.
package probe
