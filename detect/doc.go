// Package detect selects which system tool or interface a diagnostic check
// should use on the current host.
//
// Distributions disagree on firewall front ends, package managers, and
// mandatory-access-control tooling, so each subsystem declares a fixed,
// priority-ordered chain of candidates. Detection probes candidates in
// order and returns the first one present; a host where none is present
// yields no capability, which downstream checks report as unknown rather
// than as an error.
//
// Presence probes are side-effect free: they look up binaries, stat files,
// or query the service manager's unit registry, and never change host state.
package detect
