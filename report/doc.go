// Package report renders a completed sweep as human-readable terminal
// output: a banner with host identity and timing, one titled section per
// check with its warning or diagnostic lines, and a completion banner with
// per-status counts.
//
// Formatting is presentation only. The color scheme is injected and
// stateless, so callers decide about color once (flag, NO_COLOR, pipe
// detection) and the renderer never consults the environment itself.
package report
