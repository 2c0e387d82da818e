// Package threshold classifies collected metrics against fixed or computed
// bounds.
//
// Evaluation is pure: a Threshold plus one or more Samples yields a breach
// decision and never touches the host. Per-entity thresholds (for example,
// one bound applied to every mounted filesystem) report each breaching
// entity individually so callers can emit one detail line per breach.
package threshold
