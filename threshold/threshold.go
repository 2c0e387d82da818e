package threshold

import "fmt"

// Comparator defines how a sample value is compared against a bound.
type Comparator string

const (
	// GreaterThan breaches when value > bound.
	GreaterThan Comparator = ">"

	// GreaterOrEqual breaches when value >= bound.
	GreaterOrEqual Comparator = ">="

	// Equal breaches when value == bound.
	Equal Comparator = "=="

	// NotEqual breaches when value != bound.
	NotEqual Comparator = "!="
)

// IsValid returns true if the comparator is one of the defined values.
func (c Comparator) IsValid() bool {
	switch c {
	case GreaterThan, GreaterOrEqual, Equal, NotEqual:
		return true
	default:
		return false
	}
}

// String returns the string representation of the comparator.
func (c Comparator) String() string {
	return string(c)
}

// Threshold binds a metric name to a bound and comparator.
type Threshold struct {
	// Metric names the measured quantity (e.g. "used_percent").
	Metric string

	// Bound is the value compared against.
	Bound float64

	// Comparator selects the breach condition.
	Comparator Comparator
}

// Sample is one measured value, optionally tied to an entity such as a
// mountpoint or process. Samples are ephemeral: collectors produce them and
// evaluation consumes them immediately.
type Sample struct {
	// Entity names what was measured, empty for host-global metrics.
	Entity string

	// Value is the measured quantity.
	Value float64
}

// Breached reports whether a single value violates the threshold.
// Invalid comparators never breach.
func (t Threshold) Breached(value float64) bool {
	switch t.Comparator {
	case GreaterThan:
		return value > t.Bound
	case GreaterOrEqual:
		return value >= t.Bound
	case Equal:
		return value == t.Bound
	case NotEqual:
		return value != t.Bound
	default:
		return false
	}
}

// Breaches evaluates the threshold against every sample and returns the
// breaching subset in input order. Each breaching entity is reported
// individually, never aggregated.
func (t Threshold) Breaches(samples []Sample) []Sample {
	var breached []Sample
	for _, s := range samples {
		if t.Breached(s.Value) {
			breached = append(breached, s)
		}
	}
	return breached
}

// String renders the threshold as "<metric> <comparator> <bound>".
func (t Threshold) String() string {
	return fmt.Sprintf("%s %s %g", t.Metric, t.Comparator, t.Bound)
}
