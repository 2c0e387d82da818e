package result

import "fmt"

// Status represents the classification of a single diagnostic check.
type Status string

const (
	// StatusOK indicates the check ran and found no threshold or
	// expectation breach.
	StatusOK Status = "ok"

	// StatusWarning indicates at least one threshold or expected-state
	// breach was detected by the check.
	StatusWarning Status = "warning"

	// StatusUnknown indicates the check could not determine an answer:
	// no capable tool or interface was found on the host, the probe timed
	// out, or its output could not be parsed.
	StatusUnknown Status = "unknown"
)

// statusRanks orders statuses by severity for aggregation. Higher ranks
// dominate when summarizing a sweep.
var statusRanks = map[Status]int{
	StatusOK:      0,
	StatusUnknown: 1,
	StatusWarning: 2,
}

// IsValid returns true if the status is one of the defined values.
func (s Status) IsValid() bool {
	switch s {
	case StatusOK, StatusWarning, StatusUnknown:
		return true
	default:
		return false
	}
}

// Rank returns the numeric severity rank of the status. Returns -1 for
// invalid statuses.
func (s Status) Rank() int {
	if r, ok := statusRanks[s]; ok {
		return r
	}
	return -1
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a string into a Status value.
// Returns an error if the string is not a valid status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return status, nil
}
