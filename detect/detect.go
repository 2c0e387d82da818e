package detect

import "context"

// Candidate is one tool or interface a subsystem check may use.
type Candidate struct {
	// Name identifies the candidate (e.g. "firewalld", "apt").
	Name string

	// Present reports whether the candidate is usable on this host.
	// It must be side-effect free.
	Present func(ctx context.Context) bool
}

// Chain is a fixed, priority-ordered list of candidates for one subsystem.
type Chain struct {
	// Subsystem names the area the chain serves (e.g. "firewall").
	Subsystem string

	// Candidates are probed in order; earlier entries win.
	Candidates []Candidate
}

// Detect returns the first candidate whose presence probe succeeds.
// The second return value is false when no candidate is present.
func (c Chain) Detect(ctx context.Context) (Candidate, bool) {
	for _, cand := range c.Candidates {
		if ctx.Err() != nil {
			return Candidate{}, false
		}
		if cand.Present != nil && cand.Present(ctx) {
			return cand, true
		}
	}
	return Candidate{}, false
}

// Names returns the candidate names in priority order.
func (c Chain) Names() []string {
	names := make([]string, 0, len(c.Candidates))
	for _, cand := range c.Candidates {
		names = append(names, cand.Name)
	}
	return names
}
