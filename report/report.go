package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/hostmedic/hostmedic/result"
)

// Scheme is the set of colors used when rendering a report.
type Scheme struct {
	// Banner colors the start and completion banners.
	Banner *color.Color

	// Section colors check section headings.
	Section *color.Color

	// OK, Warning, and Unknown color the per-status markers and lines.
	OK      *color.Color
	Warning *color.Color
	Unknown *color.Color
}

// DefaultScheme returns the standard terminal color scheme.
func DefaultScheme() Scheme {
	return Scheme{
		Banner:  color.New(color.FgCyan, color.Bold),
		Section: color.New(color.Bold),
		OK:      color.New(color.FgGreen),
		Warning: color.New(color.FgYellow, color.Bold),
		Unknown: color.New(color.FgMagenta),
	}
}

// Monochrome returns a scheme that renders without any color codes,
// regardless of terminal detection.
func Monochrome() Scheme {
	plain := color.New()
	plain.DisableColor()
	return Scheme{Banner: plain, Section: plain, OK: plain, Warning: plain, Unknown: plain}
}

// Renderer writes sweep reports as terminal text.
type Renderer struct {
	scheme Scheme
}

// NewRenderer creates a renderer with the given color scheme.
func NewRenderer(scheme Scheme) *Renderer {
	return &Renderer{scheme: scheme}
}

// statusMarker returns the line marker and color for a status.
func (r *Renderer) statusMarker(s result.Status) (string, *color.Color) {
	switch s {
	case result.StatusWarning:
		return "!", r.scheme.Warning
	case result.StatusUnknown:
		return "?", r.scheme.Unknown
	default:
		return "+", r.scheme.OK
	}
}

// Render writes the full report to w: banner, one section per check in
// sweep order, and the completion banner.
func (r *Renderer) Render(w io.Writer, rep *result.Report) error {
	host := rep.Hostname
	if host == "" {
		host = "unknown host"
	}

	r.scheme.Banner.Fprintf(w, "=== hostmedic sweep - %s - %s ===\n",
		host, rep.StartedAt.Format(time.RFC1123))
	if rep.Kernel != "" {
		fmt.Fprintf(w, "kernel %s, run %s\n", rep.Kernel, rep.RunID)
	} else {
		fmt.Fprintf(w, "run %s\n", rep.RunID)
	}

	for i := range rep.Results {
		r.section(w, &rep.Results[i])
	}

	fmt.Fprintln(w)
	r.scheme.Banner.Fprintf(w, "=== sweep complete in %s - %s ===\n",
		rep.Duration.Round(time.Millisecond), r.completionLine(rep))
	return nil
}

func (r *Renderer) section(w io.Writer, cr *result.CheckResult) {
	fmt.Fprintln(w)
	if cr.Duration > 0 {
		r.scheme.Section.Fprintf(w, "--- %s (%s)\n", cr.Title, cr.Duration.Round(time.Millisecond))
	} else {
		r.scheme.Section.Fprintf(w, "--- %s\n", cr.Title)
	}

	marker, tint := r.statusMarker(cr.Status)
	tint.Fprintf(w, "  [%s] %s\n", marker, cr.Summary)
	for _, detail := range cr.Details {
		tint.Fprintf(w, "      %s %s\n", marker, detail)
	}
}

func (r *Renderer) completionLine(rep *result.Report) string {
	parts := []string{
		fmt.Sprintf("%d ok", rep.Summary.OK),
		fmt.Sprintf("%d warnings", rep.Summary.Warnings),
		fmt.Sprintf("%d unknown", rep.Summary.Unknowns),
	}
	if rep.Partial {
		parts = append(parts, "partial")
	}
	return strings.Join(parts, ", ")
}
