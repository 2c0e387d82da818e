package result

import (
	"encoding/json"
	"fmt"
	"io"
)

// ExportFormat represents the output format for a sweep report.
type ExportFormat string

const (
	// FormatText renders the report as a human-readable terminal listing.
	FormatText ExportFormat = "text"

	// FormatJSON renders the report as indented JSON.
	FormatJSON ExportFormat = "json"
)

// IsValid returns true if the export format is valid.
func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// String returns the string representation of the export format.
func (f ExportFormat) String() string {
	return string(f)
}

// ParseExportFormat parses a string into an ExportFormat value.
// Returns an error if the string is not a valid format.
func ParseExportFormat(s string) (ExportFormat, error) {
	f := ExportFormat(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid export format: %s", s)
	}
	return f, nil
}

// WriteJSON writes the report to w as indented JSON followed by a newline.
func WriteJSON(w io.Writer, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
