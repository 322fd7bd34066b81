// Package report renders sweep results as CSV and Markdown tables.
package report

import (
	"fmt"
	"strings"

	"github.com/osse101/RuinSim_Go/internal/domain"
)

// Format names a report rendering
type Format string

// Supported formats
const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// ParseFormat resolves a format name. "md" is accepted for markdown.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, name)
}

// ContentType returns the HTTP media type for the format
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "text/markdown; charset=utf-8"
}

// Render renders the sweep in the requested format
func Render(f Format, sweep *domain.SweepResult) (string, error) {
	switch f {
	case FormatCSV:
		return RenderCSV(sweep), nil
	case FormatMarkdown:
		return RenderMarkdown(sweep), nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, f)
}
