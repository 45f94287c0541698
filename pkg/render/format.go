package render

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrUnknownFormat is returned for an output format outside [Formats].
	ErrUnknownFormat = errors.New("unknown render format")

	// ErrNoConverter is returned for PNG and PDF output when rsvg-convert is
	// not installed.
	ErrNoConverter = errors.New("rsvg-convert not found")
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
	FormatDOT = "dot"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatDOT}

// ParseFormat normalizes s and checks it against [Formats]. An empty string
// selects SVG.
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if f == "" {
		return FormatSVG, nil
	}
	if f == "gv" {
		return FormatDOT, nil
	}
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("%w: %q (must be one of: %s)", ErrUnknownFormat, s, strings.Join(Formats, ", "))
	}
	return f, nil
}

// ContentType is the MIME type of format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/vnd.graphviz"
	}
}
