package contract

import (
	"os"

	"github.com/fatih/color"

	"github.com/n8n-pulse/pulse/schema"
)

// Color variables for console output.
var (
	HighColor   = color.New(color.FgGreen, color.Bold) // reliable trend, enough history
	MediumColor = color.New(color.FgYellow)            // usable but noisy trend
	LowColor    = color.New(color.FgRed)               // little signal, treat as a guess
)

// ConfidenceLabel returns the plain text label for a prediction confidence
// level. This is the form used for CSV and JSON printing.
func ConfidenceLabel(c schema.Confidence) string {
	switch c {
	case schema.HighConfidence:
		return "High"
	case schema.MediumConfidence:
		return "Medium"
	default:
		return "Low"
	}
}

// ColorConfidenceLabel returns a colored confidence label for console output.
func ColorConfidenceLabel(c schema.Confidence) string {
	text := ConfidenceLabel(c)
	switch c {
	case schema.HighConfidence:
		return HighColor.Sprint(text)
	case schema.MediumConfidence:
		return MediumColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output based on
// the provided file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateLabel truncates a display label to a maximum width with an ellipsis
// suffix. Requires maxWidth > 3 so there is room for both the ellipsis and at
// least one character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}
