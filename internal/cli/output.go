package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// OutputFormat specifies the run-summary format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RunResult summarizes one pipeline run for the summary output.
type RunResult struct {
	GeneratedAt    time.Time `json:"generated_at"`
	ListingURL     string    `json:"listing_url"`
	Identifiers    []string  `json:"identifiers"`
	PagesParsed    int       `json:"pages_parsed"`
	CalendarEvents int       `json:"calendar_events"`
	DroppedNoStart int       `json:"dropped_no_start"`
	CalendarFile   string    `json:"calendar_file"`

	// Metrics holds the run's counter/timing snapshot; only populated in
	// verbose mode.
	Metrics map[string]interface{} `json:"metrics,omitempty"`
}

// WriteOutput writes the run summary in the specified format
func WriteOutput(w io.Writer, result *RunResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the summary as indented JSON
func writeJSON(w io.Writer, result *RunResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs the summary as human-readable text
func writeText(w io.Writer, result *RunResult, verbose bool) error {
	if len(result.Identifiers) == 0 {
		fmt.Fprintln(w, "No events discovered.")
		return nil
	}

	fmt.Fprintf(w, "Discovered %d events from %s\n", len(result.Identifiers), result.ListingURL)
	if verbose {
		for _, id := range result.Identifiers {
			fmt.Fprintf(w, "  %s\n", id)
		}
	}

	if result.DroppedNoStart > 0 {
		fmt.Fprintf(w, "Dropped %d events without a start time\n", result.DroppedNoStart)
	}
	fmt.Fprintf(w, "Wrote %d events to %s\n", result.CalendarEvents, result.CalendarFile)
	return nil
}
