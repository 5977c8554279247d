package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleResult() *RunResult {
	return &RunResult{
		GeneratedAt:    time.Date(2026, time.May, 12, 18, 0, 0, 0, time.UTC),
		ListingURL:     "https://m.facebook.com/StreamwoodBiking/events/",
		Identifiers:    []string{"111", "222", "333"},
		PagesParsed:    3,
		CalendarEvents: 2,
		DroppedNoStart: 1,
		CalendarFile:   "streamwood_biking.ics",
	}
}

func TestWriteOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Discovered 3 events",
		"Dropped 1 events without a start time",
		"Wrote 2 events to streamwood_biking.ics",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "  111") {
		t.Error("identifiers listed without verbose")
	}
}

func TestWriteOutput_TextVerboseListsIdentifiers(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, true); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}
	for _, id := range []string{"111", "222", "333"} {
		if !strings.Contains(buf.String(), "  "+id) {
			t.Errorf("verbose output missing identifier %s", id)
		}
	}
}

func TestWriteOutput_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	result := &RunResult{CalendarFile: "streamwood_biking.ics"}
	if err := WriteOutput(&buf, result, FormatText, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}
	if got := buf.String(); got != "No events discovered.\n" {
		t.Errorf("output = %q", got)
	}
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatJSON, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	var decoded RunResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.CalendarEvents != 2 || len(decoded.Identifiers) != 3 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), OutputFormat("yaml"), false); err == nil {
		t.Error("WriteOutput() succeeded with unknown format")
	}
}
