package event

import (
	"regexp"
	"strings"
	"time"
)

// isoPattern matches ISO-8601-shaped datetimes as they appear inside script
// payloads: full date, literal T, time, and an optional numeric offset or Z.
var isoPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:[+-]\d{2}:?\d{2}|Z)?`)

// ISO layouts tried in order for script-embedded timestamps. Offsets may be
// written with or without the colon.
var isoZonedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
}

const isoNaiveLayout = "2006-01-02T15:04:05"

// Fragments pulled out of free-form text during lenient parsing.
var (
	monthDayPattern = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+\d{1,2}(?:,?\s+\d{4})?(?:\s+(?:at\s+)?\d{1,2}(?::\d{2})?\s*(?:AM|PM))?`)
	numericDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4}`)
	meridiemPattern    = regexp.MustCompile(`(?i)\b(am|pm)\b`)
)

// Human-readable layout cascade for lenient parsing, composed from the date
// and clock shapes Facebook event text uses. Layouts without a year get the
// current year filled in.
var (
	lenientLayouts       []string
	lenientNoYearLayouts []string
)

func init() {
	dates := []string{"January 2, 2006", "Jan 2, 2006", "January 2 2006", "Jan 2 2006"}
	noYearDates := []string{"January 2", "Jan 2"}
	clocks := []string{"", " at 3:04 PM", " at 3 PM", " 3:04 PM", " 3 PM"}

	for _, d := range dates {
		for _, c := range clocks {
			lenientLayouts = append(lenientLayouts, d+c)
		}
	}
	lenientLayouts = append(lenientLayouts, "2006-01-02", "01/02/2006", "1/2/2006")

	for _, d := range noYearDates {
		for _, c := range clocks {
			lenientNoYearLayouts = append(lenientNoYearLayouts, d+c)
		}
	}
}

// FindISOTimestamps returns all ISO-8601-shaped substrings of s, left to
// right. The substrings are candidates only; ParseISO decides whether each
// one is usable.
func FindISOTimestamps(s string) []string {
	return isoPattern.FindAllString(s, -1)
}

// ParseISO parses one ISO-8601-shaped candidate. Candidates with an offset
// or Z come back zoned; bare date-times come back naive. Returns the zero
// Timestamp if the candidate does not parse.
func ParseISO(s string) Timestamp {
	s = strings.TrimSpace(s)
	for _, layout := range isoZonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, Zoned: true}
		}
	}
	if t, err := time.Parse(isoNaiveLayout, s); err == nil {
		return Timestamp{Time: t}
	}
	return Timestamp{}
}

// ParseLenient parses dates from datetime attributes and visible element
// text. It tries ISO first, then the human-readable layout cascade on the
// whole string, then falls back to extracting a date-shaped fragment out of
// longer surrounding text. Returns the zero Timestamp when nothing parses.
func ParseLenient(s string) Timestamp {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return Timestamp{}
	}

	if ts := ParseISO(s); !ts.IsZero() {
		return ts
	}
	if ts := parseHumanReadable(s); !ts.IsZero() {
		return ts
	}

	// Fuzzy pass: the text is longer than a date, so pull out the first
	// fragment that looks like one.
	if m := isoPattern.FindString(s); m != "" {
		if ts := ParseISO(m); !ts.IsZero() {
			return ts
		}
	}
	if m := monthDayPattern.FindString(s); m != "" {
		if ts := parseHumanReadable(m); !ts.IsZero() {
			return ts
		}
	}
	if m := numericDatePattern.FindString(s); m != "" {
		if ts := parseHumanReadable(m); !ts.IsZero() {
			return ts
		}
	}
	return Timestamp{}
}

// parseHumanReadable runs the layout cascade over one candidate string.
// Results are always naive; human-readable event text never carries a
// numeric offset.
func parseHumanReadable(s string) Timestamp {
	s = normalizeFragment(s)

	for _, layout := range lenientLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}
		}
	}
	for _, layout := range lenientNoYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			now := time.Now()
			return Timestamp{
				Time: time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC),
			}
		}
	}
	return Timestamp{}
}

// normalizeFragment smooths over the variation the layouts cannot express:
// abbreviation periods ("Sep. 14"), lowercase meridiems ("6 pm"), and
// irregular spacing.
func normalizeFragment(s string) string {
	s = strings.ReplaceAll(s, ".", "")
	s = meridiemPattern.ReplaceAllStringFunc(s, strings.ToUpper)
	return strings.Join(strings.Fields(s), " ")
}
