package event

import "time"

// Normalize prepares records for calendar inclusion. Records without a
// resolved start are dropped: an event with unknown time carries no
// calendar-displayable value. Naive start and end timestamps on the
// survivors are rebuilt in loc with their wall-clock fields unchanged; zoned
// timestamps pass through untouched. The input slice is not modified and
// order is preserved.
func Normalize(records []Record, loc *time.Location) []Record {
	normalized := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Start.IsZero() {
			continue
		}
		rec.Start = rec.Start.Localize(loc)
		rec.End = rec.End.Localize(loc)
		normalized = append(normalized, rec)
	}
	return normalized
}
