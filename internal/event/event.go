package event

import "time"

// DefaultTitle is the sentinel title for pages that yield no usable og:title.
const DefaultTitle = "Untitled Event"

// Timestamp pairs a wall-clock time with whether its source text carried an
// explicit UTC offset. Facebook markup mixes zoned ISO strings with bare
// local ones, and the two must stay distinguishable until normalization
// attaches the default zone. The zero Timestamp means "unset".
type Timestamp struct {
	Time  time.Time `json:"time"`
	Zoned bool      `json:"zoned"`
}

// IsZero reports whether the timestamp is unset.
func (t Timestamp) IsZero() bool {
	return t.Time.IsZero()
}

// AtLeast reports whether t is at or after other. Timestamps with differing
// zonedness are not comparable and report false.
func (t Timestamp) AtLeast(other Timestamp) bool {
	if t.Zoned != other.Zoned {
		return false
	}
	return !t.Time.Before(other.Time)
}

// Localize rebuilds a naive timestamp in loc with identical wall-clock
// fields. Zoned or unset timestamps are returned unchanged.
func (t Timestamp) Localize(loc *time.Location) Timestamp {
	if t.Zoned || t.IsZero() {
		return t
	}
	w := t.Time
	return Timestamp{
		Time:  time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), loc),
		Zoned: true,
	}
}

// Record is one event as extracted from a single event page. Fields the page
// did not yield stay at their zero value; Title always carries at least the
// DefaultTitle sentinel. A Record is built once by the page parser and never
// mutated afterwards.
type Record struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	Start       Timestamp `json:"start"`
	End         Timestamp `json:"end"`
	Location    string    `json:"location,omitempty"`
}

// NewRecord returns a Record with every field at its default: the title
// sentinel set, everything else unresolved.
func NewRecord() Record {
	return Record{Title: DefaultTitle}
}
