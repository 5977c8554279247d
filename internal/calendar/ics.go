package calendar

import (
	"fmt"
	"time"

	"github.com/MikieMSC/streamwood-biking-calendar/internal/event"
	ics "github.com/arran4/golang-ical"
)

const prodID = "-//Streamwood Biking//streamwood-biking-calendar//EN"

// Builder projects normalized event records into a single iCalendar document.
type Builder struct {
	uidSuffix string
	pageID    string
	name      string

	// now feeds DTSTAMP and the fallback identifier; swapped out in tests.
	now func() time.Time
}

// New creates a Builder. uidSuffix is appended to every event identifier,
// pageID seeds the fallback identifier for records without a URL, and name
// becomes the calendar's display name.
func New(uidSuffix, pageID, name string) *Builder {
	return &Builder{
		uidSuffix: uidSuffix,
		pageID:    pageID,
		name:      name,
		now:       time.Now,
	}
}

// Build accumulates one VEVENT per record into a calendar container,
// preserving input order. Records without a start time are skipped.
func (b *Builder) Build(records []event.Record) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)
	if b.name != "" {
		cal.SetXWRCalName(b.name)
	}

	for _, rec := range records {
		if rec.Start.IsZero() {
			continue
		}

		ev := cal.AddEvent(b.uid(rec))
		ev.SetDtStampTime(b.now().UTC())
		ev.SetSummary(rec.Title)
		ev.SetStartAt(rec.Start.Time)
		if !rec.End.IsZero() {
			ev.SetEndAt(rec.End.Time)
		}
		if rec.URL != "" {
			ev.SetURL(rec.URL)
		}
		if rec.Description != "" {
			ev.SetDescription(rec.Description)
		}
		if rec.Location != "" {
			ev.SetLocation(rec.Location)
		}
	}
	return cal
}

// Render serializes the records as iCalendar text.
func (b *Builder) Render(records []event.Record) string {
	return b.Build(records).Serialize()
}

// uid derives the event identifier: the canonical URL when known, otherwise
// the page identifier with the current unix second. The fallback is only
// unique to whole-second granularity under rapid repeated runs.
func (b *Builder) uid(rec event.Record) string {
	if rec.URL != "" {
		return rec.URL + b.uidSuffix
	}
	return fmt.Sprintf("%s-%d%s", b.pageID, b.now().Unix(), b.uidSuffix)
}
