package scraper

import (
	"regexp"
	"strings"

	"github.com/MikieMSC/streamwood-biking-calendar/internal/event"
	"github.com/PuerkitoBio/goquery"
)

// Inline scripts are only scanned for timestamps when their lowercase text
// mentions an event together with a start or end marker.
const (
	scriptEventToken = "event"
	scriptStartToken = "start"
	scriptEndToken   = "end"
)

// locationLabels are tried in priority order; the first label whose following
// element carries non-empty text supplies the location.
var locationLabels = []string{"Location", "Place", "Venue", "Where"}

var labelPatterns = compileLabelPatterns(locationLabels)

// timeStrategy resolves start and end times from one region of the document.
// Strategies run in order until one resolves a start.
type timeStrategy func(doc *goquery.Document) (start, end event.Timestamp)

var timeStrategies = []timeStrategy{
	scanScriptTimestamps,
	scanTimeElements,
}

// ParseEventPage assembles a best-effort event record from one event page's
// rendered markup. Every heuristic degrades silently: fields that cannot be
// resolved keep their defaults, and the title falls back to a placeholder.
func ParseEventPage(html string) event.Record {
	rec := event.NewRecord()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return rec
	}

	if title := metaProperty(doc, "og:title"); title != "" {
		rec.Title = title
	}
	rec.Description = metaProperty(doc, "og:description")
	rec.URL = metaProperty(doc, "og:url")

	for _, strategy := range timeStrategies {
		start, end := strategy(doc)
		if !start.IsZero() {
			rec.Start = start
			rec.End = end
			break
		}
	}

	rec.Location = scanLocationLabels(doc)
	return rec
}

// scanScriptTimestamps pulls ISO-8601-shaped timestamps out of inline script
// blocks. The first candidate that parses becomes the start; a later candidate
// becomes the end only when it is not before the start, otherwise it is
// discarded and the scan continues. Resolution state carries across blocks.
func scanScriptTimestamps(doc *goquery.Document) (start, end event.Timestamp) {
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		lower := strings.ToLower(text)
		if !strings.Contains(lower, scriptEventToken) {
			return true
		}
		if !strings.Contains(lower, scriptStartToken) && !strings.Contains(lower, scriptEndToken) {
			return true
		}

		for _, raw := range event.FindISOTimestamps(text) {
			ts := event.ParseISO(raw)
			if ts.IsZero() {
				continue
			}
			if start.IsZero() {
				start = ts
			} else if end.IsZero() && ts.AtLeast(start) {
				end = ts
			}
			if !start.IsZero() && !end.IsZero() {
				return false
			}
		}
		return true
	})
	return start, end
}

// scanTimeElements falls back to time and abbr elements: the datetime
// attribute when present, otherwise the visible text, parsed leniently. The
// first element that parses supplies the start; no end is recovered this way.
func scanTimeElements(doc *goquery.Document) (start, end event.Timestamp) {
	doc.Find("time, abbr").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		cand, ok := sel.Attr("datetime")
		if !ok || cand == "" {
			cand = joinedText(sel)
		}
		if ts := event.ParseLenient(cand); !ts.IsZero() {
			start = ts
			return false
		}
		return true
	})
	return start, end
}

// scanLocationLabels looks for a labelled location value. For each label in
// priority order, the first element whose own text contains the label as a
// whole word is located and the text of the element following it in document
// order is taken. The first label yielding non-empty text wins.
func scanLocationLabels(doc *goquery.Document) string {
	for _, pattern := range labelPatterns {
		var location string
		doc.Find("*").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if !pattern.MatchString(ownText(sel)) {
				return true
			}
			if next := nextElement(sel); next != nil {
				location = joinedText(next)
			}
			return false
		})
		if location != "" {
			return location
		}
	}
	return ""
}

func compileLabelPatterns(labels []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(labels))
	for i, label := range labels {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(label) + `\b`)
	}
	return patterns
}

// metaProperty reads the content attribute of a meta tag by property name.
// Missing tags and empty content both come back as "".
func metaProperty(doc *goquery.Document, property string) string {
	content, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return content
}

// ownText returns the text sitting directly inside an element, excluding text
// that belongs to its descendants.
func ownText(sel *goquery.Selection) string {
	var parts []string
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			if t := strings.TrimSpace(c.Text()); t != "" {
				parts = append(parts, t)
			}
		}
	})
	return strings.Join(parts, " ")
}

// joinedText flattens a selection's text with whitespace runs collapsed to
// single spaces.
func joinedText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// nextElement returns the element that follows sel in document order: its
// first child element when it has one, otherwise the next sibling of sel or of
// the closest ancestor with one.
func nextElement(sel *goquery.Selection) *goquery.Selection {
	if children := sel.Children(); children.Length() > 0 {
		return children.First()
	}
	for cur := sel; cur.Length() > 0; cur = cur.Parent() {
		if next := cur.Next(); next.Length() > 0 {
			return next
		}
	}
	return nil
}
