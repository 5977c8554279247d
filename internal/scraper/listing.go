package scraper

import "regexp"

// eventIDPattern matches event links of the form /events/<digits>, the shape
// shared by listing anchors and script-embedded references.
var eventIDPattern = regexp.MustCompile(`/events/(\d+)`)

// ExtractEventIDs pulls the numeric event identifiers out of listing-page
// markup, preserving first-seen order and dropping duplicates. Markup without
// event links yields an empty slice. Truncation of long identifier sets is the
// caller's concern.
func ExtractEventIDs(html string) []string {
	matches := eventIDPattern.FindAllStringSubmatch(html, -1)

	seen := make(map[string]bool)
	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		id := match[1]
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
