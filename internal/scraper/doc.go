// Package scraper extracts event identifiers and event records from rendered
// Facebook page markup.
//
// The package operates on captured markup rather than live HTTP responses. A
// listing page yields the numeric identifiers of linked events; an event page
// yields a best-effort record assembled from Open Graph metadata, ISO-8601
// timestamps embedded in inline scripts, time/abbr elements, and labelled
// location text. Pages that reveal nothing still produce a usable record with
// a placeholder title.
package scraper
