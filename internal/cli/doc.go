// Package cli implements the command-line interface for
// streamwood-biking-calendar.
//
// The cli package provides the Cobra-based CLI and the pipeline that wires
// the browser, scraper, event, calendar, and storage packages into one run:
// fetch the listing, visit each discovered event page, normalize the
// extracted records, and write the calendar and its side artifacts. When a
// cron refresh schedule is configured the pipeline reruns until interrupted.
package cli
