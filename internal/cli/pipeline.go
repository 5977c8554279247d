package cli

import (
	"fmt"
	"time"

	"github.com/MikieMSC/streamwood-biking-calendar/internal/calendar"
	"github.com/MikieMSC/streamwood-biking-calendar/internal/config"
	"github.com/MikieMSC/streamwood-biking-calendar/internal/event"
	"github.com/MikieMSC/streamwood-biking-calendar/internal/logger"
	"github.com/MikieMSC/streamwood-biking-calendar/internal/scraper"
	"github.com/MikieMSC/streamwood-biking-calendar/internal/storage"
)

// fetcher renders one URL to markup. The browser session satisfies it; tests
// substitute canned pages.
type fetcher interface {
	Fetch(url string, scrollPasses int) (string, error)
}

// Pipeline runs one full extraction: listing page to identifiers, one fetch
// per identifier, heuristic parsing, normalization, and the calendar plus
// side artifacts written through the sink. Fetch failures are fatal; parse
// failures only degrade individual fields.
type Pipeline struct {
	cfg     *config.Config
	fetch   fetcher
	sink    storage.Sink
	log     *logger.Logger
	metrics *logger.Metrics
}

// NewPipeline wires a pipeline from its collaborators.
func NewPipeline(cfg *config.Config, fetch fetcher, sink storage.Sink, log *logger.Logger, metrics *logger.Metrics) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		fetch:   fetch,
		sink:    sink,
		log:     log,
		metrics: metrics,
	}
}

// Run executes the pipeline once. Pages are fetched and processed strictly
// one at a time; the first fetch error aborts the run, leaving whatever
// identifier and URL artifacts were already written. The calendar is only
// written after every page has been processed.
func (p *Pipeline) Run() (*RunResult, error) {
	loc, err := p.cfg.Location()
	if err != nil {
		return nil, err
	}

	listingURL := p.cfg.EventsURL()
	p.log.Info("fetching event listing", logger.Fields{"url": listingURL})

	started := time.Now()
	listing, err := p.fetch.Fetch(listingURL, p.cfg.ScrollPasses)
	if err != nil {
		return nil, fmt.Errorf("fetching listing: %w", err)
	}
	p.metrics.RecordTiming("fetch.listing", time.Since(started))

	ids := scraper.ExtractEventIDs(listing)
	if len(ids) > p.cfg.MaxEvents {
		ids = ids[:p.cfg.MaxEvents]
	}
	p.log.Info("identifiers discovered", logger.Fields{"count": len(ids)})

	if len(ids) > 0 {
		if err := p.sink.WriteEventIDs(ids); err != nil {
			return nil, err
		}
	}
	if err := p.sink.ResetEventURLs(); err != nil {
		return nil, err
	}

	records := make([]event.Record, 0, len(ids))
	for _, id := range ids {
		url := p.cfg.EventURL(id)
		if err := p.sink.AppendEventURL(url); err != nil {
			return nil, err
		}

		p.log.Debug("fetching event page", logger.Fields{"id": id, "url": url})
		started := time.Now()
		page, err := p.fetch.Fetch(url, 0)
		if err != nil {
			return nil, fmt.Errorf("fetching event %s: %w", id, err)
		}
		p.metrics.RecordTiming("fetch.event", time.Since(started))
		p.metrics.IncrCounter("pages.fetched")

		rec := scraper.ParseEventPage(page)
		if rec.URL == "" {
			rec.URL = url
		}
		if rec.Start.IsZero() {
			p.metrics.IncrCounter("records.no_start")
			p.log.Debug("no start time resolved", logger.Fields{"id": id})
		}
		records = append(records, rec)
	}

	normalized := event.Normalize(records, loc)

	builder := calendar.New(p.cfg.UIDSuffix, p.cfg.PageSlug, p.cfg.CalendarName)
	if err := p.sink.WriteCalendar(builder.Render(normalized)); err != nil {
		return nil, err
	}
	if err := p.sink.WriteIndex(); err != nil {
		return nil, err
	}

	p.log.Info("calendar written", logger.Fields{
		"events":  len(normalized),
		"dropped": len(records) - len(normalized),
	})

	return &RunResult{
		GeneratedAt:    time.Now().UTC(),
		ListingURL:     listingURL,
		Identifiers:    ids,
		PagesParsed:    len(records),
		CalendarEvents: len(normalized),
		DroppedNoStart: len(records) - len(normalized),
		CalendarFile:   p.cfg.CalendarFile,
	}, nil
}
