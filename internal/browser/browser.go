// Package browser renders pages with a headless Chromium session and hands
// the resulting markup to the extraction pipeline. It owns navigation,
// cookie installation, and the fixed settle delays the mobile site needs to
// finish lazy rendering.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Default session parameters.
const (
	DefaultNavTimeout  = 60 * time.Second
	DefaultSettleDelay = 1200 * time.Millisecond
	DefaultScrollStep  = 2000
)

// Options configures a browser session. Zero values fall back to the
// defaults above; ShowBrowser false means headless.
type Options struct {
	// NavTimeout bounds each navigation including its settle delays.
	NavTimeout time.Duration
	// SettleDelay is the pause after navigation and after each scroll pass.
	SettleDelay time.Duration
	// ScrollStep is the per-pass scroll distance in pixels.
	ScrollStep int
	// ShowBrowser opens a visible browser window for debugging.
	ShowBrowser bool
}

// Browser is a live browser session rendering pages to markup. Sessions are
// not safe for concurrent use; the pipeline fetches pages one at a time.
type Browser struct {
	ctx     context.Context
	cancels []context.CancelFunc
	opts    Options
}

// Open launches a browser session under parent. Cancelling parent tears the
// session down; the caller must also Close it.
func Open(parent context.Context, opts Options) (*Browser, error) {
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = DefaultNavTimeout
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.ScrollStep <= 0 {
		opts.ScrollStep = DefaultScrollStep
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !opts.ShowBrowser),
		chromedp.Flag("disable-gpu", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	ctx, ctxCancel := chromedp.NewContext(allocCtx)

	b := &Browser{
		ctx:     ctx,
		cancels: []context.CancelFunc{ctxCancel, allocCancel},
		opts:    opts,
	}

	// Start the browser process eagerly so cookie installation and every
	// navigation share one session.
	if err := chromedp.Run(ctx); err != nil {
		b.Close()
		return nil, fmt.Errorf("starting browser: %w", err)
	}
	return b, nil
}

// Close shuts the session and its browser process down.
func (b *Browser) Close() {
	for _, cancel := range b.cancels {
		cancel()
	}
}

// SetCookies installs session cookies browser-wide for the given domain.
// No cookies means an anonymous session and is not an error.
func (b *Browser) SetCookies(cookies []Cookie, domain string) error {
	if len(cookies) == 0 {
		return nil
	}

	action := chromedp.ActionFunc(func(ctx context.Context) error {
		for _, c := range cookies {
			err := network.SetCookie(c.Name, c.Value).
				WithDomain(domain).
				WithPath("/").
				WithSecure(true).
				WithHTTPOnly(false).
				Do(ctx)
			if err != nil {
				return fmt.Errorf("setting cookie %s: %w", c.Name, err)
			}
		}
		return nil
	})

	if err := chromedp.Run(b.ctx, action); err != nil {
		return fmt.Errorf("installing cookies: %w", err)
	}
	return nil
}

// Fetch navigates to url and returns the fully rendered markup once the page
// has settled. scrollPasses adds scroll steps to coax lazily-loaded rows,
// pausing after each. The whole navigation is bounded by NavTimeout.
func (b *Browser) Fetch(url string, scrollPasses int) (string, error) {
	ctx, cancel := context.WithTimeout(b.ctx, b.opts.NavTimeout)
	defer cancel()

	tasks := chromedp.Tasks{
		chromedp.Navigate(url),
		chromedp.Sleep(b.opts.SettleDelay),
	}
	for i := 0; i < scrollPasses; i++ {
		tasks = append(tasks,
			chromedp.Evaluate(fmt.Sprintf("window.scrollBy(0, %d)", b.opts.ScrollStep), nil),
			chromedp.Sleep(b.opts.SettleDelay),
		)
	}

	var html string
	tasks = append(tasks, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	if err := chromedp.Run(ctx, tasks); err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	return html, nil
}
