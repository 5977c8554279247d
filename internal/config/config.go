package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries every knob of a calendar run. All fields are optional in the
// YAML file; zero values are filled from Default by Normalize, so components
// never see ambient globals or partially-initialized settings.
type Config struct {
	// BaseURL is the mobile site root the listing and event pages hang off.
	BaseURL string `yaml:"base_url"`
	// PageSlug is the page whose events are collected.
	PageSlug string `yaml:"page_slug"`
	// Timezone is the IANA zone attached to naive event times.
	Timezone string `yaml:"timezone"`
	// MaxEvents caps how many discovered identifiers are visited per run.
	MaxEvents int `yaml:"max_events"`

	// NavTimeoutSec bounds each page navigation, in seconds.
	NavTimeoutSec int `yaml:"nav_timeout_sec"`
	// SettleDelayMs is the pause after navigation and after each scroll pass,
	// in milliseconds.
	SettleDelayMs int `yaml:"settle_delay_ms"`
	// ScrollPasses is how many scroll steps reveal lazily-loaded listing rows.
	ScrollPasses int `yaml:"scroll_passes"`
	// ScrollStep is the per-pass scroll distance in pixels.
	ScrollStep int `yaml:"scroll_step"`
	// ShowBrowser runs the browser with a visible window for debugging.
	ShowBrowser bool `yaml:"show_browser"`

	// CookieEnv names the environment variable holding the raw cookie header.
	CookieEnv string `yaml:"cookie_env"`
	// CookieDomain is the domain installed cookies are scoped to.
	CookieDomain string `yaml:"cookie_domain"`

	// OutputDir is where run artifacts land.
	OutputDir    string `yaml:"output_dir"`
	IDsFile      string `yaml:"ids_file"`
	URLsFile     string `yaml:"urls_file"`
	CalendarFile string `yaml:"calendar_file"`
	IndexFile    string `yaml:"index_file"`

	// UIDSuffix is appended to every calendar event identifier.
	UIDSuffix string `yaml:"uid_suffix"`
	// CalendarName is the calendar's display name.
	CalendarName string `yaml:"calendar_name"`

	// RefreshCron, when set, reruns the pipeline on this cron schedule
	// instead of exiting after a single run.
	RefreshCron string `yaml:"refresh"`
}

// Default returns the stock configuration for the StreamwoodBiking page.
func Default() *Config {
	return &Config{
		BaseURL:       "https://m.facebook.com/",
		PageSlug:      "StreamwoodBiking",
		Timezone:      "America/Chicago",
		MaxEvents:     20,
		NavTimeoutSec: 60,
		SettleDelayMs: 1200,
		ScrollPasses:  3,
		ScrollStep:    2000,
		CookieEnv:     "FB_COOKIE",
		CookieDomain:  ".facebook.com",
		OutputDir:     "public",
		IDsFile:       "event_ids.txt",
		URLsFile:      "event_id_urls.txt",
		CalendarFile:  "streamwood_biking.ics",
		IndexFile:     "index.html",
		UIDSuffix:     "@streamwood-biking",
		CalendarName:  "Streamwood Biking Events",
	}
}

// Normalize fills missing or zero values with defaults so a partial config
// file still produces a runnable configuration. It is idempotent. RefreshCron
// is deliberately left alone: empty means a single run.
func (c *Config) Normalize() {
	def := Default()

	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	if c.PageSlug == "" {
		c.PageSlug = def.PageSlug
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.MaxEvents <= 0 {
		c.MaxEvents = def.MaxEvents
	}
	if c.NavTimeoutSec <= 0 {
		c.NavTimeoutSec = def.NavTimeoutSec
	}
	if c.SettleDelayMs <= 0 {
		c.SettleDelayMs = def.SettleDelayMs
	}
	if c.ScrollPasses <= 0 {
		c.ScrollPasses = def.ScrollPasses
	}
	if c.ScrollStep <= 0 {
		c.ScrollStep = def.ScrollStep
	}
	if c.CookieEnv == "" {
		c.CookieEnv = def.CookieEnv
	}
	if c.CookieDomain == "" {
		c.CookieDomain = def.CookieDomain
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.IDsFile == "" {
		c.IDsFile = def.IDsFile
	}
	if c.URLsFile == "" {
		c.URLsFile = def.URLsFile
	}
	if c.CalendarFile == "" {
		c.CalendarFile = def.CalendarFile
	}
	if c.IndexFile == "" {
		c.IndexFile = def.IndexFile
	}
	if c.UIDSuffix == "" {
		c.UIDSuffix = def.UIDSuffix
	}
	if c.CalendarName == "" {
		c.CalendarName = def.CalendarName
	}
}

// Load reads an optional YAML config file. An empty path or a missing file
// yields the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// EventsURL is the page's event listing URL.
func (c *Config) EventsURL() string {
	return c.BaseURL + c.PageSlug + "/events/"
}

// EventURL is the canonical mobile URL for one event identifier.
func (c *Config) EventURL(id string) string {
	return c.BaseURL + "events/" + id
}

// NavTimeout returns the per-navigation timeout.
func (c *Config) NavTimeout() time.Duration {
	return time.Duration(c.NavTimeoutSec) * time.Second
}

// SettleDelay returns the pause applied after navigations and scroll passes.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

// Location resolves the configured IANA zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("resolving timezone: %w", err)
	}
	return loc, nil
}
