// Package config assembles the client's runtime settings from defaults, an
// optional JSON file and command-line flags, in that order of precedence.
package config

import "time"

// defaultFeedURL is the published CSV export the engine polls.
const defaultFeedURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vSQ8UNcdAqoRc-uNCR-rQJuW24F4vY0YOYiNcdI6wvTacaakqmsFR05JnSmXG4FL-IcwhOPsH0oK4fH/pub?output=csv"

// Config holds runtime settings for the controlog client.
//
// Fields:
//   - FeedURL: where the published shipment feed is polled from.
//   - DatabaseDSN: sqlite DSN of the local store.
//   - HTTPTimeout: transport timeout for feed fetches and replication sends.
//   - VisibilityPolicy: which item-visibility policy regular users get;
//     see services.ParsePolicy for the accepted values.
type Config struct {
	FeedURL          string
	DatabaseDSN      string
	HTTPTimeout      time.Duration
	VisibilityPolicy string
}

// LoadDefaults populates c with the built-in defaults.
func (c *Config) LoadDefaults() {
	c.FeedURL = defaultFeedURL
	c.DatabaseDSN = "controlog.db"
	c.HTTPTimeout = 15 * time.Second
	c.VisibilityPolicy = "origin-or-destination"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file is given) and command-line flags. Later
// sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
