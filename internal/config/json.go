package config

import (
	"encoding/json"
	"os"

	"github.com/dmoraes/controlog/internal/flagx"
	"github.com/dmoraes/controlog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations may
// be written as strings like "15s" or as integer nanoseconds thanks to
// timex.Duration.
type JsonConfig struct {
	FeedURL          string         `json:"feed_url"`
	DatabaseDSN      string         `json:"database_dsn"`
	HTTPTimeout      timex.Duration `json:"http_timeout"`
	VisibilityPolicy string         `json:"visibility_policy"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flag. Absent file path means no JSON stage. Fields missing from
// the file keep their current values. Read or unmarshal errors panic — a
// present but broken config file is not something to run through.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.FeedURL != "" {
		cfg.FeedURL = jc.FeedURL
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
	if jc.VisibilityPolicy != "" {
		cfg.VisibilityPolicy = jc.VisibilityPolicy
	}
}
