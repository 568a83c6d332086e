package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmoraes/controlog/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-f string   feed URL
//	-d string   sqlite DSN of the local store
//	-t int      HTTP timeout in seconds
//	-p string   visibility policy name
//
// os.Args is filtered down to the flags handled here so the config-file flag
// (handled by the JSON stage) does not trip this FlagSet.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-d", "-t", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.FeedURL, "f", cfg.FeedURL, "feed URL")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "sqlite database DSN")
	timeout := fs.Int("t", int(cfg.HTTPTimeout.Seconds()), "HTTP timeout (in seconds)")
	fs.StringVar(&cfg.VisibilityPolicy, "p", cfg.VisibilityPolicy, "item visibility policy")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.HTTPTimeout = time.Duration(*timeout) * time.Second
}
