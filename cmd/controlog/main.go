package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	"github.com/dmoraes/controlog/internal/cli"
	"github.com/dmoraes/controlog/internal/config"
	"github.com/dmoraes/controlog/internal/feed"
	"github.com/dmoraes/controlog/internal/logging"
	"github.com/dmoraes/controlog/internal/replication"
	"github.com/dmoraes/controlog/internal/services"
	"github.com/dmoraes/controlog/internal/storage"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr)
	ctx := context.Background()

	repos, err := storage.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("opening local store: %v", err)
	}
	defer repos.Close()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	replicator := replication.New(repos.SyncState, httpClient, logger)
	defer replicator.Close()

	userService := services.NewUserService(repos.Users, replicator)
	if err := userService.EnsureBootstrap(ctx); err != nil {
		log.Fatalf("seeding roster: %v", err)
	}
	noteService := services.NewNoteService(repos.Notes, replicator)
	feedService := feed.NewService(cfg.FeedURL, httpClient, repos.Notes, logger)

	app, err := cli.NewApp(cfg, feedService, noteService, userService, repos.SyncState, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
