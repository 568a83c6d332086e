// Package feed ingests the published shipment feed and normalizes it into
// classified pending items. The feed is read-only and polled; every fetch is
// a total replacement of the previous snapshot, nothing is persisted.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/dmoraes/controlog/internal/logging"
	"github.com/dmoraes/controlog/internal/models"
	"github.com/dmoraes/controlog/internal/status"
	"github.com/dmoraes/controlog/internal/timex"
)

// NoteSource is the read side of the annotation store the ingestion join
// uses to stamp note counts onto items.
type NoteSource interface {
	GetAll(ctx context.Context) ([]models.Note, error)
}

// Result is one complete ingestion snapshot.
type Result struct {
	Items        []models.PendingItem
	UniqueUnits  []string
	StalledItems []models.StalledItem
}

// Service fetches and normalizes the feed.
type Service struct {
	url    string
	client *http.Client
	notes  NoteSource
	log    logging.Logger
	now    func() time.Time
}

// NewService builds a feed service. A nil client falls back to
// http.DefaultClient; timeout policy belongs to the injected transport.
func NewService(url string, client *http.Client, notes NoteSource, log logging.Logger) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	return &Service{
		url:    url,
		client: client,
		notes:  notes,
		log:    log.With("component", "feed"),
		now:    time.Now,
	}
}

// FetchPendingItems downloads the feed and builds the current item set.
//
// A network or format failure is not fatal to the caller: it degrades to an
// empty Result with a warning log. An annotation-store read failure is
// different — it means the durable join source is broken — and propagates.
func (s *Service) FetchPendingItems(ctx context.Context) (Result, error) {
	text, err := s.download(ctx)
	if err != nil {
		s.log.Warn(ctx, "fetch failed, degrading to empty result", "url", s.url, "error", err)
		return Result{}, nil
	}

	allNotes, err := s.notes.GetAll(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("loading annotations for join: %w", err)
	}

	return s.build(text, allNotes), nil
}

func (s *Service) download(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

type docKey struct {
	cte   string
	serie string
}

// build transforms raw feed text plus the annotation index into a Result.
// One reference window is captured for the whole pass so every row is judged
// against the identical "now", even if the pass spans midnight.
func (s *Service) build(text string, allNotes []models.Note) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	noteCounts := make(map[docKey]int, len(allNotes))
	for _, n := range allNotes {
		noteCounts[docKey{cte: n.CTE, serie: n.Serie}]++
	}

	ref := timex.NewReferenceWindow(s.now())

	var result Result
	unitSet := make(map[string]struct{})

	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ { // line 0 is the header
		cols := splitRow(lines[i])
		if len(cols) < minColumns {
			continue
		}

		item := parseRow(cols)

		if item.OriginUnit != "" {
			unitSet[item.OriginUnit] = struct{}{}
		}
		if item.DestinationUnit != "" {
			unitSet[item.DestinationUnit] = struct{}{}
		}

		item.NoteCount = noteCounts[docKey{cte: item.CTE, serie: item.Serie}]
		item.HasNotes = item.NoteCount > 0
		item.ComputedStatus = status.Classify(item.Deadline, ref)

		if stalled, days := status.Stalled(item.Deadline, ref.Today); stalled {
			result.StalledItems = append(result.StalledItems, models.StalledItem{
				PendingItem: item,
				DaysStalled: days,
			})
		}

		result.Items = append(result.Items, item)
	}

	result.UniqueUnits = make([]string, 0, len(unitSet))
	for u := range unitSet {
		result.UniqueUnits = append(result.UniqueUnits, u)
	}
	sort.Strings(result.UniqueUnits)

	return result
}
