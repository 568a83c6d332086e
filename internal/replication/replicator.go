// Package replication forwards local mutations to an external mirror on a
// best-effort basis. The write path enqueues a job and returns immediately;
// a single background worker drains the queue. Failures are logged and
// dropped — the local store stays the source of truth and no caller ever
// sees a replication error.
package replication

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/dmoraes/controlog/internal/logging"
	"github.com/dmoraes/controlog/internal/models"
)

// Action names the mutation being mirrored. Values match the endpoint's
// dispatch field.
type Action string

const (
	ActionCreateUser Action = "createUser"
	ActionDeleteUser Action = "deleteUser"
	ActionSaveNote   Action = "saveNote"
)

// StateStore is the slice of the sync-state repository the replicator needs:
// where to send, and where to record a successful send.
type StateStore interface {
	Get(ctx context.Context) (models.SyncState, error)
	TouchLastSync(ctx context.Context, at time.Time) error
}

const (
	queueSize      = 64
	requestTimeout = 10 * time.Second
)

type job struct {
	action  Action
	payload any
}

// Replicator is the fire-and-forget mirror. Construct with New; stop with
// Close, which drains queued jobs and joins the worker.
type Replicator struct {
	states StateStore
	client *http.Client
	log    logging.Logger
	now    func() time.Time

	jobs chan job
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

// New creates a Replicator and starts its worker. A nil client gets a
// default with a short timeout; the transport owns all timeout policy.
func New(states StateStore, client *http.Client, log logging.Logger) *Replicator {
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	r := &Replicator{
		states: states,
		client: client,
		log:    log.With("component", "replication"),
		now:    time.Now,
		jobs:   make(chan job, queueSize),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

// Enqueue hands a mutation to the worker without blocking. When the queue is
// full (mirror unreachable and backed up) the job is dropped with a warning;
// when the replicator is already closed the call is a no-op.
func (r *Replicator) Enqueue(action Action, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	select {
	case r.jobs <- job{action: action, payload: payload}:
	default:
		r.log.Warn(context.Background(), "queue full, dropping job", "action", action)
	}
}

// Close stops intake, lets the worker finish the queued jobs and waits for
// it to exit.
func (r *Replicator) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.jobs)
	}
	r.mu.Unlock()
	<-r.done
}

func (r *Replicator) run() {
	defer close(r.done)
	for j := range r.jobs {
		r.send(context.Background(), j)
	}
}

// send performs one delivery attempt. Every failure path logs and returns:
// nothing is retried and nothing propagates.
func (r *Replicator) send(ctx context.Context, j job) {
	st, err := r.states.Get(ctx)
	if err != nil {
		r.log.Warn(ctx, "cannot read sync state", "action", j.action, "error", err)
		return
	}
	if st.EndpointURL == "" {
		return
	}

	body, err := encodePayload(j)
	if err != nil {
		r.log.Warn(ctx, "cannot encode payload", "action", j.action, "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, st.EndpointURL, bytes.NewReader(body))
	if err != nil {
		r.log.Warn(ctx, "cannot build request", "action", j.action, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Warn(ctx, "send failed", "action", j.action, "error", err)
		return
	}
	defer resp.Body.Close()
	// The response body is never read or validated.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		r.log.Warn(ctx, "endpoint returned non-success", "action", j.action, "status", resp.StatusCode)
		return
	}

	if err := r.states.TouchLastSync(ctx, r.now()); err != nil {
		r.log.Warn(ctx, "cannot record last sync", "error", err)
	}
	r.log.Info(ctx, "replicated", "action", j.action)
}

// encodePayload flattens the record's fields into one JSON object and adds
// the action discriminator, e.g. {"action":"saveNote","cte":"1001",...}.
func encodePayload(j job) ([]byte, error) {
	raw, err := json.Marshal(j.payload)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("payload must be a JSON object: %w", err)
	}
	fields["action"] = string(j.action)
	return json.Marshal(fields)
}
