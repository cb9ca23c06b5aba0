// Package e2e drives a running planpoker server through the client stack:
// HTTP commands, the websocket change feed and the session state machine.
package e2e

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/humanbelnik/planpoker/core/internal/eventbus"
	"github.com/humanbelnik/planpoker/core/internal/infra/httpstore"
	"github.com/humanbelnik/planpoker/core/internal/infra/wsfeed"
	"github.com/humanbelnik/planpoker/core/internal/usecase/gateway"
	"github.com/humanbelnik/planpoker/core/internal/usecase/session"
)

func baseURL() string {
	env := os.Getenv("ENV")
	switch env {
	case "CI":
		return "http://core-app:8080"
	}
	return "http://localhost:8080"
}

func waitForService(ctx context.Context) error {
	client := &http.Client{Timeout: 2 * time.Second}
	for {
		resp, err := client.Get(baseURL() + "/api/v1/metrics")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("service at %s is not ready: %w", baseURL(), ctx.Err())
		case <-time.After(time.Second):
		}
	}
}

// player is one connected participant with every event its session
// published.
type player struct {
	store   *httpstore.Client
	session *session.Session
	selfID  string
	events  chan eventbus.Event
}

func anonymousStore(ctx context.Context) (*httpstore.Client, error) {
	store := httpstore.New(baseURL(), httpstore.Credentials{})
	if _, err := store.IssueSession(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func connect(ctx context.Context, store *httpstore.Client, roomID, name string) (*player, error) {
	self, err := store.Join(ctx, roomID, name, nil)
	if err != nil {
		return nil, fmt.Errorf("join: %w", err)
	}
	feed, err := wsfeed.Dial(ctx, baseURL(), roomID, store.Credentials().Header())
	if err != nil {
		return nil, fmt.Errorf("dial feed: %w", err)
	}
	snapshot, err := store.Snapshot(ctx, roomID)
	if err != nil {
		_ = feed.Close()
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	p := &player{
		store:   store,
		session: session.New(gateway.New(store, roomID)),
		selfID:  self.ID,
		events:  make(chan eventbus.Event, 64),
	}
	p.session.Bus().Subscribe(func(e eventbus.Event) {
		select {
		case p.events <- e:
		default:
		}
	})
	if err := p.session.Start(ctx, snapshot, self.ID, feed); err != nil {
		return nil, err
	}
	return p, nil
}

// await returns the first event of type T that satisfies match.
func await[T eventbus.Event](p *player, timeout time.Duration, match func(T) bool) (T, error) {
	deadline := time.After(timeout)
	for {
		select {
		case e := <-p.events:
			if ev, ok := e.(T); ok && (match == nil || match(ev)) {
				return ev, nil
			}
		case <-deadline:
			var zero T
			return zero, fmt.Errorf("timed out waiting for %T", zero)
		}
	}
}
