package ws_room

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	http_identity_middleware "github.com/humanbelnik/planpoker/core/internal/delivery/http/middleware/identity"
	"github.com/humanbelnik/planpoker/core/internal/model"
	"github.com/humanbelnik/planpoker/core/internal/service/guard"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type HubUnitSuite struct {
	suite.Suite
}

type fakeFeed struct {
	payloads chan []byte
	once     sync.Once
	closed   chan struct{}
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{payloads: make(chan []byte), closed: make(chan struct{})}
}

func (f *fakeFeed) Payloads() <-chan []byte { return f.payloads }

func (f *fakeFeed) Close() error {
	f.once.Do(func() {
		close(f.closed)
		close(f.payloads)
	})
	return nil
}

type fakeSubscriber struct {
	mu    sync.Mutex
	feeds map[string][]*fakeFeed
	err   error
	// hold, when set, runs before every subscription is opened.
	hold func(roomID string)
}

func (s *fakeSubscriber) Subscribe(roomID, table string) (Feed, error) {
	if s.hold != nil {
		s.hold(roomID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	f := newFakeFeed()
	s.feeds[roomID+"/"+table] = append(s.feeds[roomID+"/"+table], f)
	return f, nil
}

func (s *fakeSubscriber) opened(key string) []*fakeFeed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*fakeFeed(nil), s.feeds[key]...)
}

// seatedReader admits callers whose identity is listed in seats, or
// everyone when seats is nil.
type seatedReader struct {
	seats []model.Identity
}

func (r *seatedReader) Snapshot(_ context.Context, caller model.Caller, roomID string) (model.Snapshot, error) {
	if r.seats != nil && !slices.Contains(r.seats, caller.Identity) {
		return model.Snapshot{}, guard.ErrNotParticipant
	}
	return model.Snapshot{Room: model.Room{ID: roomID}}, nil
}

type resources struct {
	subscriber *fakeSubscriber
	hub        *Hub
	server     *httptest.Server
}

func initResources(t provider.T, seats ...model.Identity) *resources {
	gin.SetMode(gin.TestMode)
	sub := &fakeSubscriber{feeds: make(map[string][]*fakeFeed)}
	reader := &seatedReader{seats: seats}
	hub := NewHub(sub)

	engine := gin.New()
	identity := func(ctx *gin.Context) {
		token := ctx.GetHeader(http_identity_middleware.HeaderUserToken)
		http_identity_middleware.SetCaller(ctx, model.Caller{Identity: model.AnonymousIdentity(token)})
		ctx.Next()
	}
	NewController(hub, reader, identity).RegisterRoutes(engine.Group("/api/v1"))
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return &resources{subscriber: sub, hub: hub, server: server}
}

func (r *resources) dial(t provider.T, path string) (*websocket.Conn, *http.Response, error) {
	return r.dialAs(t, path, "device-1")
}

func (r *resources) dialAs(t provider.T, path, token string) (*websocket.Conn, *http.Response, error) {
	url := "ws" + strings.TrimPrefix(r.server.URL, "http") + path
	header := http.Header{}
	header.Set(http_identity_middleware.HeaderUserToken, token)
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if conn != nil {
		t.Cleanup(func() { conn.Close() })
	}
	return conn, resp, err
}

func (s *HubUnitSuite) TestFanOutSharesOneSubscription(t provider.T) {
	r := initResources(t)

	first, _, err := r.dial(t, "/api/v1/ws/rooms/room-1/participants")
	require.NoError(t, err)
	second, _, err := r.dial(t, "/api/v1/ws/rooms/room-1/participants")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return r.hub.Clients("room-1", "participants") == 2 }, time.Second, 5*time.Millisecond)
	feeds := r.subscriber.opened("room-1/participants")
	require.Len(t, feeds, 1)

	payload := []byte(`{"table":"participants","op":"update","row":{"id":"p-1"}}`)
	feeds[0].payloads <- payload

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, got, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, string(payload), string(got))
	}
}

func (s *HubUnitSuite) TestLastClientClosesSubscription(t provider.T) {
	r := initResources(t)

	conn, _, err := r.dial(t, "/api/v1/ws/rooms/room-1/rooms")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return r.hub.Clients("room-1", "rooms") == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()

	feed := r.subscriber.opened("room-1/rooms")[0]
	select {
	case <-feed.closed:
	case <-time.After(2 * time.Second):
		t.Fatalf("subscription was not closed after the last client left")
	}
	assert.Equal(t, 0, r.hub.Clients("room-1", "rooms"))

	_, _, err = r.dial(t, "/api/v1/ws/rooms/room-1/rooms")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(r.subscriber.opened("room-1/rooms")) == 2 }, time.Second, 5*time.Millisecond)
}

func (s *HubUnitSuite) TestRejectsUnknownTopic(t provider.T) {
	r := initResources(t)

	_, resp, err := r.dial(t, "/api/v1/ws/rooms/room-1/votes")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func (s *HubUnitSuite) TestRefusesCallerWithoutSeat(t provider.T) {
	r := initResources(t, model.AnonymousIdentity("device-alice"))

	_, resp, err := r.dialAs(t, "/api/v1/ws/rooms/room-1/participants", "device-eve")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, r.subscriber.opened("room-1/participants"))

	_, _, err = r.dialAs(t, "/api/v1/ws/rooms/room-1/participants", "device-alice")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return r.hub.Clients("room-1", "participants") == 1 }, time.Second, 5*time.Millisecond)
}

func (s *HubUnitSuite) TestClosesWhenFeedUnavailable(t provider.T) {
	r := initResources(t)
	r.subscriber.err = errors.New("redis down")

	conn, _, err := r.dial(t, "/api/v1/ws/rooms/room-1/rooms")
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseTryAgainLater))
	assert.Equal(t, 0, r.hub.Clients("room-1", "rooms"))
}

func (r *resources) client(roomID, table string) *Client {
	return &Client{hub: r.hub, send: make(chan []byte, sendBuffer), key: topicKey{roomID: roomID, table: table}}
}

func (s *HubUnitSuite) TestSlowSubscribeDoesNotBlockOtherRooms(t provider.T) {
	r := initResources(t)
	entered := make(chan struct{})
	release := make(chan struct{})
	r.subscriber.hold = func(roomID string) {
		if roomID == "room-1" {
			entered <- struct{}{}
			<-release
		}
	}

	slow := r.client("room-1", "rooms")
	registered := make(chan error, 1)
	go func() { registered <- r.hub.RegisterClient(slow) }()
	<-entered

	other := r.client("room-2", "rooms")
	done := make(chan error, 1)
	go func() { done <- r.hub.RegisterClient(other) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatalf("registering in another room waited for a pending subscription")
	}
	assert.Equal(t, 1, r.hub.Clients("room-2", "rooms"))
	assert.Equal(t, 0, r.hub.Clients("room-1", "rooms"))

	close(release)
	require.NoError(t, <-registered)
	assert.Equal(t, 1, r.hub.Clients("room-1", "rooms"))

	r.hub.RemoveClient(slow)
	r.hub.RemoveClient(other)
}

func (s *HubUnitSuite) TestConcurrentFirstClientsShareOneFeed(t provider.T) {
	r := initResources(t)
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	r.subscriber.hold = func(string) {
		entered <- struct{}{}
		<-release
	}

	clients := []*Client{r.client("room-1", "participants"), r.client("room-1", "participants")}
	var wg sync.WaitGroup
	for _, c := range clients {
		c := c
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, r.hub.RegisterClient(c))
		}()
	}
	<-entered
	<-entered
	close(release)
	wg.Wait()

	assert.Equal(t, 2, r.hub.Clients("room-1", "participants"))
	feeds := r.subscriber.opened("room-1/participants")
	require.Len(t, feeds, 2)
	closed := 0
	for _, f := range feeds {
		select {
		case <-f.closed:
			closed++
		default:
		}
	}
	assert.Equal(t, 1, closed)

	for _, c := range clients {
		r.hub.RemoveClient(c)
	}
}

func TestHubUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(HubUnitSuite))
}
