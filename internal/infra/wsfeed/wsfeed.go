// Package wsfeed is the client end of the room change feed: one websocket
// per table, decoded into row change records.
package wsfeed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	infra_redis_changefeed "github.com/humanbelnik/planpoker/core/internal/infra/redis/changefeed"
	"github.com/humanbelnik/planpoker/core/internal/model"
)

var ErrBadURL = errors.New("base url must be http or https")

type Feed struct {
	rooms        chan model.RoomChange
	participants chan model.ParticipantChange

	conns  []*websocket.Conn
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
	logger *slog.Logger
}

type Option func(*Feed)

func WithLogger(logger *slog.Logger) Option {
	return func(f *Feed) {
		f.logger = logger
	}
}

// Dial opens both table streams of roomID. header carries the caller's
// credentials and is sent with each handshake.
func Dial(ctx context.Context, baseURL, roomID string, header http.Header, opts ...Option) (*Feed, error) {
	f := &Feed{
		rooms:        make(chan model.RoomChange),
		participants: make(chan model.ParticipantChange),
		done:         make(chan struct{}),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}

	roomsConn, err := dial(ctx, baseURL, roomID, model.TableRooms, header)
	if err != nil {
		return nil, err
	}
	participantsConn, err := dial(ctx, baseURL, roomID, model.TableParticipants, header)
	if err != nil {
		roomsConn.Close()
		return nil, err
	}
	f.conns = []*websocket.Conn{roomsConn, participantsConn}

	f.wg.Add(2)
	go f.readRooms(roomsConn)
	go f.readParticipants(participantsConn)
	return f, nil
}

func dial(ctx context.Context, baseURL, roomID, table string, header http.Header) (*websocket.Conn, error) {
	u, err := FeedURL(baseURL, roomID, table)
	if err != nil {
		return nil, err
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, header)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// FeedURL maps the HTTP base url of the server to the websocket url of one
// room table.
func FeedURL(baseURL, roomID, table string) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", ErrBadURL
	}
	u.Path += "/api/v1/ws/rooms/" + url.PathEscape(roomID) + "/" + table
	return u.String(), nil
}

func (f *Feed) Rooms() <-chan model.RoomChange {
	return f.rooms
}

func (f *Feed) Participants() <-chan model.ParticipantChange {
	return f.participants
}

// Close drops both connections. Safe to call more than once; the channels
// are closed once the readers are gone.
func (f *Feed) Close() error {
	var errs []error
	f.once.Do(func() {
		close(f.done)
		for _, c := range f.conns {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		f.wg.Wait()
	})
	return errors.Join(errs...)
}

func (f *Feed) readRooms(conn *websocket.Conn) {
	defer f.wg.Done()
	defer close(f.rooms)

	for {
		env, ok := f.next(conn)
		if !ok {
			return
		}
		change, err := env.RoomChange()
		if err != nil {
			f.logger.Warn("skipping room change", "error", err)
			continue
		}
		select {
		case f.rooms <- change:
		case <-f.done:
			return
		}
	}
}

func (f *Feed) readParticipants(conn *websocket.Conn) {
	defer f.wg.Done()
	defer close(f.participants)

	for {
		env, ok := f.next(conn)
		if !ok {
			return
		}
		change, err := env.ParticipantChange()
		if err != nil {
			f.logger.Warn("skipping participant change", "error", err)
			continue
		}
		select {
		case f.participants <- change:
		case <-f.done:
			return
		}
	}
}

// next blocks for the next well-formed envelope; false means the stream is
// over.
func (f *Feed) next(conn *websocket.Conn) (infra_redis_changefeed.Envelope, bool) {
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-f.done:
			default:
				f.logger.Warn("change feed connection lost", "error", err)
			}
			return infra_redis_changefeed.Envelope{}, false
		}
		env, err := infra_redis_changefeed.Decode(payload)
		if err != nil {
			f.logger.Warn("skipping malformed envelope", "error", err)
			continue
		}
		return env, true
	}
}
