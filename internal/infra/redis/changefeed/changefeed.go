package infra_redis_changefeed

import (
	"context"
	"log/slog"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/planpoker/core/internal/metrics"
	"github.com/humanbelnik/planpoker/core/internal/model"
)

type Driver struct {
	client *redis.Client
	logger *slog.Logger
}

type Option func(*Driver)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

func New(
	client *redis.Client,
	opts ...Option,
) *Driver {
	d := &Driver{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) PublishRoom(ctx context.Context, change model.RoomChange) error {
	payload, err := EncodeRoom(change)
	if err != nil {
		return err
	}
	return d.publish(model.TableRooms, change.Op, Channel(change.Row.ID, model.TableRooms), payload)
}

func (d *Driver) PublishParticipant(ctx context.Context, change model.ParticipantChange) error {
	payload, err := EncodeParticipant(change)
	if err != nil {
		return err
	}
	return d.publish(model.TableParticipants, change.Op, Channel(change.Row.RoomID, model.TableParticipants), payload)
}

func (d *Driver) publish(table string, op model.ChangeOp, channel string, payload []byte) error {
	if err := d.client.Publish(channel, payload).Err(); err != nil {
		metrics.ChangePublishFailures.WithLabelValues(table).Inc()
		return err
	}
	metrics.ChangesPublished.WithLabelValues(table, string(op)).Inc()
	return nil
}

// Subscription relays the raw envelopes of one room channel.
type Subscription struct {
	pubsub   *redis.PubSub
	payloads chan []byte
}

func (s *Subscription) Payloads() <-chan []byte {
	return s.payloads
}

// Close ends the subscription; Payloads is closed once pending messages are
// drained.
func (s *Subscription) Close() error {
	return s.pubsub.Close()
}

// Subscribe listens on the channel of the given room and table. It returns
// after Redis confirmed the subscription.
func (d *Driver) Subscribe(roomID, table string) (*Subscription, error) {
	channel := Channel(roomID, table)
	pubsub := d.client.Subscribe(channel)
	if _, err := pubsub.Receive(); err != nil {
		pubsub.Close()
		return nil, err
	}

	s := &Subscription{
		pubsub:   pubsub,
		payloads: make(chan []byte),
	}
	go func() {
		defer close(s.payloads)
		for msg := range pubsub.Channel() {
			s.payloads <- []byte(msg.Payload)
		}
		d.logger.Debug("change feed subscription closed", "channel", channel)
	}()
	return s, nil
}
