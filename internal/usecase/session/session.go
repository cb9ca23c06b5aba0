// Package session hosts one client's view of a planning poker room: a local
// mirror kept in sync by the change feed, the voting commands a participant
// can issue, and the domain events the rendering layer listens to.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/humanbelnik/planpoker/core/internal/eventbus"
	"github.com/humanbelnik/planpoker/core/internal/model"
	"github.com/humanbelnik/planpoker/core/internal/service/guard"
	"github.com/humanbelnik/planpoker/core/internal/service/tally"
	"github.com/humanbelnik/planpoker/core/internal/usecase/gateway"
)

var (
	ErrSessionClosed  = errors.New("session closed")
	ErrNotStarted     = errors.New("session not started")
	ErrAlreadyStarted = errors.New("session already started")
	ErrFeedClosed     = errors.New("change feed closed")
)

// Feed delivers the room and participant change streams of one room.
// Close must be idempotent.
type Feed interface {
	Rooms() <-chan model.RoomChange
	Participants() <-chan model.ParticipantChange
	Close() error
}

// Commands is the command gateway bound to the session's room.
type Commands interface {
	SubmitVote(ctx context.Context, vote string) error
	StartVoting(ctx context.Context, topic *string) error
	Reveal(ctx context.Context) error
	Reset(ctx context.Context) error
	Leave(ctx context.Context) error
	UpdateName(ctx context.Context, name string) error
	UpdateAvatar(ctx context.Context, avatar model.Avatar) error
	ToggleShowVotes(ctx context.Context) (bool, error)
	UpdateSettings(ctx context.Context, settings model.Settings) (model.Room, error)
	Promote(ctx context.Context, participantID string) error
	Demote(ctx context.Context, participantID string) error
	Kick(ctx context.Context, participantID string) error
}

type Session struct {
	commands Commands
	bus      *eventbus.Bus
	logger   *slog.Logger

	mirror     *Mirror
	reconciler *Reconciler
	feed       Feed

	ops  chan func()
	stop chan struct{}
	done chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
	started   chan struct{}
}

type Option func(*Session)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

func WithBus(bus *eventbus.Bus) Option {
	return func(s *Session) {
		s.bus = bus
	}
}

func New(commands Commands, opts ...Option) *Session {
	s := &Session{
		commands: commands,
		logger:   slog.Default(),
		ops:      make(chan func()),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		started:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bus == nil {
		s.bus = eventbus.New(eventbus.WithLogger(s.logger))
	}
	return s
}

// Bus is where the session's domain events are published.
func (s *Session) Bus() *eventbus.Bus {
	return s.bus
}

// Start seeds the mirror from snapshot and begins consuming feed. The
// session owns feed from here on and closes it on Close or when ctx ends.
func (s *Session) Start(ctx context.Context, snapshot model.Snapshot, selfID string, feed Feed) error {
	err := ErrAlreadyStarted
	s.startOnce.Do(func() {
		err = nil
		select {
		case <-s.stop:
			err = ErrSessionClosed
			_ = feed.Close()
			return
		default:
		}
		s.mirror = NewMirror(snapshot, selfID)
		s.reconciler = NewReconciler(s.mirror, s.logger)
		s.feed = feed
		close(s.started)
		go s.loop(ctx)
	})
	return err
}

// Close stops the session and unsubscribes from both feeds. Safe to call
// more than once and from any goroutine except an event handler: handlers
// run on the session goroutine Close waits for. Terminal events stop the
// session on their own.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
	})
	select {
	case <-s.started:
		<-s.done
	default:
	}
}

// Done is closed once the session stopped processing events.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Mirror is nil until Start returns.
func (s *Session) Mirror() *Mirror {
	if !s.isStarted() {
		return nil
	}
	return s.mirror
}

func (s *Session) State() State {
	if !s.isStarted() {
		return StateClosed
	}
	select {
	case <-s.done:
		if st := s.mirror.State(); st != StateActive {
			return st
		}
		return StateClosed
	default:
		return s.mirror.State()
	}
}

func (s *Session) Snapshot() model.Snapshot {
	if !s.isStarted() {
		return model.Snapshot{}
	}
	return s.mirror.View()
}

func (s *Session) Tally() tally.Result {
	if !s.isStarted() {
		return tally.Compute(nil)
	}
	return s.mirror.Tally()
}

// isStarted orders reads of the fields Start publishes.
func (s *Session) isStarted() bool {
	select {
	case <-s.started:
		return true
	default:
		return false
	}
}

func (s *Session) loop(ctx context.Context) {
	defer close(s.done)
	defer func() {
		if err := s.feed.Close(); err != nil {
			s.logger.Warn("failed to close change feed", "room", s.mirror.RoomID(), "error", err)
		}
		s.mirror.mu.Lock()
		if s.mirror.state == StateActive {
			s.mirror.state = StateClosed
		}
		s.mirror.mu.Unlock()
	}()

	rooms := s.feed.Rooms()
	participants := s.feed.Participants()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case op := <-s.ops:
			op()
		case change, ok := <-rooms:
			if !ok {
				rooms = nil
				break
			}
			s.publish(s.reconciler.ApplyRoom(change))
		case change, ok := <-participants:
			if !ok {
				participants = nil
				break
			}
			s.publish(s.reconciler.ApplyParticipant(change))
		}

		if rooms == nil && participants == nil {
			s.mirror.mu.Lock()
			active := s.mirror.state == StateActive
			if active {
				s.mirror.state = StateDisconnected
			}
			s.mirror.mu.Unlock()
			if active {
				s.bus.Publish(eventbus.Error{Reason: "network", Err: ErrFeedClosed})
			}
			return
		}
		if s.mirror.State() != StateActive {
			return
		}
	}
}

func (s *Session) publish(events []eventbus.Event) {
	for _, e := range events {
		s.bus.Publish(e)
	}
}

// do runs fn on the session goroutine.
func (s *Session) do(fn func()) error {
	select {
	case <-s.started:
	default:
		return ErrNotStarted
	}

	finished := make(chan struct{})
	select {
	case s.ops <- func() { fn(); close(finished) }:
	case <-s.done:
		return ErrSessionClosed
	}
	<-finished
	return nil
}

// check runs a guard predicate against the current mirror on the session
// goroutine.
func (s *Session) check(fn func(snapshot model.Snapshot, selfID string) error) error {
	var err error
	if derr := s.do(func() {
		if s.mirror.state != StateActive {
			err = ErrSessionClosed
			return
		}
		err = fn(s.mirror.snapshotLocked(false), s.mirror.selfID)
	}); derr != nil {
		return derr
	}
	if err != nil && !errors.Is(err, ErrSessionClosed) {
		s.fail(err)
	}
	return err
}

// fail reports a command failure as an error event. A session that already
// stopped has nobody left to tell.
func (s *Session) fail(err error) {
	_ = s.do(func() {
		s.bus.Publish(eventbus.Error{Reason: gateway.Reason(err), Err: err})
	})
}

func (s *Session) run(ctx context.Context, check func(model.Snapshot, string) error, send func(context.Context) error) error {
	if err := s.check(check); err != nil {
		return err
	}
	if err := send(ctx); err != nil {
		s.fail(err)
		return err
	}
	return nil
}

// SubmitVote shows vote locally right away and rolls it back if the store
// refuses it.
func (s *Session) SubmitVote(ctx context.Context, vote string) error {
	var (
		err  error
		prev *string
		seq  uint64
	)
	if derr := s.do(func() {
		if s.mirror.state != StateActive {
			err = ErrSessionClosed
			return
		}
		if err = guard.CheckVote(s.mirror.snapshotLocked(false), s.mirror.selfID, vote); err != nil {
			return
		}
		s.mirror.mu.Lock()
		prev = clonePtr(s.mirror.optimisticVote)
		s.mirror.setOptimisticLocked(&vote)
		seq = s.mirror.voteSeq
		s.mirror.mu.Unlock()
		s.bus.Publish(eventbus.VoteSubmitted{Vote: clonePtr(&vote)})
	}); derr != nil {
		return derr
	}
	if err != nil {
		if !errors.Is(err, ErrSessionClosed) {
			s.fail(err)
		}
		return err
	}

	if err = s.commands.SubmitVote(ctx, vote); err == nil {
		return nil
	}

	_ = s.do(func() {
		s.mirror.mu.Lock()
		rollback := s.mirror.state == StateActive && s.mirror.voteSeq == seq
		if rollback {
			s.mirror.setOptimisticLocked(prev)
		}
		s.mirror.mu.Unlock()
		if rollback {
			s.bus.Publish(eventbus.VoteSubmitted{Vote: clonePtr(prev)})
		}
		s.bus.Publish(eventbus.Error{Reason: gateway.Reason(err), Err: err})
	})
	return err
}

func (s *Session) StartVoting(ctx context.Context, topic *string) error {
	return s.run(ctx, guard.CheckStartVoting, func(ctx context.Context) error {
		return s.commands.StartVoting(ctx, topic)
	})
}

func (s *Session) Reveal(ctx context.Context) error {
	return s.run(ctx, guard.CheckReveal, s.commands.Reveal)
}

func (s *Session) Reset(ctx context.Context) error {
	return s.run(ctx, guard.CheckReset, s.commands.Reset)
}

func (s *Session) ToggleShowVotes(ctx context.Context) (bool, error) {
	var show bool
	err := s.run(ctx, guard.CheckToggleShowVotes, func(ctx context.Context) error {
		var err error
		show, err = s.commands.ToggleShowVotes(ctx)
		return err
	})
	return show, err
}

func (s *Session) UpdateSettings(ctx context.Context, settings model.Settings) (model.Room, error) {
	var room model.Room
	err := s.run(ctx, func(snapshot model.Snapshot, selfID string) error {
		return guard.CheckUpdateSettings(snapshot, selfID, settings)
	}, func(ctx context.Context) error {
		var err error
		room, err = s.commands.UpdateSettings(ctx, settings)
		return err
	})
	return room, err
}

func (s *Session) Promote(ctx context.Context, participantID string) error {
	return s.run(ctx, func(snapshot model.Snapshot, selfID string) error {
		return guard.CheckPromote(snapshot, selfID, participantID)
	}, func(ctx context.Context) error {
		return s.commands.Promote(ctx, participantID)
	})
}

func (s *Session) Demote(ctx context.Context, participantID string) error {
	return s.run(ctx, func(snapshot model.Snapshot, selfID string) error {
		return guard.CheckDemote(snapshot, selfID, participantID)
	}, func(ctx context.Context) error {
		return s.commands.Demote(ctx, participantID)
	})
}

func (s *Session) Kick(ctx context.Context, participantID string) error {
	return s.run(ctx, func(snapshot model.Snapshot, selfID string) error {
		return guard.CheckKick(snapshot, selfID, participantID)
	}, func(ctx context.Context) error {
		return s.commands.Kick(ctx, participantID)
	})
}

func (s *Session) UpdateName(ctx context.Context, name string) error {
	return s.run(ctx, func(snapshot model.Snapshot, selfID string) error {
		return guard.CheckUpdateName(snapshot, selfID, name)
	}, func(ctx context.Context) error {
		return s.commands.UpdateName(ctx, name)
	})
}

func (s *Session) UpdateAvatar(ctx context.Context, avatar model.Avatar) error {
	return s.run(ctx, func(snapshot model.Snapshot, selfID string) error {
		return guard.CheckUpdateAvatar(snapshot, selfID, avatar)
	}, func(ctx context.Context) error {
		return s.commands.UpdateAvatar(ctx, avatar)
	})
}

// Leave removes the own participant and ends the session. The delete that
// comes back on the feed is then not treated as a forced disconnect.
func (s *Session) Leave(ctx context.Context) error {
	err := s.run(ctx, func(snapshot model.Snapshot, selfID string) error {
		if err := guard.CheckLeave(snapshot, selfID); err != nil {
			return err
		}
		s.mirror.mu.Lock()
		s.mirror.leaving = true
		s.mirror.mu.Unlock()
		return nil
	}, s.commands.Leave)
	if err != nil {
		_ = s.do(func() {
			s.mirror.mu.Lock()
			s.mirror.leaving = false
			s.mirror.mu.Unlock()
		})
		return err
	}

	_ = s.do(func() {
		s.mirror.mu.Lock()
		if s.mirror.state == StateActive {
			s.mirror.state = StateLeft
		}
		s.mirror.mu.Unlock()
	})
	s.Close()
	return nil
}
