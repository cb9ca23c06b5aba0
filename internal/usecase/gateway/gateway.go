// Package gateway sends validated room commands to the authoritative store
// and folds whatever comes back into a small error taxonomy. It never touches
// the session mirror: state only changes when the change feed says so.
package gateway

import (
	"context"
	"errors"
	"log/slog"

	"github.com/humanbelnik/planpoker/core/internal/model"
	"github.com/humanbelnik/planpoker/core/internal/service/guard"
)

var (
	ErrValidation = errors.New("rejected by store validation")
	ErrNotFound   = errors.New("no such resource")
	ErrConflict   = errors.New("conflicting update")
	ErrNetwork    = errors.New("network error")
)

type Verb string

const (
	VerbSubmitVote      Verb = "submit_vote"
	VerbStartVoting     Verb = "start_voting"
	VerbReveal          Verb = "reveal"
	VerbReset           Verb = "reset"
	VerbLeave           Verb = "leave"
	VerbUpdateName      Verb = "update_name"
	VerbUpdateAvatar    Verb = "update_avatar"
	VerbToggleShowVotes Verb = "toggle_show_votes"
	VerbUpdateSettings  Verb = "update_settings"
	VerbPromote         Verb = "promote"
	VerbDemote          Verb = "demote"
	VerbKick            Verb = "kick"
)

// Store is the authoritative room store as seen by one caller. The caller's
// identity travels with the implementation (credentials, connection), never
// as an argument.
//
//go:generate mockery --name=Store --output=./mocks/store --filename=store.go
type Store interface {
	SubmitVote(ctx context.Context, roomID string, vote string) error
	StartVoting(ctx context.Context, roomID string, topic *string) error
	Reveal(ctx context.Context, roomID string) error
	Reset(ctx context.Context, roomID string) error
	Leave(ctx context.Context, roomID string) error
	UpdateName(ctx context.Context, roomID string, name string) error
	UpdateAvatar(ctx context.Context, roomID string, avatar model.Avatar) error
	ToggleShowVotes(ctx context.Context, roomID string) (bool, error)
	UpdateSettings(ctx context.Context, roomID string, settings model.Settings) (model.Room, error)
	Promote(ctx context.Context, roomID string, participantID string) error
	Demote(ctx context.Context, roomID string, participantID string) error
	Kick(ctx context.Context, roomID string, participantID string) error
}

type Gateway struct {
	store  Store
	roomID string
	logger *slog.Logger
}

type Option func(*Gateway)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

func New(store Store, roomID string, opts ...Option) *Gateway {
	g := &Gateway{
		store:  store,
		roomID: roomID,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) RoomID() string {
	return g.roomID
}

func (g *Gateway) SubmitVote(ctx context.Context, vote string) error {
	return g.translate(VerbSubmitVote, g.store.SubmitVote(ctx, g.roomID, vote))
}

func (g *Gateway) StartVoting(ctx context.Context, topic *string) error {
	return g.translate(VerbStartVoting, g.store.StartVoting(ctx, g.roomID, topic))
}

func (g *Gateway) Reveal(ctx context.Context) error {
	return g.translate(VerbReveal, g.store.Reveal(ctx, g.roomID))
}

func (g *Gateway) Reset(ctx context.Context) error {
	return g.translate(VerbReset, g.store.Reset(ctx, g.roomID))
}

func (g *Gateway) Leave(ctx context.Context) error {
	return g.translate(VerbLeave, g.store.Leave(ctx, g.roomID))
}

func (g *Gateway) UpdateName(ctx context.Context, name string) error {
	return g.translate(VerbUpdateName, g.store.UpdateName(ctx, g.roomID, name))
}

func (g *Gateway) UpdateAvatar(ctx context.Context, avatar model.Avatar) error {
	return g.translate(VerbUpdateAvatar, g.store.UpdateAvatar(ctx, g.roomID, avatar))
}

func (g *Gateway) ToggleShowVotes(ctx context.Context) (bool, error) {
	show, err := g.store.ToggleShowVotes(ctx, g.roomID)
	if err != nil {
		return false, g.translate(VerbToggleShowVotes, err)
	}
	return show, nil
}

func (g *Gateway) UpdateSettings(ctx context.Context, settings model.Settings) (model.Room, error) {
	room, err := g.store.UpdateSettings(ctx, g.roomID, settings)
	if err != nil {
		return model.Room{}, g.translate(VerbUpdateSettings, err)
	}
	return room, nil
}

func (g *Gateway) Promote(ctx context.Context, participantID string) error {
	return g.translate(VerbPromote, g.store.Promote(ctx, g.roomID, participantID))
}

func (g *Gateway) Demote(ctx context.Context, participantID string) error {
	return g.translate(VerbDemote, g.store.Demote(ctx, g.roomID, participantID))
}

func (g *Gateway) Kick(ctx context.Context, participantID string) error {
	return g.translate(VerbKick, g.store.Kick(ctx, g.roomID, participantID))
}

func (g *Gateway) translate(verb Verb, err error) error {
	if err == nil {
		return nil
	}
	g.logger.Warn("command failed", "verb", verb, "room", g.roomID, "error", err)
	return Translate(err)
}

// Translate maps a raw store error onto the gateway taxonomy. Guard
// rejections and errors already in the taxonomy pass through untouched,
// everything else is a network error.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var gerr *guard.Error
	if errors.As(err, &gerr) {
		return gerr
	}
	for _, known := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrNetwork} {
		if errors.Is(err, known) {
			return err
		}
	}
	return errors.Join(ErrNetwork, err)
}

// Reason is the short machine readable tag of a command failure, as used in
// session error events.
func Reason(err error) string {
	var gerr *guard.Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &gerr):
		return string(gerr.Reason)
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "network"
	}
}
