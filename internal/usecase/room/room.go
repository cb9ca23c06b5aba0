package usecase_room

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/planpoker/core/internal/metrics"
	"github.com/humanbelnik/planpoker/core/internal/model"
	"github.com/humanbelnik/planpoker/core/internal/service/guard"
)

var (
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
	ErrConflict         = errors.New("conflicting update")
	ErrForbidden        = errors.New("forbidden")
)

// RoomRepository stores rooms and their participants. Methods that touch
// more than one row run in a single transaction. Missing rows are reported
// as ErrResourceNotFound, a failed precondition inside a statement as
// ErrConflict.
//
//go:generate mockery --name=RoomRepository --output=./mocks/room/repository --filename=repository.go
type RoomRepository interface {
	CreateRoom(ctx context.Context, room model.Room) error
	DeleteRoom(ctx context.Context, roomID string) (model.Room, error)
	Snapshot(ctx context.Context, roomID string) (model.Snapshot, error)

	// UpdateSettings also returns the participants whose vote it cleared
	// because the vote is no longer one of the options.
	UpdateSettings(ctx context.Context, roomID string, settings model.Settings) (model.Room, []model.Participant, error)
	ToggleShowVotes(ctx context.Context, roomID string) (model.Room, error)
	// StartRound and ResetRound return the room and every participant whose
	// vote they cleared.
	StartRound(ctx context.Context, roomID string, topic *string) (model.Room, []model.Participant, error)
	ResetRound(ctx context.Context, roomID string) (model.Room, []model.Participant, error)
	// Reveal only moves a voting room; changed is false otherwise.
	Reveal(ctx context.Context, roomID string) (room model.Room, changed bool, err error)

	UpsertParticipant(ctx context.Context, p model.Participant) (model.Participant, bool, error)
	SetVote(ctx context.Context, roomID, participantID string, vote string) (model.Participant, error)
	SetProfile(ctx context.Context, roomID, participantID string, name string, avatar model.Avatar) (model.Participant, error)
	// Promote, Demote and DeleteParticipant act for the manager seated as
	// actorID and re-check that seat under lock. ErrConflict when the actor
	// is no longer a manager or the target no longer qualifies.
	Promote(ctx context.Context, roomID, actorID, participantID string) (model.Participant, error)
	Demote(ctx context.Context, roomID, actorID, participantID string) (model.Participant, error)
	DeleteParticipant(ctx context.Context, roomID, actorID, participantID string) (model.Participant, error)
	// Leave deletes the participant and, when it was the last manager,
	// promotes the longest-tenured remaining participant.
	Leave(ctx context.Context, roomID, participantID string) (left model.Participant, promoted *model.Participant, err error)
}

//go:generate mockery --name=ChangePublisher --output=./mocks/room/publisher --filename=publisher.go
type ChangePublisher interface {
	PublishRoom(ctx context.Context, change model.RoomChange) error
	PublishParticipant(ctx context.Context, change model.ParticipantChange) error
}

type Usecase struct {
	RoomRepository  RoomRepository
	ChangePublisher ChangePublisher

	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		u.now = now
	}
}

func New(
	RoomRepository RoomRepository,
	ChangePublisher ChangePublisher,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		RoomRepository:  RoomRepository,
		ChangePublisher: ChangePublisher,
		logger:          slog.Default(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) Create(ctx context.Context, caller model.Caller, name string, groupID *string, voteOptions []string) (model.Room, error) {
	name, ok := model.NormalizeRoomName(name)
	if !ok {
		return model.Room{}, guard.ErrInvalidSettings
	}
	if voteOptions == nil {
		voteOptions = model.DefaultVoteOptions
	}
	if !model.ValidVoteOptions(voteOptions) {
		return model.Room{}, guard.ErrInvalidSettings
	}
	if groupID != nil && !caller.AdministersGroup(groupID) {
		return model.Room{}, ErrForbidden
	}

	room := model.Room{
		ID:           uuid.New().String(),
		Name:         name,
		VotingStatus: model.StatusWaiting,
		VoteOptions:  voteOptions,
		CreatedBy:    string(caller.Identity),
		GroupID:      groupID,
		CreatedAt:    u.now().UTC(),
	}
	if err := u.RoomRepository.CreateRoom(ctx, room); err != nil {
		return model.Room{}, errors.Join(ErrInternal, err)
	}
	metrics.RoomsCreated.Inc()
	return room.Clone(), nil
}

// Delete removes the room for good. Only its creator or an admin of the
// owning group may do that.
func (u *Usecase) Delete(ctx context.Context, caller model.Caller, roomID string) error {
	snapshot, err := u.snapshot(ctx, roomID)
	if err != nil {
		return err
	}
	if string(caller.Identity) != snapshot.Room.CreatedBy && !caller.AdministersGroup(snapshot.Room.GroupID) {
		return ErrForbidden
	}

	room, err := u.RoomRepository.DeleteRoom(ctx, roomID)
	if err != nil {
		return u.repoErr(err)
	}
	u.publishRoom(ctx, model.OpDelete, room)
	return nil
}

// Snapshot returns the room with every seat, current votes included. Only
// participants, the creator and admins of the owning group may read it.
func (u *Usecase) Snapshot(ctx context.Context, caller model.Caller, roomID string) (model.Snapshot, error) {
	snapshot, err := u.snapshot(ctx, roomID)
	if err != nil {
		return model.Snapshot{}, err
	}
	if _, seated := participantByIdentity(snapshot.Participants, caller.Identity); seated {
		return snapshot, nil
	}
	if string(caller.Identity) == snapshot.Room.CreatedBy || caller.AdministersGroup(snapshot.Room.GroupID) {
		return snapshot, nil
	}
	return model.Snapshot{}, guard.ErrNotParticipant
}

// Join seats caller in the room, or refreshes the existing seat. The creator
// and admins of the room's group join as managers, so does anyone joining a
// room that has no manager left. A rejoin keeps the current role.
func (u *Usecase) Join(ctx context.Context, caller model.Caller, roomID string, name string, avatar *model.Avatar) (model.Participant, error) {
	name, ok := model.NormalizeParticipantName(name)
	if !ok {
		return model.Participant{}, guard.ErrInvalidProfile
	}
	snapshot, err := u.snapshot(ctx, roomID)
	if err != nil {
		return model.Participant{}, err
	}

	now := u.now().UTC()
	p := model.Participant{
		ID:        uuid.New().String(),
		RoomID:    roomID,
		Identity:  caller.Identity,
		Name:      name,
		Avatar:    model.DefaultAvatar(name),
		Role:      model.RoleMember,
		JoinedAt:  now,
		UpdatedAt: now,
	}
	if avatar != nil && strings.TrimSpace(avatar.Style) != "" {
		p.Avatar = *avatar
	}

	existing, found := participantByIdentity(snapshot.Participants, caller.Identity)
	switch {
	case found:
		p.Role = existing.Role
	case string(caller.Identity) == snapshot.Room.CreatedBy,
		caller.AdministersGroup(snapshot.Room.GroupID),
		model.CountManagers(snapshot.Participants) == 0:
		p.Role = model.RoleManager
	}

	stored, inserted, err := u.RoomRepository.UpsertParticipant(ctx, p)
	if err != nil {
		return model.Participant{}, u.repoErr(err)
	}
	op := model.OpUpdate
	if inserted {
		op = model.OpInsert
	}
	u.publishParticipant(ctx, op, stored)
	return stored, nil
}

func (u *Usecase) SubmitVote(ctx context.Context, caller model.Caller, roomID string, vote string) (err error) {
	defer u.record("submit_vote", &err)

	snapshot, self, err := u.load(ctx, caller, roomID)
	if err != nil {
		return err
	}
	if err := guard.CheckVote(snapshot, self.ID, vote); err != nil {
		return err
	}

	p, err := u.RoomRepository.SetVote(ctx, roomID, self.ID, vote)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			// the round ended between the check and the write
			return guard.ErrVotingNotActive
		}
		return u.repoErr(err)
	}
	u.publishParticipant(ctx, model.OpUpdate, p)
	return nil
}

func (u *Usecase) StartVoting(ctx context.Context, caller model.Caller, roomID string, topic *string) (err error) {
	defer u.record("start_voting", &err)

	snapshot, self, err := u.load(ctx, caller, roomID)
	if err != nil {
		return err
	}
	if err := guard.CheckStartVoting(snapshot, self.ID); err != nil {
		return err
	}

	room, cleared, err := u.RoomRepository.StartRound(ctx, roomID, normalizeTopic(topic))
	if err != nil {
		return u.repoErr(err)
	}
	u.publishRound(ctx, room, cleared)
	return nil
}

// Reveal is a no-op unless the room is voting.
func (u *Usecase) Reveal(ctx context.Context, caller model.Caller, roomID string) (err error) {
	defer u.record("reveal", &err)

	snapshot, self, err := u.load(ctx, caller, roomID)
	if err != nil {
		return err
	}
	if err := guard.CheckReveal(snapshot, self.ID); err != nil {
		return err
	}
	if snapshot.Room.VotingStatus != model.StatusVoting {
		return nil
	}

	room, changed, err := u.RoomRepository.Reveal(ctx, roomID)
	if err != nil {
		return u.repoErr(err)
	}
	if changed {
		u.publishRoom(ctx, model.OpUpdate, room)
	}
	return nil
}

func (u *Usecase) Reset(ctx context.Context, caller model.Caller, roomID string) (err error) {
	defer u.record("reset", &err)

	snapshot, self, err := u.load(ctx, caller, roomID)
	if err != nil {
		return err
	}
	if err := guard.CheckReset(snapshot, self.ID); err != nil {
		return err
	}

	room, cleared, err := u.RoomRepository.ResetRound(ctx, roomID)
	if err != nil {
		return u.repoErr(err)
	}
	u.publishRound(ctx, room, cleared)
	return nil
}

func (u *Usecase) ToggleShowVotes(ctx context.Context, caller model.Caller, roomID string) (show bool, err error) {
	defer u.record("toggle_show_votes", &err)

	snapshot, self, err := u.load(ctx, caller, roomID)
	if err != nil {
		return false, err
	}
	if err := guard.CheckToggleShowVotes(snapshot, self.ID); err != nil {
		return false, err
	}

	room, err := u.RoomRepository.ToggleShowVotes(ctx, roomID)
	if err != nil {
		return false, u.repoErr(err)
	}
	u.publishRoom(ctx, model.OpUpdate, room)
	return room.ShowVotes, nil
}

func (u *Usecase) UpdateSettings(ctx context.Context, caller model.Caller, roomID string, settings model.Settings) (_ model.Room, err error) {
	defer u.record("update_settings", &err)

	snapshot, self, err := u.load(ctx, caller, roomID)
	if err != nil {
		return model.Room{}, err
	}
	if err := guard.CheckUpdateSettings(snapshot, self.ID, settings); err != nil {
		return model.Room{}, err
	}
	if settings.Name != nil {
		name, _ := model.NormalizeRoomName(*settings.Name)
		settings.Name = &name
	}

	room, cleared, err := u.RoomRepository.UpdateSettings(ctx, roomID, settings)
	if err != nil {
		return model.Room{}, u.repoErr(err)
	}
	u.publishRound(ctx, room, cleared)
	return room, nil
}

func (u *Usecase) Promote(ctx context.Context, caller model.Caller, roomID string, participantID string) (err error) {
	defer u.record("promote", &err)

	snapshot, self, err := u.load(ctx, caller, roomID)
	if err != nil {
		return err
	}
	if err := guard.CheckPromote(snapshot, self.ID, participantID); err != nil {
		return err
	}

	p, err := u.RoomRepository.Promote(ctx, roomID, self.ID, participantID)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return u.lostRace(ctx, caller, roomID, func(s model.Snapshot, selfID string) error {
				return guard.CheckPromote(s, selfID, participantID)
			})
		}
		return u.repoErr(err)
	}
	u.publishParticipant(ctx, model.OpUpdate, p)
	return nil
}

func (u *Usecase) Demote(ctx context.Context, caller model.Caller, roomID string, participantID string) (err error) {
	defer u.record("demote", &err)

	snapshot, self, err := u.load(ctx, caller, roomID)
	if err != nil {
		return err
	}
	if err := guard.CheckDemote(snapshot, self.ID, participantID); err != nil {
		return err
	}

	p, err := u.RoomRepository.Demote(ctx, roomID, self.ID, participantID)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return u.lostRace(ctx, caller, roomID, func(s model.Snapshot, selfID string) error {
				return guard.CheckDemote(s, selfID, participantID)
			})
		}
		return u.repoErr(err)
	}
	u.publishParticipant(ctx, model.OpUpdate, p)
	return nil
}

func (u *Usecase) Kick(ctx context.Context, caller model.Caller, roomID string, participantID string) (err error) {
	defer u.record("kick", &err)

	snapshot, self, err := u.load(ctx, caller, roomID)
	if err != nil {
		return err
	}
	if err := guard.CheckKick(snapshot, self.ID, participantID); err != nil {
		return err
	}

	p, err := u.RoomRepository.DeleteParticipant(ctx, roomID, self.ID, participantID)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return u.lostRace(ctx, caller, roomID, func(s model.Snapshot, selfID string) error {
				return guard.CheckKick(s, selfID, participantID)
			})
		}
		return u.repoErr(err)
	}
	u.publishParticipant(ctx, model.OpDelete, p)
	return nil
}

func (u *Usecase) Leave(ctx context.Context, caller model.Caller, roomID string) (err error) {
	defer u.record("leave", &err)

	snapshot, self, err := u.load(ctx, caller, roomID)
	if err != nil {
		return err
	}
	if err := guard.CheckLeave(snapshot, self.ID); err != nil {
		return err
	}

	left, promoted, err := u.RoomRepository.Leave(ctx, roomID, self.ID)
	if err != nil {
		return u.repoErr(err)
	}
	if promoted != nil {
		u.publishParticipant(ctx, model.OpUpdate, *promoted)
	}
	u.publishParticipant(ctx, model.OpDelete, left)
	return nil
}

func (u *Usecase) UpdateName(ctx context.Context, caller model.Caller, roomID string, name string) (err error) {
	defer u.record("update_name", &err)

	snapshot, self, err := u.load(ctx, caller, roomID)
	if err != nil {
		return err
	}
	if err := guard.CheckUpdateName(snapshot, self.ID, name); err != nil {
		return err
	}
	name, _ = model.NormalizeParticipantName(name)

	p, err := u.RoomRepository.SetProfile(ctx, roomID, self.ID, name, self.Avatar)
	if err != nil {
		return u.repoErr(err)
	}
	u.publishParticipant(ctx, model.OpUpdate, p)
	return nil
}

func (u *Usecase) UpdateAvatar(ctx context.Context, caller model.Caller, roomID string, avatar model.Avatar) (err error) {
	defer u.record("update_avatar", &err)

	snapshot, self, err := u.load(ctx, caller, roomID)
	if err != nil {
		return err
	}
	if err := guard.CheckUpdateAvatar(snapshot, self.ID, avatar); err != nil {
		return err
	}

	p, err := u.RoomRepository.SetProfile(ctx, roomID, self.ID, self.Name, avatar)
	if err != nil {
		return u.repoErr(err)
	}
	u.publishParticipant(ctx, model.OpUpdate, p)
	return nil
}

// load reads the room fresh from the repository and resolves the caller's
// own participant row. The guard then runs against this snapshot, never
// against anything the client sent.
func (u *Usecase) load(ctx context.Context, caller model.Caller, roomID string) (model.Snapshot, model.Participant, error) {
	snapshot, err := u.snapshot(ctx, roomID)
	if err != nil {
		return model.Snapshot{}, model.Participant{}, err
	}
	self, ok := participantByIdentity(snapshot.Participants, caller.Identity)
	if !ok {
		return model.Snapshot{}, model.Participant{}, guard.ErrNotParticipant
	}
	return snapshot, self, nil
}

// lostRace explains a write the repository refused under lock: the guard
// runs again on the current state and its rejection is returned, or
// ErrConflict when the state still looks fine.
func (u *Usecase) lostRace(ctx context.Context, caller model.Caller, roomID string, check func(model.Snapshot, string) error) error {
	snapshot, self, err := u.load(ctx, caller, roomID)
	if err != nil {
		return err
	}
	if err := check(snapshot, self.ID); err != nil {
		return err
	}
	return ErrConflict
}

func (u *Usecase) snapshot(ctx context.Context, roomID string) (model.Snapshot, error) {
	snapshot, err := u.RoomRepository.Snapshot(ctx, roomID)
	if err != nil {
		return model.Snapshot{}, u.repoErr(err)
	}
	return snapshot, nil
}

func (u *Usecase) repoErr(err error) error {
	switch {
	case errors.Is(err, ErrResourceNotFound):
		return ErrResourceNotFound
	case errors.Is(err, ErrConflict):
		return ErrConflict
	default:
		return errors.Join(ErrInternal, err)
	}
}

func (u *Usecase) record(verb string, err *error) {
	outcome := "ok"
	if *err != nil {
		outcome = Outcome(*err)
	}
	metrics.CommandsTotal.WithLabelValues(verb, outcome).Inc()
}

// Outcome is a low-cardinality label for a command error.
func Outcome(err error) string {
	var gerr *guard.Error
	switch {
	case errors.As(err, &gerr):
		return string(gerr.Reason)
	case errors.Is(err, ErrResourceNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "internal"
	}
}

func (u *Usecase) publishRound(ctx context.Context, room model.Room, cleared []model.Participant) {
	u.publishRoom(ctx, model.OpUpdate, room)
	for _, p := range cleared {
		u.publishParticipant(ctx, model.OpUpdate, p)
	}
}

// The change feed is best effort: a lost notification never fails a command
// that the store already applied.
func (u *Usecase) publishRoom(ctx context.Context, op model.ChangeOp, room model.Room) {
	if err := u.ChangePublisher.PublishRoom(ctx, model.RoomChange{Op: op, Row: room}); err != nil {
		u.logger.Error("failed to publish room change", "room", room.ID, "op", op, "error", err)
	}
}

func (u *Usecase) publishParticipant(ctx context.Context, op model.ChangeOp, p model.Participant) {
	if err := u.ChangePublisher.PublishParticipant(ctx, model.ParticipantChange{Op: op, Row: p}); err != nil {
		u.logger.Error("failed to publish participant change", "room", p.RoomID, "participant", p.ID, "op", op, "error", err)
	}
}

func participantByIdentity(participants []model.Participant, identity model.Identity) (model.Participant, bool) {
	for _, p := range participants {
		if p.Identity == identity {
			return p, true
		}
	}
	return model.Participant{}, false
}

func normalizeTopic(topic *string) *string {
	if topic == nil {
		return nil
	}
	t := strings.TrimSpace(*topic)
	if t == "" {
		return nil
	}
	return &t
}
