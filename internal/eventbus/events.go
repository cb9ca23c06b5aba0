package eventbus

import "github.com/humanbelnik/planpoker/core/internal/model"

type Kind string

const (
	KindVotingStatusChanged Kind = "voting_status_changed"
	KindTopicChanged        Kind = "topic_changed"
	KindShowVotesChanged    Kind = "show_votes_changed"
	KindVoteOptionsChanged  Kind = "vote_options_changed"
	KindRoomNameChanged     Kind = "room_name_changed"
	KindParticipantJoined   Kind = "participant_joined"
	KindParticipantUpdated  Kind = "participant_updated"
	KindParticipantLeft     Kind = "participant_left"
	KindRoleChanged         Kind = "role_changed"
	KindVoteSubmitted       Kind = "vote_submitted"
	KindForcedDisconnect    Kind = "forced_disconnect"
	KindRoomGone            Kind = "room_gone"
	KindError               Kind = "error"
)

// Event is the closed set of domain events a session emits. Only types in
// this package implement it.
type Event interface {
	Kind() Kind
	sealed()
}

type VotingStatusChanged struct {
	From model.VotingStatus
	To   model.VotingStatus
}

type TopicChanged struct {
	Topic *string
}

type ShowVotesChanged struct {
	ShowVotes bool
}

type VoteOptionsChanged struct {
	Options []string
}

type RoomNameChanged struct {
	Name string
}

type ParticipantJoined struct {
	Participant model.Participant
}

// ParticipantUpdated is emitted for every participant row update, own row
// included.
type ParticipantUpdated struct {
	Participant model.Participant
}

type ParticipantLeft struct {
	Participant model.Participant
}

// RoleChanged is only emitted for the session's own participant.
type RoleChanged struct {
	From model.Role
	To   model.Role
}

func (e RoleChanged) Gained() bool { return e.To == model.RoleManager }

// VoteSubmitted reports a change of the session's own vote: the optimistic
// value on submit, or the rolled back value when the store refused it.
type VoteSubmitted struct {
	Vote *string
}

type ForcedDisconnect struct {
	ParticipantID string
}

type RoomGone struct {
	RoomID string
}

type Error struct {
	Reason string
	Err    error
}

func (VotingStatusChanged) Kind() Kind { return KindVotingStatusChanged }
func (TopicChanged) Kind() Kind        { return KindTopicChanged }
func (ShowVotesChanged) Kind() Kind    { return KindShowVotesChanged }
func (VoteOptionsChanged) Kind() Kind  { return KindVoteOptionsChanged }
func (RoomNameChanged) Kind() Kind     { return KindRoomNameChanged }
func (ParticipantJoined) Kind() Kind   { return KindParticipantJoined }
func (ParticipantUpdated) Kind() Kind  { return KindParticipantUpdated }
func (ParticipantLeft) Kind() Kind     { return KindParticipantLeft }
func (RoleChanged) Kind() Kind         { return KindRoleChanged }
func (VoteSubmitted) Kind() Kind       { return KindVoteSubmitted }
func (ForcedDisconnect) Kind() Kind    { return KindForcedDisconnect }
func (RoomGone) Kind() Kind            { return KindRoomGone }
func (Error) Kind() Kind               { return KindError }

func (VotingStatusChanged) sealed() {}
func (TopicChanged) sealed()        {}
func (ShowVotesChanged) sealed()    {}
func (VoteOptionsChanged) sealed()  {}
func (RoomNameChanged) sealed()     {}
func (ParticipantJoined) sealed()   {}
func (ParticipantUpdated) sealed()  {}
func (ParticipantLeft) sealed()     {}
func (RoleChanged) sealed()         {}
func (VoteSubmitted) sealed()       {}
func (ForcedDisconnect) sealed()    {}
func (RoomGone) sealed()            {}
func (Error) sealed()               {}
