package guard

import "fmt"

type Reason string

const (
	ReasonNotManager          Reason = "not_manager"
	ReasonLastManager         Reason = "last_manager"
	ReasonCannotKickSelf      Reason = "cannot_kick_self"
	ReasonVotingNotActive     Reason = "voting_not_active"
	ReasonAlreadyManager      Reason = "already_manager"
	ReasonTargetNotManager    Reason = "target_not_manager"
	ReasonNotParticipant      Reason = "not_participant"
	ReasonParticipantNotFound Reason = "participant_not_found"
	ReasonInvalidVote         Reason = "invalid_vote"
	ReasonInvalidSettings     Reason = "invalid_settings"
	ReasonInvalidProfile      Reason = "invalid_profile"
)

var messages = map[Reason]string{
	ReasonNotManager:          "only a manager can do this",
	ReasonLastManager:         "the room must keep at least one manager",
	ReasonCannotKickSelf:      "you cannot kick yourself",
	ReasonVotingNotActive:     "voting is not active",
	ReasonAlreadyManager:      "participant is already a manager",
	ReasonTargetNotManager:    "participant is not a manager",
	ReasonNotParticipant:      "you are not a participant of this room",
	ReasonParticipantNotFound: "participant not found",
	ReasonInvalidVote:         "vote is not one of the room's options",
	ReasonInvalidSettings:     "invalid room settings",
	ReasonInvalidProfile:      "invalid name or avatar",
}

// Error is a rejected command. Target is set when the reason is about
// another participant (for example demoting someone who is not a manager).
type Error struct {
	Reason Reason
	Target string
}

func (e *Error) Error() string {
	msg, ok := messages[e.Reason]
	if !ok {
		msg = string(e.Reason)
	}
	if e.Target != "" {
		return fmt.Sprintf("%s (%s)", msg, e.Target)
	}
	return msg
}

// Is matches any *Error with the same reason, so the sentinels below work
// with errors.Is regardless of Target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Reason == e.Reason
}

// Validation reports whether the rejection is about malformed input rather
// than permissions or room state.
func (e *Error) Validation() bool {
	switch e.Reason {
	case ReasonInvalidVote, ReasonInvalidSettings, ReasonInvalidProfile:
		return true
	}
	return false
}

func (e *Error) Message() string {
	return messages[e.Reason]
}

var (
	ErrNotManager          = &Error{Reason: ReasonNotManager}
	ErrLastManager         = &Error{Reason: ReasonLastManager}
	ErrCannotKickSelf      = &Error{Reason: ReasonCannotKickSelf}
	ErrVotingNotActive     = &Error{Reason: ReasonVotingNotActive}
	ErrAlreadyManager      = &Error{Reason: ReasonAlreadyManager}
	ErrTargetNotManager    = &Error{Reason: ReasonTargetNotManager}
	ErrNotParticipant      = &Error{Reason: ReasonNotParticipant}
	ErrParticipantNotFound = &Error{Reason: ReasonParticipantNotFound}
	ErrInvalidVote         = &Error{Reason: ReasonInvalidVote}
	ErrInvalidSettings     = &Error{Reason: ReasonInvalidSettings}
	ErrInvalidProfile      = &Error{Reason: ReasonInvalidProfile}
)

// FromReason rebuilds a guard error received over the wire.
func FromReason(reason, target string) (*Error, bool) {
	r := Reason(reason)
	if _, ok := messages[r]; !ok {
		return nil, false
	}
	return &Error{Reason: r, Target: target}, true
}

func deny(r Reason, target string) error {
	return &Error{Reason: r, Target: target}
}
