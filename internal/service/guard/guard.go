// Package guard holds the permission and invariant checks every room command
// goes through. The checks are pure functions over a room snapshot: the
// client session runs them against its local mirror to fail fast, and the
// authoritative store runs the very same functions against freshly loaded
// rows before it writes anything.
package guard

import (
	"strings"

	"github.com/humanbelnik/planpoker/core/internal/model"
)

func caller(s model.Snapshot, callerID string) (model.Participant, error) {
	p, ok := model.FindParticipant(s.Participants, callerID)
	if !ok {
		return model.Participant{}, deny(ReasonNotParticipant, "")
	}
	return p, nil
}

func manager(s model.Snapshot, callerID string) (model.Participant, error) {
	p, err := caller(s, callerID)
	if err != nil {
		return p, err
	}
	if !p.IsManager() {
		return p, deny(ReasonNotManager, "")
	}
	return p, nil
}

func target(s model.Snapshot, targetID string) (model.Participant, error) {
	p, ok := model.FindParticipant(s.Participants, targetID)
	if !ok {
		return model.Participant{}, deny(ReasonParticipantNotFound, targetID)
	}
	return p, nil
}

// CheckVote allows a vote only while the room is voting and only with one of
// the room's current options.
func CheckVote(s model.Snapshot, callerID, vote string) error {
	if _, err := caller(s, callerID); err != nil {
		return err
	}
	if s.Room.VotingStatus != model.StatusVoting {
		return deny(ReasonVotingNotActive, "")
	}
	if !s.Room.HasVoteOption(vote) {
		return deny(ReasonInvalidVote, "")
	}
	return nil
}

// CheckManage covers every manager-only room command without extra
// preconditions: start, reveal, reset and toggling show-votes.
func CheckManage(s model.Snapshot, callerID string) error {
	_, err := manager(s, callerID)
	return err
}

func CheckStartVoting(s model.Snapshot, callerID string) error { return CheckManage(s, callerID) }

func CheckReveal(s model.Snapshot, callerID string) error { return CheckManage(s, callerID) }

func CheckReset(s model.Snapshot, callerID string) error { return CheckManage(s, callerID) }

func CheckToggleShowVotes(s model.Snapshot, callerID string) error { return CheckManage(s, callerID) }

func CheckUpdateSettings(s model.Snapshot, callerID string, settings model.Settings) error {
	if _, err := manager(s, callerID); err != nil {
		return err
	}
	return ValidateSettings(settings)
}

func ValidateSettings(settings model.Settings) error {
	if settings.Empty() {
		return deny(ReasonInvalidSettings, "")
	}
	if settings.Name != nil {
		if _, ok := model.NormalizeRoomName(*settings.Name); !ok {
			return deny(ReasonInvalidSettings, "")
		}
	}
	if settings.VoteOptions != nil && !model.ValidVoteOptions(settings.VoteOptions) {
		return deny(ReasonInvalidSettings, "")
	}
	return nil
}

func CheckPromote(s model.Snapshot, callerID, targetID string) error {
	if _, err := manager(s, callerID); err != nil {
		return err
	}
	t, err := target(s, targetID)
	if err != nil {
		return err
	}
	if t.IsManager() {
		return deny(ReasonAlreadyManager, targetID)
	}
	return nil
}

// CheckDemote also applies to self-demotion: a room with a single manager
// never loses it through a demote.
func CheckDemote(s model.Snapshot, callerID, targetID string) error {
	if _, err := manager(s, callerID); err != nil {
		return err
	}
	t, err := target(s, targetID)
	if err != nil {
		return err
	}
	if !t.IsManager() {
		return deny(ReasonTargetNotManager, targetID)
	}
	if model.CountManagers(s.Participants) <= 1 {
		return deny(ReasonLastManager, targetID)
	}
	return nil
}

func CheckKick(s model.Snapshot, callerID, targetID string) error {
	if _, err := manager(s, callerID); err != nil {
		return err
	}
	if targetID == callerID {
		return deny(ReasonCannotKickSelf, targetID)
	}
	_, err := target(s, targetID)
	return err
}

func CheckLeave(s model.Snapshot, callerID string) error {
	_, err := caller(s, callerID)
	return err
}

func CheckUpdateName(s model.Snapshot, callerID, name string) error {
	if _, err := caller(s, callerID); err != nil {
		return err
	}
	if _, ok := model.NormalizeParticipantName(name); !ok {
		return deny(ReasonInvalidProfile, "")
	}
	return nil
}

func CheckUpdateAvatar(s model.Snapshot, callerID string, avatar model.Avatar) error {
	if _, err := caller(s, callerID); err != nil {
		return err
	}
	if strings.TrimSpace(avatar.Style) == "" {
		return deny(ReasonInvalidProfile, "")
	}
	return nil
}
