package session

import (
	"log/slog"
	"slices"

	"github.com/humanbelnik/planpoker/core/internal/eventbus"
	"github.com/humanbelnik/planpoker/core/internal/model"
)

// Reconciler folds change-feed rows into a Mirror. Each row is a full
// snapshot, so applying one is idempotent and the last applied row wins.
// Apply methods never block and return the domain events the change
// produced; the mirror is already updated when they return.
type Reconciler struct {
	mirror *Mirror
	logger *slog.Logger
}

func NewReconciler(mirror *Mirror, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		mirror: mirror,
		logger: logger,
	}
}

func (r *Reconciler) ApplyRoom(change model.RoomChange) []eventbus.Event {
	m := r.mirror
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateActive {
		return nil
	}
	if change.Row.ID != m.room.ID {
		r.logger.Debug("dropping foreign room change", "room", m.room.ID, "got", change.Row.ID)
		return nil
	}

	if change.Op == model.OpDelete {
		m.state = StateGone
		return []eventbus.Event{eventbus.RoomGone{RoomID: m.room.ID}}
	}

	next := change.Row
	if !next.VotingStatus.Valid() {
		r.logger.Warn("dropping room change with unknown status", "room", m.room.ID, "status", next.VotingStatus)
		return nil
	}

	var events []eventbus.Event
	prev := m.room

	if next.VotingStatus != prev.VotingStatus {
		events = append(events, eventbus.VotingStatusChanged{From: prev.VotingStatus, To: next.VotingStatus})
		if next.VotingStatus == model.StatusVoting {
			r.clearVotesLocked()
		}
	}
	if !equalPtr(next.CurrentTopic, prev.CurrentTopic) {
		events = append(events, eventbus.TopicChanged{Topic: clonePtr(next.CurrentTopic)})
	}
	if next.ShowVotes != prev.ShowVotes {
		events = append(events, eventbus.ShowVotesChanged{ShowVotes: next.ShowVotes})
	}
	if !slices.Equal(next.VoteOptions, prev.VoteOptions) {
		events = append(events, eventbus.VoteOptionsChanged{Options: slices.Clone(next.VoteOptions)})
	}
	if next.Name != prev.Name {
		events = append(events, eventbus.RoomNameChanged{Name: next.Name})
	}

	m.room = next.Clone()
	return events
}

// clearVotesLocked wipes every displayed vote when a round starts, whoever
// started it. The store clears the rows too; their updates arrive later on
// the participant feed.
func (r *Reconciler) clearVotesLocked() {
	m := r.mirror
	for id, p := range m.participants {
		if p.CurrentVote != nil {
			p.CurrentVote = nil
			m.participants[id] = p
		}
	}
	if m.optimisticVote != nil {
		m.setOptimisticLocked(nil)
	} else {
		m.voteSeq++
	}
}

func (r *Reconciler) ApplyParticipant(change model.ParticipantChange) []eventbus.Event {
	m := r.mirror
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateActive {
		return nil
	}
	row := change.Row
	if row.RoomID != m.room.ID {
		r.logger.Debug("dropping foreign participant change", "room", m.room.ID, "got", row.RoomID)
		return nil
	}

	switch change.Op {
	case model.OpInsert:
		return r.insertLocked(row)
	case model.OpUpdate:
		return r.updateLocked(row)
	case model.OpDelete:
		return r.deleteLocked(row)
	}
	r.logger.Warn("dropping participant change with unknown op", "room", m.room.ID, "op", change.Op)
	return nil
}

func (r *Reconciler) insertLocked(row model.Participant) []eventbus.Event {
	m := r.mirror
	if _, ok := m.participants[row.ID]; ok {
		return nil
	}
	m.participants[row.ID] = row.Clone()
	if row.ID == m.selfID {
		m.setOptimisticLocked(row.CurrentVote)
	}
	return []eventbus.Event{eventbus.ParticipantJoined{Participant: row.Clone()}}
}

func (r *Reconciler) updateLocked(row model.Participant) []eventbus.Event {
	m := r.mirror
	prev, ok := m.participants[row.ID]
	if !ok {
		// update overtook the insert
		return r.insertLocked(row)
	}
	if prev.Equal(row) {
		return nil
	}

	var events []eventbus.Event
	m.participants[row.ID] = row.Clone()

	if row.ID == m.selfID {
		if !equalPtr(m.optimisticVote, row.CurrentVote) {
			m.setOptimisticLocked(row.CurrentVote)
		}
		if prev.Role != row.Role {
			events = append(events, eventbus.RoleChanged{From: prev.Role, To: row.Role})
		}
	}
	events = append(events, eventbus.ParticipantUpdated{Participant: row.Clone()})
	return events
}

func (r *Reconciler) deleteLocked(row model.Participant) []eventbus.Event {
	m := r.mirror
	prev, ok := m.participants[row.ID]
	if row.ID == m.selfID {
		delete(m.participants, row.ID)
		if m.leaving {
			m.state = StateLeft
			return []eventbus.Event{eventbus.ParticipantLeft{Participant: row.Clone()}}
		}
		m.state = StateDisconnected
		return []eventbus.Event{eventbus.ForcedDisconnect{ParticipantID: row.ID}}
	}
	if !ok {
		return nil
	}
	delete(m.participants, row.ID)
	return []eventbus.Event{eventbus.ParticipantLeft{Participant: prev}}
}
