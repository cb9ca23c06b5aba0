package session

import (
	"slices"
	"sync"

	"github.com/humanbelnik/planpoker/core/internal/model"
	"github.com/humanbelnik/planpoker/core/internal/service/tally"
)

type State string

const (
	StateActive       State = "active"
	StateGone         State = "gone"
	StateDisconnected State = "disconnected"
	StateLeft         State = "left"
	StateClosed       State = "closed"
)

// Mirror is the client-side copy of one room. Writes happen on the session
// goroutine only; reads are safe from anywhere.
type Mirror struct {
	mu sync.RWMutex

	room         model.Room
	participants map[string]model.Participant
	selfID       string

	optimisticVote *string
	// bumped on every change of optimisticVote, lets a failed submit roll
	// back only if nothing newer happened in between
	voteSeq uint64

	leaving bool
	state   State
}

func NewMirror(snapshot model.Snapshot, selfID string) *Mirror {
	m := &Mirror{
		room:         snapshot.Room.Clone(),
		participants: make(map[string]model.Participant, len(snapshot.Participants)),
		selfID:       selfID,
		state:        StateActive,
	}
	for _, p := range snapshot.Participants {
		if p.RoomID != "" && p.RoomID != snapshot.Room.ID {
			continue
		}
		m.participants[p.ID] = p.Clone()
	}
	if self, ok := m.participants[selfID]; ok && self.CurrentVote != nil {
		v := *self.CurrentVote
		m.optimisticVote = &v
	}
	return m
}

func (m *Mirror) RoomID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.room.ID
}

func (m *Mirror) SelfID() string {
	return m.selfID
}

func (m *Mirror) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Mirror) Room() model.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.room.Clone()
}

func (m *Mirror) Self() (model.Participant, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.participants[m.selfID]
	return p.Clone(), ok
}

func (m *Mirror) OptimisticVote() *string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clonePtr(m.optimisticVote)
}

// Snapshot returns the authoritative part of the mirror: rows exactly as the
// store last reported them, ordered by tenure.
func (m *Mirror) Snapshot() model.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked(false)
}

// View is Snapshot with the own optimistic vote laid over the own row.
func (m *Mirror) View() model.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked(true)
}

func (m *Mirror) Tally() tally.Result {
	return tally.Compute(m.View().Participants)
}

// VisibleVote returns what the local user is allowed to see of a
// participant's vote. Managers and the participant itself always see it,
// others only once votes are shown or revealed.
func (m *Mirror) VisibleVote(participantID string) (vote *string, visible bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.participants[participantID]
	if !ok {
		return nil, false
	}
	if participantID == m.selfID {
		return clonePtr(m.optimisticVote), true
	}
	self, ok := m.participants[m.selfID]
	if (ok && self.IsManager()) || m.room.ShowVotes || m.room.VotingStatus == model.StatusRevealed {
		return clonePtr(p.CurrentVote), true
	}
	return nil, false
}

func (m *Mirror) snapshotLocked(overlay bool) model.Snapshot {
	ps := make([]model.Participant, 0, len(m.participants))
	for _, p := range m.participants {
		c := p.Clone()
		if overlay && c.ID == m.selfID {
			c.CurrentVote = clonePtr(m.optimisticVote)
		}
		ps = append(ps, c)
	}
	slices.SortFunc(ps, func(a, b model.Participant) int {
		if c := a.JoinedAt.Compare(b.JoinedAt); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return model.Snapshot{Room: m.room.Clone(), Participants: ps}
}

func (m *Mirror) setOptimisticLocked(v *string) {
	m.optimisticVote = clonePtr(v)
	m.voteSeq++
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
