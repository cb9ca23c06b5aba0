package session

import (
	"sync"
	"time"

	"github.com/humanbelnik/planpoker/core/internal/model"
)

const testRoomID = "room-1"

var epoch = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type RoomBuilder struct {
	r model.Room
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		r: model.Room{
			ID:           testRoomID,
			Name:         "Sprint 42",
			VotingStatus: model.StatusWaiting,
			VoteOptions:  []string{"1", "2", "3", "5", "8", "?"},
			CreatedBy:    "account:alice",
			CreatedAt:    epoch,
		},
	}
}

func (b *RoomBuilder) WithStatus(status model.VotingStatus) *RoomBuilder {
	b.r.VotingStatus = status
	return b
}

func (b *RoomBuilder) WithTopic(topic string) *RoomBuilder {
	b.r.CurrentTopic = &topic
	return b
}

func (b *RoomBuilder) WithShowVotes(show bool) *RoomBuilder {
	b.r.ShowVotes = show
	return b
}

func (b *RoomBuilder) WithName(name string) *RoomBuilder {
	b.r.Name = name
	return b
}

func (b *RoomBuilder) WithID(id string) *RoomBuilder {
	b.r.ID = id
	return b
}

func (b *RoomBuilder) Build() model.Room {
	return b.r.Clone()
}

type ParticipantBuilder struct {
	p model.Participant
}

func NewParticipantBuilder(id string) *ParticipantBuilder {
	return &ParticipantBuilder{
		p: model.Participant{
			ID:       id,
			RoomID:   testRoomID,
			Identity: model.AnonymousIdentity(id),
			Name:     id,
			Avatar:   model.DefaultAvatar(id),
			Role:     model.RoleMember,
			JoinedAt: epoch,
		},
	}
}

func (b *ParticipantBuilder) Manager() *ParticipantBuilder {
	b.p.Role = model.RoleManager
	return b
}

func (b *ParticipantBuilder) WithVote(vote string) *ParticipantBuilder {
	b.p.CurrentVote = &vote
	return b
}

func (b *ParticipantBuilder) WithRoom(roomID string) *ParticipantBuilder {
	b.p.RoomID = roomID
	return b
}

func (b *ParticipantBuilder) JoinedAfter(d time.Duration) *ParticipantBuilder {
	b.p.JoinedAt = epoch.Add(d)
	return b
}

func (b *ParticipantBuilder) Build() model.Participant {
	return b.p.Clone()
}

func ptr(s string) *string {
	return &s
}

// fakeFeed is an in-memory Feed with unbuffered channels, so a send returns
// only once the session picked the change up.
type fakeFeed struct {
	rooms        chan model.RoomChange
	participants chan model.ParticipantChange

	mu     sync.Mutex
	closed int
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{
		rooms:        make(chan model.RoomChange),
		participants: make(chan model.ParticipantChange),
	}
}

func (f *fakeFeed) Rooms() <-chan model.RoomChange               { return f.rooms }
func (f *fakeFeed) Participants() <-chan model.ParticipantChange { return f.participants }

func (f *fakeFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeFeed) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
