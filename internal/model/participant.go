package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

type Role string

const (
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

const (
	MaxParticipantNameLength = 40
	DefaultAvatarStyle       = "initials"
)

type Avatar struct {
	Style string `json:"style"`
	Seed  string `json:"seed"`
}

type Participant struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"room_id"`
	Identity    Identity  `json:"identity"`
	Name        string    `json:"name"`
	Avatar      Avatar    `json:"avatar"`
	Role        Role      `json:"role"`
	CurrentVote *string   `json:"current_vote,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p Participant) IsManager() bool {
	return p.Role == RoleManager
}

func (p Participant) Vote() string {
	if p.CurrentVote == nil {
		return ""
	}
	return *p.CurrentVote
}

func (p Participant) HasVoted() bool {
	return p.CurrentVote != nil
}

func (p Participant) Clone() Participant {
	c := p
	if p.CurrentVote != nil {
		v := *p.CurrentVote
		c.CurrentVote = &v
	}
	return c
}

// Equal compares every replicated column.
func (p Participant) Equal(o Participant) bool {
	return p.ID == o.ID &&
		p.RoomID == o.RoomID &&
		p.Identity == o.Identity &&
		p.Name == o.Name &&
		p.Avatar == o.Avatar &&
		p.Role == o.Role &&
		p.Vote() == o.Vote() &&
		p.HasVoted() == o.HasVoted() &&
		p.JoinedAt.Equal(o.JoinedAt) &&
		p.UpdatedAt.Equal(o.UpdatedAt)
}

func NormalizeParticipantName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	return name, n > 0 && n <= MaxParticipantNameLength
}

func DefaultAvatar(name string) Avatar {
	return Avatar{Style: DefaultAvatarStyle, Seed: name}
}

func CountManagers(participants []Participant) int {
	n := 0
	for _, p := range participants {
		if p.IsManager() {
			n++
		}
	}
	return n
}

func FindParticipant(participants []Participant, id string) (Participant, bool) {
	for _, p := range participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// Senior returns the longest-tenured participant, skipping exclude.
// Ties on JoinedAt are broken by id so every replica picks the same one.
func Senior(participants []Participant, exclude string) (Participant, bool) {
	var (
		best  Participant
		found bool
	)
	for _, p := range participants {
		if p.ID == exclude {
			continue
		}
		if !found || p.JoinedAt.Before(best.JoinedAt) ||
			(p.JoinedAt.Equal(best.JoinedAt) && p.ID < best.ID) {
			best, found = p, true
		}
	}
	return best, found
}
