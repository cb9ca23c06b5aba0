package model

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

type VotingStatus string

const (
	StatusWaiting  VotingStatus = "waiting"
	StatusVoting   VotingStatus = "voting"
	StatusRevealed VotingStatus = "revealed"
)

func (s VotingStatus) Valid() bool {
	switch s {
	case StatusWaiting, StatusVoting, StatusRevealed:
		return true
	}
	return false
}

const (
	MinVoteOptions      = 2
	MaxVoteOptions      = 20
	MaxVoteOptionLength = 5
	MaxRoomNameLength   = 80
)

var DefaultVoteOptions = []string{"0", "1", "2", "3", "5", "8", "13", "21", "?", "☕"}

type Room struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	VotingStatus VotingStatus `json:"voting_status"`
	CurrentTopic *string      `json:"current_topic,omitempty"`
	ShowVotes    bool         `json:"show_votes"`
	VoteOptions  []string     `json:"vote_options"`
	CreatedBy    string       `json:"created_by"`
	GroupID      *string      `json:"group_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Clone returns a copy that shares no slices or pointers with r.
func (r Room) Clone() Room {
	c := r
	c.VoteOptions = slices.Clone(r.VoteOptions)
	if r.CurrentTopic != nil {
		topic := *r.CurrentTopic
		c.CurrentTopic = &topic
	}
	if r.GroupID != nil {
		group := *r.GroupID
		c.GroupID = &group
	}
	return c
}

func (r Room) Topic() string {
	if r.CurrentTopic == nil {
		return ""
	}
	return *r.CurrentTopic
}

func (r Room) HasVoteOption(v string) bool {
	return slices.Contains(r.VoteOptions, v)
}

// Settings is a partial room update, nil fields are left untouched.
type Settings struct {
	Name        *string  `json:"name,omitempty"`
	ShowVotes   *bool    `json:"show_votes,omitempty"`
	VoteOptions []string `json:"vote_options,omitempty"`
}

func (s Settings) Empty() bool {
	return s.Name == nil && s.ShowVotes == nil && s.VoteOptions == nil
}

func NormalizeRoomName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	return name, n > 0 && n <= MaxRoomNameLength
}

// ValidVoteOptions reports whether opts is an ordered set of 2-20 distinct
// entries of 1-5 characters each.
func ValidVoteOptions(opts []string) bool {
	if len(opts) < MinVoteOptions || len(opts) > MaxVoteOptions {
		return false
	}
	seen := make(map[string]struct{}, len(opts))
	for _, o := range opts {
		if strings.TrimSpace(o) == "" {
			return false
		}
		if utf8.RuneCountInString(o) > MaxVoteOptionLength {
			return false
		}
		if _, dup := seen[o]; dup {
			return false
		}
		seen[o] = struct{}{}
	}
	return true
}
