package infra_postgres_room

import (
	"database/sql"
	"time"

	"github.com/humanbelnik/planpoker/core/internal/model"
	"github.com/lib/pq"
)

const roomColumns = `id, name, voting_status, current_topic, show_votes, vote_options, created_by, group_id, created_at`

const participantColumns = `id, room_id, identity, name, avatar_style, avatar_seed, role, current_vote, joined_at, updated_at`

type roomDTO struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	VotingStatus string         `db:"voting_status"`
	CurrentTopic sql.NullString `db:"current_topic"`
	ShowVotes    bool           `db:"show_votes"`
	VoteOptions  pq.StringArray `db:"vote_options"`
	CreatedBy    string         `db:"created_by"`
	GroupID      sql.NullString `db:"group_id"`
	CreatedAt    time.Time      `db:"created_at"`
}

func newRoomDTO(r model.Room) roomDTO {
	return roomDTO{
		ID:           r.ID,
		Name:         r.Name,
		VotingStatus: string(r.VotingStatus),
		CurrentTopic: nullString(r.CurrentTopic),
		ShowVotes:    r.ShowVotes,
		VoteOptions:  pq.StringArray(r.VoteOptions),
		CreatedBy:    r.CreatedBy,
		GroupID:      nullString(r.GroupID),
		CreatedAt:    r.CreatedAt,
	}
}

func (d roomDTO) toModel() model.Room {
	return model.Room{
		ID:           d.ID,
		Name:         d.Name,
		VotingStatus: model.VotingStatus(d.VotingStatus),
		CurrentTopic: stringPtr(d.CurrentTopic),
		ShowVotes:    d.ShowVotes,
		VoteOptions:  []string(d.VoteOptions),
		CreatedBy:    d.CreatedBy,
		GroupID:      stringPtr(d.GroupID),
		CreatedAt:    d.CreatedAt,
	}
}

type participantDTO struct {
	ID          string         `db:"id"`
	RoomID      string         `db:"room_id"`
	Identity    string         `db:"identity"`
	Name        string         `db:"name"`
	AvatarStyle string         `db:"avatar_style"`
	AvatarSeed  string         `db:"avatar_seed"`
	Role        string         `db:"role"`
	CurrentVote sql.NullString `db:"current_vote"`
	JoinedAt    time.Time      `db:"joined_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type upsertedDTO struct {
	participantDTO
	Inserted bool `db:"inserted"`
}

func newParticipantDTO(p model.Participant) participantDTO {
	return participantDTO{
		ID:          p.ID,
		RoomID:      p.RoomID,
		Identity:    string(p.Identity),
		Name:        p.Name,
		AvatarStyle: p.Avatar.Style,
		AvatarSeed:  p.Avatar.Seed,
		Role:        string(p.Role),
		CurrentVote: nullString(p.CurrentVote),
		JoinedAt:    p.JoinedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d participantDTO) toModel() model.Participant {
	return model.Participant{
		ID:          d.ID,
		RoomID:      d.RoomID,
		Identity:    model.Identity(d.Identity),
		Name:        d.Name,
		Avatar:      model.Avatar{Style: d.AvatarStyle, Seed: d.AvatarSeed},
		Role:        model.Role(d.Role),
		CurrentVote: stringPtr(d.CurrentVote),
		JoinedAt:    d.JoinedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func participantsToModel(dtos []participantDTO) []model.Participant {
	out := make([]model.Participant, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toModel())
	}
	return out
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
