package infra_postgres_room

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/humanbelnik/planpoker/core/internal/model"
	usecase_room "github.com/humanbelnik/planpoker/core/internal/usecase/room"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

func (d *Driver) CreateRoom(ctx context.Context, room model.Room) error {
	query := `
		INSERT INTO rooms (id, name, voting_status, current_topic, show_votes, vote_options, created_by, group_id, created_at)
		VALUES (:id, :name, :voting_status, :current_topic, :show_votes, :vote_options, :created_by, :group_id, :created_at)
	`

	_, err := d.db.NamedExecContext(ctx, query, newRoomDTO(room))
	if err != nil {
		return mapPQError(err)
	}
	return nil
}

func (d *Driver) DeleteRoom(ctx context.Context, roomID string) (model.Room, error) {
	var room roomDTO

	query := `DELETE FROM rooms WHERE id = $1 RETURNING ` + roomColumns

	if err := d.db.GetContext(ctx, &room, query, roomID); err != nil {
		return model.Room{}, notFound(err)
	}
	return room.toModel(), nil
}

// Snapshot reads the room and its participants in one repeatable-read
// transaction so both come from the same point in time.
func (d *Driver) Snapshot(ctx context.Context, roomID string) (model.Snapshot, error) {
	tx, err := d.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return model.Snapshot{}, err
	}
	defer tx.Rollback()

	var room roomDTO
	if err := tx.GetContext(ctx, &room, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, roomID); err != nil {
		return model.Snapshot{}, notFound(err)
	}

	var participants []participantDTO
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE room_id = $1
		ORDER BY joined_at, id
	`
	if err := tx.SelectContext(ctx, &participants, query, roomID); err != nil {
		return model.Snapshot{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Snapshot{}, err
	}
	return model.Snapshot{
		Room:         room.toModel(),
		Participants: participantsToModel(participants),
	}, nil
}

func (d *Driver) UpdateSettings(ctx context.Context, roomID string, settings model.Settings) (model.Room, []model.Participant, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Room{}, nil, err
	}
	defer tx.Rollback()

	var room roomDTO
	query := `
		UPDATE rooms
		SET name = COALESCE($2, name),
			show_votes = COALESCE($3, show_votes),
			vote_options = COALESCE($4, vote_options)
		WHERE id = $1
		RETURNING ` + roomColumns

	err = tx.GetContext(ctx, &room, query,
		roomID,
		nullString(settings.Name),
		nullBool(settings.ShowVotes),
		pq.StringArray(settings.VoteOptions),
	)
	if err != nil {
		return model.Room{}, nil, notFound(err)
	}

	var cleared []participantDTO
	if settings.VoteOptions != nil {
		query := `
			UPDATE participants
			SET current_vote = NULL, updated_at = now()
			WHERE room_id = $1
				AND current_vote IS NOT NULL
				AND NOT (current_vote = ANY($2))
			RETURNING ` + participantColumns
		if err := tx.SelectContext(ctx, &cleared, query, roomID, room.VoteOptions); err != nil {
			return model.Room{}, nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Room{}, nil, err
	}
	return room.toModel(), participantsToModel(cleared), nil
}

func (d *Driver) ToggleShowVotes(ctx context.Context, roomID string) (model.Room, error) {
	var room roomDTO

	query := `UPDATE rooms SET show_votes = NOT show_votes WHERE id = $1 RETURNING ` + roomColumns

	if err := d.db.GetContext(ctx, &room, query, roomID); err != nil {
		return model.Room{}, notFound(err)
	}
	return room.toModel(), nil
}

func (d *Driver) StartRound(ctx context.Context, roomID string, topic *string) (model.Room, []model.Participant, error) {
	query := `
		UPDATE rooms
		SET voting_status = $2, current_topic = $3
		WHERE id = $1
		RETURNING ` + roomColumns
	return d.round(ctx, query, roomID, string(model.StatusVoting), nullString(topic))
}

func (d *Driver) ResetRound(ctx context.Context, roomID string) (model.Room, []model.Participant, error) {
	query := `
		UPDATE rooms
		SET voting_status = $2
		WHERE id = $1
		RETURNING ` + roomColumns
	return d.round(ctx, query, roomID, string(model.StatusWaiting))
}

// round applies a status change and clears every vote of the room in the
// same transaction.
func (d *Driver) round(ctx context.Context, roomQuery string, roomID string, args ...any) (model.Room, []model.Participant, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Room{}, nil, err
	}
	defer tx.Rollback()

	var room roomDTO
	if err := tx.GetContext(ctx, &room, roomQuery, append([]any{roomID}, args...)...); err != nil {
		return model.Room{}, nil, notFound(err)
	}

	var cleared []participantDTO
	query := `
		UPDATE participants
		SET current_vote = NULL, updated_at = now()
		WHERE room_id = $1 AND current_vote IS NOT NULL
		RETURNING ` + participantColumns
	if err := tx.SelectContext(ctx, &cleared, query, roomID); err != nil {
		return model.Room{}, nil, err
	}

	if err := tx.Commit(); err != nil {
		return model.Room{}, nil, err
	}
	return room.toModel(), participantsToModel(cleared), nil
}

func (d *Driver) Reveal(ctx context.Context, roomID string) (model.Room, bool, error) {
	var room roomDTO

	query := `
		UPDATE rooms
		SET voting_status = $2
		WHERE id = $1 AND voting_status = $3
		RETURNING ` + roomColumns

	err := d.db.GetContext(ctx, &room, query, roomID, string(model.StatusRevealed), string(model.StatusVoting))
	if err == nil {
		return room.toModel(), true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Room{}, false, err
	}

	if err := d.db.GetContext(ctx, &room, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, roomID); err != nil {
		return model.Room{}, false, notFound(err)
	}
	return room.toModel(), false, nil
}

// UpsertParticipant inserts p or, when the identity already has a seat in
// the room, refreshes its name and avatar. Role, vote and tenure of an
// existing seat are kept.
func (d *Driver) UpsertParticipant(ctx context.Context, p model.Participant) (model.Participant, bool, error) {
	query := `
		INSERT INTO participants (id, room_id, identity, name, avatar_style, avatar_seed, role, current_vote, joined_at, updated_at)
		VALUES (:id, :room_id, :identity, :name, :avatar_style, :avatar_seed, :role, :current_vote, :joined_at, :updated_at)
		ON CONFLICT (room_id, identity)
		DO UPDATE SET
			name = EXCLUDED.name,
			avatar_style = EXCLUDED.avatar_style,
			avatar_seed = EXCLUDED.avatar_seed,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + participantColumns + `, (xmax = 0) AS inserted
	`

	named, args, err := sqlx.Named(query, newParticipantDTO(p))
	if err != nil {
		return model.Participant{}, false, err
	}

	var out upsertedDTO
	if err := d.db.GetContext(ctx, &out, d.db.Rebind(named), args...); err != nil {
		return model.Participant{}, false, mapPQError(err)
	}
	return out.toModel(), out.Inserted, nil
}

// SetVote only writes while the room is voting and the vote is one of its
// options; otherwise it reports ErrConflict.
func (d *Driver) SetVote(ctx context.Context, roomID, participantID string, vote string) (model.Participant, error) {
	var p participantDTO

	query := `
		UPDATE participants p
		SET current_vote = $3, updated_at = now()
		FROM rooms r
		WHERE p.id = $2
			AND p.room_id = $1
			AND r.id = p.room_id
			AND r.voting_status = $4
			AND $3 = ANY(r.vote_options)
		RETURNING ` + prefixed("p", participantColumns)

	err := d.db.GetContext(ctx, &p, query, roomID, participantID, vote, string(model.StatusVoting))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Participant{}, d.missingOr(ctx, roomID, participantID, usecase_room.ErrConflict)
		}
		return model.Participant{}, err
	}
	return p.toModel(), nil
}

func (d *Driver) SetProfile(ctx context.Context, roomID, participantID string, name string, avatar model.Avatar) (model.Participant, error) {
	var p participantDTO

	query := `
		UPDATE participants
		SET name = $3, avatar_style = $4, avatar_seed = $5, updated_at = now()
		WHERE id = $2 AND room_id = $1
		RETURNING ` + participantColumns

	if err := d.db.GetContext(ctx, &p, query, roomID, participantID, name, avatar.Style, avatar.Seed); err != nil {
		return model.Participant{}, notFound(err)
	}
	return p.toModel(), nil
}

// Promote, Demote and DeleteParticipant lock the room's seats, then check
// that actorID still holds a manager seat and that the target still
// qualifies. A failed check is ErrConflict, a missing target is
// ErrResourceNotFound.
func (d *Driver) Promote(ctx context.Context, roomID, actorID, participantID string) (model.Participant, error) {
	return d.manage(ctx, roomID, actorID, participantID, func(tx *sqlx.Tx, seats []model.Participant, target model.Participant) (model.Participant, error) {
		if target.IsManager() {
			return model.Participant{}, usecase_room.ErrConflict
		}
		return setRole(ctx, tx, target.ID, model.RoleManager)
	})
}

func (d *Driver) Demote(ctx context.Context, roomID, actorID, participantID string) (model.Participant, error) {
	return d.manage(ctx, roomID, actorID, participantID, func(tx *sqlx.Tx, seats []model.Participant, target model.Participant) (model.Participant, error) {
		if !target.IsManager() || model.CountManagers(seats) < 2 {
			return model.Participant{}, usecase_room.ErrConflict
		}
		return setRole(ctx, tx, target.ID, model.RoleMember)
	})
}

func (d *Driver) DeleteParticipant(ctx context.Context, roomID, actorID, participantID string) (model.Participant, error) {
	return d.manage(ctx, roomID, actorID, participantID, func(tx *sqlx.Tx, seats []model.Participant, target model.Participant) (model.Participant, error) {
		if target.ID == actorID {
			return model.Participant{}, usecase_room.ErrConflict
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE id = $1`, target.ID); err != nil {
			return model.Participant{}, err
		}
		return target, nil
	})
}

func (d *Driver) manage(
	ctx context.Context,
	roomID, actorID, participantID string,
	write func(tx *sqlx.Tx, seats []model.Participant, target model.Participant) (model.Participant, error),
) (model.Participant, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Participant{}, err
	}
	defer tx.Rollback()

	seats, err := lockParticipants(ctx, tx, roomID)
	if err != nil {
		return model.Participant{}, err
	}
	actor, ok := model.FindParticipant(seats, actorID)
	if !ok || !actor.IsManager() {
		return model.Participant{}, usecase_room.ErrConflict
	}
	target, ok := model.FindParticipant(seats, participantID)
	if !ok {
		return model.Participant{}, usecase_room.ErrResourceNotFound
	}

	p, err := write(tx, seats, target)
	if err != nil {
		return model.Participant{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Participant{}, err
	}
	return p, nil
}

func setRole(ctx context.Context, tx *sqlx.Tx, participantID string, role model.Role) (model.Participant, error) {
	var p participantDTO
	query := `
		UPDATE participants
		SET role = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + participantColumns
	if err := tx.GetContext(ctx, &p, query, participantID, string(role)); err != nil {
		return model.Participant{}, err
	}
	return p.toModel(), nil
}

// Leave deletes the participant. If that removes the last manager while
// others remain, the longest-tenured of them is promoted before commit.
func (d *Driver) Leave(ctx context.Context, roomID, participantID string) (model.Participant, *model.Participant, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Participant{}, nil, err
	}
	defer tx.Rollback()

	seats, err := lockParticipants(ctx, tx, roomID)
	if err != nil {
		return model.Participant{}, nil, err
	}
	left, ok := model.FindParticipant(seats, participantID)
	if !ok {
		return model.Participant{}, nil, usecase_room.ErrResourceNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE id = $1`, participantID); err != nil {
		return model.Participant{}, nil, err
	}

	var promoted *model.Participant
	remaining := removeParticipant(seats, participantID)
	if left.IsManager() && model.CountManagers(remaining) == 0 {
		if senior, ok := model.Senior(remaining, ""); ok {
			p, err := setRole(ctx, tx, senior.ID, model.RoleManager)
			if err != nil {
				return model.Participant{}, nil, err
			}
			promoted = &p
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Participant{}, nil, err
	}
	return left, promoted, nil
}

func lockParticipants(ctx context.Context, tx *sqlx.Tx, roomID string) ([]model.Participant, error) {
	var seats []participantDTO
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE room_id = $1
		ORDER BY joined_at, id
		FOR UPDATE
	`
	if err := tx.SelectContext(ctx, &seats, query, roomID); err != nil {
		return nil, err
	}
	return participantsToModel(seats), nil
}

func (d *Driver) missingOr(ctx context.Context, roomID, participantID string, otherwise error) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM participants WHERE id = $2 AND room_id = $1)`
	if err := d.db.GetContext(ctx, &exists, query, roomID, participantID); err != nil {
		return err
	}
	if !exists {
		return usecase_room.ErrResourceNotFound
	}
	return otherwise
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return usecase_room.ErrResourceNotFound
	}
	return err
}

func mapPQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return usecase_room.ErrConflict
		case pgForeignKeyViolation:
			return usecase_room.ErrResourceNotFound
		}
	}
	return err
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

func removeParticipant(ps []model.Participant, id string) []model.Participant {
	out := make([]model.Participant, 0, len(ps))
	for _, p := range ps {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func prefixed(alias, columns string) string {
	cols := strings.Split(columns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}
