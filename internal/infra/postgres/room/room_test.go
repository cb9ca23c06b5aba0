package infra_postgres_room

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/humanbelnik/planpoker/core/internal/model"
	usecase_room "github.com/humanbelnik/planpoker/core/internal/usecase/room"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type RoomInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db     *sqlx.DB
	mock   sqlmock.Sqlmock
	driver *Driver
	ctx    context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	return &resources{
		db:     sqlxDB,
		mock:   mock,
		driver: New(sqlxDB),
		ctx:    context.Background(),
	}
}

var epoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func columns(list string) []string {
	cols := strings.Split(list, ",")
	for i, c := range cols {
		cols[i] = strings.TrimSpace(c)
	}
	return cols
}

func roomRows(rooms ...model.Room) *sqlmock.Rows {
	rows := sqlmock.NewRows(columns(roomColumns))
	for _, r := range rooms {
		opts, _ := pq.StringArray(r.VoteOptions).Value()
		rows.AddRow(r.ID, r.Name, string(r.VotingStatus), nullable(r.CurrentTopic),
			r.ShowVotes, opts, r.CreatedBy, nullable(r.GroupID), r.CreatedAt)
	}
	return rows
}

func participantValues(p model.Participant) []driver.Value {
	return []driver.Value{p.ID, p.RoomID, string(p.Identity), p.Name, p.Avatar.Style,
		p.Avatar.Seed, string(p.Role), nullable(p.CurrentVote), p.JoinedAt, p.UpdatedAt}
}

func participantRows(ps ...model.Participant) *sqlmock.Rows {
	rows := sqlmock.NewRows(columns(participantColumns))
	for _, p := range ps {
		rows.AddRow(participantValues(p)...)
	}
	return rows
}

func nullable(s *string) driver.Value {
	if s == nil {
		return nil
	}
	return *s
}

func ptr(s string) *string { return &s }

func room(status model.VotingStatus) model.Room {
	return model.Room{
		ID:           "room-1",
		Name:         "Sprint 42",
		VotingStatus: status,
		VoteOptions:  []string{"1", "2", "3", "5", "8"},
		CreatedBy:    "account:alice",
		CreatedAt:    epoch,
	}
}

func seat(id string, role model.Role, joined time.Duration) model.Participant {
	return model.Participant{
		ID:        id,
		RoomID:    "room-1",
		Identity:  model.AccountIdentity(id),
		Name:      strings.ToUpper(id),
		Avatar:    model.DefaultAvatar(id),
		Role:      role,
		JoinedAt:  epoch.Add(joined),
		UpdatedAt: epoch.Add(joined),
	}
}

func (s *RoomInfraUnitSuite) TestCreateRoom(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		dbErr       error
		expectedErr error
	}{
		{name: "Should insert room"},
		{
			name:        "Should map unique violation to conflict",
			dbErr:       &pq.Error{Code: pgUniqueViolation},
			expectedErr: usecase_room.ErrConflict,
		},
		{
			name:        "Should pass through other errors",
			dbErr:       errors.New("connection reset"),
			expectedErr: nil,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			exp := r.mock.ExpectExec("INSERT INTO rooms")
			if tc.dbErr != nil {
				exp.WillReturnError(tc.dbErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := r.driver.CreateRoom(r.ctx, room(model.StatusWaiting))

			switch {
			case tc.dbErr == nil:
				assert.NoError(t, err)
			case tc.expectedErr != nil:
				assert.ErrorIs(t, err, tc.expectedErr)
			default:
				assert.ErrorContains(t, err, "connection reset")
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *RoomInfraUnitSuite) TestSnapshot(t provider.T) {
	t.Parallel()
	r := initResources(t)

	rm := room(model.StatusVoting)
	rm.CurrentTopic = ptr("PROJ-1")
	alice := seat("alice", model.RoleManager, 0)
	bob := seat("bob", model.RoleMember, time.Minute)
	bob.CurrentVote = ptr("5")

	r.mock.ExpectBegin()
	r.mock.ExpectQuery("SELECT (.+) FROM rooms").WithArgs("room-1").WillReturnRows(roomRows(rm))
	r.mock.ExpectQuery("SELECT (.+) FROM participants").WithArgs("room-1").WillReturnRows(participantRows(alice, bob))
	r.mock.ExpectCommit()

	snap, err := r.driver.Snapshot(r.ctx, "room-1")
	require.NoError(t, err)

	assert.Equal(t, rm, snap.Room)
	require.Len(t, snap.Participants, 2)
	assert.Equal(t, alice, snap.Participants[0])
	assert.Equal(t, "5", snap.Participants[1].Vote())
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func (s *RoomInfraUnitSuite) TestSnapshotMissingRoom(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.mock.ExpectBegin()
	r.mock.ExpectQuery("SELECT (.+) FROM rooms").WithArgs("room-1").WillReturnRows(roomRows())
	r.mock.ExpectRollback()

	_, err := r.driver.Snapshot(r.ctx, "room-1")
	assert.ErrorIs(t, err, usecase_room.ErrResourceNotFound)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func (s *RoomInfraUnitSuite) TestStartRoundClearsVotes(t provider.T) {
	t.Parallel()
	r := initResources(t)

	rm := room(model.StatusVoting)
	rm.CurrentTopic = ptr("PROJ-2")
	bob := seat("bob", model.RoleMember, time.Minute)

	r.mock.ExpectBegin()
	r.mock.ExpectQuery("UPDATE rooms").
		WithArgs("room-1", string(model.StatusVoting), "PROJ-2").
		WillReturnRows(roomRows(rm))
	r.mock.ExpectQuery("UPDATE participants").WithArgs("room-1").WillReturnRows(participantRows(bob))
	r.mock.ExpectCommit()

	got, cleared, err := r.driver.StartRound(r.ctx, "room-1", ptr("PROJ-2"))
	require.NoError(t, err)

	assert.Equal(t, model.StatusVoting, got.VotingStatus)
	assert.Equal(t, "PROJ-2", got.Topic())
	require.Len(t, cleared, 1)
	assert.Nil(t, cleared[0].CurrentVote)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func (s *RoomInfraUnitSuite) TestReveal(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		setupMocks      func(r *resources)
		expectedChanged bool
		expectedErr     error
	}{
		{
			name: "Should reveal a voting room",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("UPDATE rooms").
					WithArgs("room-1", string(model.StatusRevealed), string(model.StatusVoting)).
					WillReturnRows(roomRows(room(model.StatusRevealed)))
			},
			expectedChanged: true,
		},
		{
			name: "Should leave a waiting room untouched",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("UPDATE rooms").WillReturnRows(roomRows())
				r.mock.ExpectQuery("SELECT (.+) FROM rooms").
					WithArgs("room-1").
					WillReturnRows(roomRows(room(model.StatusWaiting)))
			},
		},
		{
			name: "Should report a missing room",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("UPDATE rooms").WillReturnRows(roomRows())
				r.mock.ExpectQuery("SELECT (.+) FROM rooms").WillReturnRows(roomRows())
			},
			expectedErr: usecase_room.ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			_, changed, err := r.driver.Reveal(r.ctx, "room-1")

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedChanged, changed)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *RoomInfraUnitSuite) TestUpsertParticipant(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		inserted bool
	}{
		{name: "Should report a fresh seat", inserted: true},
		{name: "Should report a rejoin", inserted: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			bob := seat("bob", model.RoleMember, 0)
			rows := sqlmock.NewRows(append(columns(participantColumns), "inserted")).
				AddRow(append(participantValues(bob), tc.inserted)...)
			r.mock.ExpectQuery("INSERT INTO participants").WillReturnRows(rows)

			got, inserted, err := r.driver.UpsertParticipant(r.ctx, bob)
			require.NoError(t, err)

			assert.Equal(t, bob, got)
			assert.Equal(t, tc.inserted, inserted)
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *RoomInfraUnitSuite) TestUpsertParticipantMissingRoom(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.mock.ExpectQuery("INSERT INTO participants").WillReturnError(&pq.Error{Code: pgForeignKeyViolation})

	_, _, err := r.driver.UpsertParticipant(r.ctx, seat("bob", model.RoleMember, 0))
	assert.ErrorIs(t, err, usecase_room.ErrResourceNotFound)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func (s *RoomInfraUnitSuite) TestSetVote(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		setupMocks  func(r *resources)
		expectedErr error
	}{
		{
			name: "Should store the vote",
			setupMocks: func(r *resources) {
				bob := seat("bob", model.RoleMember, 0)
				bob.CurrentVote = ptr("5")
				r.mock.ExpectQuery("UPDATE participants p").
					WithArgs("room-1", "bob", "5", string(model.StatusVoting)).
					WillReturnRows(participantRows(bob))
			},
		},
		{
			name: "Should report conflict when the room is not voting",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("UPDATE participants p").WillReturnRows(participantRows())
				r.mock.ExpectQuery("SELECT EXISTS").
					WithArgs("room-1", "bob").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			expectedErr: usecase_room.ErrConflict,
		},
		{
			name: "Should report a missing participant",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("UPDATE participants p").WillReturnRows(participantRows())
				r.mock.ExpectQuery("SELECT EXISTS").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			expectedErr: usecase_room.ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			got, err := r.driver.SetVote(r.ctx, "room-1", "bob", "5")

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "5", got.Vote())
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *RoomInfraUnitSuite) TestManageUnderLock(t provider.T) {
	t.Parallel()

	alice := seat("alice", model.RoleManager, 0)
	bob := seat("bob", model.RoleManager, time.Minute)
	carol := seat("carol", model.RoleMember, 2*time.Minute)
	demotedAlice := alice
	demotedAlice.Role = model.RoleMember

	type call func(d *Driver, ctx context.Context) (model.Participant, error)
	kick := func(actor, target string) call {
		return func(d *Driver, ctx context.Context) (model.Participant, error) {
			return d.DeleteParticipant(ctx, "room-1", actor, target)
		}
	}
	promote := func(actor, target string) call {
		return func(d *Driver, ctx context.Context) (model.Participant, error) {
			return d.Promote(ctx, "room-1", actor, target)
		}
	}
	demote := func(actor, target string) call {
		return func(d *Driver, ctx context.Context) (model.Participant, error) {
			return d.Demote(ctx, "room-1", actor, target)
		}
	}

	testCases := []struct {
		name        string
		seats       []model.Participant
		call        call
		expectWrite func(m sqlmock.Sqlmock)
		expectedID  string
		expectedErr error
	}{
		{
			name:        "Should refuse a kick by a manager demoted in the meantime",
			seats:       []model.Participant{demotedAlice, bob, carol},
			call:        kick("alice", "bob"),
			expectedErr: usecase_room.ErrConflict,
		},
		{
			name:        "Should refuse a kick by a caller who already left",
			seats:       []model.Participant{bob, carol},
			call:        kick("alice", "bob"),
			expectedErr: usecase_room.ErrConflict,
		},
		{
			name:        "Should refuse a self kick",
			seats:       []model.Participant{alice, carol},
			call:        kick("alice", "alice"),
			expectedErr: usecase_room.ErrConflict,
		},
		{
			name:        "Should report a kicked target that is gone",
			seats:       []model.Participant{alice, carol},
			call:        kick("alice", "bob"),
			expectedErr: usecase_room.ErrResourceNotFound,
		},
		{
			name:  "Should kick under lock",
			seats: []model.Participant{alice, bob, carol},
			call:  kick("alice", "bob"),
			expectWrite: func(m sqlmock.Sqlmock) {
				m.ExpectExec("DELETE FROM participants").
					WithArgs("bob").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedID: "bob",
		},
		{
			name:        "Should refuse a promote by a manager demoted in the meantime",
			seats:       []model.Participant{demotedAlice, bob, carol},
			call:        promote("alice", "carol"),
			expectedErr: usecase_room.ErrConflict,
		},
		{
			name:        "Should refuse promoting a manager",
			seats:       []model.Participant{alice, bob},
			call:        promote("alice", "bob"),
			expectedErr: usecase_room.ErrConflict,
		},
		{
			name:  "Should promote under lock",
			seats: []model.Participant{alice, carol},
			call:  promote("alice", "carol"),
			expectWrite: func(m sqlmock.Sqlmock) {
				promoted := carol
				promoted.Role = model.RoleManager
				m.ExpectQuery("UPDATE participants").
					WithArgs("carol", string(model.RoleManager)).
					WillReturnRows(participantRows(promoted))
			},
			expectedID: "carol",
		},
		{
			name:        "Should refuse demoting the last manager",
			seats:       []model.Participant{alice, carol},
			call:        demote("alice", "alice"),
			expectedErr: usecase_room.ErrConflict,
		},
		{
			name:        "Should refuse a demote by a manager demoted in the meantime",
			seats:       []model.Participant{demotedAlice, bob, carol},
			call:        demote("alice", "bob"),
			expectedErr: usecase_room.ErrConflict,
		},
		{
			name:  "Should demote one of two managers",
			seats: []model.Participant{alice, bob, carol},
			call:  demote("alice", "bob"),
			expectWrite: func(m sqlmock.Sqlmock) {
				demoted := bob
				demoted.Role = model.RoleMember
				m.ExpectQuery("UPDATE participants").
					WithArgs("bob", string(model.RoleMember)).
					WillReturnRows(participantRows(demoted))
			},
			expectedID: "bob",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			r.mock.ExpectBegin()
			r.mock.ExpectQuery("SELECT (.+) FROM participants (.+) FOR UPDATE").
				WithArgs("room-1").
				WillReturnRows(participantRows(tc.seats...))
			if tc.expectWrite != nil {
				tc.expectWrite(r.mock)
				r.mock.ExpectCommit()
			} else {
				r.mock.ExpectRollback()
			}

			p, err := tc.call(r.driver, r.ctx)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedID, p.ID)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *RoomInfraUnitSuite) TestLeave(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		seats           []model.Participant
		leaver          string
		expectPromotion string
		expectedErr     error
	}{
		{
			name: "Should promote the longest-tenured member when the last manager leaves",
			seats: []model.Participant{
				seat("alice", model.RoleManager, 0),
				seat("bob", model.RoleMember, time.Minute),
				seat("carol", model.RoleMember, 2*time.Minute),
			},
			leaver:          "alice",
			expectPromotion: "bob",
		},
		{
			name: "Should not promote while another manager remains",
			seats: []model.Participant{
				seat("alice", model.RoleManager, 0),
				seat("bob", model.RoleManager, time.Minute),
			},
			leaver: "alice",
		},
		{
			name:   "Should leave an empty room without promotion",
			seats:  []model.Participant{seat("alice", model.RoleManager, 0)},
			leaver: "alice",
		},
		{
			name:        "Should report a missing participant",
			seats:       []model.Participant{seat("alice", model.RoleManager, 0)},
			leaver:      "zed",
			expectedErr: usecase_room.ErrResourceNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			r.mock.ExpectBegin()
			r.mock.ExpectQuery("SELECT (.+) FROM participants").
				WithArgs("room-1").
				WillReturnRows(participantRows(tc.seats...))
			if tc.expectedErr == nil {
				r.mock.ExpectExec("DELETE FROM participants").
					WithArgs(tc.leaver).
					WillReturnResult(sqlmock.NewResult(0, 1))
				if tc.expectPromotion != "" {
					promoted, _ := model.FindParticipant(tc.seats, tc.expectPromotion)
					promoted.Role = model.RoleManager
					r.mock.ExpectQuery("UPDATE participants").
						WithArgs(tc.expectPromotion, string(model.RoleManager)).
						WillReturnRows(participantRows(promoted))
				}
				r.mock.ExpectCommit()
			} else {
				r.mock.ExpectRollback()
			}

			left, promoted, err := r.driver.Leave(r.ctx, "room-1", tc.leaver)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.leaver, left.ID)
				if tc.expectPromotion == "" {
					assert.Nil(t, promoted)
				} else {
					require.NotNil(t, promoted)
					assert.Equal(t, tc.expectPromotion, promoted.ID)
					assert.True(t, promoted.IsManager())
				}
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *RoomInfraUnitSuite) TestDeleteRoomMissing(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.mock.ExpectQuery("DELETE FROM rooms").WithArgs("room-1").WillReturnRows(roomRows())

	_, err := r.driver.DeleteRoom(r.ctx, "room-1")
	assert.ErrorIs(t, err, usecase_room.ErrResourceNotFound)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func TestRoomInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(RoomInfraUnitSuite))
}
