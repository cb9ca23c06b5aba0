package integrationtest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	infra_pg_init "github.com/humanbelnik/planpoker/core/internal/infra/postgres/init"
	infra_postgres_room "github.com/humanbelnik/planpoker/core/internal/infra/postgres/room"
	infra_redis_changefeed "github.com/humanbelnik/planpoker/core/internal/infra/redis/changefeed"
	infra_redis_init "github.com/humanbelnik/planpoker/core/internal/infra/redis/init"
	"github.com/humanbelnik/planpoker/core/internal/model"
	"github.com/humanbelnik/planpoker/core/internal/service/guard"
	usecase_room "github.com/humanbelnik/planpoker/core/internal/usecase/room"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type UsecaseRoomIntegrationSuite struct {
	suite.Suite
	once sync.Once
	uc   *usecase_room.Usecase
	feed *infra_redis_changefeed.Driver
}

func (s *UsecaseRoomIntegrationSuite) setup(t provider.T) {
	cfg := getConfig(t)
	s.once.Do(func() {
		pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
		redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)

		s.feed = infra_redis_changefeed.New(redisConn)
		s.uc = usecase_room.New(infra_postgres_room.New(pgConn), s.feed)
	})
}

func caller() model.Caller {
	return model.Caller{Identity: model.AnonymousIdentity(uuid.NewString())}
}

func (s *UsecaseRoomIntegrationSuite) TestIntegrationRound(t provider.T) {
	s.setup(t)
	ctx := context.Background()
	alice, bob := caller(), caller()

	room, err := s.uc.Create(ctx, alice, "integration round", nil, nil)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, s.uc.Delete(ctx, alice, room.ID))
	}()

	sub, err := s.feed.Subscribe(room.ID, model.TableRooms)
	require.NoError(t, err)
	defer sub.Close()

	a, err := s.uc.Join(ctx, alice, room.ID, "Alice", nil)
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, a.Role)

	b, err := s.uc.Join(ctx, bob, room.ID, "Bob", nil)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, b.Role)

	err = s.uc.SubmitVote(ctx, bob, room.ID, room.VoteOptions[0])
	assert.ErrorIs(t, err, guard.ErrVotingNotActive)

	require.NoError(t, s.uc.StartVoting(ctx, alice, room.ID, nil))
	select {
	case payload := <-sub.Payloads():
		env, err := infra_redis_changefeed.Decode(payload)
		require.NoError(t, err)
		change, err := env.RoomChange()
		require.NoError(t, err)
		assert.Equal(t, model.StatusVoting, change.Row.VotingStatus)
	case <-time.After(5 * time.Second):
		t.Fatal("no room change published")
	}

	require.NoError(t, s.uc.SubmitVote(ctx, bob, room.ID, room.VoteOptions[0]))
	require.NoError(t, s.uc.SubmitVote(ctx, alice, room.ID, room.VoteOptions[0]))
	require.NoError(t, s.uc.Reveal(ctx, alice, room.ID))

	snapshot, err := s.uc.Snapshot(ctx, alice, room.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRevealed, snapshot.Room.VotingStatus)
	require.Len(t, snapshot.Participants, 2)
	for _, p := range snapshot.Participants {
		require.NotNil(t, p.CurrentVote)
		assert.Equal(t, room.VoteOptions[0], *p.CurrentVote)
	}

	require.NoError(t, s.uc.Reset(ctx, alice, room.ID))
	snapshot, err = s.uc.Snapshot(ctx, alice, room.ID)
	require.NoError(t, err)
	for _, p := range snapshot.Participants {
		assert.Nil(t, p.CurrentVote)
	}
}

func (s *UsecaseRoomIntegrationSuite) TestIntegrationManagerHandover(t provider.T) {
	s.setup(t)
	ctx := context.Background()
	alice, bob := caller(), caller()

	room, err := s.uc.Create(ctx, alice, "integration handover", nil, nil)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, s.uc.Delete(ctx, alice, room.ID))
	}()

	_, err = s.uc.Join(ctx, alice, room.ID, "Alice", nil)
	require.NoError(t, err)
	b, err := s.uc.Join(ctx, bob, room.ID, "Bob", nil)
	require.NoError(t, err)

	require.NoError(t, s.uc.Leave(ctx, alice, room.ID))

	_, err = s.uc.Snapshot(ctx, caller(), room.ID)
	assert.ErrorIs(t, err, guard.ErrNotParticipant)

	snapshot, err := s.uc.Snapshot(ctx, bob, room.ID)
	require.NoError(t, err)
	require.Len(t, snapshot.Participants, 1)
	assert.Equal(t, b.ID, snapshot.Participants[0].ID)
	assert.Equal(t, model.RoleManager, snapshot.Participants[0].Role)
}

func TestRoomIntegrationSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseRoomIntegrationSuite))
}
