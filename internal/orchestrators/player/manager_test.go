package player_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/XuaTheGrate/adventure-api/internal/entities"
	"github.com/XuaTheGrate/adventure-api/internal/errors"
	"github.com/XuaTheGrate/adventure-api/internal/mapgraph"
	"github.com/XuaTheGrate/adventure-api/internal/orchestrators/player"
	"github.com/XuaTheGrate/adventure-api/internal/repositories/activity"
	playerrepo "github.com/XuaTheGrate/adventure-api/internal/repositories/player"
	"github.com/XuaTheGrate/adventure-api/internal/testutils"
)

type ManagerTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	cleanup func()
	graph   *mapgraph.Graph
	timers  activity.Repository
	store   playerrepo.Repository
	ctx     context.Context
}

func (s *ManagerTestSuite) SetupTest() {
	client, mr, cleanup := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	s.cleanup = cleanup
	s.ctx = context.Background()

	timers, err := activity.NewRedis(&activity.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.timers = timers

	store, err := playerrepo.NewGorm(&playerrepo.GormConfig{DB: testutils.CreateTestDB(s.T())})
	s.Require().NoError(err)
	s.store = store

	s.graph = testGraph(s.T())
}

func (s *ManagerTestSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func (s *ManagerTestSuite) newManager(opts ...func(*player.Config)) *player.Manager {
	s.T().Helper()
	cfg := &player.Config{
		Graph:  s.graph,
		Timers: s.timers,
		Store:  s.store,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	m, err := player.NewManager(cfg)
	s.Require().NoError(err)
	return m
}

func (s *ManagerTestSuite) TestNewManagerValidation() {
	_, err := player.NewManager(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = player.NewManager(&player.Config{Timers: s.timers, Store: s.store})
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Graph")

	_, err = player.NewManager(&player.Config{
		Graph:        s.graph,
		Timers:       s.timers,
		Store:        s.store,
		PollInterval: -time.Second,
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ManagerTestSuite) TestGetOrCreateRegistersNewPlayer() {
	m := s.newManager()

	out, err := m.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_1", Name: "Rin"})
	s.Require().NoError(err)
	s.True(out.Created)
	s.Equal("Village", out.Player.Map().Name)
	s.Equal(entities.StatusIdle, out.Player.Status())

	// The row is durable immediately, with the starting map explored.
	row, err := s.store.Get(s.ctx, playerrepo.GetInput{OwnerID: "owner_1"})
	s.Require().NoError(err)
	s.Equal("Rin", row.Player.Name)
	s.Equal(int32(0), row.Player.MapID)
	s.Equal([]int32{0}, row.Player.Explored)

	status, gerr := s.mr.Get("status_owner_1")
	s.Require().NoError(gerr)
	s.Equal("0", status)
}

func (s *ManagerTestSuite) TestGetOrCreateReturnsLiveAggregate() {
	m := s.newManager()

	first, err := m.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_1", Name: "Rin"})
	s.Require().NoError(err)
	s.True(first.Created)

	second, err := m.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_1", Name: "Rin"})
	s.Require().NoError(err)
	s.False(second.Created)
	s.Same(first.Player, second.Player)

	p, ok := m.Lookup("owner_1")
	s.True(ok)
	s.Same(first.Player, p)

	_, ok = m.Lookup("owner_2")
	s.False(ok)
}

func (s *ManagerTestSuite) TestGetOrCreateValidation() {
	m := s.newManager()

	_, err := m.GetOrCreate(s.ctx, player.GetOrCreateInput{Name: "Rin"})
	s.True(errors.IsInvalidArgument(err))

	_, err = m.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_1"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ManagerTestSuite) TestAdminFlag() {
	m := s.newManager(func(cfg *player.Config) {
		cfg.AdminOwnerIDs = []string{"owner_1"}
	})

	admin, err := m.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_1", Name: "Rin"})
	s.Require().NoError(err)
	s.True(admin.Player.IsAdmin())

	mortal, err := m.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_2", Name: "Rem"})
	s.Require().NoError(err)
	s.False(mortal.Player.IsAdmin())
}

func (s *ManagerTestSuite) TestRehydrationAfterRestart() {
	m1 := s.newManager()
	out, err := m1.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_1", Name: "Rin"})
	s.Require().NoError(err)

	forest, err := s.graph.Get(1)
	s.Require().NoError(err)
	_, err = out.Player.TravelTo(s.ctx, forest)
	s.Require().NoError(err)

	// A fresh manager over the same stores stands in for a restarted process.
	m2 := s.newManager()
	revived, err := m2.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_1", Name: "Rin"})
	s.Require().NoError(err)
	s.False(revived.Created)
	s.NotSame(out.Player, revived.Player)
	s.Equal(entities.StatusTravelling, revived.Player.Status())
	s.Equal("Village", revived.Player.Map().Name)

	// The journey survives the restart: the timer keeps running and the
	// destination comes back from the timer store.
	s.mr.FastForward(90 * time.Second)
	res, err := revived.Player.Resolve(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(res.Arrived)
	s.Equal("Forest", res.Arrived.Name)
	s.Equal("Forest", revived.Player.Map().Name)
}

func (s *ManagerTestSuite) TestRehydrationRestoresExploredSet() {
	m1 := s.newManager()
	out, err := m1.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_1", Name: "Rin"})
	s.Require().NoError(err)

	forest, err := s.graph.Get(1)
	s.Require().NoError(err)
	_, err = out.Player.TravelTo(s.ctx, forest)
	s.Require().NoError(err)
	s.mr.FastForward(90 * time.Second)
	_, err = out.Player.Resolve(s.ctx)
	s.Require().NoError(err)
	_, err = out.Player.Explore(s.ctx)
	s.Require().NoError(err)
	s.mr.FastForward(90 * time.Second)
	_, err = out.Player.Resolve(s.ctx)
	s.Require().NoError(err)

	m2 := s.newManager()
	revived, err := m2.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_1", Name: "Rin"})
	s.Require().NoError(err)
	explored := revived.Player.ExploredMaps()
	s.Require().Len(explored, 2)
	s.Equal("Village", explored[0].Name)
	s.Equal("Forest", explored[1].Name)
}

func (s *ManagerTestSuite) TestDeleteRemovesEverything() {
	m := s.newManager()
	out, err := m.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_1", Name: "Rin"})
	s.Require().NoError(err)

	forest, err := s.graph.Get(1)
	s.Require().NoError(err)
	_, err = out.Player.TravelTo(s.ctx, forest)
	s.Require().NoError(err)

	_, err = m.Delete(s.ctx, player.DeleteInput{OwnerID: "owner_1"})
	s.Require().NoError(err)

	_, err = s.store.Get(s.ctx, playerrepo.GetInput{OwnerID: "owner_1"})
	s.True(errors.IsNotFound(err))
	s.False(s.mr.Exists("travelling_owner_1"))
	s.False(s.mr.Exists("exploring_owner_1"))
	s.False(s.mr.Exists("next_map_owner_1"))
	s.False(s.mr.Exists("status_owner_1"))

	_, ok := m.Lookup("owner_1")
	s.False(ok)

	// The evicted handle is poisoned.
	_, err = out.Player.TravelTo(s.ctx, forest)
	s.True(errors.IsFailedPrecondition(err))

	// Re-creation starts over from scratch, in-flight travel forgotten.
	fresh, err := m.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_1", Name: "Rin"})
	s.Require().NoError(err)
	s.True(fresh.Created)
	s.Equal("Village", fresh.Player.Map().Name)
	s.Equal(entities.StatusIdle, fresh.Player.Status())
}

func (s *ManagerTestSuite) TestDeleteAfterRestart() {
	m1 := s.newManager()
	_, err := m1.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_1", Name: "Rin"})
	s.Require().NoError(err)

	// A fresh manager has no live aggregate for the owner, but the durable
	// row and status key are still there and must come off.
	m2 := s.newManager()
	_, err = m2.Delete(s.ctx, player.DeleteInput{OwnerID: "owner_1"})
	s.Require().NoError(err)

	_, err = s.store.Get(s.ctx, playerrepo.GetInput{OwnerID: "owner_1"})
	s.True(errors.IsNotFound(err))
	s.False(s.mr.Exists("status_owner_1"))

	fresh, err := m2.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_1", Name: "Rin"})
	s.Require().NoError(err)
	s.True(fresh.Created)
}

func (s *ManagerTestSuite) TestDeleteThenLateResolveCannotResurrectRow() {
	m := s.newManager()
	out, err := m.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_1", Name: "Rin"})
	s.Require().NoError(err)

	forest, err := s.graph.Get(1)
	s.Require().NoError(err)
	_, err = out.Player.TravelTo(s.ctx, forest)
	s.Require().NoError(err)

	// The journey lapses, so an unpoisoned resolution would save an arrival.
	s.mr.FastForward(90 * time.Second)

	_, err = m.Delete(s.ctx, player.DeleteInput{OwnerID: "owner_1"})
	s.Require().NoError(err)

	// A straggling poll tick still holding the old handle must no-op
	// instead of upserting the deleted row back.
	res, err := out.Player.Resolve(s.ctx)
	s.Require().NoError(err)
	s.Nil(res.Arrived)
	s.Nil(res.Explored)

	_, err = s.store.Get(s.ctx, playerrepo.GetInput{OwnerID: "owner_1"})
	s.True(errors.IsNotFound(err))
	s.False(s.mr.Exists("next_map_owner_1"))
}

func (s *ManagerTestSuite) TestDeleteUnknownOwner() {
	m := s.newManager()

	_, err := m.Delete(s.ctx, player.DeleteInput{OwnerID: "nobody"})
	s.True(errors.IsNotFound(err))
}

func (s *ManagerTestSuite) TestRunResolvesLapsedTimers() {
	m := s.newManager(func(cfg *player.Config) {
		cfg.PollInterval = 10 * time.Millisecond
	})
	out, err := m.GetOrCreate(s.ctx, player.GetOrCreateInput{OwnerID: "owner_1", Name: "Rin"})
	s.Require().NoError(err)

	forest, err := s.graph.Get(1)
	s.Require().NoError(err)
	_, err = out.Player.TravelTo(s.ctx, forest)
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	go m.Run(ctx)

	s.mr.FastForward(90 * time.Second)

	s.Eventually(func() bool {
		return out.Player.Status() == entities.StatusIdle && out.Player.Map().Name == "Forest"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestManagerTestSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}
