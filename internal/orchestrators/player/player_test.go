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

// Test world: Village (0, density 10) - Forest (1, density 20) - Mountain
// (2, density 120). Village-Forest travel runs 30/1234 hours, about 87.5s;
// exploring Forest runs 20*1234/1e6 hours, about 88.9s.
func testGraph(t *testing.T) *mapgraph.Graph {
	t.Helper()
	g, err := mapgraph.New(&mapgraph.Config{Definitions: []mapgraph.Definition{
		{ID: 0, Name: "Village", Density: 10, Nearby: []int32{1}},
		{ID: 1, Name: "Forest", Density: 20, Nearby: []int32{0, 2}},
		{ID: 2, Name: "Mountain", Density: 120, Nearby: []int32{1}},
	}})
	if err != nil {
		t.Fatalf("failed to build test graph: %v", err)
	}
	return g
}

type PlayerTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	cleanup func()
	graph   *mapgraph.Graph
	timers  activity.Repository
	store   playerrepo.Repository
	manager *player.Manager
	ctx     context.Context

	p      *player.Player
	forest *entities.Map
}

func (s *PlayerTestSuite) SetupTest() {
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
	s.manager, err = player.NewManager(&player.Config{
		Graph:  s.graph,
		Timers: s.timers,
		Store:  s.store,
	})
	s.Require().NoError(err)

	out, err := s.manager.GetOrCreate(s.ctx, player.GetOrCreateInput{
		OwnerID: "owner_1",
		Name:    "Rin",
	})
	s.Require().NoError(err)
	s.Require().True(out.Created)
	s.p = out.Player

	s.forest, err = s.graph.Get(1)
	s.Require().NoError(err)
}

func (s *PlayerTestSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func (s *PlayerTestSuite) TestNewPlayerStartsIdleAtStartingMap() {
	s.Equal("Village", s.p.Map().Name)
	s.Equal(entities.StatusIdle, s.p.Status())

	travelling, err := s.p.IsTravelling(s.ctx)
	s.Require().NoError(err)
	s.False(travelling)

	exploring, err := s.p.IsExploring(s.ctx)
	s.Require().NoError(err)
	s.False(exploring)

	explored := s.p.ExploredMaps()
	s.Require().Len(explored, 1)
	s.Equal("Village", explored[0].Name)
}

func (s *PlayerTestSuite) TestTravelToArmsTimerAndRecordsDestination() {
	d, err := s.p.TravelTo(s.ctx, s.forest)
	s.Require().NoError(err)
	s.InDelta(87.52, d.Seconds(), 0.01)

	s.True(s.mr.Exists("travelling_owner_1"))
	nextMap, gerr := s.mr.Get("next_map_owner_1")
	s.Require().NoError(gerr)
	s.Equal("1", nextMap)
	status, gerr := s.mr.Get("status_owner_1")
	s.Require().NoError(gerr)
	s.Equal("1", status)

	s.Equal(entities.StatusTravelling, s.p.Status())

	// Still at the origin until the timer lapses.
	s.Equal("Village", s.p.Map().Name)

	travelling, err := s.p.IsTravelling(s.ctx)
	s.Require().NoError(err)
	s.True(travelling)
}

func (s *PlayerTestSuite) TestTravelWhileTravellingIsBusy() {
	_, err := s.p.TravelTo(s.ctx, s.forest)
	s.Require().NoError(err)

	before, err := s.p.TravelRemaining(s.ctx)
	s.Require().NoError(err)

	mountain, err := s.graph.Get(2)
	s.Require().NoError(err)
	_, err = s.p.TravelTo(s.ctx, mountain)
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Contains(err.Error(), "busy adventuring")

	// The rejected start leaves the original journey untouched.
	after, err := s.p.TravelRemaining(s.ctx)
	s.Require().NoError(err)
	s.Equal(before, after)
	nextMap, gerr := s.mr.Get("next_map_owner_1")
	s.Require().NoError(gerr)
	s.Equal("1", nextMap)
}

func (s *PlayerTestSuite) TestResolveCompletesTravel() {
	_, err := s.p.TravelTo(s.ctx, s.forest)
	s.Require().NoError(err)

	s.mr.FastForward(90 * time.Second)

	out, err := s.p.Resolve(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(out.Arrived)
	s.Equal("Forest", out.Arrived.Name)
	s.Nil(out.Explored)

	s.Equal("Forest", s.p.Map().Name)
	s.Equal(entities.StatusIdle, s.p.Status())
	s.False(s.mr.Exists("next_map_owner_1"))
	status, gerr := s.mr.Get("status_owner_1")
	s.Require().NoError(gerr)
	s.Equal("0", status)

	// Arrival is durable.
	row, err := s.store.Get(s.ctx, playerrepo.GetInput{OwnerID: "owner_1"})
	s.Require().NoError(err)
	s.Equal(int32(1), row.Player.MapID)
}

func (s *PlayerTestSuite) TestResolveIsIdempotent() {
	_, err := s.p.TravelTo(s.ctx, s.forest)
	s.Require().NoError(err)
	s.mr.FastForward(90 * time.Second)

	first, err := s.p.Resolve(s.ctx)
	s.Require().NoError(err)
	s.NotNil(first.Arrived)

	second, err := s.p.Resolve(s.ctx)
	s.Require().NoError(err)
	s.Nil(second.Arrived)
	s.Nil(second.Explored)
	s.Equal("Forest", s.p.Map().Name)
}

func (s *PlayerTestSuite) TestResolveIsANoopWhenIdle() {
	out, err := s.p.Resolve(s.ctx)
	s.Require().NoError(err)
	s.Nil(out.Arrived)
	s.Nil(out.Explored)
	s.Equal("Village", s.p.Map().Name)
}

func (s *PlayerTestSuite) travelToForest() {
	s.T().Helper()
	_, err := s.p.TravelTo(s.ctx, s.forest)
	s.Require().NoError(err)
	s.mr.FastForward(90 * time.Second)
	out, err := s.p.Resolve(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(out.Arrived)
}

func (s *PlayerTestSuite) TestExploreArmsTimer() {
	s.travelToForest()

	d, err := s.p.Explore(s.ctx)
	s.Require().NoError(err)
	s.InDelta(88.85, d.Seconds(), 0.01)

	s.True(s.mr.Exists("exploring_owner_1"))
	status, gerr := s.mr.Get("status_owner_1")
	s.Require().NoError(gerr)
	s.Equal("2", status)
	s.Equal(entities.StatusExploring, s.p.Status())
}

func (s *PlayerTestSuite) TestExploreWhileExploringIsBusyNotAlreadyExplored() {
	s.travelToForest()

	_, err := s.p.Explore(s.ctx)
	s.Require().NoError(err)

	_, err = s.p.Explore(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.False(errors.IsAlreadyExists(err))
}

func (s *PlayerTestSuite) TestExploreOnExploredMapFails() {
	// The starting map is explored at registration.
	_, err := s.p.Explore(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
	s.Contains(err.Error(), "already explored Village")
}

func (s *PlayerTestSuite) TestResolveCompletesExplore() {
	s.travelToForest()

	_, err := s.p.Explore(s.ctx)
	s.Require().NoError(err)

	s.mr.FastForward(90 * time.Second)

	out, err := s.p.Resolve(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(out.Explored)
	s.Equal("Forest", out.Explored.Name)
	s.Equal(entities.StatusIdle, s.p.Status())

	explored := s.p.ExploredMaps()
	s.Require().Len(explored, 2)
	s.Equal("Village", explored[0].Name)
	s.Equal("Forest", explored[1].Name)

	row, err := s.store.Get(s.ctx, playerrepo.GetInput{OwnerID: "owner_1"})
	s.Require().NoError(err)
	s.Equal([]int32{0, 1}, row.Player.Explored)

	// Re-exploring now reports already explored, not busy.
	_, err = s.p.Explore(s.ctx)
	s.True(errors.IsAlreadyExists(err))
}

func (s *PlayerTestSuite) TestCrashMidExploreLeavesMapUnexplored() {
	s.travelToForest()

	_, err := s.p.Explore(s.ctx)
	s.Require().NoError(err)

	// Nothing is recorded until the timer lapses and resolution runs.
	row, err := s.store.Get(s.ctx, playerrepo.GetInput{OwnerID: "owner_1"})
	s.Require().NoError(err)
	s.Equal([]int32{0}, row.Player.Explored)
}

func (s *PlayerTestSuite) TestTravelWhileExploringIsBusy() {
	s.travelToForest()

	_, err := s.p.Explore(s.ctx)
	s.Require().NoError(err)

	mountain, err := s.graph.Get(2)
	s.Require().NoError(err)
	_, err = s.p.TravelTo(s.ctx, mountain)
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *PlayerTestSuite) TestTravelToNilDestination() {
	_, err := s.p.TravelTo(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}

func TestPlayerTestSuite(t *testing.T) {
	suite.Run(t, new(PlayerTestSuite))
}
