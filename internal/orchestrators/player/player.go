// Package player implements the player activity state machine and the
// manager that keeps one live aggregate per owner.
//
// A player is Idle, Travelling or Exploring. Activities are started by
// arming an expiring key in the timer store; the key's TTL is the only
// source of remaining time, so a process restart never loses or distorts an
// in-flight activity. Resolution (noticing a lapsed timer and advancing the
// player) is idempotent and runs both from the manager's poll loop and
// lazily when a caller asks for status.
package player

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/XuaTheGrate/adventure-api/internal/entities"
	"github.com/XuaTheGrate/adventure-api/internal/errors"
	"github.com/XuaTheGrate/adventure-api/internal/mapgraph"
	"github.com/XuaTheGrate/adventure-api/internal/pkg/clock"
	"github.com/XuaTheGrate/adventure-api/internal/repositories/activity"
	playerrepo "github.com/XuaTheGrate/adventure-api/internal/repositories/player"
)

const errPlayerDeleted = "player has been deleted"

// Player is a live per-owner aggregate. All state transitions run under the
// aggregate's own mutex: read timer, decide, mutate, persist, write timer is
// one critical section, so two concurrent starts cannot both pass the busy
// guard.
type Player struct {
	mu sync.Mutex

	ownerID   string
	name      string
	createdAt time.Time
	admin     bool
	deleted   bool

	current  *entities.Map
	nextMap  *entities.Map
	status   entities.Status
	explored map[int32]*entities.Map

	graph  *mapgraph.Graph
	timers activity.Repository
	store  playerrepo.Repository
	clock  clock.Clock
}

// ResolveOutput reports what a resolution pass completed.
type ResolveOutput struct {
	// Arrived is the destination reached, when a travel completed
	Arrived *entities.Map

	// Explored is the map whose exploration finished, when one did
	Explored *entities.Map
}

// OwnerID returns the owning identity.
func (p *Player) OwnerID() string { return p.ownerID }

// Name returns the display name.
func (p *Player) Name() string { return p.name }

// CreatedAt returns the registration time.
func (p *Player) CreatedAt() time.Time { return p.createdAt }

// IsAdmin reports whether the owner is configured as an admin.
func (p *Player) IsAdmin() bool { return p.admin }

// Map returns the player's current location.
func (p *Player) Map() *entities.Map {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Status returns the in-memory activity status.
func (p *Player) Status() entities.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// ExploredMaps returns the explored set ordered by map id.
func (p *Player) ExploredMaps() []*entities.Map {
	p.mu.Lock()
	defer p.mu.Unlock()
	maps := make([]*entities.Map, 0, len(p.explored))
	for _, m := range p.explored {
		maps = append(maps, m)
	}
	sort.Slice(maps, func(i, j int) bool { return maps[i].ID < maps[j].ID })
	return maps
}

// IsTravelling reports whether a travel timer is still running.
func (p *Player) IsTravelling(ctx context.Context) (bool, error) {
	d, err := p.TravelRemaining(ctx)
	return d > 0, err
}

// IsExploring reports whether an explore timer is still running.
func (p *Player) IsExploring(ctx context.Context) (bool, error) {
	d, err := p.ExploreRemaining(ctx)
	return d > 0, err
}

// TravelRemaining returns time left on the travel timer, zero when idle.
func (p *Player) TravelRemaining(ctx context.Context) (time.Duration, error) {
	return p.remaining(ctx, activity.KindTravelling)
}

// ExploreRemaining returns time left on the explore timer, zero when idle.
func (p *Player) ExploreRemaining(ctx context.Context) (time.Duration, error) {
	return p.remaining(ctx, activity.KindExploring)
}

func (p *Player) remaining(ctx context.Context, kind activity.Kind) (time.Duration, error) {
	out, err := p.timers.ActivityRemaining(ctx, activity.ActivityRemainingInput{
		OwnerID: p.ownerID,
		Kind:    kind,
	})
	if err != nil {
		return 0, err
	}
	return out.Remaining, nil
}

// TravelTo starts travelling toward dest. Fails when any activity is still
// in flight; the existing timer is left untouched.
func (p *Player) TravelTo(ctx context.Context, dest *entities.Map) (time.Duration, error) {
	if dest == nil {
		return 0, errors.InvalidArgument("destination map is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.deleted {
		return 0, errors.FailedPrecondition(errPlayerDeleted)
	}

	if err := p.guardIdle(ctx); err != nil {
		return 0, err
	}

	ttl, err := p.graph.TravelCost(p.current, dest)
	if err != nil {
		return 0, err
	}

	if err := p.timers.StartActivity(ctx, activity.StartActivityInput{
		OwnerID: p.ownerID,
		Kind:    activity.KindTravelling,
		TTL:     ttl,
	}); err != nil {
		return 0, err
	}
	if err := p.timers.SetNextMap(ctx, activity.SetNextMapInput{
		OwnerID: p.ownerID,
		MapID:   dest.ID,
	}); err != nil {
		return 0, err
	}
	if err := p.timers.SetStatus(ctx, activity.SetStatusInput{
		OwnerID: p.ownerID,
		Status:  entities.StatusTravelling,
	}); err != nil {
		return 0, err
	}

	p.nextMap = dest
	p.status = entities.StatusTravelling

	slog.Info("player started travelling",
		"player", p.name,
		"owner_id", p.ownerID,
		"from", p.current.Name,
		"destination", dest.Name,
		"duration", ttl,
	)
	return ttl, nil
}

// Explore starts exploring the current map. Fails when any activity is in
// flight, or when this map has already been explored.
func (p *Player) Explore(ctx context.Context) (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.deleted {
		return 0, errors.FailedPrecondition(errPlayerDeleted)
	}

	// Busy first: re-exploring the map currently being explored is "busy",
	// not "already explored".
	if err := p.guardIdle(ctx); err != nil {
		return 0, err
	}

	if _, ok := p.explored[p.current.ID]; ok {
		return 0, errors.AlreadyExistsf("%s has already explored %s", p.name, p.current.Name)
	}

	ttl, err := p.graph.ExploreCost(p.current)
	if err != nil {
		return 0, err
	}

	if err := p.timers.StartActivity(ctx, activity.StartActivityInput{
		OwnerID: p.ownerID,
		Kind:    activity.KindExploring,
		TTL:     ttl,
	}); err != nil {
		return 0, err
	}
	if err := p.timers.SetStatus(ctx, activity.SetStatusInput{
		OwnerID: p.ownerID,
		Status:  entities.StatusExploring,
	}); err != nil {
		return 0, err
	}

	p.status = entities.StatusExploring

	slog.Info("player started exploring",
		"player", p.name,
		"owner_id", p.ownerID,
		"map", p.current.Name,
		"duration", ttl,
	)
	return ttl, nil
}

// guardIdle rejects with a busy error while either activity timer is live.
// Caller holds p.mu. A store failure propagates; it is never read as idle.
func (p *Player) guardIdle(ctx context.Context) error {
	for _, kind := range []activity.Kind{activity.KindTravelling, activity.KindExploring} {
		out, err := p.timers.ActivityRemaining(ctx, activity.ActivityRemainingInput{
			OwnerID: p.ownerID,
			Kind:    kind,
		})
		if err != nil {
			return err
		}
		if out.Remaining > 0 {
			return p.busyError(out.Remaining)
		}
	}
	return nil
}

func (p *Player) busyError(remaining time.Duration) error {
	eta := humanize.Time(p.clock.Now().Add(remaining))
	return errors.FailedPreconditionf("%s is busy adventuring, finishing %s", p.name, eta).
		WithMeta("owner_id", p.ownerID).
		WithMeta("remaining", remaining.String())
}

// Resolve advances the player past any lapsed timer. It is idempotent:
// with no timer outstanding and no pending destination it is a no-op. Any
// store failure aborts the pass without mutating state; the next poll tick
// retries from scratch.
func (p *Player) Resolve(ctx context.Context) (*ResolveOutput, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.deleted {
		return &ResolveOutput{}, nil
	}

	out := &ResolveOutput{}

	arrived, err := p.resolveTravel(ctx)
	if err != nil {
		return nil, err
	}
	out.Arrived = arrived

	finished, err := p.resolveExplore(ctx)
	if err != nil {
		return nil, err
	}
	out.Explored = finished

	return out, nil
}

// resolveTravel completes a lapsed travel. Caller holds p.mu.
func (p *Player) resolveTravel(ctx context.Context) (*entities.Map, error) {
	rem, err := p.timers.ActivityRemaining(ctx, activity.ActivityRemainingInput{
		OwnerID: p.ownerID,
		Kind:    activity.KindTravelling,
	})
	if err != nil {
		return nil, err
	}

	if rem.Remaining > 0 {
		// Still in flight. Re-learn the destination if this process was
		// restarted mid-travel.
		if p.nextMap == nil {
			if err := p.restoreNextMap(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	dest := p.nextMap
	if dest == nil {
		nm, err := p.timers.NextMap(ctx, activity.NextMapInput{OwnerID: p.ownerID})
		if err != nil {
			return nil, err
		}
		if !nm.Found {
			// Not travelling at all.
			return nil, nil
		}
		dest, err = p.graph.Get(nm.MapID)
		if err != nil {
			return nil, errors.Wrapf(err, "pending destination %d is not in the graph", nm.MapID)
		}
	}

	// Persist the arrival before touching the timer keys: if the save
	// fails, the pending destination survives and the next pass retries.
	snapshot := p.entity()
	snapshot.MapID = dest.ID
	if _, err := p.store.Save(ctx, playerrepo.SaveInput{Player: snapshot}); err != nil {
		return nil, err
	}

	if err := p.timers.ClearNextMap(ctx, activity.ClearNextMapInput{OwnerID: p.ownerID}); err != nil {
		return nil, err
	}
	if err := p.timers.SetStatus(ctx, activity.SetStatusInput{
		OwnerID: p.ownerID,
		Status:  entities.StatusIdle,
	}); err != nil {
		return nil, err
	}

	p.current = dest
	p.nextMap = nil
	p.status = entities.StatusIdle

	slog.Info("player arrived at destination",
		"player", p.name,
		"owner_id", p.ownerID,
		"map", dest.Name,
	)
	return dest, nil
}

// resolveExplore completes a lapsed exploration. Caller holds p.mu.
func (p *Player) resolveExplore(ctx context.Context) (*entities.Map, error) {
	rem, err := p.timers.ActivityRemaining(ctx, activity.ActivityRemainingInput{
		OwnerID: p.ownerID,
		Kind:    activity.KindExploring,
	})
	if err != nil {
		return nil, err
	}
	if rem.Remaining > 0 {
		return nil, nil
	}

	exploring := p.status == entities.StatusExploring
	if !exploring {
		// The in-memory status is lost on restart; the mirrored tag is not.
		st, err := p.timers.Status(ctx, activity.StatusInput{OwnerID: p.ownerID})
		if err != nil {
			return nil, err
		}
		exploring = st.Found && st.Status == entities.StatusExploring
	}
	if !exploring {
		return nil, nil
	}

	// The map counts as explored at completion, not at start: a crash
	// mid-explore leaves it unexplored.
	snapshot := p.entity()
	if !snapshot.HasExplored(p.current.ID) {
		snapshot.Explored = append(snapshot.Explored, p.current.ID)
	}
	if _, err := p.store.Save(ctx, playerrepo.SaveInput{Player: snapshot}); err != nil {
		return nil, err
	}

	if err := p.timers.SetStatus(ctx, activity.SetStatusInput{
		OwnerID: p.ownerID,
		Status:  entities.StatusIdle,
	}); err != nil {
		return nil, err
	}

	p.explored[p.current.ID] = p.current
	p.status = entities.StatusIdle

	slog.Info("player finished exploring",
		"player", p.name,
		"owner_id", p.ownerID,
		"map", p.current.Name,
	)
	return p.current, nil
}

// restoreNextMap rehydrates the in-memory destination from the timer store.
// Caller holds p.mu.
func (p *Player) restoreNextMap(ctx context.Context) error {
	nm, err := p.timers.NextMap(ctx, activity.NextMapInput{OwnerID: p.ownerID})
	if err != nil {
		return err
	}
	if !nm.Found {
		return nil
	}
	m, err := p.graph.Get(nm.MapID)
	if err != nil {
		return errors.Wrapf(err, "pending destination %d is not in the graph", nm.MapID)
	}
	p.nextMap = m
	return nil
}

// Save persists the durable shape of the player.
func (p *Player) Save(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.deleted {
		return errors.FailedPrecondition(errPlayerDeleted)
	}
	return p.save(ctx)
}

// save persists without taking the lock. Caller holds p.mu.
func (p *Player) save(ctx context.Context) error {
	_, err := p.store.Save(ctx, playerrepo.SaveInput{Player: p.entity()})
	return err
}

// entity snapshots the durable fields. Caller holds p.mu.
func (p *Player) entity() *entities.Player {
	explored := make([]int32, 0, len(p.explored))
	for id := range p.explored {
		explored = append(explored, id)
	}
	sort.Slice(explored, func(i, j int) bool { return explored[i] < explored[j] })

	return &entities.Player{
		OwnerID:   p.ownerID,
		Name:      p.name,
		CreatedAt: p.createdAt,
		MapID:     p.current.ID,
		Explored:  explored,
	}
}

// markDeleted poisons the aggregate after Manager.Delete.
func (p *Player) markDeleted() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = true
}
