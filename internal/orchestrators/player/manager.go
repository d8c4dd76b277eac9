package player

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/XuaTheGrate/adventure-api/internal/entities"
	"github.com/XuaTheGrate/adventure-api/internal/errors"
	"github.com/XuaTheGrate/adventure-api/internal/mapgraph"
	"github.com/XuaTheGrate/adventure-api/internal/pkg/clock"
	"github.com/XuaTheGrate/adventure-api/internal/repositories/activity"
	playerrepo "github.com/XuaTheGrate/adventure-api/internal/repositories/player"
)

// DefaultPollInterval is how often the reconciliation loop runs when the
// config does not say otherwise.
const DefaultPollInterval = time.Second

// Config holds the dependencies for the player manager
type Config struct {
	Graph  *mapgraph.Graph
	Timers activity.Repository
	Store  playerrepo.Repository
	Clock  clock.Clock

	// PollInterval for the reconciliation loop; DefaultPollInterval when zero
	PollInterval time.Duration

	// AdminOwnerIDs are owners granted the admin flag
	AdminOwnerIDs []string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()

	if c.Graph == nil {
		vb.RequiredField("Graph")
	}
	if c.Timers == nil {
		vb.RequiredField("Timers")
	}
	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.PollInterval < 0 {
		vb.InvalidField("PollInterval", "cannot be negative")
	}

	return vb.Build()
}

// Manager is the registry of live player aggregates: exactly one per owner.
// Its mutex serializes creation and deletion, so concurrent first contacts
// for the same owner cannot mint duplicate rows or aggregates.
type Manager struct {
	graph    *mapgraph.Graph
	timers   activity.Repository
	store    playerrepo.Repository
	clock    clock.Clock
	interval time.Duration
	admins   map[string]struct{}

	mu      sync.Mutex
	players map[string]*Player
}

// GetOrCreateInput identifies the owner asking for a player
type GetOrCreateInput struct {
	OwnerID string
	Name    string
}

// GetOrCreateOutput contains the live aggregate
type GetOrCreateOutput struct {
	Player *Player

	// Created is true when this call registered a brand-new player
	Created bool
}

// DeleteInput identifies the owner whose player is being removed
type DeleteInput struct {
	OwnerID string
}

// DeleteOutput contains the result of a deletion
type DeleteOutput struct{}

// NewManager creates a new player manager with the provided dependencies
func NewManager(cfg *Config) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	interval := cfg.PollInterval
	if interval == 0 {
		interval = DefaultPollInterval
	}
	admins := make(map[string]struct{}, len(cfg.AdminOwnerIDs))
	for _, id := range cfg.AdminOwnerIDs {
		admins[id] = struct{}{}
	}

	return &Manager{
		graph:    cfg.Graph,
		timers:   cfg.Timers,
		store:    cfg.Store,
		clock:    c,
		interval: interval,
		admins:   admins,
		players:  make(map[string]*Player),
	}, nil
}

// GetOrCreate returns the live aggregate for an owner, hydrating it from
// the durable row or registering a fresh player at the starting map.
func (m *Manager) GetOrCreate(ctx context.Context, input GetOrCreateInput) (*GetOrCreateOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID cannot be empty")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("name cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.players[input.OwnerID]; ok {
		return &GetOrCreateOutput{Player: p}, nil
	}

	getOut, err := m.store.Get(ctx, playerrepo.GetInput{OwnerID: input.OwnerID})
	if err != nil && !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, "failed to load player")
	}

	var (
		p       *Player
		created bool
	)
	if err == nil {
		p, err = m.hydrate(ctx, getOut.Player)
		if err != nil {
			return nil, err
		}
	} else {
		p, err = m.register(ctx, input.OwnerID, input.Name)
		if err != nil {
			return nil, err
		}
		created = true
	}

	m.players[input.OwnerID] = p
	return &GetOrCreateOutput{Player: p, Created: created}, nil
}

// hydrate rebuilds a live aggregate from its durable row. The in-memory
// status comes from the mirrored status tag; a pending travel destination is
// recovered later by Resolve from the next_map key.
func (m *Manager) hydrate(ctx context.Context, rec *entities.Player) (*Player, error) {
	current, err := m.graph.Get(rec.MapID)
	if err != nil {
		return nil, errors.Wrapf(err, "player %s sits on a map missing from the graph", rec.OwnerID)
	}

	explored := make(map[int32]*entities.Map, len(rec.Explored))
	for _, id := range rec.Explored {
		em, err := m.graph.Get(id)
		if err != nil {
			return nil, errors.Wrapf(err, "player %s explored a map missing from the graph", rec.OwnerID)
		}
		explored[id] = em
	}

	status := entities.StatusIdle
	st, err := m.timers.Status(ctx, activity.StatusInput{OwnerID: rec.OwnerID})
	if err != nil {
		return nil, err
	}
	if st.Found {
		status = st.Status
	}

	p := m.newPlayer(rec.OwnerID, rec.Name, rec.CreatedAt)
	p.current = current
	p.explored = explored
	p.status = status

	slog.Info("hydrated player",
		"player", p.name,
		"owner_id", p.ownerID,
		"map", current.Name,
		"status", status,
	)
	return p, nil
}

// register creates, persists and returns a brand-new player seeded at the
// starting map with the starting map as its only explored entry.
func (m *Manager) register(ctx context.Context, ownerID, name string) (*Player, error) {
	start := m.graph.Starting()

	p := m.newPlayer(ownerID, name, m.clock.Now())
	p.current = start
	p.explored = map[int32]*entities.Map{start.ID: start}
	p.status = entities.StatusIdle

	if err := p.save(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to persist new player")
	}
	if err := m.timers.SetStatus(ctx, activity.SetStatusInput{
		OwnerID: ownerID,
		Status:  entities.StatusIdle,
	}); err != nil {
		return nil, err
	}

	slog.Info("registered new player",
		"player", name,
		"owner_id", ownerID,
		"map", start.Name,
	)
	return p, nil
}

func (m *Manager) newPlayer(ownerID, name string, createdAt time.Time) *Player {
	_, admin := m.admins[ownerID]
	return &Player{
		ownerID:   ownerID,
		name:      name,
		createdAt: createdAt,
		admin:     admin,
		graph:     m.graph,
		timers:    m.timers,
		store:     m.store,
		clock:     m.clock,
	}
}

// Lookup returns the live aggregate for an owner without creating one.
func (m *Manager) Lookup(ownerID string) (*Player, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[ownerID]
	return p, ok
}

// Delete removes the player's durable row and every timer key, then evicts
// the aggregate. The evicted handle must not be used again. Works for
// owners with no live aggregate too, so a player registered before a
// restart can still be deleted.
func (m *Manager) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := input.OwnerID
	if p, ok := m.players[input.OwnerID]; ok {
		// Poison before touching the stores: markDeleted waits for any
		// in-flight resolution to release p.mu, and every later resolution
		// no-ops, so a lapsed-timer Save cannot re-insert the row after the
		// stores are wiped.
		p.markDeleted()
		delete(m.players, input.OwnerID)
		name = p.Name()
	} else {
		if _, err := m.store.Get(ctx, playerrepo.GetInput{OwnerID: input.OwnerID}); err != nil {
			if errors.IsNotFound(err) {
				return nil, errors.NotFoundf("no player for owner %s", input.OwnerID)
			}
			return nil, errors.Wrap(err, "failed to load player")
		}
	}

	if _, err := m.store.Delete(ctx, playerrepo.DeleteInput{OwnerID: input.OwnerID}); err != nil {
		return nil, err
	}
	if err := m.timers.ClearAll(ctx, activity.ClearAllInput{OwnerID: input.OwnerID}); err != nil {
		return nil, err
	}

	slog.Info("deleted player", "player", name, "owner_id", input.OwnerID)
	return &DeleteOutput{}, nil
}

// Run drives the reconciliation loop until ctx is cancelled. Each tick
// resolves every registered player; a failing player is logged and retried
// on the next tick, which is safe because resolution is idempotent.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("player reconciliation loop started", "interval", m.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("player reconciliation loop stopped")
			return
		case <-ticker.C:
			m.reconcile(ctx)
		}
	}
}

func (m *Manager) reconcile(ctx context.Context) {
	for _, p := range m.snapshot() {
		if _, err := p.Resolve(ctx); err != nil {
			slog.Warn("failed to reconcile player",
				"player", p.Name(),
				"owner_id", p.OwnerID(),
				"error", err,
			)
		}
	}
}

func (m *Manager) snapshot() []*Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	players := make([]*Player, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, p)
	}
	return players
}
