// Package mapgraph holds the immutable location graph and the activity cost
// formulas derived from map density.
package mapgraph

import (
	"sort"
	"strings"
	"time"

	"github.com/XuaTheGrate/adventure-api/internal/entities"
	"github.com/XuaTheGrate/adventure-api/internal/errors"
)

const (
	// StartingMapID is where every new player begins.
	StartingMapID int32 = 0

	// travel hours = (from.density + to.density) / travelDivisor
	travelDivisor = 1234.0

	// explore hours = (density * exploreFactor) / exploreDivisor
	exploreFactor  = 1234.0
	exploreDivisor = 1_000_000.0
)

// Graph is the registry of all locations. It is built once at startup and
// read-only afterwards, so it needs no synchronization.
type Graph struct {
	maps     map[int32]*entities.Map
	byName   map[string]*entities.Map
	starting *entities.Map
}

// Config holds the location definitions the graph is built from.
type Config struct {
	Definitions []Definition
}

// Validate ensures the definitions describe a loadable graph.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()

	if len(c.Definitions) == 0 {
		vb.RequiredField("Definitions")
		return vb.Build()
	}

	seen := make(map[int32]bool, len(c.Definitions))
	for _, def := range c.Definitions {
		if def.Name == "" {
			vb.Fieldf("Definitions", "map %d has no name", def.ID)
		}
		if def.Density <= 0 {
			vb.Fieldf("Definitions", "map %d has non-positive density", def.ID)
		}
		if seen[def.ID] {
			vb.Fieldf("Definitions", "duplicate map id %d", def.ID)
		}
		seen[def.ID] = true
	}
	if !seen[StartingMapID] {
		vb.Fieldf("Definitions", "starting map %d is missing", StartingMapID)
	}
	for _, def := range c.Definitions {
		for _, n := range def.Nearby {
			if !seen[n] {
				vb.Fieldf("Definitions", "map %d lists unknown nearby id %d", def.ID, n)
			}
		}
	}

	return vb.Build()
}

// New builds the graph. Adjacency is made symmetric: if a lists b as nearby,
// b gets a as well.
func New(cfg *Config) (*Graph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	g := &Graph{
		maps:   make(map[int32]*entities.Map, len(cfg.Definitions)),
		byName: make(map[string]*entities.Map, len(cfg.Definitions)),
	}

	for _, def := range cfg.Definitions {
		m := &entities.Map{
			ID:          def.ID,
			Name:        def.Name,
			Density:     def.Density,
			Description: def.Description,
		}
		g.maps[m.ID] = m
		g.byName[strings.ToLower(m.Name)] = m
	}

	linked := make(map[[2]int32]bool)
	link := func(a, b *entities.Map) {
		key := [2]int32{a.ID, b.ID}
		if a.ID == b.ID || linked[key] {
			return
		}
		linked[key] = true
		a.Nearby = append(a.Nearby, b)
	}
	for _, def := range cfg.Definitions {
		from := g.maps[def.ID]
		for _, id := range def.Nearby {
			to := g.maps[id]
			link(from, to)
			link(to, from)
		}
	}
	for _, m := range g.maps {
		sort.Slice(m.Nearby, func(i, j int) bool { return m.Nearby[i].ID < m.Nearby[j].ID })
	}

	g.starting = g.maps[StartingMapID]
	return g, nil
}

// Get looks a map up by id.
func (g *Graph) Get(id int32) (*entities.Map, error) {
	m, ok := g.maps[id]
	if !ok {
		return nil, errors.NotFoundf("no map with id %d", id)
	}
	return m, nil
}

// FindByName looks a map up by name, case-insensitively.
func (g *Graph) FindByName(name string) (*entities.Map, error) {
	m, ok := g.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.NotFoundf("no map named %q", name)
	}
	return m, nil
}

// Starting returns the map new players are seeded at.
func (g *Graph) Starting() *entities.Map {
	return g.starting
}

// Len returns the number of maps in the graph.
func (g *Graph) Len() int {
	return len(g.maps)
}

// TravelCost returns how long travelling between two maps takes. Durations
// are fractional: the hour value is converted without rounding.
func (g *Graph) TravelCost(from, to *entities.Map) (time.Duration, error) {
	if from == nil || to == nil {
		return 0, errors.InvalidArgument("travel cost requires two resolved maps")
	}
	hours := (from.Density + to.Density) / travelDivisor
	return time.Duration(hours * float64(time.Hour)), nil
}

// ExploreCost returns how long exploring a map takes.
func (g *Graph) ExploreCost(m *entities.Map) (time.Duration, error) {
	if m == nil {
		return 0, errors.InvalidArgument("explore cost requires a resolved map")
	}
	hours := (m.Density * exploreFactor) / exploreDivisor
	return time.Duration(hours * float64(time.Hour)), nil
}
