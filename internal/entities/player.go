package entities

import "time"

// Player is the durable shape of a player aggregate: the fields that survive
// process restarts. The live state machine around these fields is owned by
// the player orchestrator.
type Player struct {
	// OwnerID is the chat-platform identity this player belongs to. It is
	// the natural key; at most one player exists per owner.
	OwnerID string

	// Display name chosen at registration
	Name string

	// When the player was first registered. Immutable.
	CreatedAt time.Time

	// ID of the map the player currently occupies
	MapID int32

	// IDs of every map the player has finished exploring
	Explored []int32
}

// HasExplored reports whether the player has already explored the map with
// the given id.
func (p *Player) HasExplored(mapID int32) bool {
	for _, id := range p.Explored {
		if id == mapID {
			return true
		}
	}
	return false
}
