// Package entities defines the core domain types for the adventure service.
package entities

// Map is a single location in the world graph. Maps are built once when the
// graph is loaded and never mutated afterwards; identity is the numeric ID.
type Map struct {
	// Unique numeric identifier. Equality is by ID only.
	ID int32

	// Display name of the location
	Name string

	// Density drives the travel and explore duration formulas. Always positive.
	Density float64

	// Flavor text shown to players
	Description string

	// Adjacent locations. Adjacency is symmetric but the graph is not
	// required to be fully connected.
	Nearby []*Map
}

// Equal reports whether two maps refer to the same location.
func (m *Map) Equal(other *Map) bool {
	return m != nil && other != nil && m.ID == other.ID
}

// IsNearby reports whether dest is adjacent to m.
func (m *Map) IsNearby(dest *Map) bool {
	if m == nil || dest == nil {
		return false
	}
	for _, n := range m.Nearby {
		if n.ID == dest.ID {
			return true
		}
	}
	return false
}

func (m *Map) String() string {
	return m.Name
}
