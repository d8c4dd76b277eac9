package mapgraph

import (
	"encoding/json"
	"os"

	"github.com/XuaTheGrate/adventure-api/internal/errors"
)

// Definition is the on-disk shape of a single location.
type Definition struct {
	ID          int32   `json:"id"`
	Name        string  `json:"name"`
	Density     float64 `json:"density"`
	Description string  `json:"description"`
	Nearby      []int32 `json:"nearby"`
}

// LoadFile reads location definitions from a JSON file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 // operator-supplied path
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read map definitions from %s", path)
	}

	var defs []Definition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument,
			"failed to parse map definitions from %s", path)
	}

	return &Config{Definitions: defs}, nil
}

// DefaultConfig returns the built-in world used when no definitions file is
// supplied.
func DefaultConfig() *Config {
	return &Config{Definitions: []Definition{
		{
			ID:          0,
			Name:        "Sanctuary",
			Density:     10,
			Description: "A quiet village where every adventure begins.",
			Nearby:      []int32{1, 2},
		},
		{
			ID:          1,
			Name:        "Whispering Woods",
			Density:     20,
			Description: "Dense forest. The trees seem to murmur to each other.",
			Nearby:      []int32{0, 3},
		},
		{
			ID:          2,
			Name:        "Saltmarsh",
			Density:     35,
			Description: "Brackish wetlands stretching toward the coast.",
			Nearby:      []int32{0, 4},
		},
		{
			ID:          3,
			Name:        "Cragspire Pass",
			Density:     80,
			Description: "A narrow route through jagged peaks.",
			Nearby:      []int32{1, 5},
		},
		{
			ID:          4,
			Name:        "Sunken Ruins",
			Density:     120,
			Description: "Half-drowned remains of an older civilization.",
			Nearby:      []int32{2, 5},
		},
		{
			ID:          5,
			Name:        "The Expanse",
			Density:     400,
			Description: "Endless dunes. Few who cross return unchanged.",
			Nearby:      []int32{3, 4},
		},
	}}
}
