// Package player provides durable storage for player records: one row per
// owner, upserted on save.
package player

import (
	"context"

	"github.com/XuaTheGrate/adventure-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=playermock github.com/XuaTheGrate/adventure-api/internal/repositories/player Repository

// SaveInput contains parameters for persisting a player
type SaveInput struct {
	Player *entities.Player
}

// SaveOutput contains the result of persisting a player
type SaveOutput struct {
	Player *entities.Player
}

// GetInput contains parameters for loading a player
type GetInput struct {
	OwnerID string
}

// GetOutput contains the loaded player
type GetOutput struct {
	Player *entities.Player
}

// DeleteInput contains parameters for removing a player row
type DeleteInput struct {
	OwnerID string
}

// DeleteOutput contains the result of removing a player row
type DeleteOutput struct{}

// Repository defines the durable player storage contract. Save is an upsert
// keyed by owner: the first save inserts, later saves update name, map and
// explored set while owner and created-at stay immutable.
type Repository interface {
	// Save upserts the player row
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get loads the row for an owner, NotFound when absent
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes the row for an owner
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
