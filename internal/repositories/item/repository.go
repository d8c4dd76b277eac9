// Package item provides storage for the shop inventory. Items are plain
// data and take no part in the activity state machine.
package item

import (
	"context"

	"github.com/XuaTheGrate/adventure-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=itemmock github.com/XuaTheGrate/adventure-api/internal/repositories/item Repository

// CreateInput contains parameters for adding a shop item
type CreateInput struct {
	Name string
	Cost float64
}

// CreateOutput contains the stored item with its assigned id
type CreateOutput struct {
	Item *entities.Item
}

// GetInput contains parameters for loading an item
type GetInput struct {
	ID int64
}

// GetOutput contains the loaded item
type GetOutput struct {
	Item *entities.Item
}

// SaveInput contains parameters for updating an item
type SaveInput struct {
	Item *entities.Item
}

// SaveOutput contains the result of updating an item
type SaveOutput struct {
	Item *entities.Item
}

// ListOutput contains every shop item
type ListOutput struct {
	Items []*entities.Item
}

// Repository defines the shop storage contract
type Repository interface {
	// Create stores a new item, assigning its id
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get loads an item by id, NotFound when absent
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save updates an existing item
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// List returns all items ordered by id
	List(ctx context.Context) (*ListOutput, error)
}
