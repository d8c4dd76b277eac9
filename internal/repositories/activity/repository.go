// Package activity provides the expiring-key timer store that is the sole
// authority for how much time remains on a player's current activity.
// Completion is signalled by key expiry, never by wall-clock arithmetic held
// in process memory, so state stays correct across restarts.
package activity

import (
	"context"
	"time"

	"github.com/XuaTheGrate/adventure-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=activitymock github.com/XuaTheGrate/adventure-api/internal/repositories/activity Repository

// Kind distinguishes the two timed activities. The values are part of the
// key naming contract.
type Kind string

// Activity kinds
const (
	KindTravelling Kind = "travelling"
	KindExploring  Kind = "exploring"
)

// IsValid reports whether k names a known activity.
func (k Kind) IsValid() bool {
	return k == KindTravelling || k == KindExploring
}

// StartActivityInput contains parameters for arming an activity timer
type StartActivityInput struct {
	OwnerID string
	Kind    Kind
	TTL     time.Duration
}

// ActivityRemainingInput contains parameters for querying a timer
type ActivityRemainingInput struct {
	OwnerID string
	Kind    Kind
}

// ActivityRemainingOutput reports how much time is left on a timer. Zero
// means absent or expired.
type ActivityRemainingOutput struct {
	Remaining time.Duration
}

// ClearActivityInput contains parameters for removing a timer
type ClearActivityInput struct {
	OwnerID string
	Kind    Kind
}

// SetNextMapInput records the pending travel destination
type SetNextMapInput struct {
	OwnerID string
	MapID   int32
}

// NextMapInput contains parameters for reading the pending destination
type NextMapInput struct {
	OwnerID string
}

// NextMapOutput reports the pending destination, if any
type NextMapOutput struct {
	Found bool
	MapID int32
}

// ClearNextMapInput contains parameters for clearing the pending destination
type ClearNextMapInput struct {
	OwnerID string
}

// SetStatusInput mirrors the player's status tag for external inspection
type SetStatusInput struct {
	OwnerID string
	Status  entities.Status
}

// StatusInput contains parameters for reading the mirrored status tag
type StatusInput struct {
	OwnerID string
}

// StatusOutput reports the mirrored status tag, if present
type StatusOutput struct {
	Found  bool
	Status entities.Status
}

// ClearAllInput contains parameters for removing every key an owner has
type ClearAllInput struct {
	OwnerID string
}

// Repository is the timer store contract. All operations are idempotent and
// safe to retry. Implementations must report transport failures as errors;
// an unreachable store is never the same thing as an absent key.
type Repository interface {
	// StartActivity arms the timer for an activity; expiry marks completion
	StartActivity(ctx context.Context, input StartActivityInput) error

	// ActivityRemaining reports time left on a timer, zero when absent or expired
	ActivityRemaining(ctx context.Context, input ActivityRemainingInput) (*ActivityRemainingOutput, error)

	// ClearActivity removes an activity timer
	ClearActivity(ctx context.Context, input ClearActivityInput) error

	// SetNextMap records the destination of an in-flight travel
	SetNextMap(ctx context.Context, input SetNextMapInput) error

	// NextMap reads the recorded destination; absence is not an error
	NextMap(ctx context.Context, input NextMapInput) (*NextMapOutput, error)

	// ClearNextMap removes the recorded destination
	ClearNextMap(ctx context.Context, input ClearNextMapInput) error

	// SetStatus writes the mirrored status tag (no expiry)
	SetStatus(ctx context.Context, input SetStatusInput) error

	// Status reads the mirrored status tag
	Status(ctx context.Context, input StatusInput) (*StatusOutput, error)

	// ClearAll removes all four keys for an owner
	ClearAll(ctx context.Context, input ClearAllInput) error
}
