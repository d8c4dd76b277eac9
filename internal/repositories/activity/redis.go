package activity

import (
	"context"
	"fmt"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/XuaTheGrate/adventure-api/internal/entities"
	"github.com/XuaTheGrate/adventure-api/internal/errors"
	redisclient "github.com/XuaTheGrate/adventure-api/internal/redis"
)

const (
	// Key patterns: travelling_{owner}, exploring_{owner}, next_map_{owner},
	// status_{owner}. Only the two activity keys carry an expiry.
	nextMapKeyPrefix = "next_map_"
	statusKeyPrefix  = "status_"

	// Error messages
	errOwnerIDEmpty = "owner ID cannot be empty"
	errKindInvalid  = "activity kind is invalid"
	errTTLInvalid   = "activity TTL must be positive"
)

// RedisConfig contains configuration for the Redis timer store.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedis creates a new Redis-backed timer store
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func activityKey(kind Kind, ownerID string) string {
	return fmt.Sprintf("%s_%s", kind, ownerID)
}

func (r *redisRepository) StartActivity(ctx context.Context, input StartActivityInput) error {
	if input.OwnerID == "" {
		return errors.InvalidArgument(errOwnerIDEmpty)
	}
	if !input.Kind.IsValid() {
		return errors.InvalidArgument(errKindInvalid)
	}
	if input.TTL <= 0 {
		return errors.InvalidArgument(errTTLInvalid)
	}

	// The stored value is the original duration in seconds; the expiry is
	// what actually matters.
	value := strconv.FormatInt(int64(input.TTL.Seconds()), 10)
	err := r.client.Set(ctx, activityKey(input.Kind, input.OwnerID), value, input.TTL).Err()
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable,
			"failed to arm %s timer", input.Kind)
	}
	return nil
}

func (r *redisRepository) ActivityRemaining(ctx context.Context, input ActivityRemainingInput) (*ActivityRemainingOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}
	if !input.Kind.IsValid() {
		return nil, errors.InvalidArgument(errKindInvalid)
	}

	remaining, err := r.client.TTL(ctx, activityKey(input.Kind, input.OwnerID)).Result()
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable,
			"failed to read %s timer", input.Kind)
	}

	// TTL reports negative durations for missing keys and keys without
	// expiry; both mean no activity is outstanding.
	if remaining < 0 {
		remaining = 0
	}

	return &ActivityRemainingOutput{Remaining: remaining}, nil
}

func (r *redisRepository) ClearActivity(ctx context.Context, input ClearActivityInput) error {
	if input.OwnerID == "" {
		return errors.InvalidArgument(errOwnerIDEmpty)
	}
	if !input.Kind.IsValid() {
		return errors.InvalidArgument(errKindInvalid)
	}

	if err := r.client.Del(ctx, activityKey(input.Kind, input.OwnerID)).Err(); err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable,
			"failed to clear %s timer", input.Kind)
	}
	return nil
}

func (r *redisRepository) SetNextMap(ctx context.Context, input SetNextMapInput) error {
	if input.OwnerID == "" {
		return errors.InvalidArgument(errOwnerIDEmpty)
	}

	value := strconv.FormatInt(int64(input.MapID), 10)
	if err := r.client.Set(ctx, nextMapKeyPrefix+input.OwnerID, value, 0).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to record next map")
	}
	return nil
}

func (r *redisRepository) NextMap(ctx context.Context, input NextMapInput) (*NextMapOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	value, err := r.client.Get(ctx, nextMapKeyPrefix+input.OwnerID).Result()
	if err == redis.Nil {
		return &NextMapOutput{Found: false}, nil
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read next map")
	}

	id, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt next map value %q", value)
	}

	return &NextMapOutput{Found: true, MapID: int32(id)}, nil
}

func (r *redisRepository) ClearNextMap(ctx context.Context, input ClearNextMapInput) error {
	if input.OwnerID == "" {
		return errors.InvalidArgument(errOwnerIDEmpty)
	}

	if err := r.client.Del(ctx, nextMapKeyPrefix+input.OwnerID).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to clear next map")
	}
	return nil
}

func (r *redisRepository) SetStatus(ctx context.Context, input SetStatusInput) error {
	if input.OwnerID == "" {
		return errors.InvalidArgument(errOwnerIDEmpty)
	}
	if !input.Status.IsValid() {
		return errors.InvalidArgumentf("status %d is not valid", input.Status)
	}

	value := strconv.FormatInt(int64(input.Status), 10)
	if err := r.client.Set(ctx, statusKeyPrefix+input.OwnerID, value, 0).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to write status tag")
	}
	return nil
}

func (r *redisRepository) Status(ctx context.Context, input StatusInput) (*StatusOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	value, err := r.client.Get(ctx, statusKeyPrefix+input.OwnerID).Result()
	if err == redis.Nil {
		return &StatusOutput{Found: false}, nil
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read status tag")
	}

	tag, err := strconv.ParseInt(value, 10, 32)
	if err != nil || !entities.Status(tag).IsValid() {
		return nil, errors.Internalf("corrupt status tag %q", value)
	}

	return &StatusOutput{Found: true, Status: entities.Status(tag)}, nil
}

func (r *redisRepository) ClearAll(ctx context.Context, input ClearAllInput) error {
	if input.OwnerID == "" {
		return errors.InvalidArgument(errOwnerIDEmpty)
	}

	keys := []string{
		activityKey(KindTravelling, input.OwnerID),
		activityKey(KindExploring, input.OwnerID),
		nextMapKeyPrefix + input.OwnerID,
		statusKeyPrefix + input.OwnerID,
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to clear owner keys")
	}
	return nil
}
