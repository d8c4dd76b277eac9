package player

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/XuaTheGrate/adventure-api/internal/entities"
	"github.com/XuaTheGrate/adventure-api/internal/errors"
)

const (
	// Error messages
	errPlayerNil    = "player cannot be nil"
	errOwnerIDEmpty = "owner ID cannot be empty"
)

// playerRow is the relational shape of a player. The explored set is stored
// as a JSON array so the row shape is identical on Postgres and the SQLite
// used in tests.
type playerRow struct {
	OwnerID   string    `gorm:"column:owner_id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	MapID     int32     `gorm:"column:map_id;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	Explored  []int32   `gorm:"column:explored;serializer:json"`
}

func (playerRow) TableName() string {
	return "players"
}

// GormConfig contains configuration for the GORM player repository.
type GormConfig struct {
	DB *gorm.DB
}

// Validate ensures all required dependencies are provided
func (cfg *GormConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.DB == nil {
		return errors.InvalidArgument("db cannot be nil")
	}
	return nil
}

type gormRepository struct {
	db *gorm.DB
}

// NewGorm creates a new GORM-backed player repository and migrates its table.
func NewGorm(cfg *GormConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	if err := cfg.DB.AutoMigrate(&playerRow{}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to migrate players table")
	}

	return &gormRepository{db: cfg.DB}, nil
}

// Ensure gormRepository implements Repository
var _ Repository = (*gormRepository)(nil)

func (r *gormRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Player == nil {
		return nil, errors.InvalidArgument(errPlayerNil)
	}
	if input.Player.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	row := rowFromEntity(input.Player)

	// Upsert keyed by owner: name, map and explored set move, owner and
	// created-at never do.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "map_id", "explored"}),
	}).Create(row).Error
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save player")
	}

	return &SaveOutput{Player: input.Player}, nil
}

func (r *gormRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	var row playerRow
	err := r.db.WithContext(ctx).First(&row, "owner_id = ?", input.OwnerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFoundf("no player for owner %s", input.OwnerID)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load player")
	}

	return &GetOutput{Player: row.toEntity()}, nil
}

func (r *gormRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	err := r.db.WithContext(ctx).Delete(&playerRow{}, "owner_id = ?", input.OwnerID).Error
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete player")
	}

	return &DeleteOutput{}, nil
}

func rowFromEntity(p *entities.Player) *playerRow {
	explored := make([]int32, len(p.Explored))
	copy(explored, p.Explored)
	return &playerRow{
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		MapID:     p.MapID,
		CreatedAt: p.CreatedAt,
		Explored:  explored,
	}
}

func (row *playerRow) toEntity() *entities.Player {
	explored := make([]int32, len(row.Explored))
	copy(explored, row.Explored)
	return &entities.Player{
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		MapID:     row.MapID,
		Explored:  explored,
	}
}
