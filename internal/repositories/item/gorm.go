package item

import (
	"context"

	"gorm.io/gorm"

	"github.com/XuaTheGrate/adventure-api/internal/entities"
	"github.com/XuaTheGrate/adventure-api/internal/errors"
)

type itemRow struct {
	ItemID int64   `gorm:"column:item_id;primaryKey;autoIncrement"`
	Name   string  `gorm:"column:name;not null"`
	Cost   float64 `gorm:"column:cost;not null"`
}

func (itemRow) TableName() string {
	return "shop"
}

// GormConfig contains configuration for the GORM item repository.
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

// NewGorm creates a new GORM-backed item repository and migrates its table.
func NewGorm(cfg *GormConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	if err := cfg.DB.AutoMigrate(&itemRow{}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to migrate shop table")
	}

	return &gormRepository{db: cfg.DB}, nil
}

// Ensure gormRepository implements Repository
var _ Repository = (*gormRepository)(nil)

func (r *gormRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument("item name cannot be empty")
	}
	if input.Cost < 0 {
		return nil, errors.InvalidArgument("item cost cannot be negative")
	}

	row := &itemRow{Name: input.Name, Cost: input.Cost}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to create item")
	}

	return &CreateOutput{Item: row.toEntity()}, nil
}

func (r *gormRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	var row itemRow
	err := r.db.WithContext(ctx).First(&row, "item_id = ?", input.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFoundf("no item with id %d", input.ID)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load item")
	}

	return &GetOutput{Item: row.toEntity()}, nil
}

func (r *gormRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Item == nil {
		return nil, errors.InvalidArgument("item cannot be nil")
	}
	if input.Item.ID == 0 {
		return nil, errors.InvalidArgument("item id cannot be zero")
	}

	row := &itemRow{ItemID: input.Item.ID, Name: input.Item.Name, Cost: input.Item.Cost}
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save item")
	}

	return &SaveOutput{Item: input.Item}, nil
}

func (r *gormRepository) List(ctx context.Context) (*ListOutput, error) {
	var rows []itemRow
	if err := r.db.WithContext(ctx).Order("item_id").Find(&rows).Error; err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list items")
	}

	items := make([]*entities.Item, len(rows))
	for i := range rows {
		items[i] = rows[i].toEntity()
	}
	return &ListOutput{Items: items}, nil
}

func (row *itemRow) toEntity() *entities.Item {
	return &entities.Item{ID: row.ItemID, Name: row.Name, Cost: row.Cost}
}
