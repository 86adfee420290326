package catalog

import (
	"context"
	"fmt"

	"github.com/matst80/slask-layer/pkg/types"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Attribute is the persisted attribute metadata row.
type Attribute struct {
	ID           uint   `gorm:"primaryKey"`
	Code         string `gorm:"type:varchar(255);uniqueIndex"`
	SourceModel  string `gorm:"type:varchar(255)"`
	BackendType  string `gorm:"type:varchar(32)"`
	Label        string `gorm:"type:varchar(255)"`
	Position     int
	IsFilterable bool `gorm:"index"`
}

func (Attribute) TableName() string {
	return "catalog_attributes"
}

func (a Attribute) Descriptor() types.AttributeDescriptor {
	return types.AttributeDescriptor{
		Code:        a.Code,
		SourceModel: a.SourceModel,
		BackendType: a.BackendType,
		Label:       a.Label,
		Position:    a.Position,
	}
}

type GormProvider struct {
	db *gorm.DB
}

func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect attributes db: %w", err)
	}
	return db, nil
}

func NewGormProvider(db *gorm.DB) *GormProvider {
	return &GormProvider{db: db}
}

func (p *GormProvider) Migrate() error {
	return p.db.AutoMigrate(&Attribute{})
}

func (p *GormProvider) Filterable(ctx context.Context) ([]types.AttributeDescriptor, error) {
	var rows []Attribute
	err := p.db.WithContext(ctx).
		Where("is_filterable = ?", true).
		Order("position ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load filterable attributes: %w", err)
	}
	attrs := make([]types.AttributeDescriptor, 0, len(rows))
	for _, row := range rows {
		attrs = append(attrs, row.Descriptor())
	}
	return attrs, nil
}
