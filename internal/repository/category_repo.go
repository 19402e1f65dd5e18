package repository

import (
	"context"

	"foodshare/internal/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

type categoryModel struct {
	ID   int64   `gorm:"column:id;primaryKey"`
	Name string  `gorm:"column:name"`
	Icon *string `gorm:"column:icon"`
}

func (categoryModel) TableName() string { return "categories" }

func toDomainCategory(m categoryModel) domain.Category {
	var icon string
	if m.Icon != nil {
		icon = *m.Icon
	}
	return domain.Category{ID: m.ID, Name: m.Name, Icon: icon}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var rows []categoryModel
	tx := r.db.WithContext(ctx).Order("name").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Category, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainCategory(m))
	}
	return out, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var m categoryModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	c := toDomainCategory(m)
	return &c, nil
}

// Create exists for seeding; categories are read-only at runtime.
func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	var icon *string
	if c.Icon != "" {
		v := c.Icon
		icon = &v
	}
	m := categoryModel{ID: c.ID, Name: c.Name, Icon: icon}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	c.ID = m.ID
	return nil
}
