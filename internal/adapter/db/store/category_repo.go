package store

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-service/internal/domain/category"
	pkgerrors "course-service/pkg/errors"
)

// CategoryRepository reads categories with GORM.
type CategoryRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository(db *gorm.DB, log *zap.Logger) *CategoryRepository {
	return &CategoryRepository{db: db, log: log}
}

// Create inserts a category. Categories are read-only over the API; Seed
// creates them through this method inside its transaction.
func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	model := CategorySchema{Name: c.Name}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create category in db", zap.Error(err), zap.String("name", c.Name))
		return nil, translate(err, "category", "failed to create category")
	}
	return &category.Category{ID: model.ID, Name: model.Name}, nil
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	var model CategorySchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundByID("category", id)
		}
		r.log.Error("failed to get category from db", zap.Error(err), zap.Int64("id", id))
		return nil, translate(err, "category", "failed to get category")
	}
	return &category.Category{ID: model.ID, Name: model.Name}, nil
}

// List returns all categories ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	var models []CategorySchema
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		r.log.Error("failed to list categories from db", zap.Error(err))
		return nil, translate(err, "category", "failed to list categories")
	}

	categories := make([]category.Category, len(models))
	for i, m := range models {
		categories[i] = category.Category{ID: m.ID, Name: m.Name}
	}
	return categories, nil
}
