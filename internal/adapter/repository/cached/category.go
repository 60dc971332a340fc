package cached

import (
	"context"

	"go.uber.org/zap"

	"course-service/internal/adapter/cache"
	domain "course-service/internal/domain/category"
	"course-service/internal/usecase/category"
)

// CategoryRepository caches single categories in front of the DB repository.
// Categories never change through the API, so entries only expire by TTL.
type CategoryRepository struct {
	dbRepo category.Repository
	reads  *readThrough[domain.Category]
}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository(dbRepo category.Repository, c cache.EntityCache[domain.Category], log *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		dbRepo: dbRepo,
		reads:  newReadThrough("category", c, dbRepo.GetByID, log),
	}
}

// GetByID retrieves a category by ID using Cache-Aside pattern.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return r.reads.get(ctx, id)
}

// List delegates to the DB repository.
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	return r.dbRepo.List(ctx)
}
