package cached

import (
	"context"

	"go.uber.org/zap"

	"course-service/internal/adapter/cache"
	domain "course-service/internal/domain/user"
	"course-service/internal/usecase/user"
)

// UserRepository implements user.Repository with read-through caching of single users.
// It wraps a persistent repository (DB) and a cache implementation.
type UserRepository struct {
	dbRepo user.Repository
	cache  cache.EntityCache[domain.User]
	reads  *readThrough[domain.User]
	log    *zap.Logger
}

// NewUserRepository creates a new instance of UserRepository. A nil cache
// turns it into a pass-through.
func NewUserRepository(dbRepo user.Repository, c cache.EntityCache[domain.User], log *zap.Logger) *UserRepository {
	return &UserRepository{
		dbRepo: dbRepo,
		cache:  c,
		reads:  newReadThrough("user", c, dbRepo.GetByID, log),
		log:    log,
	}
}

// Create delegates to the DB repository.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.dbRepo.Create(ctx, u)
}

// GetByID retrieves a user by ID using Cache-Aside pattern.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.reads.get(ctx, id)
}

// GetByEmail delegates to the DB repository.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.dbRepo.GetByEmail(ctx, email)
}

// Update updates the user in DB and invalidates the cache.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	updated, err := r.dbRepo.Update(ctx, u)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, u.ID, "update")
	return updated, nil
}

// Delete deletes the user from DB and invalidates the cache.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if err := r.dbRepo.Delete(ctx, id); err != nil {
		return err
	}

	r.invalidate(ctx, id, "delete")
	return nil
}

// List delegates to the DB repository.
func (r *UserRepository) List(ctx context.Context, query string) ([]domain.User, error) {
	return r.dbRepo.List(ctx, query)
}

func (r *UserRepository) invalidate(ctx context.Context, id int64, op string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("failed to invalidate cache", zap.String("op", op), zap.Int64("id", id), zap.Error(err))
	}
}
