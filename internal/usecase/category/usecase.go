package category

import (
	"context"

	"go.uber.org/zap"

	domain "course-service/internal/domain/category"
	pkgerrors "course-service/pkg/errors"
)

// Repository is the category store. GetByID returns a NotFoundError for a missing id.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// Usecase implements the category read operations.
type Usecase struct {
	repo Repository
	log  *zap.Logger
}

// New creates a new instance of Usecase.
func New(repo Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: repo, log: log}
}

// ListCategories returns every category ordered by id.
func (uc *Usecase) ListCategories(ctx context.Context) ([]Category, error) {
	uc.log.Info("listing categories")

	categories, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Error("failed to list categories", zap.Error(err))
		return nil, err
	}

	out := make([]Category, len(categories))
	for i := range categories {
		out[i] = *toDTO(&categories[i])
	}
	return out, nil
}

// GetCategory returns the category with id.
func (uc *Usecase) GetCategory(ctx context.Context, id int64) (*Category, error) {
	if id <= 0 {
		uc.log.Warn("get category validation failed", zap.Int64("id", id), zap.String("reason", "invalid id"))
		return nil, pkgerrors.NewValidationError("ID", "must be a positive integer")
	}

	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if !pkgerrors.IsNotFound(err) {
			uc.log.Error("failed to get category", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}

	return toDTO(c), nil
}
