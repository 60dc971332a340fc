package category

import "context"

// Service defines the read-only category operations.
// Transports depend on it rather than on *Usecase.
type Service interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id int64) (*Category, error)
}

var _ Service = (*Usecase)(nil)
