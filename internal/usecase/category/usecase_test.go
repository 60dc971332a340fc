package category

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "course-service/internal/domain/category"
	pkgerrors "course-service/pkg/errors"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func setup(t *testing.T) (*Usecase, *MockRepository) {
	repo := new(MockRepository)
	return New(repo, zaptest.NewLogger(t)), repo
}

func TestListCategories(t *testing.T) {
	uc, repo := setup(t)
	ctx := context.Background()

	repo.On("List", ctx).Return([]domain.Category{
		{ID: 1, Name: "Electronics"},
		{ID: 2, Name: "Books"},
	}, nil)

	got, err := uc.ListCategories(ctx)

	require.NoError(t, err)
	assert.Equal(t, []Category{{ID: 1, Name: "Electronics"}, {ID: 2, Name: "Books"}}, got)
}

func TestListCategories_Empty(t *testing.T) {
	uc, repo := setup(t)
	ctx := context.Background()

	repo.On("List", ctx).Return([]domain.Category{}, nil)

	got, err := uc.ListCategories(ctx)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListCategories_Error(t *testing.T) {
	uc, repo := setup(t)
	ctx := context.Background()

	repo.On("List", ctx).Return(nil, errors.New("db down"))

	_, err := uc.ListCategories(ctx)
	assert.EqualError(t, err, "db down")
}

func TestGetCategory(t *testing.T) {
	uc, repo := setup(t)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(2)).Return(&domain.Category{ID: 2, Name: "Electronics"}, nil)

	got, err := uc.GetCategory(ctx, 2)

	require.NoError(t, err)
	assert.Equal(t, &Category{ID: 2, Name: "Electronics"}, got)
}

func TestGetCategory_NotFound(t *testing.T) {
	uc, repo := setup(t)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(42)).Return(nil, pkgerrors.NotFoundByID("category", 42))

	got, err := uc.GetCategory(ctx, 42)

	assert.Nil(t, got)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGetCategory_InvalidID(t *testing.T) {
	uc, repo := setup(t)

	_, err := uc.GetCategory(context.Background(), 0)

	var validationErr *pkgerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
