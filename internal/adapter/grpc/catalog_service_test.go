package grpc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"course-service/internal/adapter/grpc/middleware"
	"course-service/internal/usecase/category"
	"course-service/internal/usecase/user"
	pkgerrors "course-service/pkg/errors"
	"course-service/pkg/logger"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) CreateUser(ctx context.Context, in user.CreateUserRequest) (*user.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserService) UpdateUser(ctx context.Context, in user.UpdateUserRequest) (*user.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, in user.DeleteUserRequest) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockUserService) GetUser(ctx context.Context, in user.GetUserRequest) (*user.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserService) ListUsers(ctx context.Context, in user.ListUsersRequest) (*user.ListUsersResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.ListUsersResponse), args.Error(1)
}

type mockCategoryService struct {
	mock.Mock
}

func (m *mockCategoryService) ListCategories(ctx context.Context) ([]category.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]category.Category), args.Error(1)
}

func (m *mockCategoryService) GetCategory(ctx context.Context, id int64) (*category.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func setupCatalog(t *testing.T) (*CatalogClient, *mockUserService, *mockCategoryService) {
	t.Helper()

	log := zaptest.NewLogger(t)
	users := new(mockUserService)
	categories := new(mockCategoryService)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		logger.RequestIDInterceptor(),
		middleware.LoggingInterceptor(log),
	))
	RegisterCatalogServer(srv, NewCatalogService(users, categories, log))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewCatalogClient(conn), users, categories
}

func TestCatalog_GetUser(t *testing.T) {
	client, users, _ := setupCatalog(t)
	ctx := context.Background()

	users.On("GetUser", mock.Anything, user.GetUserRequest{ID: 1}).
		Return(&user.User{ID: 1, Name: "Maria Brown", Email: "maria@gmail.com", Phone: "988888888"}, nil)
	users.On("GetUser", mock.Anything, user.GetUserRequest{ID: 999}).
		Return(nil, pkgerrors.NotFoundByID("user", 999))
	users.On("GetUser", mock.Anything, user.GetUserRequest{ID: 0}).
		Return(nil, pkgerrors.NewValidationError("ID", "must be a positive integer"))

	got, err := client.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"id":    float64(1),
		"name":  "Maria Brown",
		"email": "maria@gmail.com",
		"phone": "988888888",
	}, got.AsMap())

	_, err = client.GetUser(ctx, 999)
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, "user not found: id=999", status.Convert(err).Message())

	_, err = client.GetUser(ctx, 0)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCatalog_ListUsers(t *testing.T) {
	client, users, _ := setupCatalog(t)

	users.On("ListUsers", mock.Anything, user.ListUsersRequest{}).Return(&user.ListUsersResponse{
		Users: []user.User{
			{ID: 1, Name: "Maria Brown", Email: "maria@gmail.com"},
			{ID: 2, Name: "Alex Green", Email: "alex@gmail.com"},
		},
	}, nil).Once()

	got, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	list := got.AsSlice()
	require.Len(t, list, 2)
	assert.Equal(t, "Alex Green", list[1].(map[string]any)["name"])

	users.On("ListUsers", mock.Anything, user.ListUsersRequest{}).
		Return(nil, pkgerrors.NewInternalError("failed to list users", errors.New("db down"))).Once()

	_, err = client.ListUsers(context.Background())
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Equal(t, "failed to list users", status.Convert(err).Message(), "cause is not leaked")
}

func TestCatalog_Categories(t *testing.T) {
	client, _, categories := setupCatalog(t)
	ctx := context.Background()

	categories.On("ListCategories", mock.Anything).Return([]category.Category{
		{ID: 1, Name: "Books"},
		{ID: 2, Name: "Electronics"},
	}, nil)
	categories.On("GetCategory", mock.Anything, int64(2)).Return(&category.Category{ID: 2, Name: "Electronics"}, nil)
	categories.On("GetCategory", mock.Anything, int64(7)).Return(nil, pkgerrors.NotFoundByID("category", 7))

	all, err := client.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []any{
		map[string]any{"id": float64(1), "name": "Books"},
		map[string]any{"id": float64(2), "name": "Electronics"},
	}, all.AsSlice())

	one, err := client.GetCategory(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", one.AsMap()["name"])

	_, err = client.GetCategory(ctx, 7)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestFullMethod(t *testing.T) {
	assert.Equal(t, "/course.v1.CatalogService/GetUser", FullMethod("GetUser"))
}
