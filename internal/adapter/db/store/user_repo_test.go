package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"course-service/internal/domain/order"
	"course-service/internal/domain/user"
	pkgerrors "course-service/pkg/errors"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, zaptest.NewLogger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &user.User{
		ID:           42,
		Name:         "Bob Brown",
		Email:        "bob@gmail.com",
		Phone:        "977777777",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID, "caller supplied id is ignored")
	assert.Equal(t, "Bob Brown", created.Name)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	byEmail, err := repo.GetByEmail(ctx, "bob@gmail.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)

	missing, err := repo.GetByEmail(ctx, "nobody@gmail.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &user.User{Name: "Bob", Email: "bob@gmail.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &user.User{Name: "Bobby", Email: "bob@gmail.com"})
	require.Error(t, err)
	var existsErr *pkgerrors.AlreadyExistsError
	assert.ErrorAs(t, err, &existsErr)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, zaptest.NewLogger(t))

	got, err := repo.GetByID(context.Background(), 999)
	assert.Nil(t, got)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.EqualError(t, err, "user not found: id=999")
}

func TestUserRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, zaptest.NewLogger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &user.User{
		Name:         "Maria Brown",
		Email:        "maria@gmail.com",
		Phone:        "988888888",
		PasswordHash: "old-hash",
	})
	require.NoError(t, err)

	t.Run("merges non-empty fields", func(t *testing.T) {
		updated, err := repo.Update(ctx, &user.User{ID: created.ID, Name: "Maria Green"})
		require.NoError(t, err)
		assert.Equal(t, "Maria Green", updated.Name)
		assert.Equal(t, "maria@gmail.com", updated.Email)
		assert.Equal(t, "988888888", updated.Phone)
		assert.Equal(t, "old-hash", updated.PasswordHash)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("replaces password hash when given", func(t *testing.T) {
		updated, err := repo.Update(ctx, &user.User{ID: created.ID, PasswordHash: "new-hash"})
		require.NoError(t, err)
		assert.Equal(t, "new-hash", updated.PasswordHash)
		assert.Equal(t, "Maria Green", updated.Name)
	})

	t.Run("unknown id is not created", func(t *testing.T) {
		updated, err := repo.Update(ctx, &user.User{ID: 999, Name: "Ghost"})
		assert.Nil(t, updated)
		assert.True(t, pkgerrors.IsNotFound(err))

		var count int64
		require.NoError(t, db.Model(&UserSchema{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		_, err := repo.Create(ctx, &user.User{Name: "Alex Green", Email: "alex@gmail.com"})
		require.NoError(t, err)

		_, err = repo.Update(ctx, &user.User{ID: created.ID, Email: "alex@gmail.com"})
		var existsErr *pkgerrors.AlreadyExistsError
		assert.ErrorAs(t, err, &existsErr)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewUserRepository(db, logger)
	orders := NewOrderRepository(db, logger)
	ctx := context.Background()

	free, err := repo.Create(ctx, &user.User{Name: "Alex Green", Email: "alex@gmail.com"})
	require.NoError(t, err)
	client, err := repo.Create(ctx, &user.User{Name: "Maria Brown", Email: "maria@gmail.com"})
	require.NoError(t, err)
	_, err = orders.Create(ctx, &order.Order{Moment: time.Now(), Status: order.StatusPaid, ClientID: client.ID})
	require.NoError(t, err)

	t.Run("removes user", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, free.ID))
		_, err := repo.GetByID(ctx, free.ID)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("second delete is not found", func(t *testing.T) {
		err := repo.Delete(ctx, free.ID)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("referenced by orders", func(t *testing.T) {
		err := repo.Delete(ctx, client.ID)
		var conflictErr *pkgerrors.ConflictError
		require.ErrorAs(t, err, &conflictErr)

		_, err = repo.GetByID(ctx, client.ID)
		assert.NoError(t, err, "user must survive a rejected delete")
	})
}

func TestUserRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, zaptest.NewLogger(t))
	ctx := context.Background()

	users, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	for _, u := range []user.User{
		{Name: "John Doe", Email: "JOHN@EXAMPLE.COM"},
		{Name: "Jane Smith", Email: "jane@example.com"},
		{Name: "John%Test", Email: "percent@test.org"},
		{Name: "Jane_Test", Email: "underscore@test.org"},
	} {
		_, err := repo.Create(ctx, &u)
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		query     string
		wantNames []string
	}{
		{name: "all in id order", query: "", wantNames: []string{"John Doe", "Jane Smith", "John%Test", "Jane_Test"}},
		{name: "case insensitive name", query: "JOHN", wantNames: []string{"John Doe", "John%Test"}},
		{name: "case insensitive email", query: "john@example", wantNames: []string{"John Doe"}},
		{name: "email domain", query: "example.com", wantNames: []string{"John Doe", "Jane Smith"}},
		{name: "percent is literal", query: "john%", wantNames: []string{"John%Test"}},
		{name: "underscore is literal", query: "e_t", wantNames: []string{"Jane_Test"}},
		{name: "no match", query: "zzz", wantNames: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := repo.List(ctx, tt.query)
			require.NoError(t, err)

			names := make([]string, len(users))
			for i, u := range users {
				names[i] = u.Name
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}
