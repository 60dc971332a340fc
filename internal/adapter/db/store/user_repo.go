package store

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-service/internal/domain/user"
	pkgerrors "course-service/pkg/errors"
	"course-service/pkg/security"
)

// UserRepository implements the user Repository interface with GORM.
type UserRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB, log *zap.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

func (m UserSchema) toDomain() *user.User {
	return &user.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
	}
}

// Create inserts a new user. Any id set on u is ignored.
func (r *UserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, pkgerrors.NewValidationError("user", "cannot be nil")
	}

	model := UserSchema{
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, translate(err, "user", "failed to create user")
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return model.toDomain(), nil
}

// Update overwrites the non-empty fields of u on the stored user and returns the result.
func (r *UserRepository) Update(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, pkgerrors.NewValidationError("user", "cannot be nil")
	}

	var model UserSchema
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, u.ID).Error; err != nil {
			return err
		}

		updates := map[string]any{}
		if u.Name != "" {
			updates["name"] = u.Name
			model.Name = u.Name
		}
		if u.Email != "" {
			updates["email"] = u.Email
			model.Email = u.Email
		}
		if u.Phone != "" {
			updates["phone"] = u.Phone
			model.Phone = u.Phone
		}
		if u.PasswordHash != "" {
			updates["password_hash"] = u.PasswordHash
			model.PasswordHash = u.PasswordHash
		}
		if len(updates) == 0 {
			return nil
		}

		return tx.Model(&UserSchema{ID: model.ID}).Updates(updates).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("user not found for update", zap.Int64("id", u.ID))
			return nil, pkgerrors.NotFoundByID("user", u.ID)
		}
		r.log.Error("failed to update user in db", zap.Error(err), zap.Int64("id", u.ID))
		return nil, translate(err, "user", "failed to update user")
	}

	r.log.Info("user updated in db", zap.Int64("id", model.ID))
	return model.toDomain(), nil
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&UserSchema{}, id)
	if res.Error != nil {
		r.log.Error("failed to delete user in db", zap.Error(res.Error), zap.Int64("id", id))
		return translate(res.Error, "user", "failed to delete user")
	}
	if res.RowsAffected == 0 {
		r.log.Warn("user not found for delete", zap.Int64("id", id))
		return pkgerrors.NotFoundByID("user", id)
	}

	r.log.Info("user deleted in db", zap.Int64("id", id))
	return nil
}

// GetByID retrieves a user by its unique ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFoundByID("user", id)
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, translate(err, "user", "failed to get user")
	}

	return model.toDomain(), nil
}

// GetByEmail retrieves a user by email address. It returns nil, nil when none matches.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, translate(err, "user", "failed to get user by email")
	}

	return model.toDomain(), nil
}

// List returns users ordered by id. A non-empty query keeps users whose name or
// email contains it, case-insensitively.
func (r *UserRepository) List(ctx context.Context, query string) ([]user.User, error) {
	q := r.db.WithContext(ctx).Order("id")
	if query != "" {
		pattern := security.LikePattern(query)
		q = q.Where("LOWER(name) LIKE ? ESCAPE '"+security.LikeEscape+"' OR LOWER(email) LIKE ? ESCAPE '"+security.LikeEscape+"'",
			pattern, pattern)
	}

	var models []UserSchema
	if err := q.Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err), zap.String("query", query))
		return nil, translate(err, "user", "failed to list users")
	}

	users := make([]user.User, len(models))
	for i, m := range models {
		users[i] = *m.toDomain()
	}
	return users, nil
}
