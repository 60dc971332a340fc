package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "course-service/internal/domain/user"
	pkgerrors "course-service/pkg/errors"
	"course-service/pkg/security"
)

// Repository defines the interface for user data access operations.
// Implementations return the typed errors of pkg/errors: NotFoundError for a missing id,
// AlreadyExistsError for a duplicate email and ConflictError when a delete is blocked
// by dependent records.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)   // Insert and return the user with its new id
	GetByID(ctx context.Context, id int64) (*domain.User, error)        // Retrieve user by ID
	GetByEmail(ctx context.Context, email string) (*domain.User, error) // nil, nil when no user has the email
	Update(ctx context.Context, u *domain.User) (*domain.User, error)   // Overwrite the non-empty fields of u
	Delete(ctx context.Context, id int64) error                         // Delete user by ID
	List(ctx context.Context, query string) ([]domain.User, error)      // All users matching query, by id
}

// Usecase implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type Usecase struct {
	repo     Repository
	hasher   *security.PasswordHasher
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new instance of Usecase.
func New(r Repository, hasher *security.PasswordHasher, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, hasher: hasher, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a human-readable error.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return pkgerrors.NewValidationError("", err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
		case "gt":
			messages = append(messages, fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
}

// ensureEmailFree fails with AlreadyExistsError when another user owns email.
func (uc *Usecase) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		uc.log.Error("failed to check existing email", zap.String("email", email), zap.Error(err))
		return pkgerrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil && existing.ID != selfID {
		uc.log.Warn("email already exists", zap.String("email", email), zap.Int64("existing_id", existing.ID))
		return pkgerrors.NewAlreadyExistsError("user", "email already exists")
	}
	return nil
}

func (uc *Usecase) hashPassword(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return "", pkgerrors.NewInternalError("failed to hash password", err)
	}
	return hash, nil
}

// CreateUser creates a new user after validating the request and checking email uniqueness.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*User, error) {
	uc.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	if err := uc.ensureEmailFree(ctx, in.Email, 0); err != nil {
		return nil, err
	}

	hash, err := uc.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := uc.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
	})
	if err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	uc.log.Info("user created", zap.Int64("id", created.ID))
	return toDTO(created), nil
}

// UpdateUser merges the non-empty fields of the request onto the stored user.
func (uc *Usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error) {
	uc.log.Info("updating user", zap.Int64("id", in.ID), zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	if in.Email != "" {
		if err := uc.ensureEmailFree(ctx, in.Email, in.ID); err != nil {
			return nil, err
		}
	}

	hash, err := uc.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	updated, err := uc.repo.Update(ctx, &domain.User{
		ID:           in.ID,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
	})
	if err != nil {
		uc.log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return toDTO(updated), nil
}

// DeleteUser deletes a user. Deleting an id that is already gone reports NotFound.
func (uc *Usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) error {
	uc.log.Info("deleting user", zap.Int64("id", in.ID))

	if in.ID <= 0 {
		uc.log.Warn("delete user validation failed", zap.Int64("id", in.ID), zap.String("reason", "invalid id"))
		return pkgerrors.NewValidationError("ID", "must be a positive integer")
	}

	if err := uc.repo.Delete(ctx, in.ID); err != nil {
		uc.log.Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return err
	}

	return nil
}

// GetUser retrieves a user by ID.
func (uc *Usecase) GetUser(ctx context.Context, in GetUserRequest) (*User, error) {
	if in.ID <= 0 {
		uc.log.Warn("get user validation failed", zap.Int64("id", in.ID), zap.String("reason", "invalid id"))
		return nil, pkgerrors.NewValidationError("ID", "must be a positive integer")
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			uc.log.Debug("user not found", zap.Int64("id", in.ID))
		} else {
			uc.log.Error("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		}
		return nil, err
	}

	return toDTO(u), nil
}

// ListUsers returns every user, optionally filtered by a search query.
func (uc *Usecase) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	query, err := security.ValidateSearchQuery(in.Query)
	if err != nil {
		uc.log.Warn("invalid search query", zap.String("query", in.Query), zap.Error(err))
		return nil, pkgerrors.NewValidationError("query", err.Error())
	}

	uc.log.Info("listing users", zap.String("query", query))

	domainUsers, err := uc.repo.List(ctx, query)
	if err != nil {
		uc.log.Error("failed to list users", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i := range domainUsers {
		users[i] = *toDTO(&domainUsers[i])
	}

	return &ListUsersResponse{Users: users}, nil
}
