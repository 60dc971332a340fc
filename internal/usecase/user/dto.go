package user

import domain "course-service/internal/domain/user"

// CreateUserRequest represents the request payload for creating a new user.
// The id is always assigned by the store.
type CreateUserRequest struct {
	Name     string `validate:"required,min=3,max=100"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"omitempty,max=20"`
	Password string `validate:"omitempty,min=6,max=72"`
}

// UpdateUserRequest represents the request payload for updating an existing user.
// Empty fields keep their stored value.
type UpdateUserRequest struct {
	ID       int64  `validate:"gt=0"`
	Name     string `validate:"omitempty,min=3,max=100"`
	Email    string `validate:"omitempty,email"`
	Phone    string `validate:"omitempty,max=20"`
	Password string `validate:"omitempty,min=6,max=72"`
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// ListUsersRequest represents the request payload for listing users.
// Query optionally filters by a case-insensitive substring of name or email.
type ListUsersRequest struct {
	Query string
}

// ListUsersResponse represents the response payload for user listing, ordered by id.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO (Data Transfer Object) for API responses.
// It never carries the password hash.
type User struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

func toDTO(u *domain.User) *User {
	return &User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}
